// Package report builds the per-client PDF summary: identity block,
// global financial summary and one section per process listing each
// phase with its planned amount, received amount and payment status.
package report

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/lexflow/lexfin/internal/client/domain"
	financedomain "github.com/lexflow/lexfin/internal/finance/domain"
	processdomain "github.com/lexflow/lexfin/internal/process/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Phase status labels as printed on the report.
const (
	StatusPaid    = "Paid"
	StatusPartial = "Partial"
	StatusPending = "Pending"
	StatusNone    = "—"
)

// PhaseStatus derives the label for a phase. A phase with nothing
// planned has no meaningful status even if payments exist.
func PhaseStatus(plannedCents, receivedCents int64) string {
	switch {
	case plannedCents == 0:
		return StatusNone
	case receivedCents == 0:
		return StatusPending
	case receivedCents < plannedCents:
		return StatusPartial
	default:
		return StatusPaid
	}
}

// Filename derives the deterministic report filename from the client
// name and id, keeping only alphanumerics, spaces, dots and
// underscores.
func Filename(name string, id snowflake.ID) string {
	raw := fmt.Sprintf("Report_%s_%d.pdf", strings.ReplaceAll(name, " ", "_"), id)
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '.' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Document is a rendered report plus its suggested filename.
type Document struct {
	Filename string
	Data     []byte
}

// PhaseRow is one line of a process phase table.
type PhaseRow struct {
	Description   string
	PlannedCents  int64
	ReceivedCents int64
	Status        string
}

// ProcessSection is one process with its fully loaded phase rows.
type ProcessSection struct {
	Title       string
	CaseNumber  string
	Status      string
	Responsible string
	Notes       string
	Phases      []PhaseRow
}

// Snapshot is everything the renderer needs, eagerly loaded. No
// queries happen at render time.
type Snapshot struct {
	Client          clientdomain.Client
	ContractedCents int64
	ReceivedCents   int64
	BalanceCents    int64
	Processes       []ProcessSection
}

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Clients   clientdomain.Repository
	Processes processdomain.Repository
	Payments  financedomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	clients   clientdomain.Repository
	processes processdomain.Repository
	payments  financedomain.Repository
}

func New(p Params) *Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("report.service"),
		clients:   p.Clients,
		processes: p.Processes,
		payments:  p.Payments,
	}
}

// BuildClientReport loads the client snapshot and renders the PDF.
func (s *Service) BuildClientReport(ctx context.Context, clientID string) (Document, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(clientID))
	if err != nil || id == 0 {
		return Document{}, clientdomain.ErrInvalidID
	}

	snapshot, err := s.loadSnapshot(ctx, id)
	if err != nil {
		return Document{}, err
	}

	data, err := render(snapshot)
	if err != nil {
		return Document{}, err
	}

	doc := Document{
		Filename: Filename(snapshot.Client.Name, snapshot.Client.ID),
		Data:     data,
	}
	s.log.Info("client report generated",
		zap.String("client_id", id.String()),
		zap.String("filename", doc.Filename),
		zap.Int("bytes", len(doc.Data)),
	)
	return doc, nil
}

func (s *Service) loadSnapshot(ctx context.Context, id snowflake.ID) (Snapshot, error) {
	client, err := s.clients.FindByID(ctx, s.db, id)
	if err != nil {
		return Snapshot{}, err
	}
	if client == nil {
		return Snapshot{}, clientdomain.ErrNotFound
	}

	processes, err := s.processes.ListByClient(ctx, s.db, id)
	if err != nil {
		return Snapshot{}, err
	}

	snapshot := Snapshot{Client: *client}
	for _, proc := range processes {
		if proc == nil {
			continue
		}
		section := ProcessSection{
			Title:       proc.Title,
			CaseNumber:  proc.CaseNumber,
			Status:      proc.Status,
			Responsible: proc.Responsible,
			Notes:       proc.Notes,
		}

		phases, err := s.processes.ListPhasesByProcess(ctx, s.db, proc.ID)
		if err != nil {
			return Snapshot{}, err
		}
		for _, phase := range phases {
			if phase == nil {
				continue
			}
			payments, err := s.payments.ListByPhase(ctx, s.db, phase.ID)
			if err != nil {
				return Snapshot{}, err
			}
			var received int64
			for _, payment := range payments {
				if payment == nil {
					continue
				}
				received += payment.AmountCents
			}

			section.Phases = append(section.Phases, PhaseRow{
				Description:   phase.Description,
				PlannedCents:  phase.PlannedAmountCents,
				ReceivedCents: received,
				Status:        PhaseStatus(phase.PlannedAmountCents, received),
			})
			snapshot.ContractedCents += phase.PlannedAmountCents
			snapshot.ReceivedCents += received
		}

		snapshot.Processes = append(snapshot.Processes, section)
	}
	snapshot.BalanceCents = snapshot.ContractedCents - snapshot.ReceivedCents

	return snapshot, nil
}
