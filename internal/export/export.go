// Package export produces one flat CSV per table — a direct dump of
// all rows and columns with no transformation, used for backups.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	clientdomain "github.com/lexflow/lexfin/internal/client/domain"
	financedomain "github.com/lexflow/lexfin/internal/finance/domain"
	processdomain "github.com/lexflow/lexfin/internal/process/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Exportable tables.
const (
	TableClients   = "clients"
	TableProcesses = "processes"
	TablePhases    = "phases"
	TablePayments  = "payments"
)

var ErrUnknownTable = errors.New("unknown_table")

// File is one rendered CSV dump.
type File struct {
	Name string
	Data []byte
}

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(p Params) *Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("export.service"),
	}
}

// ExportTable dumps a single table.
func (s *Service) ExportTable(ctx context.Context, table string) (File, error) {
	switch table {
	case TableClients:
		return s.exportClients(ctx)
	case TableProcesses:
		return s.exportProcesses(ctx)
	case TablePhases:
		return s.exportPhases(ctx)
	case TablePayments:
		return s.exportPayments(ctx)
	default:
		return File{}, ErrUnknownTable
	}
}

// ExportAll dumps every exportable table.
func (s *Service) ExportAll(ctx context.Context) ([]File, error) {
	tables := []string{TableClients, TableProcesses, TablePhases, TablePayments}
	files := make([]File, 0, len(tables))
	for _, table := range tables {
		file, err := s.ExportTable(ctx, table)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func (s *Service) exportClients(ctx context.Context) (File, error) {
	var rows []clientdomain.Client
	if err := s.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return File{}, err
	}

	records := [][]string{{"id", "name", "tax_id", "email", "phone"}}
	for _, row := range rows {
		records = append(records, []string{
			row.ID.String(),
			row.Name,
			row.TaxID,
			row.Email,
			row.Phone,
		})
	}
	return writeCSV(TableClients, records)
}

func (s *Service) exportProcesses(ctx context.Context) (File, error) {
	var rows []processdomain.Process
	if err := s.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return File{}, err
	}

	records := [][]string{{"id", "client_id", "case_number", "title", "responsible", "status", "notes"}}
	for _, row := range rows {
		records = append(records, []string{
			row.ID.String(),
			row.ClientID.String(),
			row.CaseNumber,
			row.Title,
			row.Responsible,
			row.Status,
			row.Notes,
		})
	}
	return writeCSV(TableProcesses, records)
}

func (s *Service) exportPhases(ctx context.Context) (File, error) {
	var rows []processdomain.Phase
	if err := s.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return File{}, err
	}

	records := [][]string{{"id", "process_id", "description", "condition", "planned_amount_cents"}}
	for _, row := range rows {
		records = append(records, []string{
			row.ID.String(),
			row.ProcessID.String(),
			row.Description,
			row.Condition,
			fmt.Sprintf("%d", row.PlannedAmountCents),
		})
	}
	return writeCSV(TablePhases, records)
}

func (s *Service) exportPayments(ctx context.Context) (File, error) {
	var rows []financedomain.Payment
	if err := s.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return File{}, err
	}

	records := [][]string{{"id", "phase_id", "amount_cents", "received_on"}}
	for _, row := range rows {
		records = append(records, []string{
			row.ID.String(),
			row.PhaseID.String(),
			fmt.Sprintf("%d", row.AmountCents),
			time.Time(row.ReceivedOn).Format("2006-01-02"),
		})
	}
	return writeCSV(TablePayments, records)
}

func writeCSV(table string, records [][]string) (File, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return File{}, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return File{}, err
	}
	return File{Name: table + ".csv", Data: buf.Bytes()}, nil
}
