package report

import (
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/lexflow/lexfin/pkg/money"
)

func render(snapshot Snapshot) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(12, "Lex Finance — Client Report", props.Text{
			Size:  15,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)

	// Client identity block
	m.AddRow(10,
		text.NewCol(12, "Client: "+snapshot.Client.Name, props.Text{
			Size:  12,
			Style: fontstyle.Bold,
		}),
	)
	if info := identityLine(snapshot); info != "" {
		m.AddRow(6,
			text.NewCol(12, info, props.Text{Size: 10}),
		)
	}

	// Global summary
	m.AddRow(10,
		text.NewCol(12, "Financial Summary", props.Text{
			Size:  11,
			Style: fontstyle.Bold,
			Top:   3,
		}),
	)
	m.AddRow(8,
		text.NewCol(4, "Contracted: "+money.FormatBRL(snapshot.ContractedCents), props.Text{Size: 10}),
		text.NewCol(4, "Received: "+money.FormatBRL(snapshot.ReceivedCents), props.Text{Size: 10}),
		text.NewCol(4, "Balance: "+money.FormatBRL(snapshot.BalanceCents), props.Text{Size: 10}),
	)

	m.AddRow(12,
		text.NewCol(12, "Processes", props.Text{
			Size:  12,
			Style: fontstyle.Bold,
			Top:   4,
		}),
	)

	if len(snapshot.Processes) == 0 {
		m.AddRow(8,
			text.NewCol(12, "No processes on record.", props.Text{Size: 10, Style: fontstyle.Italic}),
		)
	}

	for _, section := range snapshot.Processes {
		title := "Process: " + section.Title
		if section.CaseNumber != "" {
			title += " (" + section.CaseNumber + ")"
		}
		m.AddRow(8,
			text.NewCol(12, title, props.Text{Size: 11, Style: fontstyle.Bold, Top: 2}),
		)
		m.AddRow(6,
			text.NewCol(12, processMeta(section), props.Text{Size: 9}),
		)

		m.AddRow(7,
			text.NewCol(6, "Phase", props.Text{Size: 9, Style: fontstyle.Bold}),
			text.NewCol(2, "Planned", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
			text.NewCol(2, "Received", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
			text.NewCol(2, "Status", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}),
		)

		if len(section.Phases) == 0 {
			m.AddRow(6,
				col.New(12).Add(
					text.New("No phases on record.", props.Text{Size: 9, Style: fontstyle.Italic}),
				),
			)
			continue
		}

		for _, phase := range section.Phases {
			m.AddRow(6,
				text.NewCol(6, phase.Description, props.Text{Size: 9}),
				text.NewCol(2, money.FromCents(phase.PlannedCents), props.Text{Size: 9, Align: align.Right}),
				text.NewCol(2, money.FromCents(phase.ReceivedCents), props.Text{Size: 9, Align: align.Right}),
				text.NewCol(2, phase.Status, props.Text{Size: 9, Align: align.Right}),
			)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func identityLine(snapshot Snapshot) string {
	parts := make([]string, 0, 3)
	if snapshot.Client.TaxID != "" {
		parts = append(parts, "Tax ID: "+snapshot.Client.TaxID)
	}
	if snapshot.Client.Email != "" {
		parts = append(parts, "Email: "+snapshot.Client.Email)
	}
	if snapshot.Client.Phone != "" {
		parts = append(parts, "Phone: "+snapshot.Client.Phone)
	}
	return strings.Join(parts, " | ")
}

func processMeta(section ProcessSection) string {
	responsible := section.Responsible
	if responsible == "" {
		responsible = "N/A"
	}
	meta := "Status: " + section.Status + " | Responsible: " + responsible
	if section.Notes != "" {
		meta += " | Notes: " + section.Notes
	}
	return meta
}
