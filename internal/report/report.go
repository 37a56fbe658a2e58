// Package report renders a dataset's summary statistics as a PDF document.
package report

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/kurochkinivan/excel_analytics/internal/domain"
)

type Generator struct{}

func New() *Generator {
	return &Generator{}
}

// Generate renders the summary text into a one-page-or-more PDF report.
func (g *Generator) Generate(ds *domain.Dataset, summary string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	m.AddRows(text.NewRow(12, "Dataset Report", props.Text{
		Size:  16,
		Style: fontstyle.Bold,
	}))

	m.AddRows(text.NewRow(8, fmt.Sprintf("File: %s", ds.OriginalName), props.Text{
		Size: 10,
	}))
	m.AddRows(text.NewRow(8, fmt.Sprintf("Uploaded: %s", ds.CreatedAt.Format("2006-01-02 15:04:05")), props.Text{
		Size: 10,
	}))

	for _, line := range strings.Split(summary, "\n") {
		if line == "" {
			m.AddRows(text.NewRow(3, ""))
			continue
		}

		style := fontstyle.Normal
		if !strings.HasPrefix(line, " -") {
			style = fontstyle.Bold
		}

		m.AddRows(text.NewRow(5, line, props.Text{
			Size:  9,
			Style: style,
		}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pdf report: %w", err)
	}

	return doc.GetBytes(), nil
}
