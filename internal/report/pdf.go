package report

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/mkarsai/worktime/internal/tz"
)

var (
	pdfHeaderColor = props.Color{Red: 50, Green: 50, Blue: 50}
	pdfMutedColor  = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfLineColor   = props.Color{Red: 200, Green: 200, Blue: 200}
)

// SavePDF renders the monthly report as a PDF timesheet at the given path.
func SavePDF(rep *MonthReport, outputPath string) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	// Document header
	m.AddRow(14,
		text.NewCol(12, "Work time", props.Text{
			Style: fontstyle.Bold,
			Size:  16,
			Color: &pdfHeaderColor,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, rep.Month, props.Text{
			Size:  12,
			Color: &pdfMutedColor,
		}),
	)
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(4) // spacer

	// Column header
	m.AddRow(7,
		pdfHeaderCol(3, "Date", align.Left),
		pdfHeaderCol(2, "In", align.Left),
		pdfHeaderCol(2, "Out", align.Left),
		pdfHeaderCol(2, "Gross", align.Right),
		pdfHeaderCol(1, "Break", align.Right),
		pdfHeaderCol(2, "Net", align.Right),
	)

	for _, day := range rep.Days {
		checkOut := day.CheckOut
		gross, deduction, net := "", "", ""
		switch {
		case day.Open:
			checkOut = "open"
		case day.CheckIn != "":
			gross = tz.FormatMinutesHHMM(day.GrossMinutes)
			deduction = tz.FormatMinutesHHMM(day.DeductionMinutes)
			net = tz.FormatMinutesHHMM(day.NetMinutes)
		}

		color := &pdfHeaderColor
		if day.CheckIn == "" {
			// Expected but not worked
			color = &pdfMutedColor
		}
		m.AddRow(6,
			pdfCol(3, day.Date, align.Left, color),
			pdfCol(2, day.CheckIn, align.Left, color),
			pdfCol(2, checkOut, align.Left, color),
			pdfCol(2, gross, align.Right, color),
			pdfCol(1, deduction, align.Right, color),
			pdfCol(2, net, align.Right, color),
		)
	}

	// Totals footer
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(10,
		text.NewCol(9, "Total", props.Text{
			Style: fontstyle.Bold,
			Size:  12,
			Color: &pdfHeaderColor,
		}),
		text.NewCol(3, tz.FormatMinutesHHMM(rep.TotalNetMinutes), props.Text{
			Style: fontstyle.Bold,
			Size:  12,
			Align: align.Right,
			Color: &pdfHeaderColor,
		}),
	)
	if rep.ExpectedDays > 0 {
		m.AddRow(8,
			text.NewCol(9, fmt.Sprintf("Expected (%d days)", rep.ExpectedDays), props.Text{
				Size:  10,
				Color: &pdfMutedColor,
			}),
			text.NewCol(3, tz.FormatMinutesHHMM(rep.ExpectedMinutes), props.Text{
				Size:  10,
				Align: align.Right,
				Color: &pdfMutedColor,
			}),
		)
		m.AddRow(8,
			text.NewCol(9, "Balance", props.Text{
				Size:  10,
				Color: &pdfMutedColor,
			}),
			text.NewCol(3, formatBalance(rep.BalanceMinutes), props.Text{
				Size:  10,
				Align: align.Right,
				Color: &pdfMutedColor,
			}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generating PDF: %w", err)
	}

	return doc.Save(outputPath)
}

func pdfHeaderCol(size int, label string, a align.Type) core.Col {
	return text.NewCol(size, label, props.Text{
		Style: fontstyle.Bold,
		Size:  9,
		Align: a,
		Color: &pdfHeaderColor,
	})
}

func pdfCol(size int, value string, a align.Type, color *props.Color) core.Col {
	return text.NewCol(size, value, props.Text{
		Size:  9,
		Align: a,
		Color: color,
	})
}

func formatBalance(minutes int) string {
	if minutes < 0 {
		return "-" + tz.FormatMinutesHHMM(-minutes)
	}
	return "+" + tz.FormatMinutesHHMM(minutes)
}
