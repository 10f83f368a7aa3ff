// Package sheets defines the outbound port for exporting a year's payroll
// data to a spreadsheet, plus the row layout shared by all adapters.
package sheets

import (
	"context"
	"fmt"

	"boxpay/internal/core"
)

// ReportWriter replaces the full contents of one year's payroll sheet.
type ReportWriter interface {
	WriteYear(ctx context.Context, year string, rows [][]any) error
}

// BuildYearRows renders the roster-gated payroll of one year as sheet rows:
// a header, one row per paid coach per month, and a grand total row.
func BuildYearRows(b *core.PayrollBook, year string) ([][]any, error) {
	annual, err := core.SummarizeYear(b, year)
	if err != nil {
		return nil, fmt.Errorf("summarize %s: %w", year, err)
	}

	rows := [][]any{
		{"월", "코치", "지급액", "원천징수(3.3%)", "실지급액"},
	}
	for m := 0; m < core.MonthsPerYear; m++ {
		monthly, err := core.Summarize(b, year, m)
		if err != nil {
			return nil, fmt.Errorf("summarize %s month %d: %w", year, m, err)
		}
		for _, row := range monthly.Rows {
			if row.Amount == 0 {
				continue
			}
			rows = append(rows, []any{
				fmt.Sprintf("%d월", m+1),
				row.Name,
				row.Amount,
				row.Withholding,
				row.Net,
			})
		}
	}
	rows = append(rows, []any{
		"연간 합계", "",
		annual.Gross,
		annual.Withholding,
		annual.Net,
	})
	return rows, nil
}

// SheetName returns the tab a year's export lands on.
func SheetName(year string) string {
	return year + " Payroll"
}
