// Package export renders reports as downloadable documents.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/mmynk/roomledger/internal/calculator"
	"github.com/mmynk/roomledger/internal/models"
	"github.com/mmynk/roomledger/internal/report"
)

// Format names an export document type.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts "xlsx" or "pdf".
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatXLSX, FormatPDF:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Build renders r in the given format.
func Build(f Format, r *report.Report) ([]byte, error) {
	switch f {
	case FormatXLSX:
		return BuildReportXLSX(r)
	case FormatPDF:
		return BuildReportPDF(r)
	}
	return nil, fmt.Errorf("unsupported export format %q", f)
}

// Filename suggests a download name such as
// "report-<room>-2024-03-01_2024-03-31.xlsx".
func Filename(f Format, r *report.Report) string {
	return fmt.Sprintf("report-%s-%s.%s", r.Room.ID, period(r), f)
}

func period(r *report.Report) string {
	from, to := r.From.String(), r.To.String()
	if from == "" {
		from = "start"
	}
	if to == "" {
		to = "now"
	}
	return from + "_" + to
}

// Sheet names of the XLSX export.
const (
	SheetSummary     = "summary"
	SheetBalances    = "balances"
	SheetSettlements = "settlements"
	SheetCategories  = "categories"
	SheetDaily       = "daily"
)

// BuildReportXLSX renders a workbook with one sheet per report section.
// Amounts are written as numbers rounded to the currency's display unit.
func BuildReportXLSX(r *report.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetBalances, SheetSettlements, SheetCategories, SheetDaily} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	balanceRow := func(b models.Balance) []any {
		c := r.Currency
		return []any{b.DisplayName, c.Round(b.Paid).Float64(), c.Round(b.Owed).Float64(), c.Round(b.Net).Float64()}
	}

	rows := map[string][][]any{
		SheetSummary: {
			{"Room", r.Room.Name},
			{"From", r.From.String()},
			{"To", r.To.String()},
			{"Currency", r.Currency.Code},
			{"Grand total", r.Currency.Round(r.GrandTotal).Float64()},
			{"Transactions", r.RecordCount},
			{"Generated", r.GeneratedAt.Format(time.RFC3339)},
		},
		SheetBalances:    {{"Participant", "Paid", "Owed", "Net"}},
		SheetSettlements: {{"From", "To", "Amount"}},
		SheetCategories:  {{"Category", "Total", "Count", "Share"}},
		SheetDaily:       {{"Day", "Total", "Count"}},
	}
	if r.Warning != nil {
		rows[SheetSummary] = append(rows[SheetSummary], []any{"Warning", r.Warning.Error()})
	}
	for _, b := range calculator.SortByNet(r.Balances) {
		rows[SheetBalances] = append(rows[SheetBalances], balanceRow(b))
	}
	for _, s := range r.Settlements {
		rows[SheetSettlements] = append(rows[SheetSettlements], []any{s.FromName, s.ToName, s.Amount.Float64()})
	}
	for _, c := range r.Categories {
		rows[SheetCategories] = append(rows[SheetCategories],
			[]any{c.Category.Name, r.Currency.Round(c.Total).Float64(), c.Count, c.Share})
	}
	for _, d := range r.Daily {
		rows[SheetDaily] = append(rows[SheetDaily], []any{d.Key.String(), r.Currency.Round(d.Total).Float64(), d.Count})
	}

	for sheet, sheetRows := range rows {
		for i, row := range sheetRows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				return nil, fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildReportPDF renders a one-document summary with balance, settlement and
// category tables. Amounts use ISO codes since the core fonts are Latin-1;
// names outside cp1252 are folded to their base letters by latinFold.
func BuildReportPDF(r *report.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	cp1252 := pdf.UnicodeTranslatorFromDescriptor("")
	tr := func(s string) string { return cp1252(latinFold(s)) }
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, tr(fmt.Sprintf("Expense Report: %s", r.Room.Name)))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s to %s", orDash(r.From.String()), orDash(r.To.String())))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Total: %s over %d transactions", r.Currency.FormatCode(r.GrandTotal), r.RecordCount))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", r.GeneratedAt.Format(time.RFC3339)))
	pdf.Ln(5)
	if r.Warning != nil {
		pdf.Cell(0, 6, "Warning: "+r.Warning.Error())
		pdf.Ln(5)
	}
	pdf.Ln(4)

	table := func(title string, widths []float64, header []string, rows [][]string) {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 7, title)
		pdf.Ln(8)
		pdf.SetFont("Arial", "B", 10)
		for i, h := range header {
			pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 10)
		for _, row := range rows {
			for i, v := range row {
				align := "R"
				if i == 0 {
					align = "L"
				}
				pdf.CellFormat(widths[i], 6, tr(v), "1", 0, align, false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(6)
	}

	c := r.Currency
	var balances [][]string
	for _, b := range calculator.SortByNet(r.Balances) {
		balances = append(balances, []string{b.DisplayName, c.FormatCode(b.Paid), c.FormatCode(b.Owed), c.FormatCode(b.Net)})
	}
	table("Balances", []float64{60, 40, 40, 40}, []string{"Participant", "Paid", "Owed", "Net"}, balances)

	var settlements [][]string
	for _, s := range r.Settlements {
		settlements = append(settlements, []string{s.FromName, s.ToName, c.FormatCode(s.Amount)})
	}
	if len(settlements) == 0 {
		settlements = [][]string{{"All settled", "", ""}}
	}
	table("Settlements", []float64{60, 60, 60}, []string{"From", "To", "Amount"}, settlements)

	var categories [][]string
	for _, cs := range r.Categories {
		categories = append(categories, []string{cs.Category.Name, c.FormatCode(cs.Total), fmt.Sprint(cs.Count), fmt.Sprintf("%.1f%%", cs.Share*100)})
	}
	table("Categories", []float64{60, 40, 30, 30}, []string{"Category", "Total", "Count", "Share"}, categories)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// latinFold strips the diacritics from letters above Latin-1 so the core
// fonts can draw them: "Đức" becomes "Duc". Latin-1 letters such as "é"
// and symbols such as "€" are left alone.
func latinFold(s string) string {
	var b strings.Builder
	for _, r := range norm.NFC.String(s) {
		switch {
		case r < 0x100:
			b.WriteRune(r)
		case r == 'Đ':
			b.WriteByte('D')
		case r == 'đ':
			b.WriteByte('d')
		default:
			for _, d := range norm.NFD.String(string(r)) {
				if !unicode.Is(unicode.Mn, d) {
					b.WriteRune(d)
				}
			}
		}
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
