package export

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/facility-complaints/internal/report"
)

const (
	summarySheet = "Summary"
	ticketSheet  = "Tickets"
	timeLayout   = "2006-01-02 15:04:05"
)

var ticketHeaders = []string{"Ticket ID", "Submitted At", "Resolved At", "Priority", "Status", "TAT"}

// TATWorkbook is the content of a turnaround export.
type TATWorkbook struct {
	TotalTickets   int
	AverageTAT     string
	FiltersApplied map[string]any
	Tickets        []report.TicketTAT
	// Location renders timestamps; nil means UTC.
	Location *time.Location
}

// FileName returns the suggested attachment name for a workbook generated at now.
func FileName(now time.Time) string {
	return fmt.Sprintf("tat_report_%s.xlsx", now.UTC().Format("20060102_150405"))
}

// WriteTATWorkbook renders wb as an xlsx document.
func WriteTATWorkbook(wb TATWorkbook) (*bytes.Buffer, error) {
	loc := wb.Location
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	idx, err := f.NewSheet(ticketSheet)
	if err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	if err := writeSummary(f, wb, headerStyle); err != nil {
		return nil, err
	}

	for col, header := range ticketHeaders {
		if err := setCell(f, ticketSheet, col+1, 1, header); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(ticketSheet, "A1", "F1", headerStyle); err != nil {
		return nil, err
	}
	for i, t := range wb.Tickets {
		row := i + 2
		resolved := "-"
		if t.ResolvedAt != nil {
			resolved = t.ResolvedAt.In(loc).Format(timeLayout)
		}
		values := []any{t.TicketID, t.SubmittedAt.In(loc).Format(timeLayout), resolved, string(t.Priority), string(t.Status), t.TAT}
		for col, v := range values {
			if err := setCell(f, ticketSheet, col+1, row, v); err != nil {
				return nil, err
			}
		}
	}
	if err := f.SetColWidth(ticketSheet, "A", "F", 20); err != nil {
		return nil, err
	}
	if err := f.SetPanes(ticketSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return &buf, nil
}

func writeSummary(f *excelize.File, wb TATWorkbook, headerStyle int) error {
	rows := [][2]any{
		{"Total Tickets", wb.TotalTickets},
		{"Average TAT", wb.AverageTAT},
	}
	keys := make([]string, 0, len(wb.FiltersApplied))
	for k := range wb.FiltersApplied {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := wb.FiltersApplied[k]
		if v == nil {
			v = "-"
		}
		rows = append(rows, [2]any{"Filter: " + k, v})
	}
	for i, r := range rows {
		if err := setCell(f, summarySheet, 1, i+1, r[0]); err != nil {
			return err
		}
		if err := setCell(f, summarySheet, 2, i+1, r[1]); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(rows)), headerStyle); err != nil {
		return err
	}
	return f.SetColWidth(summarySheet, "A", "B", 24)
}

func setCell(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}
