package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"punchdeck.com/punchdeck/infrastructure/communication"
	"punchdeck.com/punchdeck/infrastructure/filesystem"
	"punchdeck.com/punchdeck/timesheet"
	"punchdeck.com/punchdeck/utils"
)

const sheetName = "Timesheet"

// BuildWorkbook renders a pay-period range as an XLSX workbook: one row
// per calendar day with punch times and worked minutes, then the period
// totals against the expected hours.
func BuildWorkbook(period timesheet.PayPeriod, days []timesheet.DayData, stats timesheet.PayPeriodStats, loc *time.Location) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	headers := []interface{}{"Date", "Punch In", "Punch Out", "Worked", "Notes"}
	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	row := 2
	for _, day := range days {
		date := day.Date.In(loc).Format("Mon Jan 2")
		if len(day.Sessions) == 0 {
			cell, _ := excelize.CoordinatesToCellName(1, row)
			f.SetSheetRow(sheetName, cell, &[]interface{}{date, "-", "-", utils.FormatDuration(0), ""})
			row++
			continue
		}
		for _, s := range day.Sessions {
			cell, _ := excelize.CoordinatesToCellName(1, row)
			f.SetSheetRow(sheetName, cell, &[]interface{}{
				date,
				formatPunch(s.PunchIn, loc),
				formatPunch(s.PunchOut, loc),
				utils.FormatDuration(s.DurationMinutes),
				noteText(s.Notes),
			})
			row++
		}
	}

	row++
	totals := [][]interface{}{
		{"Total", utils.FormatDuration(stats.TotalMinutes)},
		{"Expected", utils.FormatDuration(stats.PotentialMinutes)},
		{"Difference", utils.FormatDuration(stats.DifferenceMinutes)},
	}
	for _, line := range totals {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		f.SetSheetRow(sheetName, cell, &line)
		row++
	}

	f.SetColWidth(sheetName, "A", "E", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf, nil
}

// Filename is the canonical report name for a period, derived from its
// local start date.
func Filename(period timesheet.PayPeriod, loc *time.Location) string {
	return fmt.Sprintf("timesheet-%s.xlsx", period.Start.In(loc).Format("2006-01-02"))
}

// Archive uploads the workbook to the report bucket under reports/.
func Archive(ctx context.Context, bucket string, period timesheet.PayPeriod, workbook *bytes.Buffer, loc *time.Location) (string, error) {
	key := "reports/" + Filename(period, loc)
	if err := filesystem.WriteFile(bucket, key, ctx, workbook.Bytes()); err != nil {
		return "", err
	}
	return key, nil
}

// EmailSummary sends the period totals with the workbook attached.
func EmailSummary(ctx context.Context, from string, to []string, period timesheet.PayPeriod, stats timesheet.PayPeriodStats, workbook *bytes.Buffer, loc *time.Location) error {
	body := fmt.Sprintf(
		"Pay period %s\n\nWorked: %s\nExpected: %s\nDifference: %s\n",
		period.Label,
		utils.FormatDuration(stats.TotalMinutes),
		utils.FormatDuration(stats.PotentialMinutes),
		utils.FormatDuration(stats.DifferenceMinutes),
	)

	return communication.SendEmail(ctx, &communication.EmailInfo{
		From:    from,
		To:      to,
		Subject: fmt.Sprintf("Timesheet %s", period.Label),
		Text:    body,
		Attachments: []communication.Attachment{
			{
				Filename:    Filename(period, loc),
				ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
				Content:     workbook.Bytes(),
			},
		},
	})
}

func formatPunch(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "-"
	}
	return t.In(loc).Format("15:04")
}

func noteText(notes *string) string {
	if notes == nil {
		return ""
	}
	return *notes
}
