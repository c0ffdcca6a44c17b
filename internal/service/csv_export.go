package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

// WriteCSV serializes a report into the four fixed blocks of the export
// format: summary, time series, page stats and visitor stats, each followed
// by a blank separator line (the last block ends the file).
func WriteCSV(w io.Writer, report *AnalyticsReport) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"Analytics Summary"},
		{"Total Views", "Unique Visitors"},
		{strconv.Itoa(report.Summary.TotalViews), strconv.Itoa(report.Summary.UniqueVisitors)},
		nil,
		{"Date", "Views", "Unique Visitors"},
	}
	for _, point := range report.TimeSeries {
		rows = append(rows, []string{
			point.Date,
			strconv.FormatUint(point.Views, 10),
			strconv.FormatUint(point.UniqueVisitors, 10),
		})
	}

	rows = append(rows, nil, []string{"Page", "Total Views", "Unique Views"})
	for _, stat := range report.PageStats {
		rows = append(rows, []string{
			stat.Page,
			strconv.Itoa(stat.Views),
			strconv.Itoa(stat.UniqueViews),
		})
	}

	rows = append(rows,
		nil,
		[]string{"New Visitors", "Returning Visitors", "Total Visitors"},
		[]string{
			strconv.Itoa(report.VisitorStats.NewVisitors),
			strconv.Itoa(report.VisitorStats.ReturningVisitors),
			strconv.Itoa(report.VisitorStats.TotalVisitors),
		},
	)

	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportFilename returns the attachment name for a tenant's CSV download.
func ExportFilename(ownerUID string, now time.Time) string {
	return fmt.Sprintf("analytics-export-%s-%s.csv", ownerUID, now.Format("2006-01-02"))
}
