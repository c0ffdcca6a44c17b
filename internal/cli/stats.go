package cli

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/wanderlog/internal/service"
)

var (
	statsTenant string
	statsPeriod string
)

// StatsCmd 在终端打印租户的访问统计
var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print visit analytics for a tenant",
	Long:  `Print summary, per-page and visitor statistics for a tenant's website.`,
	Run:   runStats,
}

func init() {
	StatsCmd.Flags().StringVar(&statsTenant, "tenant", "", "tenant uid (defaults to the earliest registered user)")
	StatsCmd.Flags().StringVar(&statsPeriod, "period", service.Period30Days, "reporting window: today, 7days, 30days or 90days")
	RootCmd.AddCommand(StatsCmd)
}

func runStats(cmd *cobra.Command, args []string) {
	gdb := openDatabase()
	uid := resolveTenant(gdb, statsTenant)

	reports := service.NewReportService(gdb)
	report, err := reports.GetAnalyticsData(uid, statsPeriod, time.Now())
	if err != nil {
		log.Fatalf("failed to build report: %v", err)
	}

	fmt.Printf("Analytics for tenant %s (%s)\n\n", uid, statsPeriod)

	summary := newStatsTable("Summary")
	summary.AppendHeader(table.Row{"Total Views", "Unique Visitors", "Pages Tracked"})
	summary.AppendRow(table.Row{report.Summary.TotalViews, report.Summary.UniqueVisitors, len(report.Summary.Pages)})
	summary.Render()

	pages := newStatsTable("Pages")
	pages.AppendHeader(table.Row{"Page", "Total Views", "Unique Views"})
	for _, stat := range report.PageStats {
		pages.AppendRow(table.Row{stat.Page, stat.Views, stat.UniqueViews})
	}
	pages.Render()

	visitors := newStatsTable("Visitors")
	visitors.AppendHeader(table.Row{"New", "Returning", "Total"})
	visitors.AppendRow(table.Row{
		report.VisitorStats.NewVisitors,
		report.VisitorStats.ReturningVisitors,
		report.VisitorStats.TotalVisitors,
	})
	visitors.Render()
}

func newStatsTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(title)
	t.SetStyle(table.StyleRounded)
	return t
}
