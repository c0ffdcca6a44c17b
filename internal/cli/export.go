package cli

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/wanderlog/internal/service"
)

var (
	exportTenant string
	exportPeriod string
	exportOut    string
)

// ExportCmd 将租户统计导出为 CSV 文件
var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export visit analytics to a CSV file",
	Run:   runExport,
}

func init() {
	ExportCmd.Flags().StringVar(&exportTenant, "tenant", "", "tenant uid (defaults to the earliest registered user)")
	ExportCmd.Flags().StringVar(&exportPeriod, "period", service.Period30Days, "reporting window: today, 7days, 30days or 90days")
	ExportCmd.Flags().StringVar(&exportOut, "out", "", "output file (defaults to analytics-export-<uid>-<date>.csv)")
	RootCmd.AddCommand(ExportCmd)
}

func runExport(cmd *cobra.Command, args []string) {
	gdb := openDatabase()
	uid := resolveTenant(gdb, exportTenant)

	now := time.Now()
	reports := service.NewReportService(gdb)
	report, err := reports.GetAnalyticsData(uid, exportPeriod, now)
	if err != nil {
		log.Fatalf("failed to build report: %v", err)
	}

	path := exportOut
	if path == "" {
		path = service.ExportFilename(uid, now)
	}

	file, err := os.Create(path)
	if err != nil {
		log.Fatalf("failed to create %s: %v", path, err)
	}
	defer file.Close()

	if err := service.WriteCSV(file, report); err != nil {
		log.Fatalf("failed to write export: %v", err)
	}

	fmt.Printf("Exported %s analytics for tenant %s to %s\n", exportPeriod, uid, path)
}
