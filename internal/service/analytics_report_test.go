package service

import (
	"testing"
	"time"
)

func seedVisits(t *testing.T, svc *AnalyticsService, ownerUID string, now time.Time) {
	t.Helper()

	metas := []VisitMeta{
		{IPAddress: "192.0.2.1", UserAgent: "Mozilla/5.0"},
		{IPAddress: "192.0.2.2", UserAgent: "Mozilla/5.0"},
		{IPAddress: "192.0.2.3", UserAgent: "Mozilla/5.0"},
	}
	for i, meta := range metas {
		if err := svc.RecordVisit(ownerUID, "home", meta, now.Add(time.Duration(i)*time.Minute)); err != nil {
			t.Fatalf("seed visit %d failed: %v", i, err)
		}
	}
}

func TestGetAnalyticsDataToday(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	visitTime := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	seedVisits(t, NewAnalyticsService(gdb), "tenant-report", visitTime)

	now := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)
	report, err := NewReportService(gdb).GetAnalyticsData("tenant-report", PeriodToday, now)
	if err != nil {
		t.Fatalf("failed to build report: %v", err)
	}

	if report.Summary.TotalViews != 3 || report.Summary.UniqueVisitors != 3 {
		t.Fatalf("expected views=3 unique=3, got views=%d unique=%d",
			report.Summary.TotalViews, report.Summary.UniqueVisitors)
	}
	if report.Summary.Pages["home"] != 3 {
		t.Fatalf("expected home page count 3, got %d", report.Summary.Pages["home"])
	}

	if len(report.PageStats) != 1 {
		t.Fatalf("expected one page stat, got %d", len(report.PageStats))
	}
	stat := report.PageStats[0]
	if stat.Page != "home" || stat.Views != 3 || stat.UniqueViews != 3 {
		t.Fatalf("unexpected page stat: %+v", stat)
	}

	// 当天区间的时间序列只有一个点
	if len(report.TimeSeries) != 1 {
		t.Fatalf("expected one time series point, got %d", len(report.TimeSeries))
	}
	point := report.TimeSeries[0]
	if point.Date != "2024-01-15" || point.Views != 3 || point.UniqueVisitors != 3 {
		t.Fatalf("unexpected time series point: %+v", point)
	}
}

func TestGetAnalyticsDataZeroFillsTimeSeries(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	visitTime := time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC)
	seedVisits(t, NewAnalyticsService(gdb), "tenant-series", visitTime)

	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	report, err := NewReportService(gdb).GetAnalyticsData("tenant-series", Period7Days, now)
	if err != nil {
		t.Fatalf("failed to build report: %v", err)
	}

	// 7 天窗口含起止两端，共 8 个数据点
	if len(report.TimeSeries) != 8 {
		t.Fatalf("expected 8 time series points, got %d", len(report.TimeSeries))
	}

	for i := 1; i < len(report.TimeSeries); i++ {
		if report.TimeSeries[i-1].Date >= report.TimeSeries[i].Date {
			t.Fatalf("time series not in ascending date order: %q then %q",
				report.TimeSeries[i-1].Date, report.TimeSeries[i].Date)
		}
	}

	var active, empty int
	for _, point := range report.TimeSeries {
		if point.Views > 0 {
			active++
		} else {
			empty++
		}
	}
	if active != 1 || empty != 7 {
		t.Fatalf("expected 1 active day and 7 zero-filled, got %d and %d", active, empty)
	}
}

func TestGetAnalyticsDataVisitorSplit(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewAnalyticsService(gdb)

	// 老访客：首次访问在窗口外
	oldMeta := VisitMeta{IPAddress: "192.0.2.10", UserAgent: "Mozilla/5.0"}
	if err := svc.RecordVisit("tenant-split", "home", oldMeta, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("old visit failed: %v", err)
	}
	if err := svc.RecordVisit("tenant-split", "home", oldMeta, time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("return visit failed: %v", err)
	}

	// 新访客：首次访问在窗口内
	newMeta := VisitMeta{IPAddress: "192.0.2.11", UserAgent: "Mozilla/5.0"}
	if err := svc.RecordVisit("tenant-split", "about", newMeta, time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("new visit failed: %v", err)
	}

	now := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)
	report, err := NewReportService(gdb).GetAnalyticsData("tenant-split", Period7Days, now)
	if err != nil {
		t.Fatalf("failed to build report: %v", err)
	}

	stats := report.VisitorStats
	if stats.TotalVisitors != 2 {
		t.Fatalf("expected 2 visitors in window, got %d", stats.TotalVisitors)
	}
	if stats.NewVisitors+stats.ReturningVisitors != stats.TotalVisitors {
		t.Fatalf("visitor split must sum to total: %+v", stats)
	}
	// 范围查询只看窗口内记录，窗口内每个访客的最早访问都落在窗口内
	if stats.NewVisitors != 2 || stats.ReturningVisitors != 0 {
		t.Fatalf("expected new=2 returning=0, got %+v", stats)
	}
}

func TestGetAnalyticsDataUnknownPeriodDefaultsToWeek(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	seedVisits(t, NewAnalyticsService(gdb), "tenant-period", time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC))

	now := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)
	reports := NewReportService(gdb)

	unknown, err := reports.GetAnalyticsData("tenant-period", "lastfortnight", now)
	if err != nil {
		t.Fatalf("unknown period should not fail: %v", err)
	}
	week, err := reports.GetAnalyticsData("tenant-period", Period7Days, now)
	if err != nil {
		t.Fatalf("7days report failed: %v", err)
	}

	if unknown.Summary.TotalViews != week.Summary.TotalViews {
		t.Fatalf("unknown period should behave like 7days: got %d vs %d",
			unknown.Summary.TotalViews, week.Summary.TotalViews)
	}
	if len(unknown.TimeSeries) != len(week.TimeSeries) {
		t.Fatalf("unknown period window mismatch: %d vs %d points",
			len(unknown.TimeSeries), len(week.TimeSeries))
	}
}

func TestGetAnalyticsDataEmptyTenant(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	now := time.Date(2024, 1, 15, 23, 0, 0, 0, time.UTC)
	report, err := NewReportService(gdb).GetAnalyticsData("tenant-empty", Period30Days, now)
	if err != nil {
		t.Fatalf("empty tenant should not fail: %v", err)
	}

	if report.Summary.TotalViews != 0 || report.Summary.UniqueVisitors != 0 {
		t.Fatalf("expected zero summary, got %+v", report.Summary)
	}
	if len(report.PageStats) != 0 {
		t.Fatalf("expected no page stats, got %d", len(report.PageStats))
	}
	if len(report.TimeSeries) != 31 {
		t.Fatalf("expected 31 zero-filled points, got %d", len(report.TimeSeries))
	}
	if report.VisitorStats.TotalVisitors != 0 {
		t.Fatalf("expected zero visitors, got %+v", report.VisitorStats)
	}
}
