package service

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/wanderlog/internal/db"
	"gorm.io/gorm"
)

// 仪表盘支持的统计区间。
const (
	PeriodToday  = "today"
	Period7Days  = "7days"
	Period30Days = "30days"
	Period90Days = "90days"
)

// AnalyticsReport 是按请求即时计算的仪表盘报表，不做持久化。
type AnalyticsReport struct {
	Summary      SummaryData       `json:"summary"`
	TimeSeries   []TimeSeriesPoint `json:"time_series"`
	PageStats    []PageStat        `json:"page_stats"`
	VisitorStats VisitorStats      `json:"visitor_stats"`
}

// SummaryData 汇总区间内的总量指标。
type SummaryData struct {
	TotalViews     int            `json:"total_views"`
	UniqueVisitors int            `json:"unique_visitors"`
	Pages          map[string]int `json:"pages"`
	AvgTimeOnSite  int            `json:"avg_time_on_site"`
}

// TimeSeriesPoint 是时间序列中一天的数据点。
type TimeSeriesPoint struct {
	Date           string `json:"date"`
	Views          uint64 `json:"views"`
	UniqueVisitors uint64 `json:"unique_visitors"`
}

// PageStat 是单页面的区间统计。
type PageStat struct {
	Page        string `json:"page"`
	Views       int    `json:"views"`
	UniqueViews int    `json:"unique_views"`
}

// VisitorStats 是区间内的访客构成。
type VisitorStats struct {
	NewVisitors       int `json:"new_visitors"`
	ReturningVisitors int `json:"returning_visitors"`
	TotalVisitors     int `json:"total_visitors"`
}

// ReportService 通过范围查询重建仪表盘报表。
// 索引查询返回 ErrIndexUnavailable 时自动降级到全量扫描。
type ReportService struct {
	visits          VisitRangeQuery
	visitsFallback  VisitRangeQuery
	rollups         RollupRangeQuery
	rollupsFallback RollupRangeQuery
}

// NewReportService 创建 ReportService，默认索引优先、全扫描兜底。
func NewReportService(gdb *gorm.DB) *ReportService {
	return &ReportService{
		visits:          NewIndexedVisitQuery(gdb),
		visitsFallback:  NewFullScanVisitQuery(gdb),
		rollups:         NewIndexedRollupQuery(gdb),
		rollupsFallback: NewFullScanRollupQuery(gdb),
	}
}

// WithVisitQueries 允许在测试中替换访问记录查询策略。
func (s *ReportService) WithVisitQueries(primary, fallback VisitRangeQuery) *ReportService {
	if primary != nil {
		s.visits = primary
	}
	if fallback != nil {
		s.visitsFallback = fallback
	}
	return s
}

// WithRollupQueries 允许在测试中替换日汇总查询策略。
func (s *ReportService) WithRollupQueries(primary, fallback RollupRangeQuery) *ReportService {
	if primary != nil {
		s.rollups = primary
	}
	if fallback != nil {
		s.rollupsFallback = fallback
	}
	return s
}

// GetAnalyticsData 重建区间报表。summary/time_series/page_stats
// 内部失败时降级为零值，visitor_stats 失败则整体报错，不返回半成品。
func (s *ReportService) GetAnalyticsData(ownerUID, period string, now time.Time) (*AnalyticsReport, error) {
	start, end := resolveWindow(period, now)

	report := &AnalyticsReport{
		Summary:    s.summaryData(ownerUID, start),
		TimeSeries: s.timeSeriesData(ownerUID, start, end),
		PageStats:  s.pageStats(ownerUID, start),
	}

	visitorStats, err := s.visitorStats(ownerUID, start)
	if err != nil {
		return nil, fmt.Errorf("visitor stats owner=%s period=%s: %w", ownerUID, period, err)
	}
	report.VisitorStats = visitorStats

	return report, nil
}

// resolveWindow 将区间名解析为 [start, end]，未识别的值回退到 7 天。
func resolveWindow(period string, now time.Time) (time.Time, time.Time) {
	switch period {
	case PeriodToday:
		year, month, day := now.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, now.Location()), now
	case Period30Days:
		return now.AddDate(0, 0, -30), now
	case Period90Days:
		return now.AddDate(0, 0, -90), now
	case Period7Days:
		return now.AddDate(0, 0, -7), now
	default:
		return now.AddDate(0, 0, -7), now
	}
}

// fetchVisits 先走索引范围查询，索引不可用时降级到全量扫描。
func (s *ReportService) fetchVisits(ownerUID string, since time.Time) ([]db.VisitRecord, error) {
	visits, err := s.visits.VisitsSince(ownerUID, since)
	if err != nil {
		if !errors.Is(err, ErrIndexUnavailable) {
			return nil, err
		}
		log.Printf("analytics: indexed visit query unavailable owner=%s, falling back to full scan: %v", ownerUID, err)
		visits, err = s.visitsFallback.VisitsSince(ownerUID, since)
		if err != nil {
			return nil, err
		}
	}
	return visits, nil
}

func (s *ReportService) summaryData(ownerUID string, start time.Time) SummaryData {
	summary := SummaryData{Pages: map[string]int{}}

	visits, err := s.fetchVisits(ownerUID, start)
	if err != nil {
		log.Printf("analytics: summary data failed owner=%s since=%s: %v", ownerUID, start.Format("2006-01-02"), err)
		return summary
	}

	distinct := make(map[string]struct{})
	for _, visit := range visits {
		summary.TotalViews++
		summary.Pages[visit.Page]++
		distinct[visit.VisitorID] = struct{}{}
	}
	summary.UniqueVisitors = len(distinct)

	return summary
}

func (s *ReportService) timeSeriesData(ownerUID string, start, end time.Time) []TimeSeriesPoint {
	sinceKey := start.Format("2006-01-02")

	rollups, err := s.rollups.DailyRollupsSince(ownerUID, sinceKey)
	if err != nil {
		if !errors.Is(err, ErrIndexUnavailable) {
			log.Printf("analytics: time series failed owner=%s since=%s: %v", ownerUID, sinceKey, err)
			return []TimeSeriesPoint{}
		}
		log.Printf("analytics: indexed rollup query unavailable owner=%s, falling back to full scan: %v", ownerUID, err)
		rollups, err = s.rollupsFallback.DailyRollupsSince(ownerUID, sinceKey)
		if err != nil {
			log.Printf("analytics: time series fallback failed owner=%s since=%s: %v", ownerUID, sinceKey, err)
			return []TimeSeriesPoint{}
		}
	}

	// 输出长度只由日期范围决定，缺数据的日子补零。
	series := make([]TimeSeriesPoint, 0)
	day := startOfDay(start)
	last := startOfDay(end)
	for !day.After(last) {
		key := day.Format("2006-01-02")
		point := TimeSeriesPoint{Date: key}
		if rollup, ok := rollups[key]; ok {
			point.Views = rollup.TotalViews
			point.UniqueVisitors = rollup.UniqueVisitors
		}
		series = append(series, point)
		day = day.AddDate(0, 0, 1)
	}

	return series
}

func (s *ReportService) pageStats(ownerUID string, start time.Time) []PageStat {
	visits, err := s.fetchVisits(ownerUID, start)
	if err != nil {
		log.Printf("analytics: page stats failed owner=%s since=%s: %v", ownerUID, start.Format("2006-01-02"), err)
		return []PageStat{}
	}

	views := make(map[string]int)
	visitors := make(map[string]map[string]struct{})
	for _, visit := range visits {
		views[visit.Page]++
		if visitors[visit.Page] == nil {
			visitors[visit.Page] = make(map[string]struct{})
		}
		visitors[visit.Page][visit.VisitorID] = struct{}{}
	}

	stats := make([]PageStat, 0, len(views))
	for page, count := range views {
		stats = append(stats, PageStat{
			Page:        page,
			Views:       count,
			UniqueViews: len(visitors[page]),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Views != stats[j].Views {
			return stats[i].Views > stats[j].Views
		}
		return stats[i].Page < stats[j].Page
	})

	return stats
}

// visitorStats 只走索引查询，失败原样上抛，由 GetAnalyticsData 统一兜底。
func (s *ReportService) visitorStats(ownerUID string, start time.Time) (VisitorStats, error) {
	visits, err := s.visits.VisitsSince(ownerUID, start)
	if err != nil {
		return VisitorStats{}, err
	}

	earliest := make(map[string]string)
	for _, visit := range visits {
		first, ok := earliest[visit.VisitorID]
		if !ok || visit.Timestamp < first {
			earliest[visit.VisitorID] = visit.Timestamp
		}
	}

	startKey := start.Format(time.RFC3339)
	stats := VisitorStats{TotalVisitors: len(earliest)}
	for _, first := range earliest {
		if first >= startKey {
			stats.NewVisitors++
		}
	}
	stats.ReturningVisitors = stats.TotalVisitors - stats.NewVisitors

	return stats, nil
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
