package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wanderlog/internal/db"
	"gorm.io/gorm"
)

// ErrIndexUnavailable 表示底层存储无法执行索引范围查询，
// 调用方据此切换到全量扫描，其它错误一律原样上抛。
var ErrIndexUnavailable = errors.New("range query index unavailable")

// VisitRangeQuery 按起始时间取回访问记录。
type VisitRangeQuery interface {
	VisitsSince(ownerUID string, since time.Time) ([]db.VisitRecord, error)
}

// RollupRangeQuery 按起始日键取回日汇总。
type RollupRangeQuery interface {
	DailyRollupsSince(ownerUID, sinceKey string) (map[string]db.RollupSummary, error)
}

// IndexedVisitQuery 走 timestamp 索引做服务端过滤。
type IndexedVisitQuery struct {
	db *gorm.DB
}

// NewIndexedVisitQuery 创建 IndexedVisitQuery。
func NewIndexedVisitQuery(gdb *gorm.DB) *IndexedVisitQuery {
	return &IndexedVisitQuery{db: gdb}
}

// VisitsSince implements VisitRangeQuery.
func (q *IndexedVisitQuery) VisitsSince(ownerUID string, since time.Time) ([]db.VisitRecord, error) {
	var visits []db.VisitRecord
	err := q.db.
		Where("owner_uid = ? AND timestamp >= ?", ownerUID, since.Format(time.RFC3339)).
		Order("timestamp asc, id asc").
		Find(&visits).Error
	if err != nil {
		return nil, classifyIndexErr(err)
	}
	return visits, nil
}

// FullScanVisitQuery 取回租户全部访问记录后在内存中解析时间戳过滤，
// 作为索引查询不可用时的回退路径。
type FullScanVisitQuery struct {
	db *gorm.DB
}

// NewFullScanVisitQuery 创建 FullScanVisitQuery。
func NewFullScanVisitQuery(gdb *gorm.DB) *FullScanVisitQuery {
	return &FullScanVisitQuery{db: gdb}
}

// VisitsSince implements VisitRangeQuery.
func (q *FullScanVisitQuery) VisitsSince(ownerUID string, since time.Time) ([]db.VisitRecord, error) {
	var all []db.VisitRecord
	if err := q.db.Where("owner_uid = ?", ownerUID).Order("timestamp asc, id asc").Find(&all).Error; err != nil {
		return nil, err
	}

	cutoff := since.Truncate(time.Second)
	visits := make([]db.VisitRecord, 0, len(all))
	for _, visit := range all {
		ts, err := time.Parse(time.RFC3339, visit.Timestamp)
		if err != nil {
			continue
		}
		if !ts.Before(cutoff) {
			visits = append(visits, visit)
		}
	}
	return visits, nil
}

// IndexedRollupQuery 走 period_key 索引取回日汇总。
type IndexedRollupQuery struct {
	db *gorm.DB
}

// NewIndexedRollupQuery 创建 IndexedRollupQuery。
func NewIndexedRollupQuery(gdb *gorm.DB) *IndexedRollupQuery {
	return &IndexedRollupQuery{db: gdb}
}

// DailyRollupsSince implements RollupRangeQuery.
func (q *IndexedRollupQuery) DailyRollupsSince(ownerUID, sinceKey string) (map[string]db.RollupSummary, error) {
	var rollups []db.RollupSummary
	err := q.db.
		Where("owner_uid = ? AND period = ? AND period_key >= ?", ownerUID, db.PeriodDaily, sinceKey).
		Find(&rollups).Error
	if err != nil {
		return nil, classifyIndexErr(err)
	}
	return rollupsByKey(rollups), nil
}

// FullScanRollupQuery 取回全部日汇总后按键字符串比较过滤。
type FullScanRollupQuery struct {
	db *gorm.DB
}

// NewFullScanRollupQuery 创建 FullScanRollupQuery。
func NewFullScanRollupQuery(gdb *gorm.DB) *FullScanRollupQuery {
	return &FullScanRollupQuery{db: gdb}
}

// DailyRollupsSince implements RollupRangeQuery.
func (q *FullScanRollupQuery) DailyRollupsSince(ownerUID, sinceKey string) (map[string]db.RollupSummary, error) {
	var all []db.RollupSummary
	if err := q.db.Where("owner_uid = ? AND period = ?", ownerUID, db.PeriodDaily).Find(&all).Error; err != nil {
		return nil, err
	}

	filtered := make([]db.RollupSummary, 0, len(all))
	for _, rollup := range all {
		if rollup.PeriodKey >= sinceKey {
			filtered = append(filtered, rollup)
		}
	}
	return rollupsByKey(filtered), nil
}

func rollupsByKey(rollups []db.RollupSummary) map[string]db.RollupSummary {
	byKey := make(map[string]db.RollupSummary, len(rollups))
	for _, rollup := range rollups {
		byKey[rollup.PeriodKey] = rollup
	}
	return byKey
}

// classifyIndexErr 把缺列/缺索引类驱动错误归入 ErrIndexUnavailable，
// 其余错误保持原样，避免回退路径吞掉真正的故障。
func classifyIndexErr(err error) error {
	msg := err.Error()
	for _, marker := range []string{"no such column", "no such index", "no such table"} {
		if strings.Contains(msg, marker) {
			return fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
		}
	}
	return err
}
