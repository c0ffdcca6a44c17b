package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/wanderlog/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VisitMeta 携带一次页面请求的原始元数据，按原样落库。
type VisitMeta struct {
	IPAddress string
	UserAgent string
	SessionID string
}

// AnalyticsService 负责处理站点访问相关的统计逻辑。
type AnalyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService 创建 AnalyticsService。
func NewAnalyticsService(gdb *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: gdb}
}

// RecordVisit 记录访客对租户公开页面的一次浏览：追加访问记录、
// 维护访客标记并递增日/周/月汇总与页面计数器。
// 访问记录写入失败时返回错误；其后的汇总更新失败只记日志不中断，
// 调用方不应让任何错误影响页面响应。
func (s *AnalyticsService) RecordVisit(ownerUID, page string, meta VisitMeta, now time.Time) error {
	if ownerUID == "" || page == "" {
		return errors.New("invalid owner or page")
	}

	visitorID := VisitorFingerprint(meta.IPAddress, meta.UserAgent)
	isUnique := s.markVisitor(ownerUID, visitorID, now)

	visit := db.VisitRecord{
		OwnerUID:  ownerUID,
		Timestamp: now.Format(time.RFC3339),
		Date:      now.Format("2006-01-02"),
		Page:      page,
		VisitorID: visitorID,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		IsUnique:  isUnique,
		SessionID: meta.SessionID,
	}
	if err := s.db.Create(&visit).Error; err != nil {
		return fmt.Errorf("record visit owner=%s page=%s: %w", ownerUID, page, err)
	}

	if err := s.updateSummaries(ownerUID, page, now, isUnique); err != nil {
		log.Printf("analytics: summary update failed owner=%s page=%s: %v", ownerUID, page, err)
	}
	if err := s.incrementPageViews(ownerUID, page); err != nil {
		log.Printf("analytics: page view counter failed owner=%s page=%s: %v", ownerUID, page, err)
	}

	return nil
}

// markVisitor 维护 (租户, 访客) 标记并返回本次是否为首次出现。
// 标记查询失败时按首次处理，与不计数相比宁可多计 unique。
func (s *AnalyticsService) markVisitor(ownerUID, visitorID string, now time.Time) bool {
	unique := true

	err := s.db.Transaction(func(tx *gorm.DB) error {
		marker := db.VisitorMarker{
			OwnerUID:  ownerUID,
			VisitorID: visitorID,
			FirstSeen: now,
			LastSeen:  now,
		}
		insert := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_uid"}, {Name: "visitor_id"}},
			DoNothing: true,
		}).Create(&marker)
		if insert.Error != nil {
			return insert.Error
		}

		if insert.RowsAffected == 1 {
			return nil
		}

		unique = false
		return tx.Model(&db.VisitorMarker{}).
			Where("owner_uid = ? AND visitor_id = ?", ownerUID, visitorID).
			Update("last_seen", now).Error
	})
	if err != nil {
		log.Printf("analytics: visitor marker failed owner=%s visitor=%s: %v", ownerUID, visitorID, err)
		return true
	}

	return unique
}

// periodKey 描述一次访问需要递增的某个汇总桶。
type periodKey struct {
	period string
	key    string
}

func periodKeysFor(now time.Time) []periodKey {
	isoYear, isoWeek := now.ISOWeek()
	return []periodKey{
		{db.PeriodDaily, now.Format("2006-01-02")},
		{db.PeriodWeekly, fmt.Sprintf("%d-W%02d", isoYear, isoWeek)},
		{db.PeriodMonthly, now.Format("2006-01")},
	}
}

// updateSummaries 在事务内对日/周/月三个汇总文档做行锁递增，
// 缺失的汇总视为全零基线后创建。
func (s *AnalyticsService) updateSummaries(ownerUID, page string, now time.Time, isUnique bool) error {
	for _, pk := range periodKeysFor(now) {
		if err := s.incrementSummary(ownerUID, pk.period, pk.key, page, isUnique); err != nil {
			return fmt.Errorf("%s summary %s: %w", pk.period, pk.key, err)
		}
	}
	return nil
}

func (s *AnalyticsService) incrementSummary(ownerUID, period, key, page string, isUnique bool) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var summary db.RollupSummary
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("owner_uid = ? AND period = ? AND period_key = ?", ownerUID, period, key).
			First(&summary)

		switch {
		case errors.Is(result.Error, gorm.ErrRecordNotFound):
			summary = db.RollupSummary{
				OwnerUID:  ownerUID,
				Period:    period,
				PeriodKey: key,
				Pages:     db.PageCountMap{},
			}
			if err := tx.Create(&summary).Error; err != nil {
				return err
			}
		case result.Error != nil:
			return result.Error
		}

		if summary.Pages == nil {
			summary.Pages = db.PageCountMap{}
		}

		summary.TotalViews++
		if isUnique {
			summary.UniqueVisitors++
		}
		counts := summary.Pages[page]
		counts.Views++
		if isUnique {
			counts.UniqueViews++
		}
		summary.Pages[page] = counts

		return tx.Save(&summary).Error
	})
}

func (s *AnalyticsService) incrementPageViews(ownerUID, page string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var counter db.PageViewCounter
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("owner_uid = ? AND page = ?", ownerUID, page).
			First(&counter)

		switch {
		case errors.Is(result.Error, gorm.ErrRecordNotFound):
			counter = db.PageViewCounter{OwnerUID: ownerUID, Page: page}
			if err := tx.Create(&counter).Error; err != nil {
				return err
			}
		case result.Error != nil:
			return result.Error
		}

		counter.Views++
		return tx.Save(&counter).Error
	})
}

// PageViews 返回 (租户, 页面) 的累计浏览数，缺失按零处理。
func (s *AnalyticsService) PageViews(ownerUID, page string) (uint64, error) {
	var counter db.PageViewCounter
	if err := s.db.Where("owner_uid = ? AND page = ?", ownerUID, page).First(&counter).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return counter.Views, nil
}
