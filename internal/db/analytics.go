package db

import "time"

// VisitRecord 记录一次公开页面的浏览，写入后不可变。
// 自增主键保证插入顺序，Timestamp 采用 RFC3339 文本作为范围查询键。
type VisitRecord struct {
	ID        uint   `gorm:"primaryKey"`
	OwnerUID  string `gorm:"size:36;index:idx_visit_owner_ts"`
	Timestamp string `gorm:"size:35;index:idx_visit_owner_ts"`
	Date      string `gorm:"size:10;index"`
	Page      string `gorm:"size:64"`
	VisitorID string `gorm:"size:64;index"`
	IPAddress string
	UserAgent string
	IsUnique  bool
	SessionID string
	CreatedAt time.Time
}

// TableName 指定自定义表名。
func (VisitRecord) TableName() string {
	return "visit_records"
}

// VisitorMarker 记录 (租户, 访客) 首次与最近出现时间，用于写入时判定 IsUnique。
// 标记永不过期：同一访客只在首次浏览时计为 unique。
type VisitorMarker struct {
	ID        uint   `gorm:"primaryKey"`
	OwnerUID  string `gorm:"size:36;uniqueIndex:idx_marker_owner_visitor"`
	VisitorID string `gorm:"size:64;uniqueIndex:idx_marker_owner_visitor"`
	FirstSeen time.Time
	LastSeen  time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定自定义表名。
func (VisitorMarker) TableName() string {
	return "visitor_markers"
}

// 汇总周期类型。
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// RollupSummary 是 (租户, 周期, 周期键) 维度的增量计数器，只增不减。
type RollupSummary struct {
	ID             uint   `gorm:"primaryKey"`
	OwnerUID       string `gorm:"size:36;uniqueIndex:idx_rollup_owner_period_key"`
	Period         string `gorm:"size:10;uniqueIndex:idx_rollup_owner_period_key"`
	PeriodKey      string `gorm:"size:10;uniqueIndex:idx_rollup_owner_period_key"`
	TotalViews     uint64 `gorm:"default:0"`
	UniqueVisitors uint64 `gorm:"default:0"`
	Pages          PageCountMap
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName 指定自定义表名。
func (RollupSummary) TableName() string {
	return "rollup_summaries"
}

// PageViewCounter 是 (租户, 页面) 维度的累计浏览计数。
type PageViewCounter struct {
	ID        uint   `gorm:"primaryKey"`
	OwnerUID  string `gorm:"size:36;uniqueIndex:idx_page_counter_owner_page"`
	Page      string `gorm:"size:64;uniqueIndex:idx_page_counter_owner_page"`
	Views     uint64 `gorm:"default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定自定义表名。
func (PageViewCounter) TableName() string {
	return "page_view_counters"
}
