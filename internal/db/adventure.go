package db

import "gorm.io/gorm"

// Adventure 定义租户的探险日志条目（带日期的图文帖）。
type Adventure struct {
	gorm.Model
	OwnerUID  string `gorm:"size:36;index;not null"`
	Title     string `gorm:"not null"`
	Excerpt   string `gorm:"size:500"`
	Content   string `gorm:"type:text"`
	Image     string
	Date      string `gorm:"size:10"` // YYYY-MM-DD
	Location  string
	Tags      StringList
	// 不设列默认值：带 default 标签的布尔零值会被 gorm 从 INSERT 中省略。
	// 默认发布由服务层在创建时显式赋值。
	Published bool
}

// TableName 指定自定义表名。
func (Adventure) TableName() string {
	return "adventures"
}
