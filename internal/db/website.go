package db

import "gorm.io/gorm"

// WebsitePage represents one editable page of a tenant's public site.
type WebsitePage struct {
	gorm.Model
	OwnerUID  string `gorm:"size:36;uniqueIndex:idx_site_owner_slug;not null"`
	Slug      string `gorm:"uniqueIndex:idx_site_owner_slug;not null"`
	Title     string `gorm:"not null"`
	Published bool   `gorm:"default:false"`
	Sections  JSONMap
}

// TableName 指定自定义表名。
func (WebsitePage) TableName() string {
	return "website_pages"
}

// WebsiteSetting holds per-tenant site chrome: name, tagline and colors.
type WebsiteSetting struct {
	gorm.Model
	OwnerUID       string `gorm:"size:36;uniqueIndex;not null"`
	SiteName       string
	Tagline        string
	ColorPalette   string `gorm:"default:default"`
	PrimaryColor   string
	SecondaryColor string
	AccentColor    string
}

// TableName 指定自定义表名。
func (WebsiteSetting) TableName() string {
	return "website_settings"
}
