package db

import (
	"time"

	"gorm.io/gorm"
)

// GalleryImage 定义图库图片模型；二进制文件托管在外部媒体服务。
type GalleryImage struct {
	gorm.Model
	OwnerUID    string `gorm:"size:36;index;not null"`
	URL         string `gorm:"not null"`
	MediaID     string `gorm:"index"` // remote asset id on the media host
	Caption     string
	Location    string
	ContentType string
	Bytes       int64
	ImageWidth  int
	ImageHeight int
	UploadedAt  time.Time
}

// TableName 指定自定义表名。
func (GalleryImage) TableName() string {
	return "gallery_images"
}
