package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/wanderlog/internal/db"
	"gorm.io/gorm"
)

const maxGalleryImageBytes = 5 << 20 // 5MB

var (
	ErrImageNotFound = errors.New("gallery image not found")
	ErrImageEmpty    = errors.New("image content is empty")
	ErrImageTooLarge = fmt.Errorf("image exceeds %d bytes", maxGalleryImageBytes)
)

// GalleryInput carries the editable metadata for a gallery image.
type GalleryInput struct {
	Caption  string `json:"caption"`
	Location string `json:"location"`
}

// GalleryService stores tenant gallery images on the external media host
// and keeps only metadata rows locally.
type GalleryService struct {
	db    *gorm.DB
	media MediaHost
}

// NewGalleryService returns a new GalleryService instance.
func NewGalleryService(gdb *gorm.DB, media MediaHost) *GalleryService {
	return &GalleryService{db: gdb, media: media}
}

// Upload pushes image content to the media host and records the result.
func (s *GalleryService) Upload(ctx context.Context, ownerUID, filename, contentType string, content []byte, input GalleryInput) (*db.GalleryImage, error) {
	if len(content) == 0 {
		return nil, ErrImageEmpty
	}
	if len(content) > maxGalleryImageBytes {
		return nil, ErrImageTooLarge
	}

	asset, err := s.media.Upload(ctx, filename, content)
	if err != nil {
		return nil, err
	}

	width, height := ImageDimensions(content)
	if asset.ContentType != "" {
		contentType = asset.ContentType
	}

	image := db.GalleryImage{
		OwnerUID:    ownerUID,
		URL:         asset.URL,
		MediaID:     asset.ID,
		Caption:     strings.TrimSpace(input.Caption),
		Location:    strings.TrimSpace(input.Location),
		ContentType: contentType,
		Bytes:       int64(len(content)),
		ImageWidth:  width,
		ImageHeight: height,
		UploadedAt:  time.Now(),
	}
	if err := s.db.Create(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// List returns a tenant's gallery images, newest upload first.
func (s *GalleryService) List(ownerUID string) ([]db.GalleryImage, error) {
	var images []db.GalleryImage
	err := s.db.Where("owner_uid = ?", ownerUID).
		Order("uploaded_at desc").Order("id desc").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

// Get fetches one of the tenant's gallery images by id.
func (s *GalleryService) Get(ownerUID string, id uint) (*db.GalleryImage, error) {
	var image db.GalleryImage
	if err := s.db.Where("owner_uid = ? AND id = ?", ownerUID, id).First(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	return &image, nil
}

// Update edits caption and location on an existing image.
func (s *GalleryService) Update(ownerUID string, id uint, input GalleryInput) (*db.GalleryImage, error) {
	image, err := s.Get(ownerUID, id)
	if err != nil {
		return nil, err
	}

	image.Caption = strings.TrimSpace(input.Caption)
	image.Location = strings.TrimSpace(input.Location)

	if err := s.db.Save(image).Error; err != nil {
		return nil, err
	}
	return image, nil
}

// Delete removes the remote asset first, then the local row. A failed
// remote delete is logged but does not keep the row alive: the media
// host reaps orphans on its own schedule.
func (s *GalleryService) Delete(ctx context.Context, ownerUID string, id uint) error {
	image, err := s.Get(ownerUID, id)
	if err != nil {
		return err
	}

	if image.MediaID != "" {
		if err := s.media.Delete(ctx, image.MediaID); err != nil {
			log.Printf("删除远程媒体 %s 失败: %v", image.MediaID, err)
		}
	}

	return s.db.Delete(image).Error
}
