package service

import (
	"errors"
	"strings"
	"time"

	"github.com/wanderlog/internal/db"
	"gorm.io/gorm"
)

var (
	ErrAdventureNotFound = errors.New("adventure not found")
	ErrAdventureInvalid  = errors.New("adventure is missing required fields")
	ErrAdventureDate     = errors.New("adventure date must be YYYY-MM-DD")
)

// AdventureInput represents fields accepted when creating or updating an adventure.
type AdventureInput struct {
	Title     string   `json:"title"`
	Excerpt   string   `json:"excerpt"`
	Content   string   `json:"content"`
	Image     string   `json:"image"`
	Date      string   `json:"date"`
	Location  string   `json:"location"`
	Tags      []string `json:"tags"`
	Published *bool    `json:"published"`
}

// AdventureService handles a tenant's dated adventure posts.
type AdventureService struct {
	db *gorm.DB
}

// NewAdventureService creates an AdventureService instance.
func NewAdventureService(gdb *gorm.DB) *AdventureService {
	return &AdventureService{db: gdb}
}

// Create validates and stores a new adventure for the tenant.
func (s *AdventureService) Create(ownerUID string, input AdventureInput, now time.Time) (*db.Adventure, error) {
	title := strings.TrimSpace(input.Title)
	excerpt := strings.TrimSpace(input.Excerpt)
	image := strings.TrimSpace(input.Image)
	if title == "" || len(title) > 255 || excerpt == "" || len(excerpt) > 500 || image == "" {
		return nil, ErrAdventureInvalid
	}

	date := strings.TrimSpace(input.Date)
	if date == "" {
		date = now.Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, ErrAdventureDate
	}

	published := true
	if input.Published != nil {
		published = *input.Published
	}

	adventure := db.Adventure{
		OwnerUID:  ownerUID,
		Title:     title,
		Excerpt:   excerpt,
		Content:   input.Content,
		Image:     image,
		Date:      date,
		Location:  strings.TrimSpace(input.Location),
		Tags:      db.StringList(input.Tags),
		Published: published,
	}
	if err := s.db.Create(&adventure).Error; err != nil {
		return nil, err
	}
	return &adventure, nil
}

// List returns a tenant's adventures, newest first.
func (s *AdventureService) List(ownerUID string, limit int) ([]db.Adventure, error) {
	if limit <= 0 {
		limit = 10
	}

	var adventures []db.Adventure
	err := s.db.Where("owner_uid = ?", ownerUID).
		Order("date desc").Order("created_at desc").
		Limit(limit).
		Find(&adventures).Error
	if err != nil {
		return nil, err
	}
	return adventures, nil
}

// ListPublished returns the tenant's published adventures, newest first,
// for embedding into the public home page.
func (s *AdventureService) ListPublished(ownerUID string, limit int) ([]db.Adventure, error) {
	if limit <= 0 {
		limit = 4
	}

	var adventures []db.Adventure
	err := s.db.Where("owner_uid = ? AND published = ?", ownerUID, true).
		Order("date desc").Order("created_at desc").
		Limit(limit).
		Find(&adventures).Error
	if err != nil {
		return nil, err
	}
	return adventures, nil
}

// Get fetches one of the tenant's adventures by id.
func (s *AdventureService) Get(ownerUID string, id uint) (*db.Adventure, error) {
	var adventure db.Adventure
	if err := s.db.Where("owner_uid = ? AND id = ?", ownerUID, id).First(&adventure).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdventureNotFound
		}
		return nil, err
	}
	return &adventure, nil
}

// Update merges the provided fields into an existing adventure.
func (s *AdventureService) Update(ownerUID string, id uint, input AdventureInput) (*db.Adventure, error) {
	adventure, err := s.Get(ownerUID, id)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(input.Title); v != "" {
		adventure.Title = v
	}
	if v := strings.TrimSpace(input.Excerpt); v != "" {
		adventure.Excerpt = v
	}
	if input.Content != "" {
		adventure.Content = input.Content
	}
	if v := strings.TrimSpace(input.Image); v != "" {
		adventure.Image = v
	}
	if v := strings.TrimSpace(input.Date); v != "" {
		if _, err := time.Parse("2006-01-02", v); err != nil {
			return nil, ErrAdventureDate
		}
		adventure.Date = v
	}
	if v := strings.TrimSpace(input.Location); v != "" {
		adventure.Location = v
	}
	if input.Tags != nil {
		adventure.Tags = db.StringList(input.Tags)
	}
	if input.Published != nil {
		adventure.Published = *input.Published
	}

	if err := s.db.Save(adventure).Error; err != nil {
		return nil, err
	}
	return adventure, nil
}

// Delete removes one of the tenant's adventures.
func (s *AdventureService) Delete(ownerUID string, id uint) error {
	result := s.db.Where("owner_uid = ? AND id = ?", ownerUID, id).Delete(&db.Adventure{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAdventureNotFound
	}
	return nil
}
