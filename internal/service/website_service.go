package service

import (
	"errors"
	"strings"

	"github.com/wanderlog/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPageUnknown    = errors.New("unknown page slug")
	ErrSettingMissing = errors.New("website settings payload is empty")
)

// KnownPages 是每个站点固定的四个页面。
var KnownPages = []string{"home", "about", "gallery", "contact"}

// ColorPalette 描述一个可选配色方案。
type ColorPalette struct {
	Name   string            `json:"name"`
	Colors map[string]string `json:"colors"`
}

// WebsiteService provides per-tenant page content and site settings, creating
// typed defaults lazily on first read the way the hosted document tree did.
type WebsiteService struct {
	db *gorm.DB
}

// NewWebsiteService returns a new WebsiteService instance.
func NewWebsiteService(gdb *gorm.DB) *WebsiteService {
	return &WebsiteService{db: gdb}
}

// IsKnownPage reports whether slug is one of the four site pages.
func IsKnownPage(slug string) bool {
	for _, page := range KnownPages {
		if page == slug {
			return true
		}
	}
	return false
}

// GetPage fetches a tenant's page, seeding defaults on first access.
func (s *WebsiteService) GetPage(ownerUID, slug string) (*db.WebsitePage, error) {
	if !IsKnownPage(slug) {
		return nil, ErrPageUnknown
	}

	var page db.WebsitePage
	err := s.db.Where("owner_uid = ? AND slug = ?", ownerUID, slug).First(&page).Error
	if err == nil {
		return &page, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	page = defaultPage(ownerUID, slug)
	if err := s.db.Create(&page).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdatePage merges title/section updates into a tenant's page.
func (s *WebsiteService) UpdatePage(ownerUID, slug, title string, sections db.JSONMap) (*db.WebsitePage, error) {
	page, err := s.GetPage(ownerUID, slug)
	if err != nil {
		return nil, err
	}

	if trimmed := strings.TrimSpace(title); trimmed != "" {
		page.Title = trimmed
	}
	if sections != nil {
		if page.Sections == nil {
			page.Sections = db.JSONMap{}
		}
		// 浅合并：与文档存储的 update 语义保持一致。
		for key, value := range sections {
			page.Sections[key] = value
		}
	}

	if err := s.db.Save(page).Error; err != nil {
		return nil, err
	}
	return page, nil
}

// TogglePublish flips a page's published flag.
func (s *WebsiteService) TogglePublish(ownerUID, slug string, published bool) (*db.WebsitePage, error) {
	page, err := s.GetPage(ownerUID, slug)
	if err != nil {
		return nil, err
	}

	page.Published = published
	if err := s.db.Save(page).Error; err != nil {
		return nil, err
	}
	return page, nil
}

// PublishedPages lists the slugs of a tenant's published pages in fixed order.
func (s *WebsiteService) PublishedPages(ownerUID string) ([]string, error) {
	published := make([]string, 0, len(KnownPages))
	for _, slug := range KnownPages {
		page, err := s.GetPage(ownerUID, slug)
		if err != nil {
			return nil, err
		}
		if page.Published {
			published = append(published, slug)
		}
	}
	return published, nil
}

// GetSettings fetches a tenant's website settings, seeding defaults lazily.
func (s *WebsiteService) GetSettings(ownerUID string) (*db.WebsiteSetting, error) {
	var settings db.WebsiteSetting
	err := s.db.Where("owner_uid = ?", ownerUID).First(&settings).Error
	if err == nil {
		return &settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = db.WebsiteSetting{
		OwnerUID:       ownerUID,
		SiteName:       "Adventure Blog",
		Tagline:        "Exploring the world one adventure at a time",
		ColorPalette:   "default",
		PrimaryColor:   "#000000",
		SecondaryColor: "#8B4513",
		AccentColor:    "#FFFFFF",
	}
	if err := s.db.Create(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// SettingsInput represents fields accepted when updating website settings.
type SettingsInput struct {
	SiteName       string `json:"siteName"`
	Tagline        string `json:"tagline"`
	ColorPalette   string `json:"colorPalette"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	AccentColor    string `json:"accentColor"`
}

// UpdateSettings merges the provided fields into a tenant's settings.
func (s *WebsiteService) UpdateSettings(ownerUID string, input SettingsInput) (*db.WebsiteSetting, error) {
	if (input == SettingsInput{}) {
		return nil, ErrSettingMissing
	}

	settings, err := s.GetSettings(ownerUID)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(input.SiteName); v != "" {
		settings.SiteName = v
	}
	if v := strings.TrimSpace(input.Tagline); v != "" {
		settings.Tagline = v
	}
	if v := strings.TrimSpace(input.ColorPalette); v != "" {
		settings.ColorPalette = v
		if palette, ok := ColorPalettes()[v]; ok {
			settings.PrimaryColor = palette.Colors["primary"]
			settings.SecondaryColor = palette.Colors["secondary"]
			settings.AccentColor = palette.Colors["accent"]
		}
	}
	if v := strings.TrimSpace(input.PrimaryColor); v != "" {
		settings.PrimaryColor = v
	}
	if v := strings.TrimSpace(input.SecondaryColor); v != "" {
		settings.SecondaryColor = v
	}
	if v := strings.TrimSpace(input.AccentColor); v != "" {
		settings.AccentColor = v
	}

	if err := s.db.Save(settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// ColorPalettes 返回内置配色方案目录。
func ColorPalettes() map[string]ColorPalette {
	return map[string]ColorPalette{
		"default": {
			Name: "Classic",
			Colors: map[string]string{
				"primary":   "#000000",
				"secondary": "#8B4513",
				"accent":    "#FFFFFF",
			},
		},
		"modern": {
			Name: "Modern",
			Colors: map[string]string{
				"primary":   "#2D3748",
				"secondary": "#4A5568",
				"accent":    "#F7FAFC",
			},
		},
		"warm": {
			Name: "Warm",
			Colors: map[string]string{
				"primary":   "#744210",
				"secondary": "#B7791F",
				"accent":    "#FEF5E7",
			},
		},
		"cool": {
			Name: "Cool",
			Colors: map[string]string{
				"primary":   "#2C5282",
				"secondary": "#4C7AA7",
				"accent":    "#EBF8FF",
			},
		},
		"dark": {
			Name: "Dark",
			Colors: map[string]string{
				"primary":   "#FFFFFF",
				"secondary": "#CBD5E0",
				"accent":    "#1A202C",
			},
		},
	}
}

// defaultPage 构造每个页面的初始内容，首次读取时落库。
func defaultPage(ownerUID, slug string) db.WebsitePage {
	page := db.WebsitePage{
		OwnerUID:  ownerUID,
		Slug:      slug,
		Published: true,
	}

	switch slug {
	case "home":
		page.Title = "My Adventure Log"
		page.Sections = db.JSONMap{
			"hero": map[string]any{
				"title":    "Welcome to My Adventure Log",
				"subtitle": "Documenting my journeys and experiences",
				"text":     "Start your adventure and share your stories with the world.",
			},
			"features": map[string]any{
				"title": "What I Do",
				"items": []any{
					map[string]any{"title": "Adventure Logging", "description": "Track and share my adventures", "icon": "🚀"},
					map[string]any{"title": "Story Telling", "description": "Share experiences and memories", "icon": "📖"},
					map[string]any{"title": "Photo Journal", "description": "Visual journey through photos", "icon": "📷"},
				},
			},
			"recent": map[string]any{
				"title": "Recent Adventures",
				"posts": []any{},
			},
		}
	case "about":
		page.Title = "About Our Adventure"
		page.Sections = db.JSONMap{
			"hero": map[string]any{
				"title":    "About Us",
				"subtitle": "Discover the story behind this adventure log.",
			},
			"mission": map[string]any{
				"title":   "OUR MISSION",
				"heading": "Empowering Adventurers Worldwide",
				"points": []any{
					"Born from a passion for exploration and storytelling.",
					"Every journey deserves to be remembered and shared.",
				},
			},
		}
	case "gallery":
		page.Title = "Adventure Gallery"
		page.Sections = db.JSONMap{
			"images": []any{},
		}
	case "contact":
		page.Title = "Get In Touch"
		page.Sections = db.JSONMap{
			"hero": map[string]any{
				"title":    "Get In Touch",
				"subtitle": "We'd love to hear about your adventures",
			},
			"form": map[string]any{
				"title": "Let's Start a Conversation",
				"email": "hello@example.com",
			},
		}
	}

	return page
}
