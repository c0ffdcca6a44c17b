package service

import (
	"testing"

	"github.com/wanderlog/internal/db"
)

func TestGetPageSeedsDefaults(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewWebsiteService(gdb)

	page, err := svc.GetPage("tenant-site", "home")
	if err != nil {
		t.Fatalf("failed to get home page: %v", err)
	}
	if page.Title != "My Adventure Log" || !page.Published {
		t.Fatalf("unexpected default home page: %+v", page)
	}
	if _, ok := page.Sections["hero"]; !ok {
		t.Fatalf("default home page missing hero section")
	}

	// 第二次读取返回同一条记录而不是再次落库
	again, err := svc.GetPage("tenant-site", "home")
	if err != nil {
		t.Fatalf("second read failed: %v", err)
	}
	if again.ID != page.ID {
		t.Fatalf("expected same row, got ids %d and %d", page.ID, again.ID)
	}

	if _, err := svc.GetPage("tenant-site", "pricing"); err != ErrPageUnknown {
		t.Fatalf("expected ErrPageUnknown for bad slug, got %v", err)
	}
}

func TestUpdatePageMergesSections(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewWebsiteService(gdb)

	_, err := svc.UpdatePage("tenant-merge", "home", "New Title", db.JSONMap{
		"hero": map[string]any{"title": "Updated"},
	})
	if err != nil {
		t.Fatalf("failed to update page: %v", err)
	}

	page, err := svc.GetPage("tenant-merge", "home")
	if err != nil {
		t.Fatalf("failed to reload page: %v", err)
	}
	if page.Title != "New Title" {
		t.Fatalf("expected updated title, got %q", page.Title)
	}
	// 浅合并只替换提交的分区，其余分区保留
	if _, ok := page.Sections["features"]; !ok {
		t.Fatalf("merge dropped untouched section")
	}
	hero, ok := page.Sections["hero"].(map[string]any)
	if !ok || hero["title"] != "Updated" {
		t.Fatalf("hero section not replaced: %+v", page.Sections["hero"])
	}
}

func TestTogglePublishAndPublishedPages(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewWebsiteService(gdb)

	if _, err := svc.TogglePublish("tenant-pub", "gallery", false); err != nil {
		t.Fatalf("failed to unpublish: %v", err)
	}

	published, err := svc.PublishedPages("tenant-pub")
	if err != nil {
		t.Fatalf("failed to list published pages: %v", err)
	}

	want := []string{"home", "about", "contact"}
	if len(published) != len(want) {
		t.Fatalf("expected %v, got %v", want, published)
	}
	for i := range want {
		if published[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, published)
		}
	}
}

func TestUpdateSettingsPaletteSelection(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewWebsiteService(gdb)

	settings, err := svc.GetSettings("tenant-colors")
	if err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}
	if settings.ColorPalette != "default" || settings.SiteName != "Adventure Blog" {
		t.Fatalf("unexpected default settings: %+v", settings)
	}

	updated, err := svc.UpdateSettings("tenant-colors", SettingsInput{ColorPalette: "dark"})
	if err != nil {
		t.Fatalf("failed to update settings: %v", err)
	}

	dark := ColorPalettes()["dark"]
	if updated.PrimaryColor != dark.Colors["primary"] ||
		updated.SecondaryColor != dark.Colors["secondary"] ||
		updated.AccentColor != dark.Colors["accent"] {
		t.Fatalf("palette colors not applied: %+v", updated)
	}

	// 显式颜色覆盖已选方案
	updated, err = svc.UpdateSettings("tenant-colors", SettingsInput{PrimaryColor: "#123456"})
	if err != nil {
		t.Fatalf("failed to override color: %v", err)
	}
	if updated.PrimaryColor != "#123456" {
		t.Fatalf("expected explicit primary color, got %q", updated.PrimaryColor)
	}

	if _, err := svc.UpdateSettings("tenant-colors", SettingsInput{}); err != ErrSettingMissing {
		t.Fatalf("expected ErrSettingMissing for empty payload, got %v", err)
	}
}
