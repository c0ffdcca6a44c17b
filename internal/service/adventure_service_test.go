package service

import (
	"errors"
	"testing"
	"time"
)

func TestCreateAdventureValidation(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewAdventureService(gdb)
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

	valid := AdventureInput{
		Title:   "Hiking the Alps",
		Excerpt: "Three days above the clouds",
		Content: "# Day one\nWe started early.",
		Image:   "https://media.example/alps.jpg",
	}

	adventure, err := svc.Create("tenant-adv", valid, now)
	if err != nil {
		t.Fatalf("valid create failed: %v", err)
	}
	if adventure.Date != "2024-04-01" {
		t.Fatalf("expected date default to today, got %q", adventure.Date)
	}
	if !adventure.Published {
		t.Fatalf("expected published by default")
	}

	missing := valid
	missing.Title = ""
	if _, err := svc.Create("tenant-adv", missing, now); !errors.Is(err, ErrAdventureInvalid) {
		t.Fatalf("expected ErrAdventureInvalid for missing title, got %v", err)
	}

	badDate := valid
	badDate.Date = "01/04/2024"
	if _, err := svc.Create("tenant-adv", badDate, now); !errors.Is(err, ErrAdventureDate) {
		t.Fatalf("expected ErrAdventureDate, got %v", err)
	}
}

func TestListAdventuresOrdering(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewAdventureService(gdb)
	now := time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC)

	dates := []string{"2024-04-01", "2024-04-05", "2024-04-03"}
	for _, date := range dates {
		input := AdventureInput{
			Title:   "Trip " + date,
			Excerpt: "excerpt",
			Image:   "https://media.example/img.jpg",
			Date:    date,
		}
		if _, err := svc.Create("tenant-order", input, now); err != nil {
			t.Fatalf("create %s failed: %v", date, err)
		}
	}

	adventures, err := svc.List("tenant-order", 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(adventures) != 3 {
		t.Fatalf("expected 3 adventures, got %d", len(adventures))
	}

	want := []string{"2024-04-05", "2024-04-03", "2024-04-01"}
	for i, adventure := range adventures {
		if adventure.Date != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], adventure.Date)
		}
	}
}

func TestListPublishedFiltersDrafts(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewAdventureService(gdb)
	now := time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC)

	draft := false
	inputs := []AdventureInput{
		{Title: "Public trip", Excerpt: "e", Image: "https://media.example/a.jpg"},
		{Title: "Draft trip", Excerpt: "e", Image: "https://media.example/b.jpg", Published: &draft},
	}
	for _, input := range inputs {
		if _, err := svc.Create("tenant-drafts", input, now); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	published, err := svc.ListPublished("tenant-drafts", 0)
	if err != nil {
		t.Fatalf("list published failed: %v", err)
	}
	if len(published) != 1 || published[0].Title != "Public trip" {
		t.Fatalf("expected only the public trip, got %+v", published)
	}

	// 草稿标记必须原样落库，不能被列默认值改写
	all, err := svc.List("tenant-drafts", 0)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, adventure := range all {
		if adventure.Title == "Draft trip" && adventure.Published {
			t.Fatalf("draft stored as published: %+v", adventure)
		}
	}
}

func TestUpdateAdventureMerges(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewAdventureService(gdb)
	now := time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC)

	adventure, err := svc.Create("tenant-update", AdventureInput{
		Title:    "Original",
		Excerpt:  "Original excerpt",
		Image:    "https://media.example/a.jpg",
		Location: "Chamonix",
	}, now)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	unpublish := false
	updated, err := svc.Update("tenant-update", adventure.ID, AdventureInput{
		Title:     "Renamed",
		Tags:      []string{"alps", "snow"},
		Published: &unpublish,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Title != "Renamed" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if updated.Excerpt != "Original excerpt" || updated.Location != "Chamonix" {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
	if len(updated.Tags) != 2 || updated.Published {
		t.Fatalf("tags or publish flag not applied: %+v", updated)
	}
}

func TestDeleteAdventureScopedToTenant(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewAdventureService(gdb)
	now := time.Date(2024, 4, 10, 12, 0, 0, 0, time.UTC)

	adventure, err := svc.Create("tenant-a", AdventureInput{
		Title:   "Mine",
		Excerpt: "e",
		Image:   "https://media.example/a.jpg",
	}, now)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// 其他租户无法删除
	if err := svc.Delete("tenant-b", adventure.ID); !errors.Is(err, ErrAdventureNotFound) {
		t.Fatalf("expected ErrAdventureNotFound for foreign tenant, got %v", err)
	}

	if err := svc.Delete("tenant-a", adventure.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, err := svc.Get("tenant-a", adventure.ID); !errors.Is(err, ErrAdventureNotFound) {
		t.Fatalf("expected adventure gone, got %v", err)
	}
}
