package store

import (
	"strings"
	"testing"

	"lifeline-cli/internal/model"
)

func testStore(t *testing.T) Store {
	t.Helper()
	s := Store{Dir: t.TempDir()}
	if err := s.Ensure(); err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	return s
}

func strPtr(s string) *string { return &s }

func TestSaveLoadRoundTrip(t *testing.T) {
	s := testStore(t)

	db := emptyDB()
	db.Plan = model.PlanPremium
	db.Profile = model.Profile{Name: "Kim", Email: "kim@example.com", Birthdate: "1988-03-14"}

	cat, err := CreateCategory(db, "Work", "", "blue", "briefcase", "")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	ongoing, err := CreateEvent(db, EventInput{
		CategoryID:  cat.ID,
		Title:       "First job",
		Description: "Started as a **junior**.",
		StartDate:   "2010-06-01",
		Location:    "Oslo",
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	bounded, err := CreateEvent(db, EventInput{
		CategoryID: cat.ID,
		Title:      "Internship",
		StartDate:  "2009-06-01",
		EndDate:    strPtr("2009-08-31"),
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	if err := s.Save(db); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.Plan != model.PlanPremium {
		t.Fatalf("Plan = %q, want premium", got.Plan)
	}
	if got.Profile.Name != "Kim" || got.Profile.Birthdate != "1988-03-14" {
		t.Fatalf("Profile = %+v", got.Profile)
	}
	if len(got.Categories) != 1 || got.Categories[0].ID != cat.ID {
		t.Fatalf("Categories = %+v", got.Categories)
	}
	if len(got.Events) != 2 {
		t.Fatalf("Events = %+v", got.Events)
	}
	// Events come back sorted by start date.
	if got.Events[0].ID != bounded.ID || got.Events[1].ID != ongoing.ID {
		t.Fatalf("event order = %s, %s", got.Events[0].ID, got.Events[1].ID)
	}
	if got.Events[1].EndDate != nil {
		t.Fatalf("ongoing event came back with end date %q", *got.Events[1].EndDate)
	}
	if got.Events[0].EndDate == nil || *got.Events[0].EndDate != "2009-08-31" {
		t.Fatalf("bounded event end = %v", got.Events[0].EndDate)
	}
	if got.Events[1].Description != "Started as a **junior**." {
		t.Fatalf("description = %q", got.Events[1].Description)
	}
}

func TestLoadInitializesEmptyWorkspace(t *testing.T) {
	s := testStore(t)
	db, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if db.Plan != model.PlanFree {
		t.Fatalf("Plan = %q, want free", db.Plan)
	}
	if db.Categories == nil || db.Events == nil || db.Photos == nil {
		t.Fatalf("slices must be non-nil: %+v", db)
	}
}

func TestCreateCategorySlugsAndOrders(t *testing.T) {
	db := emptyDB()

	a, err := CreateCategory(db, "Side Projects", "", "purple", "", "")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if a.Slug != "side-projects" {
		t.Fatalf("slug = %q", a.Slug)
	}
	if a.DisplayOrder != 0 {
		t.Fatalf("order = %d", a.DisplayOrder)
	}

	b, err := CreateCategory(db, "Travel", "", "cyan", "", "")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	if b.DisplayOrder != 1 {
		t.Fatalf("order = %d", b.DisplayOrder)
	}

	if _, err := CreateCategory(db, "travel again", "travel", "", "", ""); err == nil {
		t.Fatal("duplicate slug accepted")
	}
	if _, err := CreateCategory(db, "   ", "", "", "", ""); err == nil {
		t.Fatal("empty name accepted")
	}
}

func TestDeleteCategoryBlockedWhileReferenced(t *testing.T) {
	db := emptyDB()
	cat, _ := CreateCategory(db, "Work", "", "blue", "", "")
	other, _ := CreateCategory(db, "Travel", "", "cyan", "", "")
	if _, err := CreateEvent(db, EventInput{CategoryID: cat.ID, Title: "Job", StartDate: "2020-01-01"}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	if err := DeleteCategory(db, cat.ID); err == nil {
		t.Fatal("deleted a category that still has events")
	}

	if err := DeleteCategory(db, other.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	// Remaining orders stay dense after a delete.
	for i, c := range db.Categories {
		if c.DisplayOrder != i {
			t.Fatalf("order[%d] = %d", i, c.DisplayOrder)
		}
	}
}

func TestApplyCategoryOrderRejectsPartialLists(t *testing.T) {
	db := emptyDB()
	a, _ := CreateCategory(db, "A", "", "", "", "")
	b, _ := CreateCategory(db, "B", "", "", "", "")
	c, _ := CreateCategory(db, "C", "", "", "", "")

	if err := ApplyCategoryOrder(db, []string{a.ID, b.ID}); err == nil {
		t.Fatal("short list accepted")
	}
	if err := ApplyCategoryOrder(db, []string{a.ID, a.ID, b.ID}); err == nil {
		t.Fatal("duplicate id accepted")
	}
	if err := ApplyCategoryOrder(db, []string{a.ID, b.ID, "cat-missing1"}); err == nil {
		t.Fatal("unknown id accepted")
	}
	// A rejected order leaves the original intact.
	if db.Categories[0].ID != a.ID || db.Categories[0].DisplayOrder != 0 {
		t.Fatalf("original order disturbed: %+v", db.Categories)
	}

	if err := ApplyCategoryOrder(db, []string{c.ID, a.ID, b.ID}); err != nil {
		t.Fatalf("ApplyCategoryOrder: %v", err)
	}
	gotIDs := []string{db.Categories[0].ID, db.Categories[1].ID, db.Categories[2].ID}
	if gotIDs[0] != c.ID || gotIDs[1] != a.ID || gotIDs[2] != b.ID {
		t.Fatalf("order = %v", gotIDs)
	}
	for i, cat := range db.Categories {
		if cat.DisplayOrder != i {
			t.Fatalf("order[%d] = %d", i, cat.DisplayOrder)
		}
	}
}

func TestEventValidation(t *testing.T) {
	db := emptyDB()
	cat, _ := CreateCategory(db, "Work", "", "blue", "", "")

	cases := []struct {
		name string
		in   EventInput
	}{
		{"missing title", EventInput{CategoryID: cat.ID, StartDate: "2020-01-01"}},
		{"unknown category", EventInput{CategoryID: "cat-nope0000", Title: "x", StartDate: "2020-01-01"}},
		{"bad start", EventInput{CategoryID: cat.ID, Title: "x", StartDate: "Jan 1 2020"}},
		{"bad end", EventInput{CategoryID: cat.ID, Title: "x", StartDate: "2020-01-01", EndDate: strPtr("soon")}},
		{"end before start", EventInput{CategoryID: cat.ID, Title: "x", StartDate: "2020-06-01", EndDate: strPtr("2020-05-01")}},
	}
	for _, tc := range cases {
		if _, err := CreateEvent(db, tc.in); err == nil {
			t.Fatalf("%s: accepted", tc.name)
		}
	}

	// Blank end strings normalize to ongoing.
	ev, err := CreateEvent(db, EventInput{CategoryID: cat.ID, Title: "x", StartDate: "2020-01-01", EndDate: strPtr("  ")})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if ev.EndDate != nil {
		t.Fatalf("blank end kept: %q", *ev.EndDate)
	}
}

func TestDeleteEventPrunesPhotos(t *testing.T) {
	db := emptyDB()
	cat, _ := CreateCategory(db, "Travel", "", "cyan", "", "")
	ev, _ := CreateEvent(db, EventInput{CategoryID: cat.ID, Title: "Trip", StartDate: "2021-07-01"})
	keep, _ := CreateEvent(db, EventInput{CategoryID: cat.ID, Title: "Other", StartDate: "2022-07-01"})

	db.Photos = append(db.Photos,
		model.Photo{ID: "photo-a", EventID: ev.ID, Path: "photos/a.jpg"},
		model.Photo{ID: "photo-b", EventID: keep.ID, Path: "photos/b.jpg"},
	)

	if err := DeleteEvent(db, ev.ID); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if len(db.Photos) != 1 || db.Photos[0].ID != "photo-b" {
		t.Fatalf("photos = %+v", db.Photos)
	}
}

func TestSeedDefaultCategories(t *testing.T) {
	db := emptyDB()
	if err := SeedDefaultCategories(db); err != nil {
		t.Fatalf("SeedDefaultCategories: %v", err)
	}
	if len(db.Categories) != 5 {
		t.Fatalf("seeded %d categories", len(db.Categories))
	}
	if db.Categories[0].Slug != "work" || db.Categories[4].Slug != "relationship" {
		t.Fatalf("slugs = %v", db.Categories)
	}
	for _, c := range db.Categories {
		if !strings.HasPrefix(c.ID, "cat-") {
			t.Fatalf("id = %q", c.ID)
		}
	}

	// Seeding is a no-op once categories exist.
	if err := SeedDefaultCategories(db); err != nil {
		t.Fatalf("SeedDefaultCategories: %v", err)
	}
	if len(db.Categories) != 5 {
		t.Fatalf("reseeded to %d categories", len(db.Categories))
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Side Projects":   "side-projects",
		"  Music & Art  ": "music-art",
		"2024 Goals":      "2024-goals",
		"---":             "",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Fatalf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeWorkspaceName(t *testing.T) {
	if _, err := NormalizeWorkspaceName("My Space"); err == nil {
		t.Fatal("space accepted")
	}
	got, err := NormalizeWorkspaceName("  Personal-1  ")
	if err != nil {
		t.Fatalf("NormalizeWorkspaceName: %v", err)
	}
	if got != "personal-1" {
		t.Fatalf("got %q", got)
	}
}
