package note

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inkwell-notes/core/internal/models"
	"github.com/inkwell-notes/core/internal/pkg/pagination"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "notes.db")), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.UserModel{}, &models.NoteModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCreateSameTitleGetsDistinctSlugs(t *testing.T) {
	svc := NewService(newTestDB(t))

	payload := &NotePayload{Title: "My Note", Content: "some content long enough"}
	first, err := svc.Create("owner-1", payload)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	second, err := svc.Create("owner-1", payload)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}

	if first.Slug == second.Slug {
		t.Fatalf("expected distinct slugs, both are %q", first.Slug)
	}
	for _, n := range []*models.NoteModel{first, second} {
		if !strings.HasPrefix(n.Slug, "my-note-") {
			t.Errorf("slug %q does not carry the slugified title prefix", n.Slug)
		}
	}
}

func TestUpdateNeverChangesSlug(t *testing.T) {
	svc := NewService(newTestDB(t))

	created, err := svc.Create("owner-1", &NotePayload{Title: "Shopping List", Content: "milk, eggs, coffee"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update("owner-1", created.Slug, &NotePayload{Title: "Completely New Title", Content: "rewritten body of the note"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated == nil {
		t.Fatal("update returned nil note")
	}
	if updated.Slug != created.Slug {
		t.Fatalf("slug changed on update: %q -> %q", created.Slug, updated.Slug)
	}
	if updated.Title != "Completely New Title" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
}

func TestGetBySlugScopedToOwner(t *testing.T) {
	svc := NewService(newTestDB(t))

	created, err := svc.Create("owner-1", &NotePayload{Title: "Private", Content: "not for other eyes"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetBySlug("owner-2", created.Slug)
	if err != nil {
		t.Fatalf("get as other owner: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for foreign owner, got note %q", got.Slug)
	}

	got, err = svc.GetBySlug("owner-1", created.Slug)
	if err != nil {
		t.Fatalf("get as owner: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Fatal("owner could not read own note")
	}
}

func TestDeleteUnknownSlugReportsNotFound(t *testing.T) {
	svc := NewService(newTestDB(t))

	err := svc.Delete("owner-1", "no-such-slug")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestDeleteScopedToOwner(t *testing.T) {
	svc := NewService(newTestDB(t))

	created, err := svc.Create("owner-1", &NotePayload{Title: "Keep Me", Content: "should survive foreign delete"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete("owner-2", created.Slug); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("foreign delete expected not found, got %v", err)
	}

	got, err := svc.GetBySlug("owner-1", created.Slug)
	if err != nil || got == nil {
		t.Fatalf("note vanished after foreign delete attempt: note=%v err=%v", got, err)
	}

	if err := svc.Delete("owner-1", created.Slug); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	got, err = svc.GetBySlug("owner-1", created.Slug)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Fatal("note still readable after delete")
	}
}

func TestListByOwnerNewestFirst(t *testing.T) {
	svc := NewService(newTestDB(t))

	titles := []string{"First Note", "Second Note", "Third Note"}
	for _, title := range titles {
		if _, err := svc.Create("owner-1", &NotePayload{Title: title, Content: "content for " + title}); err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
	}
	if _, err := svc.Create("owner-2", &NotePayload{Title: "Foreign", Content: "someone else's note"}); err != nil {
		t.Fatalf("create foreign: %v", err)
	}

	notes, pag, err := svc.ListByOwner("owner-1", pagination.Query{Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(notes))
	}
	if pag.Total != 3 {
		t.Fatalf("expected total 3, got %d", pag.Total)
	}
	for _, n := range notes {
		if n.OwnerID != "owner-1" {
			t.Fatalf("foreign note leaked into listing: %q", n.Title)
		}
	}
}
