package pagination

import (
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func queryFor(t *testing.T, rawQuery string) Query {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/dashboard?"+rawQuery, nil)
	return FromContext(c)
}

func TestFromContext(t *testing.T) {
	cases := []struct {
		raw  string
		want Query
	}{
		{"", Query{Page: 1, Size: 10}},
		{"page=3&size=25", Query{Page: 3, Size: 25}},
		{"page=0&size=0", Query{Page: 1, Size: 10}},
		{"page=-2&size=-5", Query{Page: 1, Size: 10}},
		{"page=abc&size=xyz", Query{Page: 1, Size: 10}},
		{"size=500", Query{Page: 1, Size: 100}},
	}
	for _, tc := range cases {
		if got := queryFor(t, tc.raw); got != tc.want {
			t.Errorf("FromContext(%q) = %+v, want %+v", tc.raw, got, tc.want)
		}
	}
}

type entry struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	Name      string
}

func seededDB(t *testing.T, n int) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "pages.db")), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		row := entry{Name: fmt.Sprintf("row-%d", i), CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return db
}

func TestPaginateMetadata(t *testing.T) {
	db := seededDB(t, 25)

	var rows []entry
	pag, err := Paginate(db.Model(&entry{}), Query{Page: 2, Size: 10}, &rows)
	if err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if len(rows) != 10 {
		t.Fatalf("page 2 has %d rows", len(rows))
	}
	if pag.Total != 25 || pag.TotalPage != 3 || pag.CurrentPage != 2 || !pag.HasNextPage {
		t.Fatalf("metadata = %+v", pag)
	}

	rows = nil
	pag, err = Paginate(db.Model(&entry{}), Query{Page: 3, Size: 10}, &rows)
	if err != nil {
		t.Fatalf("paginate last page: %v", err)
	}
	if len(rows) != 5 || pag.HasNextPage {
		t.Fatalf("last page: rows=%d metadata=%+v", len(rows), pag)
	}
}

func TestNewestFirstOrdering(t *testing.T) {
	db := seededDB(t, 5)

	var rows []entry
	if _, err := Paginate(NewestFirst(db.Model(&entry{})), Query{Page: 1, Size: 10}, &rows); err != nil {
		t.Fatalf("paginate: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("got %d rows", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].CreatedAt.After(rows[i-1].CreatedAt) {
			t.Fatalf("rows not newest first: %v after %v", rows[i].CreatedAt, rows[i-1].CreatedAt)
		}
	}
	if rows[0].Name != "row-4" {
		t.Fatalf("first row = %q, want the newest", rows[0].Name)
	}
}
