package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-notes/core/internal/pkg/response"
	"gorm.io/gorm"
)

const (
	DefaultPage = 1
	DefaultSize = 10
	MaxSize     = 100
)

// Query is a validated page request.
type Query struct {
	Page int
	Size int
}

// FromContext reads ?page= and ?size=. Unparsable or non-positive values
// fall back to the defaults; size is capped at MaxSize.
func FromContext(c *gin.Context) Query {
	q := Query{
		Page: atoiOr(c.Query("page"), DefaultPage),
		Size: atoiOr(c.Query("size"), DefaultSize),
	}
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Size < 1 {
		q.Size = DefaultSize
	}
	if q.Size > MaxSize {
		q.Size = MaxSize
	}
	return q
}

func (q Query) offset() int { return (q.Page - 1) * q.Size }

// meta derives the listing metadata for a total row count.
func (q Query) meta(total int64) response.Pagination {
	pages := int((total + int64(q.Size) - 1) / int64(q.Size))
	return response.Pagination{
		Total:       total,
		CurrentPage: q.Page,
		TotalPage:   pages,
		Size:        q.Size,
		HasNextPage: q.Page < pages,
	}
}

// NewestFirst orders a listing by creation time descending, the order the
// dashboard presents notes in.
func NewestFirst(tx *gorm.DB) *gorm.DB {
	return tx.Order("created_at DESC")
}

// Paginate counts the listing, loads one page into dest and returns the
// page metadata.
func Paginate[T any](tx *gorm.DB, q Query, dest *[]T) (response.Pagination, error) {
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return response.Pagination{}, err
	}
	if err := tx.Offset(q.offset()).Limit(q.Size).Find(dest).Error; err != nil {
		return response.Pagination{}, err
	}
	return q.meta(total), nil
}

func atoiOr(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
