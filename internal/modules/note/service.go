package note

import (
	"errors"
	"fmt"
	"strings"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/inkwell-notes/core/internal/models"
	"github.com/inkwell-notes/core/internal/pkg/pagination"
	"github.com/inkwell-notes/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListByOwner returns one page of the owner's notes, newest first.
func (s *Service) ListByOwner(ownerID string, q pagination.Query) ([]models.NoteModel, response.Pagination, error) {
	tx := pagination.NewestFirst(
		s.db.Model(&models.NoteModel{}).Where("owner_id = ?", ownerID),
	)

	var notes []models.NoteModel
	pag, err := pagination.Paginate(tx, q, &notes)
	return notes, pag, err
}

// GetBySlug returns the owner's note, or nil when it does not exist.
// Scoping by owner prevents cross-account reads through guessed slugs.
func (s *Service) GetBySlug(ownerID, slug string) (*models.NoteModel, error) {
	var note models.NoteModel
	if err := s.db.Where("slug = ? AND owner_id = ?", slug, ownerID).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

// Create inserts a note with a generated slug. The uniqueness token makes
// collisions rare; on a duplicate-key insert the token is regenerated.
func (s *Service) Create(ownerID string, p *NotePayload) (*models.NoteModel, error) {
	const maxCreateRetries = 5
	for i := 0; i < maxCreateRetries; i++ {
		note := models.NoteModel{
			OwnerID: ownerID,
			Title:   p.Title,
			Content: p.Content,
			Slug:    newSlug(p.Title),
		}
		if err := s.db.Create(&note).Error; err != nil {
			if isDuplicateSlugError(err) && i < maxCreateRetries-1 {
				continue
			}
			return nil, err
		}
		return &note, nil
	}
	return nil, fmt.Errorf("failed to allocate note slug after retries")
}

// Update overwrites title and content, last write wins. The slug never changes.
func (s *Service) Update(ownerID, slug string, p *NotePayload) (*models.NoteModel, error) {
	note, err := s.GetBySlug(ownerID, slug)
	if err != nil || note == nil {
		return note, err
	}

	if err := s.db.Model(note).Updates(map[string]interface{}{
		"title":   p.Title,
		"content": p.Content,
	}).Error; err != nil {
		return nil, err
	}
	return note, nil
}

// Delete removes the owner's note. Returns gorm.ErrRecordNotFound for an
// unknown slug; notes are hard-deleted.
func (s *Service) Delete(ownerID, slug string) error {
	res := s.db.Where("slug = ? AND owner_id = ?", slug, ownerID).Delete(&models.NoteModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func isDuplicateSlugError(err error) bool {
	var mysqlErr *mysqlDriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062 && strings.Contains(mysqlErr.Message, "slug")
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique constraint failed") && strings.Contains(msg, "slug") {
		return true
	}
	return strings.Contains(msg, "duplicate entry") && strings.Contains(msg, "slug")
}
