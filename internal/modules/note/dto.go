package note

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/inkwell-notes/core/internal/models"
)

// NotePayload is the create/update request body.
type NotePayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Validate enforces the note form rules: title at least 2 runes, content
// at least 10.
func (p NotePayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, validation.RuneLength(2, 255)),
		validation.Field(&p.Content, validation.Required, validation.RuneLength(10, 0)),
	)
}

type noteResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Slug     string `json:"slug"`
	Created  string `json:"created"`
	Modified string `json:"modified"`
}

func toResponse(n *models.NoteModel) noteResponse {
	return noteResponse{
		ID:       n.ID,
		Title:    n.Title,
		Content:  n.Content,
		Slug:     n.Slug,
		Created:  n.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Modified: n.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
