package note

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-notes/core/internal/middleware"
	"github.com/inkwell-notes/core/internal/pkg/pagination"
	"github.com/inkwell-notes/core/internal/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/dashboard", authMW, h.dashboard)

	notes := rg.Group("/notes", authMW)
	notes.GET("/export-raw", h.exportRaw)
	notes.POST("", h.create)
	notes.GET("/:slug", h.getBySlug)
	notes.PUT("/:slug", h.update)
	notes.DELETE("/:slug", h.delete)
}

// GET /dashboard
func (h *Handler) dashboard(c *gin.Context) {
	q := pagination.FromContext(c)
	notes, pag, err := h.svc.ListByOwner(middleware.CurrentUserID(c), q)
	if err != nil {
		h.log.Error("list notes", zap.Error(err))
		response.InternalError(c)
		return
	}
	items := make([]noteResponse, len(notes))
	for i, n := range notes {
		items[i] = toResponse(&n)
	}
	response.Paged(c, items, pag)
}

// POST /notes
func (h *Handler) create(c *gin.Context) {
	var p NotePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := p.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	note, err := h.svc.Create(middleware.CurrentUserID(c), &p)
	if err != nil {
		h.log.Error("create note", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.Created(c, toResponse(note))
}

// GET /notes/:slug
func (h *Handler) getBySlug(c *gin.Context) {
	note, err := h.svc.GetBySlug(middleware.CurrentUserID(c), c.Param("slug"))
	if err != nil {
		h.log.Error("fetch note", zap.Error(err))
		response.InternalError(c)
		return
	}
	if note == nil {
		response.NotFoundMsg(c, "note not found")
		return
	}
	response.OK(c, toResponse(note))
}

// PUT /notes/:slug
func (h *Handler) update(c *gin.Context) {
	var p NotePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := p.Validate(); err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	note, err := h.svc.Update(middleware.CurrentUserID(c), c.Param("slug"), &p)
	if err != nil {
		h.log.Error("update note", zap.Error(err))
		response.InternalError(c)
		return
	}
	if note == nil {
		response.NotFoundMsg(c, "note not found")
		return
	}
	response.OK(c, toResponse(note))
}

// DELETE /notes/:slug
func (h *Handler) delete(c *gin.Context) {
	err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFoundMsg(c, "note not found")
			return
		}
		h.log.Error("delete note", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.NoContent(c)
}
