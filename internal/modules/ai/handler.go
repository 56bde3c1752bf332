package ai

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkwell-notes/core/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	svc *Service
	log *zap.Logger
}

func NewHandler(svc *Service, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/notes/summarize", authMW, h.summarize)
}

type summarizePayload struct {
	Content string `json:"content"`
}

// POST /notes/summarize
//
// Relays the upstream model stream as an incrementally flushed body. Once
// the first fragment is written the response is committed; a mid-flight
// upstream failure truncates the stream and the client must treat the
// result as a failed enhancement.
func (h *Handler) summarize(c *gin.Context) {
	var p summarizePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	// Stream headers are committed together with the first fragment so that
	// failures before any output can still produce a plain error response.
	wrote := false
	_, err := h.svc.Stream(c.Request.Context(), p.Content, func(token string) error {
		if !wrote {
			c.Header("Content-Type", "text/event-stream")
			c.Header("Cache-Control", "no-cache")
			c.Header("Connection", "keep-alive")
			c.Header("X-Accel-Buffering", "no")
			c.Status(http.StatusOK)
		}
		if _, werr := c.Writer.WriteString(token); werr != nil {
			return werr
		}
		c.Writer.Flush()
		wrote = true
		return nil
	})
	if err == nil {
		if !wrote {
			// Upstream produced nothing at all; the client sees an empty result.
			c.Status(http.StatusOK)
		}
		return
	}

	if !wrote {
		switch {
		case errors.Is(err, ErrContentTooShort):
			response.UnprocessableEntity(c, err.Error())
		case errors.Is(err, ErrNoProvider):
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"ok": 0, "code": http.StatusServiceUnavailable, "message": err.Error(),
			})
		default:
			// Unreachable/unauthorized upstream: terminate before any content.
			h.log.Warn("summary stream failed before first fragment", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{
				"ok": 0, "code": http.StatusBadGateway, "message": "failed to summarize",
			})
		}
		return
	}

	// Mid-flight failure: the stream is already committed, so it simply ends
	// truncated. No retry, nothing persisted.
	h.log.Warn("summary stream ended early", zap.Error(err))
}
