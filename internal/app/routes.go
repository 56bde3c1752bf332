package app

import (
	"github.com/gin-gonic/gin"
	"github.com/inkwell-notes/core/internal/middleware"
	"github.com/inkwell-notes/core/internal/modules/ai"
	"github.com/inkwell-notes/core/internal/modules/auth"
	"github.com/inkwell-notes/core/internal/modules/note"
	pkgredis "github.com/inkwell-notes/core/internal/pkg/redis"
	"github.com/inkwell-notes/core/internal/pkg/response"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.Use(middleware.RateLimit(db, rc.Raw()))

	// Avatars and other uploaded assets.
	r.Static("/static", a.cfg.StaticDir)

	root := r.Group("")

	authSvc := auth.NewService(db, a.cfg.StaticDir, a.logger)
	auth.NewHandler(db, authSvc, a.cfg.OAuth, a.logger).RegisterRoutes(root, authMW)

	note.NewHandler(note.NewService(db), a.logger).RegisterRoutes(root, authMW)

	aiSvc := ai.NewService(a.cfg.AI, a.logger)
	ai.NewHandler(aiSvc, a.logger).RegisterRoutes(root, authMW)
}
