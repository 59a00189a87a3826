// Package handler exposes the report service over HTTP.
package handler

import (
	"context"
	"laporantdx/backend/internal/feed"
	"laporantdx/backend/internal/localization"
	"laporantdx/backend/internal/logger"
	"laporantdx/backend/internal/models"
	"laporantdx/backend/internal/storage"
	"laporantdx/backend/internal/submission"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Submitter interface {
	Submit(ctx context.Context, sub submission.Submission) (*submission.Result, error)
}

type ReportRenderer interface {
	Render(r *models.Report) ([]byte, error)
}

type ArtifactStore interface {
	Load(name string) ([]byte, error)
	Save(id uint, data []byte) (string, error)
}

// Pinger reports backend health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the collaborators the handlers are built from.
type Dependencies struct {
	Submissions   Submitter
	Storage       storage.Storage
	Renderer      ReportRenderer
	Artifacts     ArtifactStore
	Hub           *feed.Hub
	Localizer     *localization.Localizer
	Health        Pinger
	SessionSecret []byte
	SecureCookies bool
	Log           *logger.Logger
}

type Handler struct {
	Submissions   Submitter
	Storage       storage.Storage
	Renderer      ReportRenderer
	Artifacts     ArtifactStore
	Hub           *feed.Hub
	Localizer     *localization.Localizer
	health        Pinger
	sessionSecret []byte
	secureCookies bool
	log           *logger.Logger
}

func NewHandler(d Dependencies) *Handler {
	return &Handler{
		Submissions:   d.Submissions,
		Storage:       d.Storage,
		Renderer:      d.Renderer,
		Artifacts:     d.Artifacts,
		Hub:           d.Hub,
		Localizer:     d.Localizer,
		health:        d.Health,
		sessionSecret: d.SessionSecret,
		secureCookies: d.SecureCookies,
		log:           d.Log.With("component", "http"),
	}
}

// lang picks the response language from Accept-Language.
func (h *Handler) lang(c *gin.Context) string {
	return h.Localizer.Language(c.GetHeader("Accept-Language"))
}

func (h *Handler) text(c *gin.Context, key string, args ...interface{}) string {
	if len(args) == 0 {
		return h.Localizer.GetString(h.lang(c), key)
	}
	return h.Localizer.Format(h.lang(c), key, args...)
}

// Healthz answers "ok" when the database and Redis respond.
func (h *Handler) Healthz(c *gin.Context) {
	if h.health != nil {
		if err := h.health.Ping(c.Request.Context()); err != nil {
			h.log.Warn("health check failed", "error", err)
			c.String(http.StatusServiceUnavailable, "unavailable")
			return
		}
	}
	c.String(http.StatusOK, "ok")
}
