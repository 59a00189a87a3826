package handler

import (
	"github.com/gin-gonic/gin"
)

// Register mounts every route on r. submitLimiter guards POST /submit.
func (h *Handler) Register(r *gin.Engine, submitLimiter *RateLimiter) {
	r.GET("/healthz", h.Healthz)

	r.POST("/submit", RateLimit(submitLimiter, h.rateLimited), h.Submit)
	r.GET("/download_pdf/:id", h.DownloadPDF)
	r.GET("/artifacts/:name", h.GetArtifact)
	r.GET("/api/petugas", h.ListOfficers)

	admin := r.Group("/admin")
	admin.POST("/login", h.Login)
	admin.POST("/logout", h.Logout)

	protected := admin.Group("")
	protected.Use(h.RequireAdmin())
	protected.GET("/laporan", h.ListReports)
	protected.GET("/feed", h.ServeFeed)
}
