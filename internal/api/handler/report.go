package handler

import (
	"errors"
	"fmt"
	"laporantdx/backend/internal/artifact"
	"laporantdx/backend/internal/storage"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// DownloadPDF serves the stored document for a report, rendering it when no
// artifact exists yet.
func (h *Handler) DownloadPDF(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.notFound(c)
		return
	}
	reportID := uint(id)

	if data, err := h.Artifacts.Load(artifact.Name(reportID)); err == nil {
		h.servePDF(c, reportID, data)
		return
	} else if !errors.Is(err, artifact.ErrNotFound) {
		h.log.Warn("artifact read failed, re-rendering", "report_id", reportID, "error", err)
	}

	report, err := h.Storage.GetReport(c.Request.Context(), reportID)
	if errors.Is(err, storage.ErrReportNotFound) {
		h.notFound(c)
		return
	}
	if err != nil {
		h.log.Error("report read failed", "report_id", reportID, "error", err)
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	data, err := h.Renderer.Render(report)
	if err != nil {
		h.log.Error("report render failed", "report_id", reportID, "error", err)
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	if _, err := h.Artifacts.Save(reportID, data); err != nil {
		h.log.Warn("artifact save failed", "report_id", reportID, "error", err)
	}
	h.servePDF(c, reportID, data)
}

// GetArtifact serves a previously rendered document by its canonical name.
func (h *Handler) GetArtifact(c *gin.Context) {
	name := c.Param("name")
	data, err := h.Artifacts.Load(name)
	if errors.Is(err, artifact.ErrNotFound) {
		h.notFound(c)
		return
	}
	if err != nil {
		h.log.Error("artifact read failed", "name", name, "error", err)
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, name))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *Handler) servePDF(c *gin.Context, id uint, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="laporan_%d.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", data)
}

func (h *Handler) notFound(c *gin.Context) {
	c.String(http.StatusNotFound, h.text(c, "report_not_found"))
}

// ListOfficers returns the directory entries for one role ("jenis").
func (h *Handler) ListOfficers(c *gin.Context) {
	officers, err := h.Storage.ListOfficers(c.Request.Context(), c.Query("jenis"))
	if err != nil {
		h.log.Error("officer list failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load officers"})
		return
	}
	c.JSON(http.StatusOK, officers)
}
