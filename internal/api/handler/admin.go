package handler

import (
	"errors"
	"laporantdx/backend/internal/config"
	"laporantdx/backend/internal/models"
	"laporantdx/backend/internal/storage"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// Login checks admin credentials and starts a session.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": h.text(c, "login_failed")})
		return
	}

	admin, err := h.Storage.GetAdminByUsername(c.Request.Context(), req.Username)
	if err != nil && !errors.Is(err, storage.ErrAdminNotFound) {
		h.log.Error("admin lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": http.StatusText(http.StatusInternalServerError)})
		return
	}
	if admin == nil || !admin.CheckPassword(req.Password) {
		h.log.Warn("admin login rejected", "username", req.Username, "client_ip", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": h.text(c, "login_failed")})
		return
	}

	sid, err := h.Storage.CreateSession(c.Request.Context(), admin.ID)
	if err != nil {
		h.log.Error("session create failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": http.StatusText(http.StatusInternalServerError)})
		return
	}
	token, err := h.generateJWT(sid, admin.ID, time.Now())
	if err != nil {
		h.log.Error("session token signing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": http.StatusText(http.StatusInternalServerError)})
		return
	}

	h.setSessionCookie(c, token, int(config.SessionTTL/time.Second))
	h.log.Info("admin logged in", "admin_id", admin.ID)
	c.JSON(http.StatusOK, gin.H{
		"status":       "success",
		"message":      h.text(c, "login_success"),
		"username":     admin.Username,
		"display_name": admin.DisplayName,
	})
}

// Logout ends the current session, if any, and clears the cookie.
func (h *Handler) Logout(c *gin.Context) {
	if token := extractToken(c); token != "" {
		if sid, _, err := h.parseJWT(token); err == nil {
			if err := h.Storage.DeleteSession(c.Request.Context(), sid); err != nil {
				h.log.Warn("session delete failed", "error", err)
			}
		}
	}
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": h.text(c, "logout_success")})
}

type reportItem struct {
	models.Report
	Tanggal      string `json:"tanggal"`
	TimestampWIB string `json:"timestamp_wib"`
}

type listResponse struct {
	Items  []reportItem `json:"items"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

// ListReports is the admin listing, filterable by time-window token.
func (h *Handler) ListReports(c *gin.Context) {
	filter := storage.ListFilter{
		Waktu:  c.Query("waktu"),
		Limit:  queryInt(c, "limit", config.ListDefaultLimit),
		Offset: queryInt(c, "offset", 0),
	}.Normalize()

	reports, err := h.Storage.ListReports(c.Request.Context(), filter)
	if err != nil {
		h.log.Error("report listing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": http.StatusText(http.StatusInternalServerError)})
		return
	}

	loc := config.DeskLocation()
	items := make([]reportItem, 0, len(reports))
	for _, r := range reports {
		items = append(items, reportItem{
			Report:       r,
			Tanggal:      time.Time(r.ReportDate).Format("02-01-2006"),
			TimestampWIB: r.SubmittedAt.In(loc).Format("02-01-2006 15:04") + " " + config.DeskZoneLabel,
		})
	}
	c.JSON(http.StatusOK, listResponse{Items: items, Limit: filter.Limit, Offset: filter.Offset})
}

// queryInt reads an integer query parameter; absent or malformed yields def.
func queryInt(c *gin.Context, key string, def int) int {
	raw, ok := c.GetQuery(key)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
