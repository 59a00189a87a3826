package handler

import (
	"errors"
	"fmt"
	"io"
	"laporantdx/backend/internal/config"
	"laporantdx/backend/internal/form"
	"laporantdx/backend/internal/submission"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	maxSubmitBytes      = 256 << 20
	maxSubmitValueBytes = 8 << 20
)

type submitResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	PDFURL  string `json:"pdf_url,omitempty"`
}

// Submit accepts the handover form. Failures are reported in the body with
// status "error" and HTTP 200, which is what the submission page expects.
func (h *Handler) Submit(c *gin.Context) {
	sub, err := h.readSubmission(c)
	if err != nil {
		h.log.Warn("unreadable submission", "error", err)
		c.JSON(http.StatusOK, submitResponse{Status: "error", Message: h.text(c, "submit_invalid_form", err.Error())})
		return
	}

	res, err := h.Submissions.Submit(c.Request.Context(), sub)
	if err != nil {
		c.JSON(http.StatusOK, submitResponse{Status: "error", Message: h.text(c, "submit_error", err.Error())})
		return
	}
	c.JSON(http.StatusOK, submitResponse{
		Status:  "success",
		Message: h.text(c, "submit_success"),
		PDFURL:  res.PDFURL,
	})
}

// readSubmission streams the form part by part. Incident proofs are kept in
// posting order, with nil for rows that sent an empty file input, so the
// i-th proof stays with the i-th incident.
func (h *Handler) readSubmission(c *gin.Context) (submission.Submission, error) {
	var sub submission.Submission
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSubmitBytes)

	mr, err := c.Request.MultipartReader()
	if errors.Is(err, http.ErrNotMultipart) {
		if err := c.Request.ParseForm(); err != nil {
			return sub, err
		}
		sub.Values = c.Request.PostForm
		return sub, nil
	}
	if err != nil {
		return sub, err
	}

	sub.Values = make(map[string][]string)
	valueBytes := 0
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sub, err
		}
		name := part.FormName()

		switch name {
		case "":
		case form.FileIncidentProofs:
			sub.Files.IncidentProofs = append(sub.Files.IncidentProofs, h.readFile(part))
		case form.FileStudio:
			sub.Files.Studio = h.firstFile(sub.Files.Studio, part)
		case form.FileStreaming:
			sub.Files.Streaming = h.firstFile(sub.Files.Streaming, part)
		case form.FileSubcontrol:
			sub.Files.Subcontrol = h.firstFile(sub.Files.Subcontrol, part)
		default:
			data, err := io.ReadAll(io.LimitReader(part, int64(maxSubmitValueBytes-valueBytes)+1))
			if err != nil {
				_ = part.Close()
				return sub, err
			}
			valueBytes += len(data)
			if valueBytes > maxSubmitValueBytes {
				_ = part.Close()
				return sub, fmt.Errorf("form fields exceed %d bytes", maxSubmitValueBytes)
			}
			sub.Values[name] = append(sub.Values[name], string(data))
		}
		_ = part.Close()
	}
	return sub, nil
}

func (h *Handler) firstFile(current []byte, part *multipart.Part) []byte {
	if current != nil {
		return current
	}
	return h.readFile(part)
}

// readFile returns nil for empty, unreadable or oversized uploads, which the
// pipeline treats as "no file".
func (h *Handler) readFile(part *multipart.Part) []byte {
	if part.FileName() == "" {
		return nil
	}
	data, err := io.ReadAll(io.LimitReader(part, config.EvidenceMaxFileBytes+1))
	if err != nil {
		h.log.Warn("evidence file unreadable", "filename", part.FileName(), "error", err)
		return nil
	}
	if len(data) > config.EvidenceMaxFileBytes {
		h.log.Warn("evidence file too large, skipped", "filename", part.FileName())
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	return data
}

func (h *Handler) rateLimited(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, submitResponse{Status: "error", Message: h.text(c, "rate_limited")})
}
