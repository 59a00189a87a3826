// Package submission runs the shift-report pipeline: normalize the form,
// upload evidence, classify the outcome, store the report, then run the
// best-effort follow-ups.
package submission

import (
	"context"
	"errors"
	"fmt"
	"laporantdx/backend/internal/analysis"
	"laporantdx/backend/internal/config"
	"laporantdx/backend/internal/form"
	"laporantdx/backend/internal/logger"
	"laporantdx/backend/internal/models"
	"strings"

	"gorm.io/datatypes"
)

const incidentCategory = "kendala"

// Submission is one posted form: its fields and the raw bytes of its files.
type Submission struct {
	Values map[string][]string
	Files  Files
}

// Files holds uploaded images. A nil entry means no file was sent.
type Files struct {
	Studio     []byte
	Streaming  []byte
	Subcontrol []byte
	// IncidentProofs is index-aligned with the incident descriptions.
	IncidentProofs [][]byte
}

type Result struct {
	ReportID uint
	Outcome  string
	PDFURL   string
	Artifact string
	// Degraded lists the collaborators that failed after or around the commit.
	Degraded []*StageError
}

type Uploader interface {
	Upload(ctx context.Context, file []byte, category, timeLabel, folder string) string
}

type ReportWriter interface {
	CreateReport(ctx context.Context, r *models.Report) (uint, error)
}

type Renderer interface {
	Render(r *models.Report) ([]byte, error)
}

type ArtifactSaver interface {
	Save(id uint, data []byte) (string, error)
}

// Service handles the business logic for submissions.
type Service struct {
	normalizer *form.Normalizer
	uploader   Uploader
	store      ReportWriter
	renderer   Renderer
	artifacts  ArtifactSaver
	hooks      []PostCommitHook
	log        *logger.Logger
}

// NewService creates a new submission service. Hooks run in the given order.
func NewService(n *form.Normalizer, u Uploader, s ReportWriter, r Renderer, a ArtifactSaver, log *logger.Logger, hooks ...PostCommitHook) *Service {
	return &Service{
		normalizer: n,
		uploader:   u,
		store:      s,
		renderer:   r,
		artifacts:  a,
		hooks:      hooks,
		log:        log.With("service", "Submission"),
	}
}

// Submit stores one report. The only error it returns is a *StoreError;
// everything else is collected in Result.Degraded.
func (s *Service) Submit(ctx context.Context, sub Submission) (*Result, error) {
	draft := s.normalizer.Normalize(sub.Values)
	res := &Result{}

	report := &models.Report{
		SubmittedAt: draft.SubmittedAt,
		ReportDate:  datatypes.Date(draft.ReportDate),
		OfficerTD:   draft.OfficerTD,
		OfficerPDU:  draft.OfficerPDU,
		OfficerTX:   strings.Join(draft.OfficerTX, ", "),
	}
	report.SetSlots(draft.Slots)

	day := draft.ReportDate.Format(config.DateLayout)
	stamp := day + " " + draft.SubmittedAt.Format("15:04")
	locations := []struct {
		name string
		file []byte
		dst  *string
	}{
		{"Studio", sub.Files.Studio, &report.EvidenceStudio},
		{"Streaming", sub.Files.Streaming, &report.EvidenceStreaming},
		{"Subcontrol", sub.Files.Subcontrol, &report.EvidenceSubcontrol},
	}
	for _, loc := range locations {
		*loc.dst = s.upload(ctx, res, loc.file, loc.name, stamp, "evidence/"+day)
	}

	links := make([]string, len(sub.Files.IncidentProofs))
	for i, proof := range sub.Files.IncidentProofs {
		category := incidentCategory
		if i < len(draft.IncidentDescriptions) && draft.IncidentDescriptions[i] != "" {
			category = draft.IncidentDescriptions[i]
		}
		timeLabel := day
		if i < len(draft.IncidentTimes) && draft.IncidentTimes[i] != "" {
			timeLabel = draft.IncidentTimes[i]
		}
		links[i] = s.upload(ctx, res, proof, category, timeLabel, "incidents/"+day)
	}

	report.Incidents = datatypes.JSONSlice[models.Incident](
		models.AlignIncidents(draft.IncidentDescriptions, draft.IncidentTimes, links))
	report.Outcome = analysis.Classify(draft.IncidentTimes)

	id, err := s.store.CreateReport(ctx, report)
	if err != nil {
		s.log.Error("report insert failed", "error", err)
		return nil, &StoreError{Err: err}
	}
	report.ID = id
	res.ReportID = id
	res.Outcome = report.Outcome
	res.PDFURL = fmt.Sprintf("/download_pdf/%d", id)

	// The report is committed; nothing below may fail the request.
	hookCtx := context.WithoutCancel(ctx)
	for _, h := range s.hooks {
		if err := runHook(hookCtx, h, report); err != nil {
			s.degrade(res, h.Stage, err, "report_id", id)
		}
	}

	if name, err := s.saveArtifact(report); err != nil {
		var se *StageError
		if errors.As(err, &se) {
			s.degrade(res, se.Stage, se.Err, "report_id", id)
		}
	} else {
		res.Artifact = name
	}

	s.log.Info("report stored", "report_id", id, "outcome", report.Outcome, "degraded", len(res.Degraded))
	return res, nil
}

func (s *Service) upload(ctx context.Context, res *Result, file []byte, category, timeLabel, folder string) string {
	if len(file) == 0 {
		return ""
	}
	url := s.uploader.Upload(ctx, file, category, timeLabel, folder)
	if url == "" {
		s.degrade(res, StageUpload, fmt.Errorf("evidence %q not stored", category))
	}
	return url
}

func runHook(ctx context.Context, h PostCommitHook, r *models.Report) (err error) {
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return h.Run(ctx, r)
}

func (s *Service) saveArtifact(r *models.Report) (name string, err error) {
	if s.renderer == nil || s.artifacts == nil {
		return "", nil
	}
	stage := StageRender
	defer func() {
		if p := recover(); p != nil {
			name, err = "", &StageError{Stage: stage, Err: fmt.Errorf("panic: %v", p)}
		}
	}()

	data, err := s.renderer.Render(r)
	if err != nil {
		return "", &StageError{Stage: StageRender, Err: err}
	}
	stage = StageArtifact
	name, err = s.artifacts.Save(r.ID, data)
	if err != nil {
		return "", &StageError{Stage: StageArtifact, Err: err}
	}
	return name, nil
}

func (s *Service) degrade(res *Result, stage string, err error, kv ...interface{}) {
	res.Degraded = append(res.Degraded, &StageError{Stage: stage, Err: err})
	s.log.Warn("submission stage degraded", append([]interface{}{"stage", stage, "error", err}, kv...)...)
}
