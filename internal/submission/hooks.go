package submission

import (
	"context"
	"laporantdx/backend/internal/config"
	"laporantdx/backend/internal/models"
	"time"
)

// PostCommitHook runs once after a report is committed. A failing hook never
// undoes the commit.
type PostCommitHook struct {
	Stage   string
	Timeout time.Duration
	Run     func(ctx context.Context, r *models.Report) error
}

type ReportMirror interface {
	AppendReport(ctx context.Context, r *models.Report) error
}

type FeedPublisher interface {
	PublishFeedEvent(ctx context.Context, event models.FeedEvent) error
}

type Notifier interface {
	NotifyReport(ctx context.Context, r *models.Report) error
}

func MirrorHook(m ReportMirror) PostCommitHook {
	return PostCommitHook{Stage: StageMirror, Timeout: config.MirrorTimeout, Run: m.AppendReport}
}

func FeedHook(p FeedPublisher) PostCommitHook {
	return PostCommitHook{
		Stage:   StageFeed,
		Timeout: config.FeedTimeout,
		Run: func(ctx context.Context, r *models.Report) error {
			return p.PublishFeedEvent(ctx, NewFeedEvent(r))
		},
	}
}

func NotifyHook(n Notifier) PostCommitHook {
	return PostCommitHook{Stage: StageNotify, Timeout: config.NotifyTimeout, Run: n.NotifyReport}
}

// NewFeedEvent is the dashboard payload announcing a stored report.
func NewFeedEvent(r *models.Report) models.FeedEvent {
	return models.FeedEvent{
		Type:        models.FeedEventReportCreated,
		ReportID:    r.ID,
		ReportDate:  time.Time(r.ReportDate).Format(config.DateLayout),
		Outcome:     r.Outcome,
		OfficerTD:   r.OfficerTD,
		SubmittedAt: r.SubmittedAt,
	}
}
