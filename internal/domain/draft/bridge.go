package draft

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hirosato/smartrt/internal/domain/errors"
)

// DefaultTimeout bounds a single generation call
const DefaultTimeout = 30 * time.Second

// Kind identifies a bridge use case
type Kind string

const (
	KindAnnouncement    Kind = "announcement"
	KindReferenceLetter Kind = "reference_letter"
	KindReportAnalysis  Kind = "report_analysis"
)

// Fallback texts returned instead of generated content
const (
	AnnouncementEmpty   = "Gagal membuat draf."
	AnnouncementFailure = "Terjadi kesalahan koneksi AI."
	LetterEmpty         = "Gagal membuat surat."
	LetterFailure       = "Terjadi kesalahan saat menyusun surat."
	AnalysisEmpty       = "Gagal menganalisis."
	AnalysisFailure     = "Terjadi kesalahan analisis."
)

type fallback struct {
	empty   string
	failure string
}

var fallbacks = map[Kind]fallback{
	KindAnnouncement:    {empty: AnnouncementEmpty, failure: AnnouncementFailure},
	KindReferenceLetter: {empty: LetterEmpty, failure: LetterFailure},
	KindReportAnalysis:  {empty: AnalysisEmpty, failure: AnalysisFailure},
}

// Recorder receives bridge outcomes
type Recorder interface {
	IncrementDraft(kind, outcome string)
	ObserveDraftLatency(kind string, d time.Duration)
}

// Bridge turns generator calls into plain text. Failures become fallback strings.
type Bridge struct {
	generator Generator
	logger    *slog.Logger
	recorder  Recorder
	tracer    trace.Tracer
	timeout   time.Duration
}

// Option configures a Bridge
type Option func(*Bridge)

// WithRecorder sets the outcome recorder
func WithRecorder(r Recorder) Option {
	return func(b *Bridge) {
		b.recorder = r
	}
}

// WithTimeout sets the per-call timeout
func WithTimeout(d time.Duration) Option {
	return func(b *Bridge) {
		if d > 0 {
			b.timeout = d
		}
	}
}

// NewBridge creates a new draft bridge
func NewBridge(generator Generator, logger *slog.Logger, opts ...Option) *Bridge {
	b := &Bridge{
		generator: generator,
		logger:    logger,
		tracer:    otel.Tracer("github.com/hirosato/smartrt/internal/domain/draft"),
		timeout:   DefaultTimeout,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// GenerateAnnouncementDraft drafts an announcement about topic in the given tone
func (b *Bridge) GenerateAnnouncementDraft(ctx context.Context, topic string, tone Tone) string {
	return b.run(ctx, KindAnnouncement, AnnouncementPrompt(topic, tone))
}

// GenerateReferenceLetter drafts a reference letter for a resident
func (b *Bridge) GenerateReferenceLetter(ctx context.Context, in LetterInput) string {
	return b.run(ctx, KindReferenceLetter, ReferenceLetterPrompt(in))
}

// AnalyzeCommunityReports summarizes reports with suggested actions
func (b *Bridge) AnalyzeCommunityReports(ctx context.Context, reports []ReportDigest) string {
	return b.run(ctx, KindReportAnalysis, ReportAnalysisPrompt(reports))
}

func (b *Bridge) run(ctx context.Context, kind Kind, prompt Prompt) string {
	ctx, span := b.tracer.Start(ctx, "draft."+string(kind), trace.WithAttributes(attribute.String("draft.kind", string(kind))))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	start := time.Now()
	text, err := b.generate(ctx, prompt)
	b.observe(kind, time.Since(start))

	fb := fallbacks[kind]
	if err != nil {
		appErr := errors.NewExternalServiceError("text generation failed", err)
		b.logger.Error("Draft generation failed", "kind", kind, "error", appErr)
		span.RecordError(err)
		span.SetStatus(codes.Error, appErr.Message)
		b.count(kind, "error")
		return fb.failure
	}

	if strings.TrimSpace(text) == "" {
		b.logger.Warn("Draft generation returned no text", "kind", kind)
		b.count(kind, "empty")
		return fb.empty
	}

	b.count(kind, "ok")
	return text
}

// generate shields callers from a panicking generator
func (b *Bridge) generate(ctx context.Context, prompt Prompt) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generator panicked: %v", r)
		}
	}()
	return b.generator.Generate(ctx, prompt)
}

func (b *Bridge) count(kind Kind, outcome string) {
	if b.recorder != nil {
		b.recorder.IncrementDraft(string(kind), outcome)
	}
}

func (b *Bridge) observe(kind Kind, d time.Duration) {
	if b.recorder != nil {
		b.recorder.ObserveDraftLatency(string(kind), d)
	}
}
