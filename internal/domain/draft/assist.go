package draft

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/hirosato/smartrt/internal/domain/errors"
	"github.com/hirosato/smartrt/internal/domain/letter"
	"github.com/hirosato/smartrt/internal/domain/report"
	"github.com/hirosato/smartrt/internal/domain/session"
)

// Letters is the part of the letter service the assist writes through
type Letters interface {
	Get(ctx context.Context, sess *session.Session, letterID string) (*letter.Request, error)
	ApplyDraft(ctx context.Context, sess *session.Session, letterID string, content string) (*letter.Request, error)
}

// Reports lists the reports sent for analysis
type Reports interface {
	List(ctx context.Context, sess *session.Session, filter report.Filter) ([]report.Report, error)
}

// Assist runs bridge calls on behalf of an administrator and applies the results
type Assist struct {
	bridge  *Bridge
	letters Letters
	reports Reports
	logger  *slog.Logger

	discardStale bool

	mu       sync.Mutex
	inflight map[string]int
	latest   map[string]uint64
	wg       sync.WaitGroup
}

// AssistOption configures an Assist
type AssistOption func(*Assist)

// WithStaleDiscard drops letter drafts superseded by a newer request for the same letter
func WithStaleDiscard() AssistOption {
	return func(a *Assist) {
		a.discardStale = true
	}
}

// NewAssist creates a new draft assist
func NewAssist(bridge *Bridge, letters Letters, reports Reports, logger *slog.Logger, opts ...AssistOption) *Assist {
	a := &Assist{
		bridge:   bridge,
		letters:  letters,
		reports:  reports,
		logger:   logger,
		inflight: make(map[string]int),
		latest:   make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// StartLetterDraft generates the letter text in the background and approves the letter with it.
// It returns as soon as the request is accepted.
func (a *Assist) StartLetterDraft(ctx context.Context, sess *session.Session, letterID string) error {
	in, err := a.letterInput(ctx, sess, letterID)
	if err != nil {
		return err
	}

	// The draft outlives the request that started it
	bg := context.WithoutCancel(ctx)
	owner := *sess

	a.mu.Lock()
	a.inflight[letterID]++
	a.latest[letterID]++
	gen := a.latest[letterID]
	a.mu.Unlock()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer a.finish(letterID)

		content := a.bridge.GenerateReferenceLetter(bg, in)
		a.apply(bg, &owner, letterID, gen, content)
	}()

	a.logger.Info("Letter draft started", "letterId", letterID, "sessionId", sess.ID)
	return nil
}

// DraftLetter generates the letter text and applies it before returning
func (a *Assist) DraftLetter(ctx context.Context, sess *session.Session, letterID string) (*letter.Request, error) {
	in, err := a.letterInput(ctx, sess, letterID)
	if err != nil {
		return nil, err
	}

	content := a.bridge.GenerateReferenceLetter(ctx, in)
	return a.letters.ApplyDraft(ctx, sess, letterID, content)
}

// InProgress reports whether a background draft for the letter has not finished
func (a *Assist) InProgress(letterID string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inflight[letterID] > 0
}

// Wait blocks until every background draft has finished
func (a *Assist) Wait() {
	a.wg.Wait()
}

// DraftAnnouncement returns a draft announcement for the topic
func (a *Assist) DraftAnnouncement(ctx context.Context, sess *session.Session, topic string, tone Tone) (string, error) {
	if err := sess.Require(session.EntityAnnouncement, session.ActionDraft); err != nil {
		return "", err
	}

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", errors.NewValidationError("topic is required")
	}
	if tone == "" {
		tone = ToneFormal
	}
	if !tone.Valid() {
		return "", errors.NewValidationError("tone must be one of formal, casual, urgent").
			WithDetail("tone", string(tone))
	}

	return a.bridge.GenerateAnnouncementDraft(ctx, topic, tone), nil
}

// AnalyzeReports summarizes every current report with suggested actions
func (a *Assist) AnalyzeReports(ctx context.Context, sess *session.Session) (string, error) {
	if err := sess.Require(session.EntityReport, session.ActionDraft); err != nil {
		return "", err
	}

	reports, err := a.reports.List(ctx, sess, report.Filter{})
	if err != nil {
		return "", err
	}
	if len(reports) == 0 {
		return "", errors.NewValidationError("there are no reports to analyze")
	}

	digests := make([]ReportDigest, 0, len(reports))
	for _, r := range reports {
		digests = append(digests, ReportDigest{Title: r.Title, Description: r.Description})
	}
	return a.bridge.AnalyzeCommunityReports(ctx, digests), nil
}

func (a *Assist) letterInput(ctx context.Context, sess *session.Session, letterID string) (LetterInput, error) {
	if err := sess.Require(session.EntityLetter, session.ActionDraft); err != nil {
		return LetterInput{}, err
	}

	r, err := a.letters.Get(ctx, sess, letterID)
	if err != nil {
		return LetterInput{}, err
	}
	if r.Status != letter.StatusPending {
		return LetterInput{}, errors.NewValidationError("only pending letters can be drafted").
			WithDetail("status", string(r.Status))
	}

	return LetterInput{
		ResidentName:    r.ResidentName,
		ResidentAddress: r.ResidentAddress,
		Purpose:         r.Purpose,
		AuthorityName:   sess.ProfileName,
	}, nil
}

func (a *Assist) apply(ctx context.Context, sess *session.Session, letterID string, gen uint64, content string) {
	if a.discardStale {
		// Check and write under one lock so a newer request cannot slip in between
		a.mu.Lock()
		defer a.mu.Unlock()
		if a.latest[letterID] != gen {
			a.logger.Info("Discarding stale letter draft", "letterId", letterID)
			return
		}
	}

	if _, err := a.letters.ApplyDraft(ctx, sess, letterID, content); err != nil {
		a.logger.Error("Failed to apply letter draft", "letterId", letterID, "error", err)
	}
}

func (a *Assist) finish(letterID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.inflight[letterID]--
	if a.inflight[letterID] <= 0 {
		delete(a.inflight, letterID)
		delete(a.latest, letterID)
	}
}
