package dashboard

import (
	"context"
	"time"

	"github.com/hirosato/smartrt/internal/domain/resident"
	"github.com/hirosato/smartrt/internal/domain/session"
)

// Overview is the summary shown on the dashboard
type Overview struct {
	Greeting       string       `json:"greeting"`
	ProfileName    string       `json:"profileName"`
	DisplayName    string       `json:"displayName"`
	Role           session.Role `json:"role"`
	TotalResidents int          `json:"totalResidents"`
	ActiveReports  int          `json:"activeReports"`
	Balance        int64        `json:"balance"`
}

// Residents lists registered residents
type Residents interface {
	List(ctx context.Context, sess *session.Session, filter resident.Filter) ([]resident.Resident, error)
}

// Reports counts unresolved reports
type Reports interface {
	ActiveCount(ctx context.Context, sess *session.Session) (int, error)
}

// Ledger reports the all-time balance
type Ledger interface {
	Balance(ctx context.Context, sess *session.Session) (int64, error)
}

// Service assembles the dashboard overview
type Service struct {
	residents Residents
	reports   Reports
	ledger    Ledger
}

// NewService creates a new dashboard service
func NewService(residents Residents, reports Reports, ledger Ledger) *Service {
	return &Service{
		residents: residents,
		reports:   reports,
		ledger:    ledger,
	}
}

// Overview returns the dashboard for sess at the local time now
func (s *Service) Overview(ctx context.Context, sess *session.Session, now time.Time) (*Overview, error) {
	residents, err := s.residents.List(ctx, sess, resident.Filter{})
	if err != nil {
		return nil, err
	}

	active, err := s.reports.ActiveCount(ctx, sess)
	if err != nil {
		return nil, err
	}

	balance, err := s.ledger.Balance(ctx, sess)
	if err != nil {
		return nil, err
	}

	return &Overview{
		Greeting:       Greeting(now),
		ProfileName:    sess.ProfileName,
		DisplayName:    sess.DisplayName(),
		Role:           sess.Role,
		TotalResidents: len(residents),
		ActiveReports:  active,
		Balance:        balance,
	}, nil
}

// Greeting returns the Indonesian greeting for the hour of t
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 11:
		return "Selamat Pagi"
	case h >= 11 && h < 15:
		return "Selamat Siang"
	case h >= 15 && h < 18:
		return "Selamat Sore"
	default:
		return "Selamat Malam"
	}
}
