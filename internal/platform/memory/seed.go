package memory

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hirosato/smartrt/internal/domain/announcement"
	"github.com/hirosato/smartrt/internal/domain/letter"
	"github.com/hirosato/smartrt/internal/domain/resident"
)

// Store groups the in-memory repositories of one process
type Store struct {
	Residents     *ResidentRepository
	Transactions  *TransactionRepository
	Reports       *ReportRepository
	Letters       *LetterRepository
	Announcements *AnnouncementRepository
	Sessions      *SessionRepository
}

// NewStore creates empty repositories
func NewStore() *Store {
	return &Store{
		Residents:     NewResidentRepository(),
		Transactions:  NewTransactionRepository(),
		Reports:       NewReportRepository(),
		Letters:       NewLetterRepository(),
		Announcements: NewAnnouncementRepository(),
		Sessions:      NewSessionRepository(),
	}
}

// SeedDemoData fills the store with the demo neighborhood used for local runs.
// Records are inserted oldest first so listings show them in the order below.
func SeedDemoData(ctx context.Context, s *Store, authorityName string) error {
	now := time.Now().UTC()

	residents := []resident.Resident{
		{Name: "Budi Santoso", Address: "Blok A1 No. 5", Phone: "081234567890", Status: resident.StatusPermanent, FamilyMembers: 4, IsHeadOfFamily: true},
		{Name: "Siti Aminah", Address: "Blok A1 No. 7", Phone: "081987654321", Status: resident.StatusTemporary, FamilyMembers: 2, IsHeadOfFamily: true},
		{Name: "Joko Widodo", Address: "Blok B2 No. 10", Phone: "085678901234", Status: resident.StatusPermanent, FamilyMembers: 3, IsHeadOfFamily: true},
	}
	for i := len(residents) - 1; i >= 0; i-- {
		r := residents[i]
		r.ID = ulid.Make().String()
		r.CreatedAt = now
		r.UpdatedAt = now
		if err := s.Residents.CreateResident(ctx, &r); err != nil {
			return err
		}
	}

	budi := residents[0]
	if err := s.Letters.CreateLetter(ctx, &letter.Request{
		ID:              ulid.Make().String(),
		ResidentName:    budi.Name,
		ResidentAddress: budi.Address,
		Purpose:         "Pembuatan KTP Baru",
		Date:            "2024-05-21",
		Status:          letter.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}); err != nil {
		return err
	}

	return s.Announcements.CreateAnnouncement(ctx, &announcement.Announcement{
		ID:    ulid.Make().String(),
		Title: "Kerja Bakti Minggu Ini",
		Content: "Yth. Warga RT 05,\n\n" +
			"Kami mengundang Bapak/Ibu untuk hadir dalam kerja bakti membersihkan selokan utama pada hari Minggu besok. " +
			"Harap membawa cangkul atau sapu lidi.\n\nTerima kasih!",
		Date:      "2024-05-20",
		Author:    authorityName,
		CreatedAt: now,
	})
}
