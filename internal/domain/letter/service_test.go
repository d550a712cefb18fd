package letter_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirosato/smartrt/internal/domain/errors"
	"github.com/hirosato/smartrt/internal/domain/letter"
	"github.com/hirosato/smartrt/internal/domain/registry"
	"github.com/hirosato/smartrt/internal/domain/resident"
	"github.com/hirosato/smartrt/internal/domain/session"
	"github.com/hirosato/smartrt/internal/platform/memory"
	"github.com/hirosato/smartrt/pkg/validator"
)

var (
	admin = &session.Session{ID: "admin", Role: session.RoleAdmin, ProfileName: "Pak RT Ahmad"}
	warga = &session.Session{ID: "warga", Role: session.RoleResident, ProfileName: "Pak RT Ahmad"}
)

type fixture struct {
	residents *resident.Service
	letters   *letter.Service
	budi      *resident.Resident
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	v := validator.New()
	residents := resident.NewService(memory.NewResidentRepository(), v)
	budi, err := residents.Create(context.Background(), admin, &resident.CreateResidentRequest{
		Name:          "Budi Santoso",
		Address:       "Blok A1 No. 5",
		FamilyMembers: 4,
	})
	require.NoError(t, err)
	return &fixture{
		residents: residents,
		letters:   letter.NewService(memory.NewLetterRepository(), registry.NewValidator(residents), v),
		budi:      budi,
	}
}

func (f *fixture) request(t *testing.T) *letter.Request {
	t.Helper()
	r, err := f.letters.Create(context.Background(), warga, &letter.CreateLetterRequest{
		ResidentName: "  BUDI santoso",
		Purpose:      "Pengurusan SKCK",
	})
	require.NoError(t, err)
	return r
}

func TestService_CreateUsesRegistryEntry(t *testing.T) {
	f := newFixture(t)

	r := f.request(t)
	assert.Equal(t, "Budi Santoso", r.ResidentName)
	assert.Equal(t, "Blok A1 No. 5", r.ResidentAddress)
	assert.Equal(t, letter.StatusPending, r.Status)
	assert.Empty(t, r.Content)
}

func TestService_AddressIsASnapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	r := f.request(t)

	moved := "Blok Z9"
	_, err := f.residents.Update(ctx, admin, f.budi.ID, &resident.UpdateResidentRequest{Address: &moved})
	require.NoError(t, err)
	require.NoError(t, f.residents.Delete(ctx, admin, f.budi.ID))

	got, err := f.letters.Get(ctx, warga, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Blok A1 No. 5", got.ResidentAddress)
}

func TestService_CreateRejectsUnknownResident(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.letters.Create(ctx, warga, &letter.CreateLetterRequest{ResidentName: "Joko", Purpose: "Domisili"})
	assert.True(t, stderrors.Is(err, errors.ErrRegistryMismatch))

	all, err := f.letters.List(ctx, admin, letter.Filter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestService_ApproveRejectPermissions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := f.request(t)

	_, err := f.letters.Approve(ctx, warga, r.ID, &letter.ApproveRequest{})
	assert.True(t, stderrors.Is(err, errors.ErrPermissionDenied))
	_, err = f.letters.Reject(ctx, warga, r.ID)
	assert.True(t, stderrors.Is(err, errors.ErrPermissionDenied))

	rejected, err := f.letters.Reject(ctx, admin, r.ID)
	require.NoError(t, err)
	assert.Equal(t, letter.StatusRejected, rejected.Status)

	_, err = f.letters.Approve(ctx, admin, "missing", &letter.ApproveRequest{})
	assert.True(t, stderrors.Is(err, errors.ErrNotFound))
}

func TestService_ApproveKeepsContentWhenEmpty(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := f.request(t)

	drafted, err := f.letters.ApplyDraft(ctx, admin, r.ID, "Surat Pengantar RT")
	require.NoError(t, err)
	assert.Equal(t, letter.StatusApproved, drafted.Status)

	approved, err := f.letters.Approve(ctx, admin, r.ID, &letter.ApproveRequest{Content: "  "})
	require.NoError(t, err)
	assert.Equal(t, "Surat Pengantar RT", approved.Content)

	edited, err := f.letters.Approve(ctx, admin, r.ID, &letter.ApproveRequest{Content: "Surat final"})
	require.NoError(t, err)
	assert.Equal(t, "Surat final", edited.Content)
}

func TestService_Print(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	r := f.request(t)

	_, err := f.letters.Print(ctx, warga, r.ID)
	assert.True(t, stderrors.Is(err, errors.ErrValidation))

	_, err = f.letters.ApplyDraft(ctx, admin, r.ID, "Isi surat")
	require.NoError(t, err)

	printout, err := f.letters.Print(ctx, warga, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pak RT Ahmad", printout.AuthorityName)
	assert.Equal(t, "Budi Santoso", printout.ResidentName)
	assert.Equal(t, "Isi surat", printout.Content)
	assert.Equal(t, r.Date, printout.Date)
}

func TestService_ListFilter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first := f.request(t)
	second, err := f.letters.Create(ctx, warga, &letter.CreateLetterRequest{ResidentName: "Budi Santoso", Purpose: "Keterangan Domisili"})
	require.NoError(t, err)
	_, err = f.letters.Reject(ctx, admin, first.ID)
	require.NoError(t, err)

	all, err := f.letters.List(ctx, warga, letter.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)

	pending, err := f.letters.List(ctx, warga, letter.Filter{Status: letter.StatusPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)

	byPurpose, err := f.letters.List(ctx, warga, letter.Filter{Query: "skck"})
	require.NoError(t, err)
	require.Len(t, byPurpose, 1)
	assert.Equal(t, first.ID, byPurpose[0].ID)
}
