package resident_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirosato/smartrt/internal/domain/errors"
	"github.com/hirosato/smartrt/internal/domain/resident"
	"github.com/hirosato/smartrt/internal/domain/session"
	"github.com/hirosato/smartrt/internal/platform/memory"
	"github.com/hirosato/smartrt/pkg/validator"
)

var (
	admin  = &session.Session{ID: "admin", Role: session.RoleAdmin, ProfileName: "Pak RT"}
	warga  = &session.Session{ID: "warga", Role: session.RoleResident, ProfileName: "Pak RT"}
	budi   = &resident.CreateResidentRequest{Name: "Budi Santoso", Address: "Blok A1 No. 5", FamilyMembers: 4, IsHeadOfFamily: true}
	siti   = &resident.CreateResidentRequest{Name: "Siti Aminah", Address: "Blok A1 No. 7", Phone: "0819", Status: resident.StatusTemporary, FamilyMembers: 2}
	four   = 4
	zero   = 0
	moved  = resident.StatusMoved
	street = "Blok B2 No. 1"
)

func newService() *resident.Service {
	return resident.NewService(memory.NewResidentRepository(), validator.New())
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	r, err := svc.Create(ctx, admin, &resident.CreateResidentRequest{
		Name:          "  Budi Santoso ",
		Address:       "Blok A1 No. 5",
		FamilyMembers: 1,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "Budi Santoso", r.Name)
	assert.Equal(t, resident.DefaultPhone, r.Phone)
	assert.Equal(t, resident.StatusPermanent, r.Status)
	assert.False(t, r.CreatedAt.IsZero())
}

func TestService_CreateValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		req  resident.CreateResidentRequest
	}{
		{"blank name", resident.CreateResidentRequest{Name: " ", Address: "Blok A", FamilyMembers: 1}},
		{"blank address", resident.CreateResidentRequest{Name: "Budi", Address: "", FamilyMembers: 1}},
		{"no family members", resident.CreateResidentRequest{Name: "Budi", Address: "Blok A", FamilyMembers: 0}},
		{"unknown status", resident.CreateResidentRequest{Name: "Budi", Address: "Blok A", FamilyMembers: 1, Status: "VISITOR"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService()
			_, err := svc.Create(ctx, admin, &tt.req)
			assert.True(t, stderrors.Is(err, errors.ErrValidation))

			all, err := svc.List(ctx, admin, resident.Filter{})
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestService_ResidentRoleCannotWrite(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	existing, err := svc.Create(ctx, admin, budi)
	require.NoError(t, err)

	_, err = svc.Create(ctx, warga, siti)
	assert.True(t, stderrors.Is(err, errors.ErrPermissionDenied))

	_, err = svc.Update(ctx, warga, existing.ID, &resident.UpdateResidentRequest{FamilyMembers: &four})
	assert.True(t, stderrors.Is(err, errors.ErrPermissionDenied))

	err = svc.Delete(ctx, warga, existing.ID)
	assert.True(t, stderrors.Is(err, errors.ErrPermissionDenied))

	all, err := svc.List(ctx, warga, resident.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, *existing, all[0])
}

func TestService_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	first, err := svc.Create(ctx, admin, budi)
	require.NoError(t, err)
	second, err := svc.Create(ctx, admin, siti)
	require.NoError(t, err)

	all, err := svc.List(ctx, admin, resident.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)

	// Updating a record keeps its position
	_, err = svc.Update(ctx, admin, first.ID, &resident.UpdateResidentRequest{Address: &street})
	require.NoError(t, err)
	all, err = svc.List(ctx, admin, resident.Filter{})
	require.NoError(t, err)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, street, all[1].Address)
}

func TestService_ListFilter(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.Create(ctx, admin, budi)
	require.NoError(t, err)
	_, err = svc.Create(ctx, admin, siti)
	require.NoError(t, err)

	byName, err := svc.List(ctx, warga, resident.Filter{Query: "budi"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Budi Santoso", byName[0].Name)

	byAddress, err := svc.List(ctx, warga, resident.Filter{Query: "a1 no. 7"})
	require.NoError(t, err)
	require.Len(t, byAddress, 1)

	byStatus, err := svc.List(ctx, warga, resident.Filter{Status: resident.StatusTemporary})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "Siti Aminah", byStatus[0].Name)
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	r, err := svc.Create(ctx, admin, budi)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, admin, r.ID, &resident.UpdateResidentRequest{Status: &moved})
	require.NoError(t, err)
	assert.Equal(t, resident.StatusMoved, updated.Status)
	assert.Equal(t, budi.Name, updated.Name)
	assert.Equal(t, 4, updated.FamilyMembers)

	_, err = svc.Update(ctx, admin, r.ID, &resident.UpdateResidentRequest{FamilyMembers: &zero})
	assert.True(t, stderrors.Is(err, errors.ErrValidation))

	_, err = svc.Update(ctx, admin, "missing", &resident.UpdateResidentRequest{Status: &moved})
	assert.True(t, stderrors.Is(err, errors.ErrNotFound))
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	first, err := svc.Create(ctx, admin, siti)
	require.NoError(t, err)
	r, err := svc.Create(ctx, admin, budi)
	require.NoError(t, err)
	last, err := svc.Create(ctx, admin, siti)
	require.NoError(t, err)

	assert.True(t, stderrors.Is(svc.Delete(ctx, warga, r.ID), errors.ErrPermissionDenied))
	require.NoError(t, svc.Delete(ctx, admin, r.ID))

	_, err = svc.Get(ctx, admin, r.ID)
	assert.True(t, stderrors.Is(err, errors.ErrNotFound))

	_, err = svc.Update(ctx, admin, r.ID, &resident.UpdateResidentRequest{Address: &street})
	assert.True(t, stderrors.Is(err, errors.ErrNotFound))
	err = svc.Delete(ctx, admin, r.ID)
	assert.True(t, stderrors.Is(err, errors.ErrNotFound))

	remaining, err := svc.List(ctx, admin, resident.Filter{})
	require.NoError(t, err)
	assert.Equal(t, []resident.Resident{*last, *first}, remaining)
}
