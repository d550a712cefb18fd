package prompts_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirosato/smartrt/internal/api/mcp/prompts"
	"github.com/hirosato/smartrt/internal/domain/report"
	"github.com/hirosato/smartrt/internal/domain/session"
)

var reader = &session.Session{ID: "reader", Role: session.RoleResident}

type fakeReports struct {
	reports []report.Report
	got     report.Filter
}

func (f *fakeReports) List(ctx context.Context, sess *session.Session, filter report.Filter) ([]report.Report, error) {
	f.got = filter
	return f.reports, nil
}

func TestAnnouncementDraftPrompt(t *testing.T) {
	p := &prompts.AnnouncementDraftPrompt{}

	result, err := p.GetPrompt(context.Background(), map[string]interface{}{"topic": " Kerja bakti ", "tone": "casual"})
	require.NoError(t, err)
	assert.Equal(t, "Pengumuman Santai: Kerja bakti", result.Description)
	require.Len(t, result.Messages, 2)
	assert.Contains(t, result.Messages[0].Content.Text, "Gaya Bahasa: Santai.")
	assert.Equal(t, `Buatkan draf pengumuman untuk topik: "Kerja bakti".`, result.Messages[1].Content.Text)

	result, err = p.GetPrompt(context.Background(), map[string]interface{}{"topic": "Rapat"})
	require.NoError(t, err)
	assert.Contains(t, result.Messages[0].Content.Text, "Gaya Bahasa: Resmi.")

	_, err = p.GetPrompt(context.Background(), map[string]interface{}{"topic": "Rapat", "tone": "loud"})
	assert.Error(t, err)
	_, err = p.GetPrompt(context.Background(), map[string]interface{}{})
	assert.Error(t, err)
}

func TestReportTriagePrompt(t *testing.T) {
	reports := &fakeReports{reports: []report.Report{
		{ID: "R1", Title: "Lampu mati", Description: "Blok A", Status: report.StatusPending},
	}}
	p := prompts.NewReportTriagePrompt(reports, reader)

	result, err := p.GetPrompt(context.Background(), map[string]interface{}{"status": "PENDING"})
	require.NoError(t, err)
	assert.Equal(t, report.StatusPending, reports.got.Status)
	assert.Equal(t, "Analisis 1 laporan warga", result.Description)
	require.Len(t, result.Messages, 3)
	assert.Equal(t, "Daftar Laporan Warga:\n- Lampu mati: Blok A", result.Messages[1].Content.Text)

	attached := result.Messages[2].Content
	assert.Equal(t, "resource", attached.Type)
	require.NotNil(t, attached.Resource)
	assert.Contains(t, attached.Resource.Text, `"id": "R1"`)

	_, err = p.GetPrompt(context.Background(), map[string]interface{}{"status": "DONE"})
	assert.Error(t, err)

	empty := prompts.NewReportTriagePrompt(&fakeReports{}, reader)
	_, err = empty.GetPrompt(context.Background(), nil)
	assert.Error(t, err)
}
