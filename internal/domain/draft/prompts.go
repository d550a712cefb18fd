package draft

import (
	"fmt"
	"strings"
)

// Tone is the writing style of an announcement
type Tone string

const (
	ToneFormal Tone = "formal"
	ToneCasual Tone = "casual"
	ToneUrgent Tone = "urgent"
)

// Valid reports whether t is a known tone
func (t Tone) Valid() bool {
	switch t {
	case ToneFormal, ToneCasual, ToneUrgent:
		return true
	}
	return false
}

// Label returns the Indonesian name of the tone
func (t Tone) Label() string {
	switch t {
	case ToneCasual:
		return "Santai"
	case ToneUrgent:
		return "Mendesak"
	default:
		return "Resmi"
	}
}

const announcementTemperature float32 = 0.7

// LetterInput is the data printed on a reference letter
type LetterInput struct {
	ResidentName    string
	ResidentAddress string
	Purpose         string
	AuthorityName   string
}

// ReportDigest is the part of a report sent for analysis
type ReportDigest struct {
	Title       string
	Description string
}

// AnnouncementPrompt builds the prompt for an announcement draft
func AnnouncementPrompt(topic string, tone Tone) Prompt {
	temperature := announcementTemperature
	return Prompt{
		System: "Anda adalah Ketua RT (Rukun Tetangga) yang bijaksana di Indonesia.\n" +
			"Buat draf pengumuman WhatsApp/Surat Edaran.\n" +
			fmt.Sprintf("Gaya Bahasa: %s.\n", tone.Label()) +
			"Output HANYA teks pengumuman saja.",
		Contents:    fmt.Sprintf("Buatkan draf pengumuman untuk topik: %q.", topic),
		Temperature: &temperature,
	}
}

// ReferenceLetterPrompt builds the prompt for a reference letter
func ReferenceLetterPrompt(in LetterInput) Prompt {
	return Prompt{
		System: "Anda adalah Sekretaris RT yang profesional.\n" +
			"Buatlah surat keterangan/pengantar RT resmi yang mencakup:\n" +
			"1. Kop Surat (RT 03/RW 03)\n" +
			"2. Nomor Surat (gunakan placeholder [NOMOR_SURAT])\n" +
			"3. Data Diri Warga (Nama, Alamat)\n" +
			"4. Maksud dan Tujuan Surat\n" +
			"5. Penutup yang sopan\n" +
			fmt.Sprintf("6. Tempat tanda tangan Ketua RT (%s).\n\n", in.AuthorityName) +
			"Gunakan format surat resmi Indonesia yang baku dan rapi.",
		Contents: fmt.Sprintf("Buatkan Surat Pengantar RT untuk warga bernama %s, alamat %s, untuk keperluan: %s.",
			in.ResidentName, in.ResidentAddress, in.Purpose),
	}
}

// ReportAnalysisPrompt builds the prompt that summarizes citizen reports
func ReportAnalysisPrompt(reports []ReportDigest) Prompt {
	lines := make([]string, 0, len(reports))
	for _, r := range reports {
		lines = append(lines, fmt.Sprintf("- %s: %s", r.Title, r.Description))
	}
	return Prompt{
		System:   "Analisislah laporan warga ini dan berikan ringkasan serta saran tindakan untuk Ketua RT dalam poin-poin singkat.",
		Contents: "Daftar Laporan Warga:\n" + strings.Join(lines, "\n"),
	}
}
