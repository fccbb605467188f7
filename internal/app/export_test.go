package app_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pastebridge/internal/domain/entities"
)

func TestNotepadExport(t *testing.T) {
	ctx := testContext(t)

	withEntries := func() *entities.Notepad {
		return guestNotepad("redtiger42",
			entities.Entry{Text: "first line", CreatedAt: time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)},
			entities.Entry{Text: "second line", CreatedAt: time.Date(2026, 8, 2, 11, 0, 0, 0, time.UTC)},
		)
	}

	t.Run("plain text is the default format", func(t *testing.T) {
		notepadRepo := &mockNotepadRepository{}
		uc := newNotepadUseCase(notepadRepo, &mockUserRepository{}, &mockWebhookRepository{}, &mockSummarizer{})
		notepadRepo.On("GetByCode", mock.Anything, "redtiger42").Return(withEntries(), nil).Once()

		file, err := uc.Export(ctx, "redtiger42", "")
		require.NoError(t, err, msgNoErrorExpected)
		assert.Equal(t, "redtiger42.txt", file.Filename)
		assert.Equal(t, "text/plain; charset=utf-8", file.ContentType)
		assert.Contains(t, string(file.Body), "PasteBridge - redtiger42")
		assert.Contains(t, string(file.Body), "[2026-08-01 10:30:00]\nfirst line")
	})

	t.Run("markdown renders entries as sections", func(t *testing.T) {
		notepadRepo := &mockNotepadRepository{}
		uc := newNotepadUseCase(notepadRepo, &mockUserRepository{}, &mockWebhookRepository{}, &mockSummarizer{})
		notepadRepo.On("GetByCode", mock.Anything, "redtiger42").Return(withEntries(), nil).Once()

		file, err := uc.Export(ctx, "redtiger42", "md")
		require.NoError(t, err, msgNoErrorExpected)
		assert.Equal(t, "redtiger42.md", file.Filename)
		assert.Contains(t, string(file.Body), "# PasteBridge: redtiger42")
		assert.Contains(t, string(file.Body), "## 2026-08-02 11:00:00\n\nsecond line")
	})

	t.Run("json carries the entries with timestamps", func(t *testing.T) {
		notepadRepo := &mockNotepadRepository{}
		uc := newNotepadUseCase(notepadRepo, &mockUserRepository{}, &mockWebhookRepository{}, &mockSummarizer{})
		notepadRepo.On("GetByCode", mock.Anything, "redtiger42").Return(withEntries(), nil).Once()

		file, err := uc.Export(ctx, "redtiger42", "json")
		require.NoError(t, err, msgNoErrorExpected)
		assert.Equal(t, "application/json", file.ContentType)

		var payload struct {
			Code    string `json:"code"`
			Entries []struct {
				Text      string    `json:"text"`
				Timestamp time.Time `json:"timestamp"`
			} `json:"entries"`
		}
		require.NoError(t, json.Unmarshal(file.Body, &payload))
		assert.Equal(t, "redtiger42", payload.Code)
		require.Len(t, payload.Entries, 2)
		assert.Equal(t, "first line", payload.Entries[0].Text)
	})

	t.Run("unknown formats are rejected", func(t *testing.T) {
		notepadRepo := &mockNotepadRepository{}
		uc := newNotepadUseCase(notepadRepo, &mockUserRepository{}, &mockWebhookRepository{}, &mockSummarizer{})
		notepadRepo.On("GetByCode", mock.Anything, "redtiger42").Return(withEntries(), nil).Once()

		_, err := uc.Export(ctx, "redtiger42", "pdf")
		assert.ErrorIs(t, err, entities.ErrInvalidExportKind)
	})
}
