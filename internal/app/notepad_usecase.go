package app

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"pastebridge/internal/app/dto"
	"pastebridge/internal/config"
	"pastebridge/internal/domain/entities"
	"pastebridge/internal/ports/repositories"
	svc "pastebridge/internal/ports/services"
	"pastebridge/pkg/logger"
)

const (
	msgNotepadCreated    = "notepad created"
	msgEntryAppended     = "entry appended"
	msgNotepadCleared    = "notepad cleared"
	msgNotepadShared     = "notepad shared"
	msgNotepadUnshared   = "notepad access revoked"
	msgWebhookDispatched = "webhook event dispatched"

	errCtxGeneratingCode    = "generating notepad code"
	errCtxCreatingNotepad   = "creating notepad"
	errCtxFindingNotepad    = "finding notepad"
	errCtxAppendingEntry    = "appending entry"
	errCtxClearingEntries   = "clearing entries"
	errCtxSummarizing       = "summarizing notepad"
	errCtxSharingNotepad    = "sharing notepad"
	errCtxListingSharing    = "listing collaborators"
	errCtxSearchingNotepads = "searching notepads"

	defaultSummaryLength = 100
	defaultSearchLimit   = 20
	maxSearchLimit       = 100
	sideEffectTimeout    = 15 * time.Second
)

// NotepadUseCase implements the notepad operations.
type NotepadUseCase struct {
	notepadRepo repositories.NotepadRepository
	userRepo    repositories.UserRepository
	webhookRepo repositories.WebhookRepository
	summarizer  svc.Summarizer
	push        svc.PushSender
	dispatcher  svc.WebhookDispatcher
	tiers       *config.TierConfig
}

// NewNotepadUseCase creates the notepad use case.
func NewNotepadUseCase(
	notepadRepo repositories.NotepadRepository,
	userRepo repositories.UserRepository,
	webhookRepo repositories.WebhookRepository,
	summarizer svc.Summarizer,
	push svc.PushSender,
	dispatcher svc.WebhookDispatcher,
	tiers *config.TierConfig,
) *NotepadUseCase {
	return &NotepadUseCase{
		notepadRepo: notepadRepo,
		userRepo:    userRepo,
		webhookRepo: webhookRepo,
		summarizer:  summarizer,
		push:        push,
		dispatcher:  dispatcher,
		tiers:       tiers,
	}
}

// Create allocates a notepad under a fresh memorable code. With a user
// the notepad is owned and lives a year; without one it is a guest pad.
func (uc *NotepadUseCase) Create(ctx context.Context, userID *string) (*entities.Notepad, error) {
	log := logger.Log(ctx).With(zap.String("usecase", "notepad"), zap.String("method", "Create"))

	code, err := uc.allocateCode(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	notepad := &entities.Notepad{
		Code:        code,
		AccountTier: entities.TierGuest,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	lifetime := uc.tiers.GuestLifetime()
	if userID != nil {
		notepad.UserID = userID
		notepad.AccountTier = entities.TierUser
		lifetime = uc.tiers.UserLifetime()
	}
	expiresAt := now.Add(lifetime)
	notepad.ExpiresAt = &expiresAt

	created, err := uc.notepadRepo.Create(ctx, notepad)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingNotepad, err)
	}

	log.Info(ctx, msgNotepadCreated, zap.String("code", created.Code), zap.String("tier", string(created.AccountTier)))
	return created, nil
}

func (uc *NotepadUseCase) allocateCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < codeAttempts; attempt++ {
		code := GenerateCode()
		exists, err := uc.notepadRepo.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("%s: %w", errCtxGeneratingCode, err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", entities.ErrCodeGeneration
}

// Get returns a live notepad by code. Codes are case-insensitive.
func (uc *NotepadUseCase) Get(ctx context.Context, code string) (*entities.Notepad, error) {
	notepad, err := uc.notepadRepo.GetByCode(ctx, normalizeCode(code))
	if err != nil {
		return nil, err
	}
	if notepad.Expired(time.Now().UTC(), uc.tiers.GuestLifetime(), uc.tiers.UserLifetime()) {
		return nil, entities.ErrNotepadExpired
	}
	return notepad, nil
}

// Append adds one entry and fires the owner's notifications in the
// background.
func (uc *NotepadUseCase) Append(ctx context.Context, code, text string) (*entities.Notepad, error) {
	log := logger.Log(ctx).With(zap.String("usecase", "notepad"), zap.String("method", "Append"))

	if strings.TrimSpace(text) == "" {
		return nil, entities.ErrEmptyEntryText
	}

	notepad, err := uc.Get(ctx, code)
	if err != nil {
		return nil, err
	}

	entry, err := uc.notepadRepo.AppendEntry(ctx, notepad.ID, text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxAppendingEntry, err)
	}
	notepad.Entries = append(notepad.Entries, *entry)
	notepad.UpdatedAt = entry.CreatedAt

	log.Info(ctx, msgEntryAppended, zap.String("code", notepad.Code))
	uc.notifyAsync(ctx, notepad, entities.EventNewEntry, text)

	return notepad, nil
}

// Clear removes every entry. Expired notepads can still be cleared;
// only existence is checked.
func (uc *NotepadUseCase) Clear(ctx context.Context, code string) error {
	log := logger.Log(ctx).With(zap.String("usecase", "notepad"), zap.String("method", "Clear"))

	notepad, err := uc.notepadRepo.GetByCode(ctx, normalizeCode(code))
	if err != nil {
		return err
	}

	if err := uc.notepadRepo.ClearEntries(ctx, notepad.ID); err != nil {
		return fmt.Errorf("%s: %w", errCtxClearingEntries, err)
	}

	log.Info(ctx, msgNotepadCleared, zap.String("code", notepad.Code))
	uc.notifyAsync(ctx, notepad, entities.EventNotepadCleared, "")

	return nil
}

// Export renders the notepad as a downloadable file.
func (uc *NotepadUseCase) Export(ctx context.Context, code, format string) (*ExportFile, error) {
	notepad, err := uc.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	return renderExport(notepad, format)
}

// Summarize asks the LLM for a digest of the notepad's entries.
func (uc *NotepadUseCase) Summarize(ctx context.Context, code string, maxLength int) (*dto.SummarizeResponse, error) {
	notepad, err := uc.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(notepad.Entries) == 0 {
		return nil, entities.ErrNoEntries
	}
	if maxLength <= 0 {
		maxLength = defaultSummaryLength
	}

	texts := make([]string, 0, len(notepad.Entries))
	for _, e := range notepad.Entries {
		texts = append(texts, e.Text)
	}

	summary, err := uc.summarizer.Summarize(ctx, strings.Join(texts, "\n\n"), maxLength)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxSummarizing, err)
	}

	return &dto.SummarizeResponse{
		Code:       notepad.Code,
		Summary:    summary,
		EntryCount: len(notepad.Entries),
		Model:      uc.summarizer.Model(),
	}, nil
}

// Share grants another account access to the notepad. Only the owner
// can share; sharing twice is reported, not an error.
func (uc *NotepadUseCase) Share(ctx context.Context, code, ownerID, email string) (bool, error) {
	log := logger.Log(ctx).With(zap.String("usecase", "notepad"), zap.String("method", "Share"))

	notepad, err := uc.Get(ctx, code)
	if err != nil {
		return false, err
	}
	if notepad.UserID == nil || *notepad.UserID != ownerID {
		return false, entities.ErrNotOwner
	}

	target, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if target.ID == ownerID {
		return false, entities.ErrSelfShare
	}

	added, err := uc.notepadRepo.AddCollaborator(ctx, notepad.ID, target.ID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtxSharingNotepad, err)
	}

	if added {
		log.Info(ctx, msgNotepadShared, zap.String("code", notepad.Code))
	}
	return added, nil
}

// Unshare revokes a collaborator's access.
func (uc *NotepadUseCase) Unshare(ctx context.Context, code, ownerID, email string) error {
	log := logger.Log(ctx).With(zap.String("usecase", "notepad"), zap.String("method", "Unshare"))

	notepad, err := uc.Get(ctx, code)
	if err != nil {
		return err
	}
	if notepad.UserID == nil || *notepad.UserID != ownerID {
		return entities.ErrNotOwner
	}

	target, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := uc.notepadRepo.RemoveCollaborator(ctx, notepad.ID, target.ID); err != nil {
		return err
	}

	log.Info(ctx, msgNotepadUnshared, zap.String("code", notepad.Code))
	return nil
}

// Collaborators lists the owner and everyone with shared access. The
// caller must be the owner or one of the collaborators.
func (uc *NotepadUseCase) Collaborators(ctx context.Context, code, callerID string) (*dto.CollaboratorsResponse, error) {
	notepad, err := uc.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if notepad.UserID == nil {
		return nil, entities.ErrNotOwner
	}

	collaborators, err := uc.notepadRepo.ListCollaborators(ctx, notepad.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingSharing, err)
	}

	allowed := *notepad.UserID == callerID
	items := make([]dto.CollaboratorResponse, 0, len(collaborators))
	for _, c := range collaborators {
		if c.ID == callerID {
			allowed = true
		}
		items = append(items, *dto.NewCollaboratorResponse(c))
	}
	if !allowed {
		return nil, entities.ErrNotOwner
	}

	owner, err := uc.userRepo.FindByID(ctx, *notepad.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingNotepad, err)
	}

	return &dto.CollaboratorsResponse{
		Owner:         dto.NewCollaboratorResponse(owner),
		Collaborators: items,
	}, nil
}

// Search pages through the caller's own and shared notepads.
func (uc *NotepadUseCase) Search(ctx context.Context, userID string, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	filter := repositories.SearchFilter{
		Query:      strings.TrimSpace(req.Query),
		CodePrefix: normalizeCode(req.Code),
		Page:       req.Page,
		Limit:      req.Limit,
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultSearchLimit
	}
	if filter.Limit > maxSearchLimit {
		filter.Limit = maxSearchLimit
	}

	var err error
	if filter.DateFrom, err = parseSearchDate(req.DateFrom, false); err != nil {
		return nil, err
	}
	if filter.DateTo, err = parseSearchDate(req.DateTo, true); err != nil {
		return nil, err
	}

	hits, total, err := uc.notepadRepo.Search(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxSearchingNotepads, err)
	}

	items := make([]dto.SearchItem, 0, len(hits))
	for _, h := range hits {
		items = append(items, dto.SearchItem{
			ID:              h.Notepad.ID,
			Code:            h.Notepad.Code,
			AccountType:     string(h.Notepad.AccountTier),
			EntryCount:      len(h.Notepad.Entries),
			MatchingEntries: h.MatchingEntries,
			Preview:         h.Preview,
			CreatedAt:       h.Notepad.CreatedAt,
			UpdatedAt:       h.Notepad.UpdatedAt,
			ExpiresAt:       h.Notepad.ExpiresAt,
		})
	}

	pages := 0
	if total > 0 {
		pages = int(math.Ceil(float64(total) / float64(filter.Limit)))
	}

	return &dto.SearchResponse{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Pages: pages,
	}, nil
}

// notifyAsync fires the owner's webhooks and push notifications on a
// detached context so the request does not wait on them.
func (uc *NotepadUseCase) notifyAsync(ctx context.Context, notepad *entities.Notepad, event, text string) {
	if notepad.UserID == nil {
		return
	}
	ownerID := *notepad.UserID
	log := logger.Log(ctx)

	go func() {
		bgCtx, cancel := context.WithTimeout(logger.NewContext(context.Background(), log), sideEffectTimeout)
		defer cancel()

		payload := svc.WebhookEvent{
			Event:     event,
			Code:      notepad.Code,
			Text:      text,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}

		webhooks, err := uc.webhookRepo.ListActiveForEvent(bgCtx, ownerID, event)
		if err != nil {
			log.Warn(bgCtx, "failed to list webhooks for event", zap.Error(err))
		}
		for _, w := range webhooks {
			if err := uc.dispatcher.Dispatch(bgCtx, w, payload); err == nil {
				log.Debug(bgCtx, msgWebhookDispatched, zap.String("webhookID", w.ID))
			}
		}

		if event != entities.EventNewEntry {
			return
		}
		owner, err := uc.userRepo.FindByID(bgCtx, ownerID)
		if err != nil || len(owner.PushTokens) == 0 {
			return
		}
		title := fmt.Sprintf("New entry in %s", notepad.Code)
		if err := uc.push.Send(bgCtx, owner.PushTokens, title, truncate(text, 120)); err != nil {
			log.Warn(bgCtx, "failed to send push notification", zap.Error(err))
		}
	}()
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// truncate shortens s to at most n runes, never splitting a multi-byte
// character.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func parseSearchDate(value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t, err = time.Parse("2006-01-02", value)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", value, entities.ErrInvalidDate)
		}
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
	}
	return &t, nil
}
