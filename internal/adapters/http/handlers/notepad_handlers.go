package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"pastebridge/internal/adapters/http/middleware"
	"pastebridge/internal/app"
	"pastebridge/internal/app/dto"
	"pastebridge/pkg/logger"
)

const (
	errInvalidRequestBody = "Invalid request body"
	errCodeRequired       = "code is required"
	errEmailRequired      = "email is required"
)

// NotepadHandler serves the notepad route group.
type NotepadHandler struct {
	notepads *app.NotepadUseCase
}

// NewNotepadHandler creates the notepad handler.
func NewNotepadHandler(notepads *app.NotepadUseCase) *NotepadHandler {
	return &NotepadHandler{notepads: notepads}
}

// Create handles POST /notepad.
func (h *NotepadHandler) Create(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()

	var userID *string
	if id, ok := middleware.UserID(ctx); ok {
		userID = &id
	}

	notepad, err := h.notepads.Create(requestCtx, userID)
	if err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(dto.NewNotepadResponse(notepad))
}

// Get handles GET /notepad/:code.
func (h *NotepadHandler) Get(ctx fiber.Ctx) error {
	notepad, err := h.notepads.Get(ctx.Context(), ctx.Params("code"))
	if err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(dto.NewNotepadResponse(notepad))
}

// Lookup handles POST /notepad/lookup.
func (h *NotepadHandler) Lookup(ctx fiber.Ctx) error {
	var req dto.CodeLookupRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": errInvalidRequestBody})
	}
	if req.Code == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": errCodeRequired})
	}

	notepad, err := h.notepads.Get(ctx.Context(), req.Code)
	if err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(dto.NewNotepadResponse(notepad))
}

// Append handles POST /notepad/:code/append.
func (h *NotepadHandler) Append(ctx fiber.Ctx) error {
	var req dto.AppendTextRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": errInvalidRequestBody})
	}

	notepad, err := h.notepads.Append(ctx.Context(), ctx.Params("code"), req.Text)
	if err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(dto.NewNotepadResponse(notepad))
}

// Clear handles DELETE /notepad/:code.
func (h *NotepadHandler) Clear(ctx fiber.Ctx) error {
	if err := h.notepads.Clear(ctx.Context(), ctx.Params("code")); err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"message": "Notepad cleared"})
}

// Export handles GET /notepad/:code/export.
func (h *NotepadHandler) Export(ctx fiber.Ctx) error {
	file, err := h.notepads.Export(ctx.Context(), ctx.Params("code"), ctx.Query("format"))
	if err != nil {
		return apiError(ctx, err)
	}

	ctx.Set(fiber.HeaderContentType, file.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
	return ctx.Send(file.Body)
}

// Summarize handles POST /notepad/:code/summarize.
func (h *NotepadHandler) Summarize(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)

	var req dto.SummarizeRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.Bind().JSON(&req); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": errInvalidRequestBody})
		}
	}

	resp, err := h.notepads.Summarize(requestCtx, ctx.Params("code"), req.MaxLength)
	if err != nil {
		log.Debug(requestCtx, "summarize failed", zap.Error(err))
		return apiError(ctx, err)
	}
	return ctx.JSON(resp)
}

// Share handles POST /notepad/:code/share.
func (h *NotepadHandler) Share(ctx fiber.Ctx) error {
	userID, _ := middleware.UserID(ctx)

	var req dto.ShareRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": errInvalidRequestBody})
	}
	if req.Email == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": errEmailRequired})
	}

	added, err := h.notepads.Share(ctx.Context(), ctx.Params("code"), userID, req.Email)
	if err != nil {
		return apiError(ctx, err)
	}
	if !added {
		return ctx.JSON(fiber.Map{"message": "User already has access"})
	}
	return ctx.JSON(fiber.Map{"message": fmt.Sprintf("Notepad shared with %s", req.Email)})
}

// Unshare handles DELETE /notepad/:code/share/:email.
func (h *NotepadHandler) Unshare(ctx fiber.Ctx) error {
	userID, _ := middleware.UserID(ctx)

	if err := h.notepads.Unshare(ctx.Context(), ctx.Params("code"), userID, ctx.Params("email")); err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(fiber.Map{"message": "Access revoked"})
}

// Collaborators handles GET /notepad/:code/collaborators.
func (h *NotepadHandler) Collaborators(ctx fiber.Ctx) error {
	userID, _ := middleware.UserID(ctx)

	resp, err := h.notepads.Collaborators(ctx.Context(), ctx.Params("code"), userID)
	if err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(resp)
}

// Search handles POST /notepad/search.
func (h *NotepadHandler) Search(ctx fiber.Ctx) error {
	userID, _ := middleware.UserID(ctx)

	var req dto.SearchRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": errInvalidRequestBody})
	}

	resp, err := h.notepads.Search(ctx.Context(), userID, &req)
	if err != nil {
		return apiError(ctx, err)
	}
	return ctx.JSON(resp)
}
