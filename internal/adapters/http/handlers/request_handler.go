package handlers

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"betamoney/internal/adapters/persistence/models"
	"betamoney/internal/core/domain"
	"betamoney/internal/core/services"
	"betamoney/internal/pkg/pagination"
	"betamoney/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RequestHandler handles reimbursement request endpoints
type RequestHandler struct {
	requestService *services.RequestService
	watchService   *services.WatchService
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(requestService *services.RequestService, watchService *services.WatchService) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
		watchService:   watchService,
	}
}

// SetStatusRequest represents a status transition input
type SetStatusRequest struct {
	Status string `json:"status"`
}

// actor rebuilds the acting user from auth middleware locals
func actor(c *fiber.Ctx) (*models.User, bool) {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		return nil, false
	}
	name, _ := c.Locals("userName").(string)
	role, _ := c.Locals("role").(string)
	return &models.User{ID: userID, Name: name, Role: role}, true
}

// ============================================================
// POST /api/v1/requests — submit with receipt (multipart)
// ============================================================
func (h *RequestHandler) Submit(c *fiber.Ctx) error {
	user, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	input := &services.SubmitInput{
		Amount:      c.FormValue("amount"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
	}

	if fileHeader, err := c.FormFile("receipt"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			return response.BadRequest(c, "Failed to open receipt upload")
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return response.BadRequest(c, "Failed to read receipt upload")
		}
		input.Receipt = &services.ReceiptFile{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Data:        data,
		}
	}

	request, err := h.requestService.Submit(c.Context(), input, user)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			return response.ValidationFailed(c, ve.Errors)
		}
		return response.InternalServerError(c, "Failed to submit request")
	}

	return response.Created(c, "Request submitted successfully!", request)
}

// ============================================================
// GET /api/v1/requests — visible requests, optional status filter
// ============================================================
func (h *RequestHandler) List(c *fiber.Ctx) error {
	user, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	status := domain.RequestStatus(c.Query("status"))
	if status != "" && !status.IsValid() {
		return response.BadRequest(c, "Invalid status filter")
	}

	requests, err := h.requestService.ListFor(c.Context(), user)
	if err != nil {
		return response.InternalServerError(c, "Failed to get requests")
	}
	requests = h.requestService.FilterByStatus(requests, status)

	params := pagination.GetParams(c)
	page := pagination.Window(requests, params)

	return response.Success(c, "Requests retrieved",
		pagination.NewResponse(page, params, int64(len(requests))))
}

// ============================================================
// GET /api/v1/requests/:id — request detail
// ============================================================
func (h *RequestHandler) GetByID(c *fiber.Ctx) error {
	user, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	request, err := h.requestService.GetByID(c.Context(), c.Params("id"), user)
	if err != nil {
		if errors.Is(err, domain.ErrRequestNotFound) {
			return response.NotFound(c, "Request not found")
		}
		return response.InternalServerError(c, "Failed to get request")
	}

	return response.Success(c, "Request retrieved", request)
}

// ============================================================
// PATCH /api/v1/requests/:id/status — treasurer status transition
// ============================================================
func (h *RequestHandler) SetStatus(c *fiber.Ctx) error {
	user, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	var req SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	request, err := h.requestService.SetStatus(c.Context(), c.Params("id"), domain.RequestStatus(req.Status), user)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			return response.Forbidden(c, "Only the treasurer may change request status")
		case errors.Is(err, domain.ErrInvalidStatus):
			return response.BadRequest(c, "Status must be 'pending' or 'approved'")
		case errors.Is(err, domain.ErrRequestNotFound):
			return response.NotFound(c, "Request not found")
		default:
			return response.InternalServerError(c, "Failed to update status")
		}
	}

	return response.Success(c, "Status updated successfully!", request)
}

// ============================================================
// GET /api/v1/requests/stream — SSE snapshots from the watch poller
// ============================================================
func (h *RequestHandler) Stream(c *fiber.Ctx) error {
	user, ok := actor(c)
	if !ok {
		return response.Unauthorized(c, "User not authenticated")
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	ch, unsubscribe := h.watchService.Subscribe(user)
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()
		for snapshot := range ch {
			payload, err := json.Marshal(snapshot)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				// Client went away; the in-flight snapshot is discarded.
				return
			}
		}
	})
	return nil
}
