package services

import (
	"context"
	"fmt"
	"time"

	"betamoney/internal/adapters/persistence/models"
	"betamoney/internal/adapters/persistence/repositories"
	"betamoney/internal/core/domain"
	"betamoney/internal/pkg/format"
	"betamoney/internal/pkg/validate"

	"github.com/google/uuid"
)

// SubmitInput represents a reimbursement submission before validation
type SubmitInput struct {
	Amount      string
	Description string
	Category    string
	Receipt     *ReceiptFile
}

// RequestService owns the reimbursement request lifecycle: validation,
// submission, and the pending/approved status machine. Authorization
// for status changes is enforced here, not in any caller.
type RequestService struct {
	store            repositories.Store
	receipts         *ReceiptService
	categoryRequired bool
}

// NewRequestService creates a new request service
func NewRequestService(store repositories.Store, receipts *ReceiptService, categoryRequired bool) *RequestService {
	return &RequestService{
		store:            store,
		receipts:         receipts,
		categoryRequired: categoryRequired,
	}
}

// Validate checks a submission and returns every violated rule at
// once, not just the first.
func (s *RequestService) Validate(input *SubmitInput) []string {
	var violations []string

	if !validate.Required(input.Description) {
		violations = append(violations, "Description is required")
	}

	if _, ok := validate.Amount(input.Amount); !ok {
		violations = append(violations, "Please enter a valid amount")
	}

	if s.categoryRequired && !validate.Required(input.Category) {
		violations = append(violations, "Committee is required")
	}
	if validate.Required(input.Category) && !domain.IsCommittee(input.Category) {
		violations = append(violations, "Unknown committee")
	}

	if input.Receipt == nil {
		violations = append(violations, "Please upload a receipt image")
	} else {
		if !validate.ReceiptSize(input.Receipt.Size) {
			violations = append(violations, fmt.Sprintf("File size must be less than %s",
				format.FileSize(validate.MaxReceiptSizeBytes)))
		}
		if !validate.ReceiptType(input.Receipt.ContentType) {
			violations = append(violations, "Please select a valid image file (JPEG, PNG, WebP)")
		}
	}

	return violations
}

// Submit validates and persists a new request. A submission never
// mutates an existing request: id is fresh, status starts pending,
// created_at and updated_at are set to the same instant.
func (s *RequestService) Submit(ctx context.Context, input *SubmitInput, user *models.User) (*models.Request, error) {
	if violations := s.Validate(input); len(violations) > 0 {
		return nil, domain.NewValidationError(violations)
	}

	amount, _ := validate.Amount(input.Amount)

	id := uuid.NewString()
	imageURL, err := s.receipts.Store(ctx, id, input.Receipt)
	if err != nil {
		return nil, fmt.Errorf("failed to store receipt: %w", err)
	}

	now := time.Now()
	request := &models.Request{
		ID:          id,
		UserID:      user.ID,
		Amount:      amount,
		Description: input.Description,
		Category:    input.Category,
		Status:      string(domain.StatusPending),
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.SaveRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to save request: %w", err)
	}

	return request, nil
}

// SetStatus transitions a request between pending and approved. Only
// the OWNER role may do this; a same-status write is allowed and still
// bumps updated_at. Both directions stay open indefinitely.
func (s *RequestService) SetStatus(ctx context.Context, id string, status domain.RequestStatus, actor *models.User) (*models.Request, error) {
	if !actor.IsOwner() {
		return nil, domain.ErrForbidden
	}
	if !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	request, err := s.store.GetRequestByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load request: %w", err)
	}
	if request == nil {
		return nil, domain.ErrRequestNotFound
	}

	if err := s.store.UpdateRequestStatus(ctx, id, string(status)); err != nil {
		return nil, fmt.Errorf("failed to update request status: %w", err)
	}

	updated, err := s.store.GetRequestByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload request: %w", err)
	}
	return updated, nil
}

// GetByID loads a single request; guests may only see their own
func (s *RequestService) GetByID(ctx context.Context, id string, actor *models.User) (*models.Request, error) {
	request, err := s.store.GetRequestByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load request: %w", err)
	}
	if request == nil {
		return nil, domain.ErrRequestNotFound
	}
	if !actor.IsOwner() && request.UserID != actor.ID {
		return nil, domain.ErrRequestNotFound
	}
	return request, nil
}

// ListFor returns the requests visible to a user: all of them for the
// OWNER, own requests for a guest. Ordered by created_at descending.
func (s *RequestService) ListFor(ctx context.Context, user *models.User) ([]models.Request, error) {
	if user.IsOwner() {
		return s.store.GetAllRequests(ctx)
	}
	return s.store.GetRequestsForUser(ctx, user.ID)
}

// FilterByStatus is a pure filter with no persistence access. An empty
// status passes everything through.
func (s *RequestService) FilterByStatus(requests []models.Request, status domain.RequestStatus) []models.Request {
	if status == "" {
		return requests
	}
	filtered := make([]models.Request, 0, len(requests))
	for _, r := range requests {
		if r.Status == string(status) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
