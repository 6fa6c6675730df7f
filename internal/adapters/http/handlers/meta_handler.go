package handlers

import (
	"betamoney/internal/core/domain"
	"betamoney/internal/pkg/response"
	"betamoney/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// MetaHandler serves fixed reference data for the submission form
type MetaHandler struct{}

// NewMetaHandler creates a new meta handler
func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

// GetCommittees returns the committee enumeration used as categories
func (h *MetaHandler) GetCommittees(c *fiber.Ctx) error {
	return response.Success(c, "Committees retrieved", domain.Committees)
}

// GetUploadLimits returns receipt upload constraints
func (h *MetaHandler) GetUploadLimits(c *fiber.Ctx) error {
	return response.Success(c, "Upload limits retrieved", fiber.Map{
		"max_size_bytes": validate.MaxReceiptSizeBytes,
		"allowed_types":  validate.AllowedReceiptTypes,
	})
}
