package controllers

import (
	"net/http"

	"github.com/galleryhaus/gallery-backend/api/responses"
	"github.com/galleryhaus/gallery-backend/api/validators"
	"github.com/galleryhaus/gallery-backend/internal/cart"
	inquirysvc "github.com/galleryhaus/gallery-backend/internal/inquiry"
	pkgerrors "github.com/galleryhaus/gallery-backend/pkg/errors"
	"github.com/galleryhaus/gallery-backend/pkg/logger"
	"github.com/galleryhaus/gallery-backend/pkg/types"
)

const inquirySentMessage = "Email sent successfully"

// InquiryRelay handles the cart inquiry hand-off from the storefront widget.
// The widget surfaces a single generic validation message, so every malformed
// body collapses into one.
func InquiryRelay(svc inquirysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inquiry service unavailable"))
			return
		}

		var payload inquiryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Missing required fields"))
			return
		}

		if err := svc.RelayCartInquiry(r.Context(), payload.toInput()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.MessageResponse{Message: inquirySentMessage})
	}
}

// inquiryRequest mirrors the widget payload. The service re-validates the
// same fields so the outcome is identical no matter how the input arrived;
// required on CartSummary rejects only a nil slice, an empty cart is valid.
type inquiryRequest struct {
	Email       string             `json:"email" validate:"required,contains=@"`
	Name        string             `json:"name" validate:"required"`
	Message     string             `json:"message"`
	CartSummary []cart.SummaryItem `json:"cartSummary" validate:"required"`
}

func (r inquiryRequest) toInput() inquirysvc.CartInquiry {
	return inquirysvc.CartInquiry{
		Email:   r.Email,
		Name:    r.Name,
		Message: r.Message,
		Items:   r.CartSummary,
	}
}
