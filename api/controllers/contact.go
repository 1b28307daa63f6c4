package controllers

import (
	"net/http"

	"github.com/galleryhaus/gallery-backend/api/responses"
	"github.com/galleryhaus/gallery-backend/api/validators"
	inquirysvc "github.com/galleryhaus/gallery-backend/internal/inquiry"
	pkgerrors "github.com/galleryhaus/gallery-backend/pkg/errors"
	"github.com/galleryhaus/gallery-backend/pkg/logger"
	"github.com/galleryhaus/gallery-backend/pkg/types"
)

// ContactRelay handles the plain contact form. Unlike the cart inquiry, a
// message body is mandatory here.
func ContactRelay(svc inquirysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inquiry service unavailable"))
			return
		}

		var payload contactRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "Missing required fields"))
			return
		}

		in := inquirysvc.ContactMessage{
			Email:   payload.Email,
			Name:    payload.Name,
			Message: payload.Message,
		}
		if err := svc.RelayContactMessage(r.Context(), in); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.MessageResponse{Message: inquirySentMessage})
	}
}

type contactRequest struct {
	Email   string `json:"email" validate:"required,contains=@"`
	Name    string `json:"name" validate:"required"`
	Message string `json:"message" validate:"required"`
}
