package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/OfficeBookingService/internal/api/handlers"
	"github.com/m04kA/OfficeBookingService/internal/api/middleware"
	createReservation "github.com/m04kA/OfficeBookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid date, expected YYYY-MM-DD"
	msgUnauthenticated    = "Unauthenticated."
)

type Handler struct {
	useCase           CreateReservationUseCase
	retryAfterSeconds int
	logger            Logger
}

// NewHandler retryAfter - подсказка клиенту, когда офис занят параллельным бронированием
func NewHandler(useCase CreateReservationUseCase, retryAfter int, logger Logger) *Handler {
	if retryAfter < 1 {
		retryAfter = 1
	}

	return &Handler{
		useCase:           useCase,
		retryAfterSeconds: retryAfter,
		logger:            logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgUnauthenticated)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if fieldErrors := handlers.Validate(&req); fieldErrors != nil {
		h.logger.Warn("POST /reservations - Validation failed: user_id=%d, errors=%v", userID, fieldErrors)
		handlers.RespondValidationErrors(w, fieldErrors)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case handlers.RespondFieldError(w, err):
			h.logger.Warn("POST /reservations - Rejected: user_id=%d, office_id=%d: %v", userID, req.OfficeID, err)

		case errors.Is(err, createReservation.ErrBusy):
			h.logger.Warn("POST /reservations - Office busy: user_id=%d, office_id=%d", userID, req.OfficeID)
			handlers.RespondServiceUnavailable(w, h.retryAfterSeconds)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, office_id=%d, error=%v",
				userID, req.OfficeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, user_id=%d, office_id=%d",
		result.ID, userID, req.OfficeID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
