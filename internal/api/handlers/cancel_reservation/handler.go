package cancel_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/OfficeBookingService/internal/api/handlers"
	"github.com/m04kA/OfficeBookingService/internal/api/middleware"
	"github.com/m04kA/OfficeBookingService/internal/service/reservations"
)

const (
	msgInvalidReservationID = "invalid reservation id"
	msgNotFound             = "reservation not found"
	msgUnauthenticated      = "Unauthenticated."
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil || reservationID <= 0 {
		h.logger.Warn("DELETE /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /reservations/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgUnauthenticated)
		return
	}

	result, err := h.service.Cancel(r.Context(), reservationID, userID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("DELETE /reservations/{id} - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case handlers.RespondFieldError(w, err):
			h.logger.Warn("DELETE /reservations/{id} - Cannot cancel: reservation_id=%d, user_id=%d", reservationID, userID)

		default:
			h.logger.Error("DELETE /reservations/{id} - Failed to cancel reservation: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reservations/{id} - Reservation cancelled successfully: reservation_id=%d", reservationID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
