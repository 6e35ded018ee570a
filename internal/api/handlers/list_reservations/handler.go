package list_reservations

import (
	"net/http"

	"github.com/m04kA/OfficeBookingService/internal/api/handlers"
	"github.com/m04kA/OfficeBookingService/internal/api/middleware"
	"github.com/m04kA/OfficeBookingService/internal/service/reservations/models"
)

const msgUnauthenticated = "Unauthenticated."

// View чьи бронирования показывать
type View int

const (
	// VisitorView бронирования, сделанные пользователем
	VisitorView View = iota
	// HostView бронирования по офисам пользователя
	HostView
)

type Handler struct {
	service ReservationService
	view    View
	logger  Logger
}

func NewHandler(service ReservationService, view View, logger Logger) *Handler {
	return &Handler{
		service: service,
		view:    view,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations и GET /api/v1/host/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET %s - Missing user ID", r.URL.Path)
		handlers.RespondUnauthorized(w, msgUnauthenticated)
		return
	}

	query, err := parseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET %s - Invalid query: %v", r.URL.Path, err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	var result *models.ReservationListResponse
	if h.view == HostView {
		result, err = h.service.ListHostReservations(r.Context(), &models.ListHostReservationsRequest{
			HostID:    userID,
			VisitorID: query.visitorID,
			OfficeID:  query.officeID,
			Status:    query.status,
			FromDate:  query.fromDate,
			ToDate:    query.toDate,
			Page:      query.page,
		})
	} else {
		result, err = h.service.ListVisitorReservations(r.Context(), &models.ListVisitorReservationsRequest{
			UserID:   userID,
			OfficeID: query.officeID,
			Status:   query.status,
			FromDate: query.fromDate,
			ToDate:   query.toDate,
			Page:     query.page,
		})
	}
	if err != nil {
		if handlers.RespondFieldError(w, err) {
			h.logger.Warn("GET %s - Invalid filter: user_id=%d: %v", r.URL.Path, userID, err)
			return
		}
		h.logger.Error("GET %s - Failed to list reservations: user_id=%d, error=%v", r.URL.Path, userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET %s - Reservations retrieved successfully: user_id=%d, count=%d, total=%d",
		r.URL.Path, userID, len(result.Reservations), result.Total)
	handlers.RespondJSON(w, http.StatusOK, toListResponse(result))
}
