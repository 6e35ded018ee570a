package get_office_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/OfficeBookingService/internal/api/handlers"
	"github.com/m04kA/OfficeBookingService/internal/domain"
	getOfficeAvailability "github.com/m04kA/OfficeBookingService/internal/usecase/get_office_availability"
)

const (
	msgInvalidOfficeID = "invalid office id"
	msgInvalidDate     = "invalid date, expected YYYY-MM-DD"
	msgOfficeNotFound  = "office not found"
)

type Handler struct {
	useCase GetOfficeAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetOfficeAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/offices/{officeId}/occupied-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	officeID, err := strconv.ParseInt(mux.Vars(r)["officeId"], 10, 64)
	if err != nil || officeID <= 0 {
		h.logger.Warn("GET /offices/{id}/occupied-dates - Invalid office ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOfficeID)
		return
	}

	from, err := parseOptionalDate(r, "from")
	if err != nil {
		h.logger.Warn("GET /offices/{id}/occupied-dates - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	to, err := parseOptionalDate(r, "to")
	if err != nil {
		h.logger.Warn("GET /offices/{id}/occupied-dates - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &getOfficeAvailability.Request{OfficeID: officeID, From: from, To: to}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getOfficeAvailability.ErrOfficeNotFound):
			h.logger.Warn("GET /offices/{id}/occupied-dates - Office not found: office_id=%d", officeID)
			handlers.RespondNotFound(w, msgOfficeNotFound)

		case handlers.RespondFieldError(w, err):
			h.logger.Warn("GET /offices/{id}/occupied-dates - Invalid window: office_id=%d: %v", officeID, err)

		default:
			h.logger.Error("GET /offices/{id}/occupied-dates - Failed to get occupied dates: office_id=%d, error=%v",
				officeID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func parseOptionalDate(r *http.Request, key string) (*time.Time, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}

	date, err := domain.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
