package get_available_dates

import (
	"net/http"

	"github.com/m04kA/SMC-CafeOrderService/internal/api/handlers"
	getAvailableDates "github.com/m04kA/SMC-CafeOrderService/internal/usecase/get_available_dates"
)

// DateResponse HTTP response model
type DateResponse struct {
	Date         string `json:"date"`
	IsSelectable bool   `json:"isSelectable"`
	IsToday      bool   `json:"isToday"`
}

type DatesResponse struct {
	Dates []DateResponse `json:"dates"`
}

type Handler struct {
	useCase GetAvailableDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("GET /dates - Failed to get dates: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /dates - Dates retrieved successfully: dates_count=%d", len(result.Dates))
	handlers.RespondJSON(w, http.StatusOK, fromUseCaseResponse(result))
}

func fromUseCaseResponse(resp *getAvailableDates.Response) *DatesResponse {
	dates := make([]DateResponse, 0, len(resp.Dates))
	for _, d := range resp.Dates {
		dates = append(dates, DateResponse{
			Date:         d.Date.String(),
			IsSelectable: d.IsSelectable,
			IsToday:      d.IsToday,
		})
	}
	return &DatesResponse{Dates: dates}
}
