package get_available_slots

import (
	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-CafeOrderService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date             string         `json:"date"`
	IsBlocked        bool           `json:"isBlocked"`
	MaxOrdersPerSlot int            `json:"maxOrdersPerSlot"`
	Slots            []SlotResponse `json:"slots"`
}

type SlotResponse struct {
	Time         string `json:"time"`
	IsSelectable bool   `json:"isSelectable"`
	Booked       int    `json:"booked"`
	Remaining    int    `json:"remaining"`
}

// ToUseCaseRequest парсит дату из query
func ToUseCaseRequest(dateStr string) (*getAvailableSlots.Request, error) {
	date, err := domain.ParseCalendarDate(dateStr)
	if err != nil {
		return nil, err
	}
	return &getAvailableSlots.Request{Date: date}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			Time:         s.Time.String(),
			IsSelectable: s.IsSelectable,
			Booked:       s.Booked,
			Remaining:    s.Remaining,
		})
	}
	return &AvailableSlotsResponse{
		Date:             resp.Date.String(),
		IsBlocked:        resp.IsBlocked,
		MaxOrdersPerSlot: resp.MaxOrdersPerSlot,
		Slots:            slots,
	}
}
