package models

import (
	"time"

	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
)

// Request модели

// UpdateMaxOrdersRequest запрос на изменение вместимости слота
type UpdateMaxOrdersRequest struct {
	UserID           string `json:"-"`
	MaxOrdersPerSlot int    `json:"maxOrdersPerSlot"`
}

// ToggleBlockedDateRequest запрос на блокировку/разблокировку даты
type ToggleBlockedDateRequest struct {
	UserID string
	Date   domain.CalendarDate
}

// Response модели

// SettingsResponse текущие настройки
type SettingsResponse struct {
	MaxOrdersPerSlot int        `json:"maxOrdersPerSlot"`
	BlockedDates     []string   `json:"blockedDates"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
}

// ToggleBlockedDateResponse результат переключения даты
type ToggleBlockedDateResponse struct {
	Date      string           `json:"date"`
	IsBlocked bool             `json:"isBlocked"`
	Settings  SettingsResponse `json:"settings"`
}

// Конвертеры

// FromDomainSettings конвертирует domain.Settings в SettingsResponse
func FromDomainSettings(s *domain.Settings) *SettingsResponse {
	dates := make([]string, len(s.BlockedDates))
	for i, d := range s.BlockedDates {
		dates[i] = d.String()
	}

	resp := &SettingsResponse{
		MaxOrdersPerSlot: s.MaxOrdersPerSlot,
		BlockedDates:     dates,
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
