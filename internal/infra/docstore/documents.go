package docstore

import (
	"time"

	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
	"github.com/m04kA/SMC-CafeOrderService/pkg/types"
)

const settingsID = "global"

var timeNow = time.Now

type settingsDoc struct {
	ID               string    `bson:"_id"`
	MaxOrdersPerSlot int       `bson:"maxOrdersPerSlot"`
	BlockedDates     []string  `bson:"blockedDates"`
	UpdatedAt        time.Time `bson:"updatedAt"`
}

type slotDoc struct {
	Key   string `bson:"_id"`
	Date  string `bson:"date"`
	Time  string `bson:"time"`
	Count int    `bson:"count"`
}

type itemDoc struct {
	ProductID string  `bson:"productId,omitempty"`
	Name      string  `bson:"name"`
	Price     float64 `bson:"price"`
	Quantity  int     `bson:"quantity"`
}

type orderDoc struct {
	ID            string    `bson:"_id"`
	Items         []itemDoc `bson:"items"`
	Total         float64   `bson:"total"`
	PickupDate    string    `bson:"pickupDate"`
	PickupTime    string    `bson:"pickupTime"`
	UserID        string    `bson:"userId"`
	UserEmail     string    `bson:"userEmail,omitempty"`
	PaymentStatus string    `bson:"paymentStatus"`
	CreatedAt     time.Time `bson:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt"`
}

func toSettingsDoc(s *domain.Settings) settingsDoc {
	normalized := s.Clone()
	normalized.Normalize()

	blocked := make([]string, 0, len(normalized.BlockedDates))
	for _, d := range normalized.BlockedDates {
		blocked = append(blocked, d.String())
	}
	return settingsDoc{
		ID:               settingsID,
		MaxOrdersPerSlot: normalized.MaxOrdersPerSlot,
		BlockedDates:     blocked,
		UpdatedAt:        normalized.UpdatedAt.UTC(),
	}
}

func (d settingsDoc) toDomain() (*domain.Settings, error) {
	blocked := make([]domain.CalendarDate, 0, len(d.BlockedDates))
	for _, raw := range d.BlockedDates {
		date, err := domain.ParseCalendarDate(raw)
		if err != nil {
			return nil, err
		}
		blocked = append(blocked, date)
	}
	return &domain.Settings{
		MaxOrdersPerSlot: d.MaxOrdersPerSlot,
		BlockedDates:     blocked,
		UpdatedAt:        d.UpdatedAt,
	}, nil
}

func toOrderDoc(o *domain.Order) orderDoc {
	items := make([]itemDoc, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, itemDoc{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	return orderDoc{
		ID:            o.ID,
		Items:         items,
		Total:         o.Total,
		PickupDate:    o.PickupDate.String(),
		PickupTime:    o.PickupTime.String(),
		UserID:        o.UserID,
		UserEmail:     o.UserEmail,
		PaymentStatus: string(o.PaymentStatus),
		CreatedAt:     o.CreatedAt.UTC(),
		UpdatedAt:     o.UpdatedAt.UTC(),
	}
}

func (d orderDoc) toDomain() (*domain.Order, error) {
	date, err := domain.ParseCalendarDate(d.PickupDate)
	if err != nil {
		return nil, err
	}
	pickupTime, err := types.NewTimeStringFromString(d.PickupTime)
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	return &domain.Order{
		ID:            d.ID,
		Items:         items,
		Total:         d.Total,
		PickupDate:    date,
		PickupTime:    pickupTime,
		UserID:        d.UserID,
		UserEmail:     d.UserEmail,
		PaymentStatus: domain.PaymentStatus(d.PaymentStatus),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}
