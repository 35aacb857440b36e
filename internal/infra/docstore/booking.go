package docstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/m04kA/SMC-CafeOrderService/internal/domain"
)

// GetBookingCount возвращает счетчик слота (0, если документа нет)
func (s *Store) GetBookingCount(ctx context.Context, slot domain.TimeSlot) (int, error) {
	var doc slotDoc
	err := s.slots.FindOne(ctx, bson.M{"_id": slot.Key()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: GetBookingCount: %v", ErrQuery, err)
	}
	return doc.Count, nil
}

// GetBookingCounts возвращает ненулевые счетчики слотов даты по ключу слота
func (s *Store) GetBookingCounts(ctx context.Context, date domain.CalendarDate) (map[string]int, error) {
	cursor, err := s.slots.Find(ctx, bson.M{
		"date":  date.String(),
		"count": bson.M{"$gt": 0},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookingCounts: %v", ErrQuery, err)
	}

	var docs []slotDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: GetBookingCounts: %v", ErrDecode, err)
	}

	counts := make(map[string]int, len(docs))
	for _, d := range docs {
		counts[d.Key] = d.Count
	}
	return counts, nil
}

// slotUpdater часть *mongo.Collection, нужная для резервирования
type slotUpdater interface {
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{},
		opts ...*options.FindOneAndUpdateOptions) *mongo.SingleResult
}

// Reserve увеличивает счетчик слота, пока он меньше maxOrdersPerSlot
func (s *Store) Reserve(ctx context.Context, slot domain.TimeSlot, maxOrdersPerSlot int) error {
	return reserve(ctx, s.slots, slot, maxOrdersPerSlot)
}

// reserve: фильтр не совпал, и upsert пытается вставить документ с тем же _id.
// Duplicate key значит, что документ уже есть: либо слот заполнен, либо его
// одновременно создал другой заказ. Повтор без upsert различает эти случаи:
// документ теперь точно существует, и несовпадение фильтра означает domain.ErrSlotFull
func reserve(ctx context.Context, slots slotUpdater, slot domain.TimeSlot, maxOrdersPerSlot int) error {
	filter, update := reserveUpdate(slot, maxOrdersPerSlot)

	err := slots.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Err()
	if mongo.IsDuplicateKeyError(err) {
		err = slots.FindOneAndUpdate(ctx, filter, update,
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Err()
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrSlotFull
		}
	}
	if err != nil {
		return fmt.Errorf("%w: Reserve: %v", ErrQuery, err)
	}
	return nil
}

func reserveUpdate(slot domain.TimeSlot, maxOrdersPerSlot int) (bson.M, bson.M) {
	filter := bson.M{
		"_id":   slot.Key(),
		"count": bson.M{"$lt": maxOrdersPerSlot},
	}
	update := bson.M{
		"$inc":         bson.M{"count": 1},
		"$setOnInsert": bson.M{"date": slot.Date.String(), "time": slot.Time.String()},
	}
	return filter, update
}

// CreateOrder сохраняет заказ
func (s *Store) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order.UpdatedAt.IsZero() {
		order.UpdatedAt = order.CreatedAt
	}
	if _, err := s.orders.InsertOne(ctx, toOrderDoc(order)); err != nil {
		return nil, fmt.Errorf("%w: CreateOrder: %v", ErrQuery, err)
	}
	return order, nil
}

// GetOrderByID получает заказ по ID или domain.ErrOrderNotFound
func (s *Store) GetOrderByID(ctx context.Context, id string) (*domain.Order, error) {
	var doc orderDoc
	err := s.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOrderByID: %v", ErrQuery, err)
	}
	return decodeOrder(doc)
}

// GetOrdersByUser заказы пользователя, новые первыми
func (s *Store) GetOrdersByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.findOrders(ctx, "GetOrdersByUser", bson.M{"userId": userID}, opts)
}

// GetOrdersByDate заказы на дату выдачи по времени слота
func (s *Store) GetOrdersByDate(ctx context.Context, date domain.CalendarDate) ([]*domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "pickupTime", Value: 1}, {Key: "createdAt", Value: 1}})
	return s.findOrders(ctx, "GetOrdersByDate", bson.M{"pickupDate": date.String()}, opts)
}

// UpdatePaymentStatus меняет статус, только если текущий равен from
func (s *Store) UpdatePaymentStatus(ctx context.Context, id string, from, to domain.PaymentStatus) (*domain.Order, error) {
	var doc orderDoc
	err := s.orders.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "paymentStatus": string(from)},
		bson.M{"$set": bson.M{"paymentStatus": string(to), "updatedAt": timeNow().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err == nil {
		return decodeOrder(doc)
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: UpdatePaymentStatus: %v", ErrQuery, err)
	}

	// Документ не найден по фильтру: заказа нет или статус уже изменен
	n, err := s.orders.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("%w: UpdatePaymentStatus: %v", ErrQuery, err)
	}
	if n == 0 {
		return nil, domain.ErrOrderNotFound
	}
	return nil, domain.ErrPaymentStatusConflict
}

func (s *Store) findOrders(ctx context.Context, op string, filter bson.M, opts *options.FindOptions) ([]*domain.Order, error) {
	cursor, err := s.orders.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrQuery, op, err)
	}

	var docs []orderDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, op, err)
	}

	orders := make([]*domain.Order, 0, len(docs))
	for _, d := range docs {
		order, err := decodeOrder(d)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func decodeOrder(doc orderDoc) (*domain.Order, error) {
	order, err := doc.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: order %s: %v", ErrDecode, doc.ID, err)
	}
	return order, nil
}
