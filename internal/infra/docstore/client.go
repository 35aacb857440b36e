package docstore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	settingsCollection = "settings"
	slotsCollection    = "slot_bookings"
	ordersCollection   = "orders"
)

// Connect подключается к MongoDB и проверяет соединение
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: ping: %v", ErrConnect, err)
	}
	return client, nil
}

// Store хранилище настроек, счетчиков слотов и заказов в MongoDB
// Каждая операция атомарна на уровне документа; транзакций нет
type Store struct {
	settings *mongo.Collection
	slots    *mongo.Collection
	orders   *mongo.Collection
}

// NewStore создает хранилище поверх базы db
func NewStore(db *mongo.Database) *Store {
	return &Store{
		settings: db.Collection(settingsCollection),
		slots:    db.Collection(slotsCollection),
		orders:   db.Collection(ordersCollection),
	}
}

// EnsureIndexes создает индексы для выборок заказов
// Ключ слота хранится в _id, поэтому уникальность счетчика обеспечена
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.orders.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "pickupDate", Value: 1}, {Key: "pickupTime", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("%w: EnsureIndexes - orders: %v", ErrQuery, err)
	}

	_, err = s.slots.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("%w: EnsureIndexes - slot_bookings: %v", ErrQuery, err)
	}
	return nil
}
