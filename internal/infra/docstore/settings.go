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

// Get возвращает документ settings/global или domain.ErrSettingsNotFound
func (s *Store) Get(ctx context.Context) (*domain.Settings, error) {
	var doc settingsDoc
	err := s.settings.FindOne(ctx, bson.M{"_id": settingsID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get settings: %v", ErrQuery, err)
	}

	settings, err := doc.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: Get settings: %v", ErrDecode, err)
	}
	return settings, nil
}

// Save перезаписывает документ настроек целиком (last writer wins)
func (s *Store) Save(ctx context.Context, settings *domain.Settings) error {
	doc := toSettingsDoc(settings)
	_, err := s.settings.ReplaceOne(ctx, bson.M{"_id": settingsID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%w: Save settings: %v", ErrQuery, err)
	}
	return nil
}

// InitDefaults записывает defaults только если документа нет ($setOnInsert)
func (s *Store) InitDefaults(ctx context.Context, defaults *domain.Settings) (*domain.Settings, error) {
	doc := toSettingsDoc(defaults)
	update := bson.M{"$setOnInsert": bson.M{
		"maxOrdersPerSlot": doc.MaxOrdersPerSlot,
		"blockedDates":     doc.BlockedDates,
		"updatedAt":        doc.UpdatedAt,
	}}

	var stored settingsDoc
	err := s.settings.FindOneAndUpdate(ctx,
		bson.M{"_id": settingsID},
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&stored)
	if err != nil {
		return nil, fmt.Errorf("%w: InitDefaults: %v", ErrQuery, err)
	}

	settings, err := stored.toDomain()
	if err != nil {
		return nil, fmt.Errorf("%w: InitDefaults: %v", ErrDecode, err)
	}
	return settings, nil
}
