package settingsRepo

import (
	"context"
	"errors"
	"time"

	"krib/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrSettingsNotFound is returned when a contractor has no widget settings.
var ErrSettingsNotFound = errors.New("widget settings not found")

// GetByContractorID returns the widget settings for a contractor.
func (r *mongoSettingsRepo) GetByContractorID(ctx context.Context, contractorID string) (*models.WidgetSettings, error) {
	var settings models.WidgetSettings
	err := r.coll.FindOne(ctx, bson.M{"contractorId": contractorID}).Decode(&settings)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}
	return &settings, nil
}

// Upsert creates or replaces the widget settings for a contractor.
func (r *mongoSettingsRepo) Upsert(ctx context.Context, settings *models.WidgetSettings) error {
	now := time.Now()
	settings.UpdatedAt = now
	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = now
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"contractorId": settings.ContractorID}, settings, opts)
	return err
}
