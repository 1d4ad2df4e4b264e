package settingsRepo

import (
	"context"

	"krib/config"
	"krib/database"
	"krib/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// WidgetSettingsRepository provides access to per-contractor widget settings.
type WidgetSettingsRepository interface {
	GetByContractorID(ctx context.Context, contractorID string) (*models.WidgetSettings, error)
	Upsert(ctx context.Context, settings *models.WidgetSettings) error
}

type mongoSettingsRepo struct {
	coll *mongo.Collection
}

// NewMongoSettingsRepo returns a new WidgetSettingsRepository instance using MongoDB.
func NewMongoSettingsRepo() WidgetSettingsRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoSettingsRepo{
		coll: db.Collection("widget_settings"),
	}
}
