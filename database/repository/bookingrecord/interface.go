package bookingRecordRepo

import (
	"context"

	"krib/config"
	"krib/database"
	"krib/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRecordRepository persists confirmed-booking copies for the
// contractor dashboard.
type BookingRecordRepository interface {
	Create(ctx context.Context, record models.BookingRecord) (string, error)
	GetByID(ctx context.Context, id string) (*models.BookingRecord, error)
	GetByContractorID(ctx context.Context, contractorID string) ([]models.BookingRecord, error)
}

type mongoBookingRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRecordRepo returns a new BookingRecordRepository instance using MongoDB.
func NewMongoBookingRecordRepo() BookingRecordRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoBookingRecordRepo{
		coll: db.Collection("booking_records"),
	}
}
