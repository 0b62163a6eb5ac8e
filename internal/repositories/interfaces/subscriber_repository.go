package interfaces

import (
	"context"

	"luco/internal/models"
	"luco/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SubscriberRepository interface {
	Create(ctx context.Context, subscriber *models.Subscriber) error
	GetByPhone(ctx context.Context, phone string) (*models.Subscriber, error)
	GetAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Subscriber, int64, error)
	GetAllPhones(ctx context.Context) ([]string, error)
	UpdatePhone(ctx context.Context, id primitive.ObjectID, phone string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}
