package interfaces

import (
	"context"

	"luco/internal/models"
	"luco/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BannerRepository interface {
	Create(ctx context.Context, banner *models.Banner) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Banner, error)
	GetAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Banner, int64, error)

	// GetLatest returns the most recently created banners, newest first.
	GetLatest(ctx context.Context, limit int) ([]*models.Banner, error)

	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
