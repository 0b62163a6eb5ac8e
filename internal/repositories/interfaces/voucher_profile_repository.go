package interfaces

import (
	"context"

	"luco/internal/models"
	"luco/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VoucherProfileRepository interface {
	Create(ctx context.Context, profile *models.VoucherProfile) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.VoucherProfile, error)
	GetByName(ctx context.Context, name string) (*models.VoucherProfile, error)
	GetAll(ctx context.Context, params *utils.PaginationParams) ([]*models.VoucherProfile, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
