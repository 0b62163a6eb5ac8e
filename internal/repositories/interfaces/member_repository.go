package interfaces

import (
	"context"

	"luco/internal/models"
	"luco/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error)
	GetByUsername(ctx context.Context, username string) (*models.Member, error)
	GetByPhone(ctx context.Context, phone string) (*models.Member, error)
	GetAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Member, int64, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}
