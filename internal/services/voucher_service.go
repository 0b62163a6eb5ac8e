package services

import (
	"context"
	"time"

	"luco/internal/models"
	"luco/internal/repositories/interfaces"
	"luco/internal/utils"
	"luco/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VoucherService interface {
	// Storefront
	ListVouchers(ctx context.Context, category, status string, params *utils.PaginationParams) ([]*models.Voucher, int64, error)
	GetVoucher(ctx context.Context, id primitive.ObjectID) (*models.Voucher, error)
	GetVoucherByCode(ctx context.Context, code string) (*models.Voucher, error)

	// Admin
	CreateVoucher(ctx context.Context, voucher *models.Voucher) error
	UpdateVoucher(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	DeleteVoucher(ctx context.Context, id primitive.ObjectID) error
}

type voucherService struct {
	voucherRepo interfaces.VoucherRepository
	logger      *logger.Logger
}

func NewVoucherService(voucherRepo interfaces.VoucherRepository, log *logger.Logger) VoucherService {
	return &voucherService{
		voucherRepo: voucherRepo,
		logger:      log,
	}
}

func (s *voucherService) ListVouchers(ctx context.Context, category, status string, params *utils.PaginationParams) ([]*models.Voucher, int64, error) {
	var (
		vouchers []*models.Voucher
		total    int64
		err      error
	)

	switch {
	case status != "":
		vouchers, total, err = s.voucherRepo.GetByStatus(ctx, models.VoucherStatus(status), params)
	case category != "":
		vouchers, total, err = s.voucherRepo.GetByCategory(ctx, models.VoucherCategory(category), params)
	default:
		vouchers, total, err = s.voucherRepo.GetAll(ctx, params)
	}
	if err != nil {
		return nil, 0, err
	}

	applyEffectiveStatus(vouchers, time.Now())
	return vouchers, total, nil
}

func (s *voucherService) GetVoucher(ctx context.Context, id primitive.ObjectID) (*models.Voucher, error) {
	voucher, err := s.voucherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	voucher.Status = voucher.EffectiveStatus(time.Now())
	return voucher, nil
}

func (s *voucherService) GetVoucherByCode(ctx context.Context, code string) (*models.Voucher, error) {
	voucher, err := s.voucherRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	voucher.Status = voucher.EffectiveStatus(time.Now())
	return voucher, nil
}

func (s *voucherService) CreateVoucher(ctx context.Context, voucher *models.Voucher) error {
	voucher.Title = utils.SanitizeString(voucher.Title)
	voucher.Description = utils.SanitizeString(voucher.Description)
	if voucher.Code == "" {
		voucher.Code = utils.GenerateVoucherCode()
	}
	if voucher.ExpiryDate == "" {
		voucher.ExpiryDate = DeriveExpiryDate(voucher.Category, time.Now())
	}

	if err := s.voucherRepo.Create(ctx, voucher); err != nil {
		return err
	}

	s.logger.WithVoucherID(voucher.ID).WithField("category", voucher.Category).Info("voucher created")
	return nil
}

func (s *voucherService) UpdateVoucher(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	if err := s.voucherRepo.Update(ctx, id, updates); err != nil {
		return err
	}

	s.logger.WithVoucherID(id).Info("voucher updated")
	return nil
}

func (s *voucherService) DeleteVoucher(ctx context.Context, id primitive.ObjectID) error {
	if err := s.voucherRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.WithVoucherID(id).Info("voucher deleted")
	return nil
}

// DeriveExpiryDate supplies a default expiry for vouchers created without
// one: day vouchers expire today, week vouchers in seven days, month
// vouchers in thirty. Member and promo vouchers carry no expiry.
func DeriveExpiryDate(category models.VoucherCategory, now time.Time) string {
	switch category {
	case models.VoucherCategoryDay:
		return now.Format("2 Jan 2006")
	case models.VoucherCategoryWeek:
		return now.AddDate(0, 0, 7).Format("2 Jan 2006")
	case models.VoucherCategoryMonth:
		return now.AddDate(0, 0, 30).Format("2 Jan 2006")
	default:
		return "N/A"
	}
}

func applyEffectiveStatus(vouchers []*models.Voucher, now time.Time) {
	for _, v := range vouchers {
		v.Status = v.EffectiveStatus(now)
	}
}
