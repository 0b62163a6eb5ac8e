package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"luco/internal/models"
	"luco/internal/repositories/interfaces"
	"luco/internal/utils"
	"luco/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrProfileNameTaken = errors.New("a profile with this name already exists")

type ProfileService interface {
	CreateProfile(ctx context.Context, profile *models.VoucherProfile) error
	GetProfile(ctx context.Context, id primitive.ObjectID) (*models.VoucherProfile, error)
	ListProfiles(ctx context.Context, params *utils.PaginationParams) ([]*models.VoucherProfile, int64, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	DeleteProfile(ctx context.Context, id primitive.ObjectID) error

	// ImportVouchers reads a CSV of voucher rows, maps each through its
	// named profile and inserts the valid ones. Bad rows are reported, not
	// fatal.
	ImportVouchers(ctx context.Context, reader io.Reader) (*ImportResult, error)
}

type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

type profileService struct {
	profileRepo interfaces.VoucherProfileRepository
	voucherRepo interfaces.VoucherRepository
	logger      *logger.Logger
}

func NewProfileService(profileRepo interfaces.VoucherProfileRepository, voucherRepo interfaces.VoucherRepository, log *logger.Logger) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		voucherRepo: voucherRepo,
		logger:      log,
	}
}

func (s *profileService) CreateProfile(ctx context.Context, profile *models.VoucherProfile) error {
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			return ErrProfileNameTaken
		}
		return err
	}
	return nil
}

func (s *profileService) GetProfile(ctx context.Context, id primitive.ObjectID) (*models.VoucherProfile, error) {
	return s.profileRepo.GetByID(ctx, id)
}

func (s *profileService) ListProfiles(ctx context.Context, params *utils.PaginationParams) ([]*models.VoucherProfile, int64, error) {
	return s.profileRepo.GetAll(ctx, params)
}

func (s *profileService) UpdateProfile(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	if err := s.profileRepo.Update(ctx, id, updates); err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			return ErrProfileNameTaken
		}
		return err
	}
	return nil
}

func (s *profileService) DeleteProfile(ctx context.Context, id primitive.ObjectID) error {
	return s.profileRepo.Delete(ctx, id)
}

// Expected CSV header: profile,code,expiry_date,price,title
// Only profile and code are required; the rest override the profile.
func (s *profileService) ImportVouchers(ctx context.Context, reader io.Reader) (*ImportResult, error) {
	r := csv.NewReader(reader)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["profile"]; !ok {
		return nil, fmt.Errorf("CSV is missing the profile column")
	}
	if _, ok := columns["code"]; !ok {
		return nil, fmt.Errorf("CSV is missing the code column")
	}

	result := &ImportResult{}
	profiles := make(map[string]*models.VoucherProfile)
	var vouchers []*models.Voucher

	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		voucher, err := s.mapRow(ctx, record, columns, profiles)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		vouchers = append(vouchers, voucher)
	}

	inserted, err := s.voucherRepo.CreateMany(ctx, vouchers)
	if err != nil {
		return nil, err
	}
	result.Imported = inserted
	result.Skipped += len(vouchers) - inserted

	s.logger.WithFields(map[string]interface{}{
		"imported": result.Imported,
		"skipped":  result.Skipped,
	}).Info("voucher import completed")

	return result, nil
}

func (s *profileService) mapRow(ctx context.Context, record []string, columns map[string]int, cache map[string]*models.VoucherProfile) (*models.Voucher, error) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	profileName := field("profile")
	if profileName == "" {
		return nil, fmt.Errorf("profile name is empty")
	}
	code := field("code")
	if code == "" {
		return nil, fmt.Errorf("code is empty")
	}

	profile, ok := cache[profileName]
	if !ok {
		loaded, err := s.profileRepo.GetByName(ctx, profileName)
		if err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				return nil, fmt.Errorf("unknown profile %q", profileName)
			}
			return nil, err
		}
		profile = loaded
		cache[profileName] = profile
	}

	voucher := &models.Voucher{
		Title:       profile.Title,
		Description: profile.Description,
		Category:    profile.Category,
		Price:       profile.Price,
		Discount:    profile.Discount,
		Code:        code,
		ExpiryDate:  field("expiry_date"),
		Status:      models.VoucherStatusActive,
	}

	if title := field("title"); title != "" {
		voucher.Title = title
	}
	if priceStr := field("price"); priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			return nil, fmt.Errorf("invalid price %q", priceStr)
		}
		voucher.Price = price
	}
	if voucher.ExpiryDate == "" {
		voucher.ExpiryDate = DeriveExpiryDate(voucher.Category, time.Now())
	} else if _, err := utils.ParseExpiryDate(voucher.ExpiryDate); err != nil && !errors.Is(err, utils.ErrNoExpiryDate) {
		return nil, fmt.Errorf("invalid expiry date %q", voucher.ExpiryDate)
	}

	return voucher, nil
}
