package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"luco/internal/models"
	"luco/internal/repositories/interfaces"
	"luco/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeProfileRepo struct {
	byName map[string]*models.VoucherProfile
}

func newFakeProfileRepo(profiles ...*models.VoucherProfile) *fakeProfileRepo {
	repo := &fakeProfileRepo{byName: make(map[string]*models.VoucherProfile)}
	for _, p := range profiles {
		repo.byName[p.Name] = p
	}
	return repo
}

func (r *fakeProfileRepo) GetByName(ctx context.Context, name string) (*models.VoucherProfile, error) {
	p, ok := r.byName[name]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return p, nil
}

func (r *fakeProfileRepo) Create(ctx context.Context, profile *models.VoucherProfile) error {
	return nil
}
func (r *fakeProfileRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.VoucherProfile, error) {
	return nil, interfaces.ErrNotFound
}
func (r *fakeProfileRepo) GetAll(ctx context.Context, params *utils.PaginationParams) ([]*models.VoucherProfile, int64, error) {
	return nil, 0, nil
}
func (r *fakeProfileRepo) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	return nil
}
func (r *fakeProfileRepo) Delete(ctx context.Context, id primitive.ObjectID) error { return nil }

func airtimeProfile() *models.VoucherProfile {
	return &models.VoucherProfile{
		ID:          primitive.NewObjectID(),
		Name:        "airtime-week",
		Title:       "Weekly Airtime",
		Description: "7 days of airtime",
		Category:    models.VoucherCategoryWeek,
		Price:       5000,
		Discount:    "20%",
	}
}

func TestImportVouchers(t *testing.T) {
	t.Run("maps rows through the named profile", func(t *testing.T) {
		repo := newFakeVoucherRepo()
		svc := NewProfileService(newFakeProfileRepo(airtimeProfile()), repo, testServiceLogger(t))

		csv := strings.Join([]string{
			"profile,code,expiry_date,price,title",
			"airtime-week,WEEK-001,5 Sep 2026,,",
			"airtime-week,WEEK-002,,7500,Premium Airtime",
		}, "\n")

		result, err := svc.ImportVouchers(context.Background(), strings.NewReader(csv))
		if err != nil {
			t.Fatalf("ImportVouchers: %v", err)
		}
		if result.Imported != 2 || result.Skipped != 0 {
			t.Fatalf("result = %+v", result)
		}
		if len(repo.created) != 2 {
			t.Fatalf("created %d vouchers", len(repo.created))
		}

		first := repo.created[0]
		if first.Title != "Weekly Airtime" || first.Price != 5000 || first.Code != "WEEK-001" {
			t.Errorf("first voucher = %+v", first)
		}
		if first.ExpiryDate != "5 Sep 2026" {
			t.Errorf("expiry = %q", first.ExpiryDate)
		}
		if first.Category != models.VoucherCategoryWeek || first.Status != models.VoucherStatusActive {
			t.Errorf("first voucher = %+v", first)
		}

		second := repo.created[1]
		if second.Title != "Premium Airtime" || second.Price != 7500 {
			t.Errorf("overrides not applied: %+v", second)
		}
		if second.ExpiryDate == "" {
			t.Error("expiry should be derived from the profile category")
		}
		if _, err := utils.ParseExpiryDate(second.ExpiryDate); err != nil {
			t.Errorf("derived expiry %q does not parse: %v", second.ExpiryDate, err)
		}
	})

	t.Run("skips bad rows with per-line errors", func(t *testing.T) {
		repo := newFakeVoucherRepo()
		svc := NewProfileService(newFakeProfileRepo(airtimeProfile()), repo, testServiceLogger(t))

		csv := strings.Join([]string{
			"profile,code",
			"airtime-week,WEEK-001",
			"no-such-profile,WEEK-002",
			"airtime-week,",
		}, "\n")

		result, err := svc.ImportVouchers(context.Background(), strings.NewReader(csv))
		if err != nil {
			t.Fatalf("ImportVouchers: %v", err)
		}
		if result.Imported != 1 || result.Skipped != 2 {
			t.Fatalf("result = %+v", result)
		}
		if len(result.Errors) != 2 {
			t.Fatalf("errors = %v", result.Errors)
		}
		if !strings.HasPrefix(result.Errors[0], "line 3:") || !strings.Contains(result.Errors[0], "no-such-profile") {
			t.Errorf("error[0] = %q", result.Errors[0])
		}
		if !strings.HasPrefix(result.Errors[1], "line 4:") {
			t.Errorf("error[1] = %q", result.Errors[1])
		}
	})

	t.Run("counts duplicates the insert skipped", func(t *testing.T) {
		repo := newFakeVoucherRepo()
		repo.dropOnCreateMany = 1
		svc := NewProfileService(newFakeProfileRepo(airtimeProfile()), repo, testServiceLogger(t))

		csv := "profile,code\nairtime-week,WEEK-001\nairtime-week,WEEK-001\n"
		result, err := svc.ImportVouchers(context.Background(), strings.NewReader(csv))
		if err != nil {
			t.Fatalf("ImportVouchers: %v", err)
		}
		if result.Imported != 1 || result.Skipped != 1 {
			t.Errorf("result = %+v", result)
		}
	})

	t.Run("rejects a header without required columns", func(t *testing.T) {
		svc := NewProfileService(newFakeProfileRepo(), newFakeVoucherRepo(), testServiceLogger(t))
		if _, err := svc.ImportVouchers(context.Background(), strings.NewReader("code,price\nA,1\n")); err == nil {
			t.Fatal("expected an error for missing profile column")
		}
	})

	t.Run("rejects rows with unparseable expiry", func(t *testing.T) {
		repo := newFakeVoucherRepo()
		svc := NewProfileService(newFakeProfileRepo(airtimeProfile()), repo, testServiceLogger(t))

		csv := "profile,code,expiry_date\nairtime-week,WEEK-001,someday\n"
		result, err := svc.ImportVouchers(context.Background(), strings.NewReader(csv))
		if err != nil {
			t.Fatalf("ImportVouchers: %v", err)
		}
		if result.Imported != 0 || result.Skipped != 1 {
			t.Errorf("result = %+v", result)
		}
	})
}

func TestDeriveExpiryDate(t *testing.T) {
	now := time.Date(2026, time.August, 28, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		category models.VoucherCategory
		want     string
	}{
		{models.VoucherCategoryDay, "28 Aug 2026"},
		{models.VoucherCategoryWeek, "4 Sep 2026"},
		{models.VoucherCategoryMonth, "27 Sep 2026"},
		{models.VoucherCategoryPromo, "N/A"},
	}
	for _, tt := range tests {
		if got := DeriveExpiryDate(tt.category, now); got != tt.want {
			t.Errorf("DeriveExpiryDate(%q) = %q, want %q", tt.category, got, tt.want)
		}
	}
}
