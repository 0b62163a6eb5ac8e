package models

import (
	"testing"
	"time"
)

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	t.Run("active voucher with future expiry stays active", func(t *testing.T) {
		v := &Voucher{Status: VoucherStatusActive, ExpiryDate: "1 Sep 2026"}
		if got := v.EffectiveStatus(now); got != VoucherStatusActive {
			t.Errorf("status = %q", got)
		}
	})

	t.Run("past expiry reads as expired without rewriting", func(t *testing.T) {
		v := &Voucher{Status: VoucherStatusActive, ExpiryDate: "1 Aug 2026"}
		if got := v.EffectiveStatus(now); got != VoucherStatusExpired {
			t.Errorf("status = %q, want expired", got)
		}
		if v.Status != VoucherStatusActive {
			t.Error("stored status must not change")
		}
	})

	t.Run("past expiry overrides even a purchased status", func(t *testing.T) {
		v := &Voucher{Status: VoucherStatusPurchased, ExpiryDate: "1 Aug 2026"}
		if got := v.EffectiveStatus(now); got != VoucherStatusExpired {
			t.Errorf("status = %q, want expired", got)
		}
	})

	t.Run("purchased with future expiry reads purchased", func(t *testing.T) {
		v := &Voucher{Status: VoucherStatusPurchased, ExpiryDate: "1 Sep 2026"}
		if got := v.EffectiveStatus(now); got != VoucherStatusPurchased {
			t.Errorf("status = %q, want purchased", got)
		}
	})

	t.Run("missing status defaults to active", func(t *testing.T) {
		v := &Voucher{ExpiryDate: "N/A"}
		if got := v.EffectiveStatus(now); got != VoucherStatusActive {
			t.Errorf("status = %q, want active", got)
		}
	})
}

func TestIsPurchasable(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	purchasable := &Voucher{Status: VoucherStatusActive, ExpiryDate: "N/A"}
	if !purchasable.IsPurchasable(now) {
		t.Error("active voucher should be purchasable")
	}

	sold := &Voucher{Status: VoucherStatusPurchased}
	if sold.IsPurchasable(now) {
		t.Error("purchased voucher must not be purchasable")
	}

	expired := &Voucher{Status: VoucherStatusActive, ExpiryDate: "1 Aug 2026"}
	if expired.IsPurchasable(now) {
		t.Error("expired voucher must not be purchasable")
	}
}

func TestIsFreeClaim(t *testing.T) {
	free := &Voucher{Category: VoucherCategoryPromo, Price: 0}
	if !free.IsFreeClaim() {
		t.Error("zero-priced promo is a free claim")
	}

	paidPromo := &Voucher{Category: VoucherCategoryPromo, Price: 1000}
	if paidPromo.IsFreeClaim() {
		t.Error("priced promo is not a free claim")
	}

	freeDay := &Voucher{Category: VoucherCategoryDay, Price: 0}
	if freeDay.IsFreeClaim() {
		t.Error("only promo vouchers can be free claims")
	}
}
