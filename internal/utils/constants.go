package utils

import "time"

// Application Constants
const (
	AppName    = "Luco"
	AppVersion = "1.0.0"

	// Default values
	DefaultLanguage    = "en"
	DefaultCurrency    = "UGX"
	DefaultCountryCode = "+256"
	DefaultTimeZone    = "Africa/Kampala"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 6
	PasswordMaxLength  = 128

	// Payment Constants
	PaymentPollInterval = 2 * time.Second
	PaymentMinAmount    = 100.0
	PaymentMaxAmount    = 10000000.0

	// Vouchers
	VoucherCodeLength  = 10
	BannerCarouselSize = 5

	// SMS
	SMSMaxMessageLength = 320

	// Rate Limiting
	DefaultRateLimit = 100
	LoginRateLimit   = 5
)

// Response status values
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// User types carried in JWT claims
const (
	UserTypeAdmin  = "admin"
	UserTypeMember = "member"
)

// Error Messages
const (
	ErrValidationFailed = "Validation failed"
	ErrUnauthorized     = "Unauthorized access"
	ErrForbidden        = "Access forbidden"
)

// Cache key prefixes
const (
	CacheKeyVoucher       = "voucher:"
	CacheKeyActiveVoucher = "vouchers:active"
	CacheKeyBanners       = "banners:latest"
)
