package validators

type VoucherCreateRequest struct {
	Title       string  `json:"title" validate:"required,min=2,max=120"`
	Description string  `json:"description" validate:"max=500"`
	Category    string  `json:"category" validate:"required,voucher_category"`
	Price       float64 `json:"price" validate:"min=0"`
	Discount    string  `json:"discount" validate:"required,max=40"`
	Code        string  `json:"code" validate:"omitempty,min=4,max=20"`
	ExpiryDate  string  `json:"expiry_date" validate:"omitempty,expiry_date"`
	IsNew       bool    `json:"is_new"`
}

type VoucherUpdateRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=2,max=120"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Category    *string  `json:"category" validate:"omitempty,voucher_category"`
	Price       *float64 `json:"price" validate:"omitempty,min=0"`
	Discount    *string  `json:"discount" validate:"omitempty,max=40"`
	Code        *string  `json:"code" validate:"omitempty,min=4,max=20"`
	ExpiryDate  *string  `json:"expiry_date" validate:"omitempty,expiry_date"`
	IsNew       *bool    `json:"is_new"`
}

type ProfileCreateRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=60"`
	Title       string  `json:"title" validate:"required,min=2,max=120"`
	Description string  `json:"description" validate:"max=500"`
	Category    string  `json:"category" validate:"required,voucher_category"`
	Price       float64 `json:"price" validate:"min=0"`
	Discount    string  `json:"discount" validate:"required,max=40"`
}

type ProfileUpdateRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=2,max=60"`
	Title       *string  `json:"title" validate:"omitempty,min=2,max=120"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Category    *string  `json:"category" validate:"omitempty,voucher_category"`
	Price       *float64 `json:"price" validate:"omitempty,min=0"`
	Discount    *string  `json:"discount" validate:"omitempty,max=40"`
}
