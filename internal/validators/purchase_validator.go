package validators

type PurchaseStartRequest struct {
	VoucherID string `json:"voucher_id" validate:"required,object_id"`
}

type PurchasePhoneRequest struct {
	Phone string `json:"phone" validate:"required,phone_number"`
}
