package validators

type MemberRegisterRequest struct {
	Username           string  `json:"username" validate:"required,min=3,max=40"`
	Phone              string  `json:"phone" validate:"required,phone_number"`
	Password           string  `json:"password" validate:"required,min=6,max=128"`
	SubscriptionAmount float64 `json:"subscription_amount" validate:"min=0"`
}

type MemberSignInRequest struct {
	Phone string `json:"phone" validate:"required,phone_number"`
}

type MemberUpdateRequest struct {
	Username           *string  `json:"username" validate:"omitempty,min=3,max=40"`
	SubscriptionAmount *float64 `json:"subscription_amount" validate:"omitempty,min=0"`
}
