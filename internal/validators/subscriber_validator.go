package validators

type SubscribeRequest struct {
	Phone string `json:"phone" validate:"required,phone_number"`
}

type SubscriberUpdateRequest struct {
	Phone string `json:"phone" validate:"required,phone_number"`
}

type SubscriberBatchDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,object_id"`
}

type BroadcastRequest struct {
	Message string   `json:"message" validate:"required,min=1,max=320"`
	Phones  []string `json:"phones" validate:"omitempty,dive,phone_number"`
}
