package validators

type BannerCreateRequest struct {
	ImageURL    string `json:"image_url" validate:"required,url"`
	Description string `json:"description" validate:"max=300"`
	ImageHint   string `json:"image_hint" validate:"max=120"`
}

type BannerUpdateRequest struct {
	ImageURL    *string `json:"image_url" validate:"omitempty,url"`
	Description *string `json:"description" validate:"omitempty,max=300"`
	ImageHint   *string `json:"image_hint" validate:"omitempty,max=120"`
}
