package validators

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required,min=3,max=40"`
	Password string `json:"password" validate:"required"`
}

type SnippetRequest struct {
	Platform    string `json:"platform" validate:"required,oneof=curl javascript python php go flutter"`
	Description string `json:"description" validate:"required,min=5,max=1000"`
}

type RecommendationRequest struct {
	History string `json:"history" form:"history" validate:"required,min=3,max=2000"`
	Limit   int    `json:"limit" form:"limit" validate:"omitempty,min=1,max=10"`
}
