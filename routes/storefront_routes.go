package routes

import (
	"luco/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupStorefrontRoutes sets up the public storefront API.
func SetupStorefrontRoutes(
	r *gin.RouterGroup,
	voucherHandler *handlers.VoucherHandler,
	purchaseHandler *handlers.PurchaseHandler,
	bannerHandler *handlers.BannerHandler,
	memberHandler *handlers.MemberHandler,
	subscriberHandler *handlers.SubscriberHandler,
	recommendationHandler *handlers.RecommendationHandler,
) {
	vouchers := r.Group("/vouchers")
	{
		vouchers.GET("", voucherHandler.ListVouchers)
		vouchers.GET("/:id", voucherHandler.GetVoucher)
		vouchers.GET("/code/:code", voucherHandler.GetVoucherByCode)
	}

	purchases := r.Group("/purchases")
	{
		purchases.POST("", purchaseHandler.StartPurchase)
		purchases.GET("/:id", purchaseHandler.GetPurchase)
		purchases.POST("/:id/phone", purchaseHandler.SubmitPhone)
		purchases.POST("/:id/confirm", purchaseHandler.ConfirmPayment)
		purchases.POST("/:id/retry", purchaseHandler.RetryPurchase)
	}

	r.GET("/banners", bannerHandler.GetStorefrontBanners)
	r.POST("/subscribers", subscriberHandler.Subscribe)
	r.GET("/recommendations", recommendationHandler.Recommend)

	members := r.Group("/members")
	{
		members.POST("/register", memberHandler.Register)
		members.POST("/login", memberHandler.SignIn)
	}
}
