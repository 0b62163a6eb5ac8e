package routes

import (
	"luco/internal/handlers"
	"luco/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes sets up the admin dashboard API. Login is public; every
// other route requires an admin token.
func SetupAdminRoutes(
	r *gin.RouterGroup,
	jwtSecret string,
	adminHandler *handlers.AdminHandler,
	voucherHandler *handlers.VoucherHandler,
	profileHandler *handlers.ProfileHandler,
	bannerHandler *handlers.BannerHandler,
	memberHandler *handlers.MemberHandler,
	subscriberHandler *handlers.SubscriberHandler,
) {
	admin := r.Group("/admin")

	admin.POST("/auth/login", adminHandler.Login)

	protected := admin.Group("")
	protected.Use(middleware.AuthRequired(jwtSecret), middleware.AdminRequired())
	{
		vouchers := protected.Group("/vouchers")
		{
			vouchers.POST("", voucherHandler.CreateVoucher)
			vouchers.PUT("/:id", voucherHandler.UpdateVoucher)
			vouchers.DELETE("/:id", voucherHandler.DeleteVoucher)
			vouchers.POST("/import", voucherHandler.ImportVouchers)
		}

		profiles := protected.Group("/voucher-profiles")
		{
			profiles.POST("", profileHandler.CreateProfile)
			profiles.GET("", profileHandler.ListProfiles)
			profiles.GET("/:id", profileHandler.GetProfile)
			profiles.PUT("/:id", profileHandler.UpdateProfile)
			profiles.DELETE("/:id", profileHandler.DeleteProfile)
		}

		banners := protected.Group("/banners")
		{
			banners.GET("", bannerHandler.ListBanners)
			banners.POST("", bannerHandler.CreateBanner)
			banners.PUT("/:id", bannerHandler.UpdateBanner)
			banners.DELETE("/:id", bannerHandler.DeleteBanner)
		}

		members := protected.Group("/members")
		{
			members.GET("", memberHandler.ListMembers)
			members.PUT("/:id", memberHandler.UpdateMember)
			members.DELETE("/:id", memberHandler.DeleteMember)
		}

		subscribers := protected.Group("/subscribers")
		{
			subscribers.GET("", subscriberHandler.ListSubscribers)
			subscribers.PUT("/:id", subscriberHandler.UpdateSubscriber)
			subscribers.DELETE("/:id", subscriberHandler.DeleteSubscriber)
			subscribers.POST("/batch-delete", subscriberHandler.BatchDeleteSubscribers)
			subscribers.POST("/broadcast", subscriberHandler.Broadcast)
		}

		protected.POST("/snippets", adminHandler.GenerateSnippet)
		protected.GET("/analytics/vouchers", adminHandler.GetVoucherAnalytics)
	}
}
