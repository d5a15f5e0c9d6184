package auth

import (
	"swarachna-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects the session middleware on r.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	auth := r.Group("/auth")
	{
		// account creation is the most abused endpoint: 1 request / 20s per IP
		auth.POST("/register",
			middleware.RateLimitByIP(0.05, 1),
			handler.Register,
		)

		auth.POST("/login",
			middleware.RateLimitByIP(0.1, 3),
			handler.Login,
		)
		auth.POST("/google",
			middleware.RateLimitByIP(0.1, 3),
			handler.LoginWithGoogle,
		)

		phone := auth.Group("/phone")
		{
			// every OTP is an SMS we pay for
			phone.POST("/otp",
				middleware.RateLimitByIP(0.05, 2),
				handler.SendPhoneOTP,
			)
			phone.POST("/verify",
				middleware.RateLimitByIP(0.2, 3),
				handler.VerifyPhoneOTP,
			)
		}

		auth.POST("/forgot-password",
			middleware.RateLimitByIP(0.05, 2),
			handler.ForgotPassword,
		)

		// logout and me only need the session, not a valid token
		auth.POST("/logout", handler.Logout)
		auth.GET("/me",
			middleware.RateLimitByIP(5, 10),
			handler.Me,
		)

		authenticated := auth.Group("")
		authenticated.Use(middleware.AuthMiddleware())
		{
			authenticated.POST("/change-password",
				middleware.RateLimitByUser(0.1, 2),
				handler.ChangePassword,
			)
		}
	}
}
