package auth

import (
	"net/http"
	"os"
	"time"

	"swarachna-api/internal/middleware"
	"swarachna-api/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(s Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: s, logger: l}
}

func isProd() bool {
	return os.Getenv("APP_ENV") == "production"
}

func setAccessCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge < 1 {
		maxAge = 1
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   isProd(),
		SameSite: http.SameSiteLaxMode,
	})
}

func clearAccessCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isProd(),
		SameSite: http.SameSiteLaxMode,
	})
}

func bindError(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
}

func (h *Handler) signedIn(c *gin.Context, status int, res AuthResponse) {
	setAccessCookie(c, res.AccessToken, res.ExpiresAt)
	response.Success(c, status, res, nil)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http register validation failed", zap.Error(err))
		bindError(c, err)
		return
	}

	res, err := h.service.Register(c.Request.Context(), c.GetString("session_id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.logger.Info("http register success", zap.String("user_id", res.User.ID))
	h.signedIn(c, http.StatusCreated, res)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.service.Login(c.Request.Context(), c.GetString("session_id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.signedIn(c, http.StatusOK, res)
}

func (h *Handler) LoginWithGoogle(c *gin.Context) {
	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.service.LoginWithGoogle(c.Request.Context(), c.GetString("session_id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.signedIn(c, http.StatusOK, res)
}

func (h *Handler) SendPhoneOTP(c *gin.Context) {
	var req PhoneOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.service.SendPhoneOTP(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

func (h *Handler) VerifyPhoneOTP(c *gin.Context) {
	var req PhoneVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.service.VerifyPhoneOTP(c.Request.Context(), c.GetString("session_id"), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	h.signedIn(c, http.StatusOK, res)
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ActionStatusResponse{
		Success: true,
		Message: "If an account exists for this email, a reset link has been sent.",
	}, nil)
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), c.GetString("email"), req); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ActionStatusResponse{Success: true, Message: "Password updated."}, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	clearAccessCookie(c)

	if err := h.service.Logout(c.Request.Context(), c.GetString("session_id")); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ActionStatusResponse{Success: true, Message: "Logout success."}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	u, err := h.service.Me(c.Request.Context(), c.GetString("session_id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u, nil)
}
