package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/repairhub/backend/internal/constants"
	"github.com/repairhub/backend/internal/dto"
	apperrors "github.com/repairhub/backend/internal/errors"
	"github.com/repairhub/backend/internal/service"
	ctxutil "github.com/repairhub/backend/pkg/context"
	"github.com/repairhub/backend/pkg/logger"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new account.
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "Register")

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid registration request").
			Err(err).
			Log()
		respondValidationError(c, err)
		return
	}

	user, err := h.authService.Register(ctx, &req)
	if err != nil {
		logger.WarnWithContext(ctx, "Registration failed").
			String("email", req.Email).
			Err(err).
			Log()
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildResponse(http.StatusCreated, "registered", user))
}

// Login authenticates credentials and returns a session token.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "Login")

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid login request").
			Err(err).
			Log()
		respondValidationError(c, err)
		return
	}

	logger.InfoWithContext(ctx, "Login attempt").
		String("email", req.Email).
		Log()

	response, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildResponse(http.StatusOK, "logged in", response))
}

// Logout invalidates every outstanding session token for the caller.
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "Logout")

	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthenticated)
		return
	}

	if err := h.authService.Logout(ctx, userID); err != nil {
		logger.ErrorWithContext(ctx, "Logout failed").
			Uint("user_id", userID).
			Err(err).
			Log()
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildResponse(http.StatusOK, "logged out", nil))
}

// SendResetLink issues a password-reset secret and emails it. The secret
// itself never appears in the response body or the logs.
func (h *AuthHandler) SendResetLink(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "SendResetLink")

	var req dto.SendResetLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid reset link request").
			Err(err).
			Log()
		respondValidationError(c, err)
		return
	}

	if err := h.authService.RequestPasswordReset(ctx, req.Email); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildResponse(http.StatusOK, "reset link sent", nil))
}

// ResetPassword consumes the emailed secret and sets the new password.
// The endpoint is browser-facing: outcomes render as an HTML page rather
// than the JSON envelope. Domain failures still answer 200 with an error
// page; only malformed form input gets a 422.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "ResetPassword")

	var req dto.ResetPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid reset password request").
			Err(err).
			Log()
		renderResetResult(c, http.StatusUnprocessableEntity, false, "The form was filled out incorrectly. Please check the fields and try again.")
		return
	}

	if err := h.authService.ResetPassword(ctx, req.Email, req.Token, req.Password); err != nil {
		logger.WarnWithContext(ctx, "Password reset rejected").
			String("email", req.Email).
			Err(err).
			Log()
		renderResetResult(c, http.StatusOK, false, apperrors.GetErrorMessage(err))
		return
	}

	renderResetResult(c, http.StatusOK, true, "Your password has been changed. You can now log in with the new password.")
}

// ResetPasswordForm serves the page the emailed link lands on.
func (h *AuthHandler) ResetPasswordForm(c *gin.Context) {
	renderResetForm(c, c.Query("email"), c.Query("token"))
}
