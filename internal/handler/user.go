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

type UserHandler struct {
	authService *service.AuthService
}

func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// Profile returns the authenticated user's account data.
func (h *UserHandler) Profile(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "Profile")

	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthenticated)
		return
	}

	user, err := h.authService.Profile(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildResponse(http.StatusOK, "ok", user))
}

// UpdatePassword changes the caller's password after checking the old one.
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "UpdatePassword")

	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthenticated)
		return
	}

	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid password change request").
			Err(err).
			Log()
		respondValidationError(c, err)
		return
	}

	if err := h.authService.UpdatePassword(ctx, userID, req.OldPassword, req.Password); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildResponse(http.StatusOK, "password updated", nil))
}
