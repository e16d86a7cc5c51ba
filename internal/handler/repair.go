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

type RepairHandler struct {
	repairService *service.RepairService
}

func NewRepairHandler(repairService *service.RepairService) *RepairHandler {
	return &RepairHandler{repairService: repairService}
}

// Create files a repair request for the authenticated user.
func (h *RepairHandler) Create(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "CreateRepair")

	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthenticated)
		return
	}

	var req dto.CreateRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid repair request payload").
			Err(err).
			Log()
		respondValidationError(c, err)
		return
	}

	request, err := h.repairService.Create(ctx, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildResponse(http.StatusCreated, "repair request created", request))
}

// Mine lists the caller's own repair requests.
func (h *RepairHandler) Mine(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "MyRepairs")

	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, apperrors.ErrUnauthenticated)
		return
	}

	limit, offset := pagination(c)
	requests, total, err := h.repairService.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildResponse(http.StatusOK, "ok", pagedData(requests, total, limit, offset)))
}

// List returns all repair requests; staff only.
func (h *RepairHandler) List(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "ListRepairs")

	limit, offset := pagination(c)
	requests, total, err := h.repairService.List(ctx, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildResponse(http.StatusOK, "ok", pagedData(requests, total, limit, offset)))
}

// UpdateStatus moves a repair request through the workflow; staff only.
func (h *RepairHandler) UpdateStatus(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "UpdateRepairStatus")

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateRepairStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	request, err := h.repairService.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildResponse(http.StatusOK, "status updated", request))
}
