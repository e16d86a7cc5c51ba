package service

import (
	"context"
	"errors"

	"github.com/repairhub/backend/internal/dto"
	apperrors "github.com/repairhub/backend/internal/errors"
	"github.com/repairhub/backend/internal/model"
	ctxutil "github.com/repairhub/backend/pkg/context"
	"github.com/repairhub/backend/pkg/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RepairStore is the persistence surface for repair requests.
type RepairStore interface {
	GetByID(ctx context.Context, id uint) (*model.RepairRequest, error)
	GetAll(ctx context.Context, limit, offset int) ([]model.RepairRequest, int64, error)
	GetByUser(ctx context.Context, userID uint, limit, offset int) ([]model.RepairRequest, int64, error)
	Create(ctx context.Context, request *model.RepairRequest) error
	UpdateStatus(ctx context.Context, id uint, status model.RepairStatus) error
}

type RepairService struct {
	repairs RepairStore
}

func NewRepairService(repairs RepairStore) *RepairService {
	return &RepairService{repairs: repairs}
}

func toRepairResponse(r *model.RepairRequest) *dto.RepairResponse {
	return &dto.RepairResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		Subject:   r.Subject,
		Status:    string(r.Status),
		Details:   []byte(r.Details),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Create files a repair request on behalf of the authenticated user.
func (s *RepairService) Create(ctx context.Context, userID uint, req *dto.CreateRepairRequest) (*dto.RepairResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "CreateRepair")

	request := &model.RepairRequest{
		UserID:  userID,
		Subject: req.Subject,
		Status:  model.RepairPending,
		Details: datatypes.JSON(req.Details),
	}
	if err := s.repairs.Create(ctx, request); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Repair request created").
		Uint("repair_id", request.ID).
		Uint("user_id", userID).
		Log()

	return toRepairResponse(request), nil
}

// List returns all repair requests for staff views.
func (s *RepairService) List(ctx context.Context, limit, offset int) ([]dto.RepairResponse, int64, error) {
	requests, total, err := s.repairs.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return toRepairResponses(requests), total, nil
}

// ListByUser returns the caller's own repair requests.
func (s *RepairService) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]dto.RepairResponse, int64, error) {
	requests, total, err := s.repairs.GetByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return toRepairResponses(requests), total, nil
}

func toRepairResponses(requests []model.RepairRequest) []dto.RepairResponse {
	responses := make([]dto.RepairResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, *toRepairResponse(&requests[i]))
	}
	return responses
}

func (s *RepairService) Get(ctx context.Context, id uint) (*dto.RepairResponse, error) {
	request, err := s.repairs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return toRepairResponse(request), nil
}

// UpdateStatus moves a request through the workflow. The handler restricts
// this to staff roles.
func (s *RepairService) UpdateStatus(ctx context.Context, id uint, status string) (*dto.RepairResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "UpdateRepairStatus")

	repairStatus := model.RepairStatus(status)
	if !repairStatus.Valid() {
		return nil, apperrors.ErrRecordNotFound
	}

	if err := s.repairs.UpdateStatus(ctx, id, repairStatus); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Repair request status updated").
		Uint("repair_id", id).
		String("status", status).
		Log()

	return s.Get(ctx, id)
}
