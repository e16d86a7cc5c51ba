package repository

import (
	"context"

	"github.com/repairhub/backend/internal/model"
	ctxutil "github.com/repairhub/backend/pkg/context"
	"github.com/repairhub/backend/pkg/logger"
	"gorm.io/gorm"
)

type RepairRequestRepository struct {
	db *gorm.DB
}

func NewRepairRequestRepository(db *gorm.DB) *RepairRequestRepository {
	return &RepairRequestRepository{db: db}
}

func (r *RepairRequestRepository) GetByID(ctx context.Context, id uint) (*model.RepairRequest, error) {
	var request model.RepairRequest
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&request)
	if result.Error != nil {
		return nil, result.Error
	}
	return &request, nil
}

func (r *RepairRequestRepository) GetAll(ctx context.Context, limit, offset int) ([]model.RepairRequest, int64, error) {
	var requests []model.RepairRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&model.RepairRequest{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Limit(limit).Offset(offset).Order("id desc").Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *RepairRequestRepository) GetByUser(ctx context.Context, userID uint, limit, offset int) ([]model.RepairRequest, int64, error) {
	var requests []model.RepairRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&model.RepairRequest{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Limit(limit).Offset(offset).Order("id desc").Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *RepairRequestRepository) Create(ctx context.Context, request *model.RepairRequest) error {
	ctx = ctxutil.WithOperation(ctx, "repository", "CreateRepairRequest")

	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to create repair request").
			Uint("user_id", request.UserID).
			Err(err).
			Log()
		return err
	}
	return nil
}

func (r *RepairRequestRepository) UpdateStatus(ctx context.Context, id uint, status model.RepairStatus) error {
	result := r.db.WithContext(ctx).Model(&model.RepairRequest{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
