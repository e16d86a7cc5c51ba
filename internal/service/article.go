package service

import (
	"context"
	"errors"

	"github.com/repairhub/backend/internal/dto"
	apperrors "github.com/repairhub/backend/internal/errors"
	"github.com/repairhub/backend/internal/model"
	ctxutil "github.com/repairhub/backend/pkg/context"
	"github.com/repairhub/backend/pkg/logger"
	"gorm.io/gorm"
)

// ArticleStore is the persistence surface for catalog articles.
type ArticleStore interface {
	GetByID(ctx context.Context, id uint) (*model.Article, error)
	GetAll(ctx context.Context, limit, offset int) ([]model.Article, int64, error)
	Create(ctx context.Context, article *model.Article) error
	Update(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
}

type ArticleService struct {
	articles ArticleStore
}

func NewArticleService(articles ArticleStore) *ArticleService {
	return &ArticleService{articles: articles}
}

func toArticleResponse(a *model.Article) *dto.ArticleResponse {
	return &dto.ArticleResponse{
		ID:            a.ID,
		Title:         a.Title,
		Description:   a.Description,
		Price:         a.Price,
		CategoryID:    a.CategoryID,
		SubcategoryID: a.SubcategoryID,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func (s *ArticleService) Get(ctx context.Context, id uint) (*dto.ArticleResponse, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrRecordNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return toArticleResponse(article), nil
}

func (s *ArticleService) List(ctx context.Context, limit, offset int) ([]dto.ArticleResponse, int64, error) {
	articles, total, err := s.articles.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	responses := make([]dto.ArticleResponse, 0, len(articles))
	for i := range articles {
		responses = append(responses, *toArticleResponse(&articles[i]))
	}
	return responses, total, nil
}

func (s *ArticleService) Create(ctx context.Context, req *dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "CreateArticle")

	article := &model.Article{
		Title:         req.Title,
		Description:   req.Description,
		Price:         req.Price,
		CategoryID:    req.CategoryID,
		SubcategoryID: req.SubcategoryID,
	}
	if err := s.articles.Create(ctx, article); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Article created").
		Uint("article_id", article.ID).
		Log()

	return toArticleResponse(article), nil
}

func (s *ArticleService) Update(ctx context.Context, id uint, req *dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "UpdateArticle")

	fields := map[string]any{}
	if req.Title != "" {
		fields["title"] = req.Title
	}
	if req.Description != "" {
		fields["description"] = req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.CategoryID != nil {
		fields["category_id"] = *req.CategoryID
	}
	if req.SubcategoryID != nil {
		fields["subcategory_id"] = *req.SubcategoryID
	}

	if len(fields) > 0 {
		if err := s.articles.Update(ctx, id, fields); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrRecordNotFound
			}
			return nil, apperrors.WrapError(apperrors.ErrInternal, err)
		}
	}

	return s.Get(ctx, id)
}

func (s *ArticleService) Delete(ctx context.Context, id uint) error {
	ctx = ctxutil.WithOperation(ctx, "service", "DeleteArticle")

	if err := s.articles.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrRecordNotFound
		}
		return apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Article deleted").
		Uint("article_id", id).
		Log()

	return nil
}
