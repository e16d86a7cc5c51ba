package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/repairhub/backend/internal/constants"
	"github.com/repairhub/backend/internal/dto"
	apperrors "github.com/repairhub/backend/internal/errors"
	"github.com/repairhub/backend/internal/service"
	ctxutil "github.com/repairhub/backend/pkg/context"
	"github.com/repairhub/backend/pkg/logger"
)

type ArticleHandler struct {
	articleService *service.ArticleService
}

func NewArticleHandler(articleService *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondError(c, apperrors.ErrRecordNotFound)
		return 0, false
	}
	return uint(id), true
}

func (h *ArticleHandler) List(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "ListArticles")

	limit, offset := pagination(c)
	articles, total, err := h.articleService.List(ctx, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildResponse(http.StatusOK, "ok", pagedData(articles, total, limit, offset)))
}

func (h *ArticleHandler) Get(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "GetArticle")

	id, ok := pathID(c)
	if !ok {
		return
	}

	article, err := h.articleService.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildResponse(http.StatusOK, "ok", article))
}

func (h *ArticleHandler) Create(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "CreateArticle")

	var req dto.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WarnWithContext(ctx, "Invalid article payload").
			Err(err).
			Log()
		respondValidationError(c, err)
		return
	}

	article, err := h.articleService.Create(ctx, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildResponse(http.StatusCreated, "article created", article))
}

func (h *ArticleHandler) Update(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "UpdateArticle")

	id, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	article, err := h.articleService.Update(ctx, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildResponse(http.StatusOK, "article updated", article))
}

func (h *ArticleHandler) Delete(c *gin.Context) {
	ctx := ctxutil.WithOperation(c.Request.Context(), "handler", "DeleteArticle")

	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.articleService.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, constants.BuildResponse(http.StatusOK, "article deleted", nil))
}
