package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/repairhub/backend/internal/constants"
	apperrors "github.com/repairhub/backend/internal/errors"
)

// currentUserID reads the authenticated user's ID placed in the gin
// context by the auth middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(constants.GinKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

// validationErrors flattens validator failures into field/message pairs
// for the errors envelope field.
func validationErrors(err error) any {
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	out := make([]map[string]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		out = append(out, map[string]string{
			"field":   fe.Field(),
			"message": fmt.Sprintf("failed on the '%s' rule", fe.Tag()),
		})
	}
	return out
}

func respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, constants.BuildErrorResponse(
		http.StatusUnprocessableEntity,
		"validation failed",
		validationErrors(err),
	))
}

func respondError(c *gin.Context, err error) {
	status := apperrors.ToHTTPStatus(err)
	c.JSON(status, constants.BuildErrorResponse(status, apperrors.GetErrorMessage(err), nil))
}

// pagination reads page/limit query parameters with clamped defaults and
// returns limit plus the derived offset.
func pagination(c *gin.Context) (limit, offset int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.DefaultPage)))
	if err != nil || page < 1 {
		page = constants.DefaultPage
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultLimit)))
	if err != nil || limit < 1 {
		limit = constants.DefaultLimit
	}
	if limit > constants.MaxLimit {
		limit = constants.MaxLimit
	}
	return limit, (page - 1) * limit
}

func pagedData(items any, total int64, limit, offset int) gin.H {
	return gin.H{
		"items": items,
		"total": total,
		"limit": limit,
		"page":  offset/limit + 1,
	}
}
