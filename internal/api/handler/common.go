package handler

import (
	"errors"
	"net/http"
	"strconv"

	"ratehub/internal/api/service"

	"github.com/gin-gonic/gin"
)

// parsePagination reads page/page_size query params with the usual defaults.
func parsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

// handleServiceError maps service sentinel errors onto the HTTP taxonomy.
// Anything unrecognized is a 500; storage constraint violations never reach
// here raw, the services translate them first.
func handleServiceError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrGenreNotFound),
		errors.Is(err, service.ErrTitleNotFound),
		errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrCommentNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrUsernameReserved),
		errors.Is(err, service.ErrUsernameEqualsEmail),
		errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrInvalidSlug),
		errors.Is(err, service.ErrSlugExists),
		errors.Is(err, service.ErrYearInFuture),
		errors.Is(err, service.ErrUnknownCategory),
		errors.Is(err, service.ErrUnknownGenre),
		errors.Is(err, service.ErrReviewExists),
		errors.Is(err, service.ErrScoreOutOfRange):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
