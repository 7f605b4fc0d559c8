package handler

import (
	"net/http"

	"ratehub/internal/api/dto"
	"ratehub/internal/api/middleware"
	"ratehub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	genreService service.GenreService
}

func NewGenreHandler(genreService service.GenreService) *GenreHandler {
	return &GenreHandler{genreService: genreService}
}

// RegisterRoutes registers genre routes: reads are public, writes are
// admin-only.
func (h *GenreHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	genres := router.Group("/genres")
	{
		genres.GET("", h.List)

		admin := genres.Group("", requireAuth, middleware.RequireAdmin())
		{
			admin.POST("", h.Create)
			admin.DELETE("/:slug", h.Delete)
		}
	}
}

// List returns genres with optional name search
// GET /v1/genres?search=&page=&page_size=
func (h *GenreHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)
	search := c.Query("search")

	resp, err := h.genreService.List(c.Request.Context(), search, page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Create adds a genre
// POST /v1/genres
func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.CreateGenreDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.genreService.Create(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Delete removes a genre by slug
// DELETE /v1/genres/:slug
func (h *GenreHandler) Delete(c *gin.Context) {
	if err := h.genreService.DeleteBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
