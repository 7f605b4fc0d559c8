package handler

import (
	"net/http"

	"ratehub/internal/api/dto"
	"ratehub/internal/api/middleware"
	"ratehub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// RegisterRoutes registers category routes: reads are public, writes are
// admin-only.
func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.List)

		admin := categories.Group("", requireAuth, middleware.RequireAdmin())
		{
			admin.POST("", h.Create)
			admin.DELETE("/:slug", h.Delete)
		}
	}
}

// List returns categories with optional name search
// GET /v1/categories?search=&page=&page_size=
func (h *CategoryHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)
	search := c.Query("search")

	resp, err := h.categoryService.List(c.Request.Context(), search, page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Create adds a category
// POST /v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Delete removes a category by slug; titles keep existing with a null
// category
// DELETE /v1/categories/:slug
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryService.DeleteBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
