package handler

import (
	"net/http"
	"strconv"

	"ratehub/internal/api/dto"
	"ratehub/internal/api/middleware"
	"ratehub/internal/api/repository"
	"ratehub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	titleService service.TitleService
}

func NewTitleHandler(titleService service.TitleService) *TitleHandler {
	return &TitleHandler{titleService: titleService}
}

// RegisterRoutes registers title routes: reads are public, writes are
// admin-only.
func (h *TitleHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	titles := router.Group("/titles")
	{
		titles.GET("", h.List)
		titles.GET("/:title_id", h.Get)

		admin := titles.Group("", requireAuth, middleware.RequireAdmin())
		{
			admin.POST("", h.Create)
			admin.PATCH("/:title_id", h.Update)
			admin.DELETE("/:title_id", h.Delete)
		}
	}
}

// List returns titles filtered by genre slug, category slug, name substring
// and exact year, each annotated with its mean review score
// GET /v1/titles?genre=&category=&name=&year=&page=&page_size=
func (h *TitleHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filters := repository.TitleFilters{
		Genre:    c.Query("genre"),
		Category: c.Query("category"),
		Name:     c.Query("name"),
	}
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year filter"})
			return
		}
		filters.Year = &year
	}

	resp, err := h.titleService.List(c.Request.Context(), filters, page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Get returns one title with its rating
// GET /v1/titles/:title_id
func (h *TitleHandler) Get(c *gin.Context) {
	titleID, ok := parseTitleID(c)
	if !ok {
		return
	}

	resp, err := h.titleService.Get(c.Request.Context(), titleID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Create adds a title; category and genres are referenced by slug
// POST /v1/titles
func (h *TitleHandler) Create(c *gin.Context) {
	var req dto.CreateTitleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.titleService.Create(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Update partially updates a title
// PATCH /v1/titles/:title_id
func (h *TitleHandler) Update(c *gin.Context) {
	titleID, ok := parseTitleID(c)
	if !ok {
		return
	}

	var req dto.UpdateTitleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.titleService.Update(c.Request.Context(), titleID, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Delete removes a title and cascades its reviews
// DELETE /v1/titles/:title_id
func (h *TitleHandler) Delete(c *gin.Context) {
	titleID, ok := parseTitleID(c)
	if !ok {
		return
	}

	if err := h.titleService.Delete(c.Request.Context(), titleID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
