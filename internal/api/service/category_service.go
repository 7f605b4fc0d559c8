package service

import (
	"context"
	"errors"
	"regexp"

	"ratehub/internal/api/dto"
	"ratehub/internal/api/models"
	"ratehub/internal/api/repository"
	"ratehub/internal/cache"

	"gorm.io/gorm"
)

// mirrors the slug format of the storage schema
var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

const categoryFirstPageKey = "categories:first_page"

type CategoryService interface {
	List(ctx context.Context, search string, page, pageSize int) (*dto.PaginatedCategoryResponse, error)
	Create(ctx context.Context, req dto.CreateCategoryDTO) (*dto.CategoryResponse, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	cache        *cache.Cache
}

func NewCategoryService(categoryRepo repository.CategoryRepository, c *cache.Cache) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, cache: c}
}

func (s *categoryService) List(ctx context.Context, search string, page, pageSize int) (*dto.PaginatedCategoryResponse, error) {
	// only the unfiltered first page is cached, that is what anonymous
	// browsing hits
	cacheable := search == "" && page == 1 && pageSize == DefaultPageSize
	if cacheable {
		var cached dto.PaginatedCategoryResponse
		if found, _ := s.cache.GetJSON(ctx, categoryFirstPageKey, &cached); found {
			return &cached, nil
		}
	}

	categories, total, err := s.categoryRepo.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, err
	}

	data := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		data = append(data, dto.CategoryFromModel(c))
	}

	resp := dto.NewPaginatedCategoryResponse(data, int(total), page, pageSize)
	if cacheable {
		_ = s.cache.SetJSON(ctx, categoryFirstPageKey, resp)
	}
	return resp, nil
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryDTO) (*dto.CategoryResponse, error) {
	if !slugPattern.MatchString(req.Slug) {
		return nil, ErrInvalidSlug
	}

	category := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrSlugExists
		}
		return nil, err
	}

	s.cache.Delete(ctx, categoryFirstPageKey)
	resp := dto.CategoryFromModel(*category)
	return &resp, nil
}

func (s *categoryService) DeleteBySlug(ctx context.Context, slug string) error {
	if err := s.categoryRepo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	s.cache.Delete(ctx, categoryFirstPageKey)
	return nil
}
