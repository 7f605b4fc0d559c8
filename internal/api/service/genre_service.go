package service

import (
	"context"
	"errors"

	"ratehub/internal/api/dto"
	"ratehub/internal/api/models"
	"ratehub/internal/api/repository"
	"ratehub/internal/cache"

	"gorm.io/gorm"
)

const genreFirstPageKey = "genres:first_page"

type GenreService interface {
	List(ctx context.Context, search string, page, pageSize int) (*dto.PaginatedGenreResponse, error)
	Create(ctx context.Context, req dto.CreateGenreDTO) (*dto.GenreResponse, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type genreService struct {
	genreRepo repository.GenreRepository
	cache     *cache.Cache
}

func NewGenreService(genreRepo repository.GenreRepository, c *cache.Cache) GenreService {
	return &genreService{genreRepo: genreRepo, cache: c}
}

func (s *genreService) List(ctx context.Context, search string, page, pageSize int) (*dto.PaginatedGenreResponse, error) {
	cacheable := search == "" && page == 1 && pageSize == DefaultPageSize
	if cacheable {
		var cached dto.PaginatedGenreResponse
		if found, _ := s.cache.GetJSON(ctx, genreFirstPageKey, &cached); found {
			return &cached, nil
		}
	}

	genres, total, err := s.genreRepo.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, err
	}

	data := make([]dto.GenreResponse, 0, len(genres))
	for _, g := range genres {
		data = append(data, dto.GenreFromModel(g))
	}

	resp := dto.NewPaginatedGenreResponse(data, int(total), page, pageSize)
	if cacheable {
		_ = s.cache.SetJSON(ctx, genreFirstPageKey, resp)
	}
	return resp, nil
}

func (s *genreService) Create(ctx context.Context, req dto.CreateGenreDTO) (*dto.GenreResponse, error) {
	if !slugPattern.MatchString(req.Slug) {
		return nil, ErrInvalidSlug
	}

	genre := &models.Genre{Name: req.Name, Slug: req.Slug}
	if err := s.genreRepo.Create(ctx, genre); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrSlugExists
		}
		return nil, err
	}

	s.cache.Delete(ctx, genreFirstPageKey)
	resp := dto.GenreFromModel(*genre)
	return &resp, nil
}

func (s *genreService) DeleteBySlug(ctx context.Context, slug string) error {
	if err := s.genreRepo.DeleteBySlug(ctx, slug); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGenreNotFound
		}
		return err
	}
	s.cache.Delete(ctx, genreFirstPageKey)
	return nil
}
