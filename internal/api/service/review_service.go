package service

import (
	"context"
	"errors"

	"ratehub/internal/api/dto"
	"ratehub/internal/api/models"
	"ratehub/internal/api/permissions"
	"ratehub/internal/api/repository"

	"gorm.io/gorm"
)

type ReviewService interface {
	ListByTitle(ctx context.Context, titleID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error)
	Get(ctx context.Context, titleID, id int64) (*dto.ReviewResponse, error)
	Create(ctx context.Context, user *models.User, titleID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	Update(ctx context.Context, user *models.User, titleID, id int64, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error)
	Delete(ctx context.Context, user *models.User, titleID, id int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

func (s *reviewService) requireTitle(ctx context.Context, titleID int64) error {
	if _, err := s.titleRepo.FindByID(ctx, titleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTitleNotFound
		}
		return err
	}
	return nil
}

func (s *reviewService) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	reviews, total, err := s.reviewRepo.ListByTitle(ctx, titleID, page, pageSize)
	if err != nil {
		return nil, err
	}

	data := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		data = append(data, *dto.FromModelToReviewResponse(&reviews[i]))
	}

	return dto.NewPaginatedReviewResponse(data, int(total), page, pageSize), nil
}

func (s *reviewService) Get(ctx context.Context, titleID, id int64) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(ctx, titleID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

// Create rejects a second review from the same author on the same title. The
// pre-check gives the friendly error on the common path; the unique index is
// the arbiter under concurrent duplicate submissions and maps to the same
// error.
func (s *reviewService) Create(ctx context.Context, user *models.User, titleID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	if req.Score < 1 || req.Score > 10 {
		return nil, ErrScoreOutOfRange
	}
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	if _, err := s.reviewRepo.FindByTitleAndAuthor(ctx, titleID, user.ID); err == nil {
		return nil, ErrReviewExists
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: user.ID,
		Text:     req.Text,
		Score:    req.Score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrReviewExists
		}
		return nil, err
	}

	return s.Get(ctx, titleID, review.ID)
}

func (s *reviewService) Update(ctx context.Context, user *models.User, titleID, id int64, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(ctx, titleID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	if !permissions.CanModify(user, review.AuthorID) {
		return nil, ErrPermissionDenied
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		if *req.Score < 1 || *req.Score > 10 {
			return nil, ErrScoreOutOfRange
		}
		review.Score = *req.Score
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	return dto.FromModelToReviewResponse(review), nil
}

func (s *reviewService) Delete(ctx context.Context, user *models.User, titleID, id int64) error {
	review, err := s.reviewRepo.FindByID(ctx, titleID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	if !permissions.CanModify(user, review.AuthorID) {
		return ErrPermissionDenied
	}

	return s.reviewRepo.Delete(ctx, titleID, id)
}
