package repository

import (
	"context"

	"ratehub/internal/api/models"

	"gorm.io/gorm"
)

// TitleFilters mirrors the query parameters of the title list endpoint.
// Zero values mean "not filtered".
type TitleFilters struct {
	Genre    string // genre slug, exact
	Category string // category slug, exact
	Name     string // substring, case-insensitive
	Year     *int   // exact
}

type TitleRepository interface {
	List(ctx context.Context, filters TitleFilters, page, pageSize int) ([]models.Title, int64, error)
	FindByID(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, title *models.Title) error
	Update(ctx context.Context, title *models.Title) error
	ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error
	Delete(ctx context.Context, id int64) error
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

// withRating annotates each row with AVG(reviews.score). LEFT JOIN keeps
// titles without reviews in the result with a NULL rating.
func (r *titleRepository) withRating(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Title{}).
		Select("titles.*, AVG(reviews.score) AS rating").
		Joins("LEFT JOIN reviews ON reviews.title_id = titles.id").
		Group("titles.id")
}

func applyTitleFilters(query *gorm.DB, filters TitleFilters) *gorm.DB {
	if filters.Genre != "" {
		query = query.
			Joins("JOIN title_genres tg ON tg.title_id = titles.id").
			Joins("JOIN genres g ON g.id = tg.genre_id").
			Where("g.slug = ?", filters.Genre)
	}
	if filters.Category != "" {
		query = query.
			Joins("JOIN categories c ON c.id = titles.category_id").
			Where("c.slug = ?", filters.Category)
	}
	if filters.Name != "" {
		query = query.Where("LOWER(titles.name) LIKE LOWER(?)", "%"+filters.Name+"%")
	}
	if filters.Year != nil {
		query = query.Where("titles.year = ?", *filters.Year)
	}
	return query
}

func (r *titleRepository) List(ctx context.Context, filters TitleFilters, page, pageSize int) ([]models.Title, int64, error) {
	var titles []models.Title
	var total int64

	countQuery := applyTitleFilters(r.db.WithContext(ctx).Model(&models.Title{}), filters)
	if err := countQuery.Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := applyTitleFilters(r.withRating(ctx), filters).
		Preload("Category").
		Preload("Genres").
		Order("titles.id asc").
		Limit(pageSize).
		Offset(offset).
		Find(&titles).Error
	if err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

func (r *titleRepository) FindByID(ctx context.Context, id int64) (*models.Title, error) {
	var title models.Title
	err := r.withRating(ctx).
		Preload("Category").
		Preload("Genres").
		Where("titles.id = ?", id).
		First(&title).Error
	if err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *titleRepository) Create(ctx context.Context, title *models.Title) error {
	return r.db.WithContext(ctx).Create(title).Error
}

func (r *titleRepository) Update(ctx context.Context, title *models.Title) error {
	// Omit associations, genre replacement goes through ReplaceGenres
	return r.db.WithContext(ctx).Omit("Genres", "Category").Save(title).Error
}

func (r *titleRepository) ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error {
	return r.db.WithContext(ctx).Model(title).Association("Genres").Replace(genres)
}

func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
