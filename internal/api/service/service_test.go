package service

import (
	"context"
	"testing"
	"time"

	"ratehub/database"
	"ratehub/internal/api/models"
	"ratehub/internal/config"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory sqlite database with the full schema.
// TranslateError is on, like production, so unique violations surface as
// gorm.ErrDuplicatedKey on both drivers.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret: "0123456789abcdef0123456789abcdef",
		JWTExpiry: time.Hour,
	}
}

// captureMailer records the last confirmation code instead of sending mail.
type captureMailer struct {
	to       string
	username string
	code     string
	err      error
}

func (m *captureMailer) SendConfirmationCode(ctx context.Context, to, username, code string) error {
	if m.err != nil {
		return m.err
	}
	m.to, m.username, m.code = to, username, code
	return nil
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()
	user := &models.User{
		Username:         username,
		Email:            username + "@example.com",
		Role:             role,
		ConfirmationCode: "unset",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, name, slug string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedGenre(t *testing.T, db *gorm.DB, name, slug string) *models.Genre {
	t.Helper()
	genre := &models.Genre{Name: name, Slug: slug}
	require.NoError(t, db.Create(genre).Error)
	return genre
}

func seedTitle(t *testing.T, db *gorm.DB, name string, year int, category *models.Category, genres ...models.Genre) *models.Title {
	t.Helper()
	title := &models.Title{Name: name, Year: year, Genres: genres}
	if category != nil {
		title.CategoryID = &category.ID
	}
	require.NoError(t, db.Create(title).Error)
	return title
}

func seedReview(t *testing.T, db *gorm.DB, titleID int64, author *models.User, score int) *models.Review {
	t.Helper()
	review := &models.Review{
		TitleID:  titleID,
		AuthorID: author.ID,
		Text:     "seeded review",
		Score:    score,
	}
	require.NoError(t, db.Create(review).Error)
	return review
}
