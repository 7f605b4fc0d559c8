// Command seed bulk-loads the classic csv dataset (users, catalog, reviews,
// comments) into the database. Any row-level failure aborts the whole run
// with the offending row's error; partial loads are not retried.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ratehub/database"
	"ratehub/internal/api/models"
	"ratehub/internal/config"
)

func main() {
	dataDir := flag.String("data", "data", "directory holding the csv files")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	s := &seeder{db: db, dataDir: *dataDir, userIDs: make(map[string]string)}

	// dependency order: referenced entities first
	steps := []struct {
		file string
		load func(string, []string) error
	}{
		{"users.csv", s.loadUser},
		{"category.csv", s.loadCategory},
		{"genre.csv", s.loadGenre},
		{"titles.csv", s.loadTitle},
		{"genre_title.csv", s.loadTitleGenre},
		{"review.csv", s.loadReview},
		{"comments.csv", s.loadComment},
	}

	for _, step := range steps {
		if err := s.loadFile(step.file, step.load); err != nil {
			log.Fatalf("cannot load %s: %v", step.file, err)
		}
		logger.Info("loaded", "file", step.file)
	}

	logger.Info("db is successfully populated with all data needed")
}

type seeder struct {
	db      *gorm.DB
	dataDir string
	// csv user ids are numeric, accounts use uuids
	userIDs map[string]string
}

// loadFile streams the csv, skipping the header, and hands each row to load.
// The first failing row aborts with its line number and error.
func (s *seeder) loadFile(name string, load func(string, []string) error) error {
	f, err := os.Open(filepath.Join(s.dataDir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return err
	}

	for i, row := range records {
		if i == 0 {
			continue // header
		}
		if err := load(name, row); err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return nil
}

// parsePubDate accepts the iso timestamps found in the dataset exports.
func parsePubDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// users.csv: id,username,email,role,bio,first_name,last_name
func (s *seeder) loadUser(file string, row []string) error {
	if len(row) < 7 {
		return fmt.Errorf("%s: expected 7 columns, got %d", file, len(row))
	}

	// seeded accounts get an unannounced confirmation code; a real one is
	// only issued through signup
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{
		ID:               uuid.New().String(),
		Username:         row[1],
		Email:            row[2],
		Role:             row[3],
		Bio:              row[4],
		FirstName:        row[5],
		LastName:         row[6],
		ConfirmationCode: string(hash),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return err
	}
	s.userIDs[row[0]] = user.ID
	return nil
}

// category.csv: id,name,slug
func (s *seeder) loadCategory(file string, row []string) error {
	if len(row) < 3 {
		return fmt.Errorf("%s: expected 3 columns, got %d", file, len(row))
	}
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return err
	}
	return s.db.Create(&models.Category{ID: id, Name: row[1], Slug: row[2]}).Error
}

// genre.csv: id,name,slug
func (s *seeder) loadGenre(file string, row []string) error {
	if len(row) < 3 {
		return fmt.Errorf("%s: expected 3 columns, got %d", file, len(row))
	}
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return err
	}
	return s.db.Create(&models.Genre{ID: id, Name: row[1], Slug: row[2]}).Error
}

// titles.csv: id,name,year,category
func (s *seeder) loadTitle(file string, row []string) error {
	if len(row) < 4 {
		return fmt.Errorf("%s: expected 4 columns, got %d", file, len(row))
	}
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return err
	}
	year, err := strconv.Atoi(row[2])
	if err != nil {
		return err
	}
	categoryID, err := strconv.ParseInt(row[3], 10, 64)
	if err != nil {
		return err
	}
	title := models.Title{ID: id, Name: row[1], Year: year, CategoryID: &categoryID}
	return s.db.Create(&title).Error
}

// genre_title.csv: id,title_id,genre_id
func (s *seeder) loadTitleGenre(file string, row []string) error {
	if len(row) < 3 {
		return fmt.Errorf("%s: expected 3 columns, got %d", file, len(row))
	}
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return err
	}
	titleID, err := strconv.ParseInt(row[1], 10, 64)
	if err != nil {
		return err
	}
	genreID, err := strconv.ParseInt(row[2], 10, 64)
	if err != nil {
		return err
	}
	return s.db.Create(&models.TitleGenre{ID: id, TitleID: titleID, GenreID: genreID}).Error
}

// review.csv: id,title_id,text,author,score,pub_date
func (s *seeder) loadReview(file string, row []string) error {
	if len(row) < 6 {
		return fmt.Errorf("%s: expected 6 columns, got %d", file, len(row))
	}
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return err
	}
	titleID, err := strconv.ParseInt(row[1], 10, 64)
	if err != nil {
		return err
	}
	authorID, ok := s.userIDs[row[3]]
	if !ok {
		return fmt.Errorf("%s: unknown author id %s", file, row[3])
	}
	score, err := strconv.Atoi(row[4])
	if err != nil {
		return err
	}
	pubDate, err := parsePubDate(row[5])
	if err != nil {
		return err
	}
	review := models.Review{
		ID:       id,
		TitleID:  titleID,
		AuthorID: authorID,
		Text:     row[2],
		Score:    score,
		PubDate:  pubDate,
	}
	return s.db.Create(&review).Error
}

// comments.csv: id,review_id,text,author,pub_date
func (s *seeder) loadComment(file string, row []string) error {
	if len(row) < 5 {
		return fmt.Errorf("%s: expected 5 columns, got %d", file, len(row))
	}
	id, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return err
	}
	reviewID, err := strconv.ParseInt(row[1], 10, 64)
	if err != nil {
		return err
	}
	authorID, ok := s.userIDs[row[3]]
	if !ok {
		return fmt.Errorf("%s: unknown author id %s", file, row[3])
	}
	pubDate, err := parsePubDate(row[4])
	if err != nil {
		return err
	}
	comment := models.Comment{
		ID:       id,
		ReviewID: reviewID,
		AuthorID: authorID,
		Text:     row[2],
		PubDate:  pubDate,
	}
	return s.db.Create(&comment).Error
}
