package service

import (
	"context"
	"testing"

	"ratehub/internal/api/dto"
	"ratehub/internal/api/models"
	"ratehub/internal/api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReviewService(t *testing.T) (ReviewService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewTitleRepository(db),
	)
	return svc, db
}

func TestReviewService_Create(t *testing.T) {
	ctx := context.Background()
	svc, db := newReviewService(t)

	author := seedUser(t, db, "alice", models.RoleUser)
	title := seedTitle(t, db, "Solaris", 1972, nil)

	t.Run("Success", func(t *testing.T) {
		resp, err := svc.Create(ctx, author, title.ID, dto.CreateReviewDTO{
			Text:  "a classic",
			Score: 9,
		})
		require.NoError(t, err)
		assert.Equal(t, "alice", resp.Author)
		assert.Equal(t, 9, resp.Score)
		assert.False(t, resp.PubDate.IsZero())
	})

	t.Run("SecondReviewRejected", func(t *testing.T) {
		_, err := svc.Create(ctx, author, title.ID, dto.CreateReviewDTO{
			Text:  "changed my mind",
			Score: 3,
		})
		assert.ErrorIs(t, err, ErrReviewExists)
	})

	t.Run("OtherAuthorStillAllowed", func(t *testing.T) {
		bob := seedUser(t, db, "bob", models.RoleUser)
		_, err := svc.Create(ctx, bob, title.ID, dto.CreateReviewDTO{Text: "meh", Score: 5})
		assert.NoError(t, err)
	})

	t.Run("ScoreOutOfRange", func(t *testing.T) {
		carol := seedUser(t, db, "carol", models.RoleUser)
		_, err := svc.Create(ctx, carol, title.ID, dto.CreateReviewDTO{Text: "!", Score: 11})
		assert.ErrorIs(t, err, ErrScoreOutOfRange)
	})

	t.Run("UnknownTitle", func(t *testing.T) {
		_, err := svc.Create(ctx, author, 9999, dto.CreateReviewDTO{Text: "?", Score: 5})
		assert.ErrorIs(t, err, ErrTitleNotFound)
	})
}

func TestReviewService_Ownership(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		role    string
		super   bool
		owner   bool
		allowed bool
	}{
		{name: "Author", role: models.RoleUser, owner: true, allowed: true},
		{name: "Stranger", role: models.RoleUser, allowed: false},
		{name: "Moderator", role: models.RoleModerator, allowed: true},
		{name: "Admin", role: models.RoleAdmin, allowed: true},
		{name: "Superuser", role: models.RoleUser, super: true, allowed: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, db := newReviewService(t)
			author := seedUser(t, db, "author", models.RoleUser)
			title := seedTitle(t, db, "Solaris", 1972, nil)
			review := seedReview(t, db, title.ID, author, 6)

			actor := author
			if !tc.owner {
				actor = seedUser(t, db, "actor", tc.role)
				if tc.super {
					actor.IsSuperuser = true
					require.NoError(t, db.Save(actor).Error)
				}
			}

			_, err := svc.Update(ctx, actor, title.ID, review.ID, dto.UpdateReviewDTO{
				Text: strPtr("edited"),
			})
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrPermissionDenied)
			}

			err = svc.Delete(ctx, actor, title.ID, review.ID)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrPermissionDenied)
			}
		})
	}
}

func TestReviewService_Update(t *testing.T) {
	ctx := context.Background()
	svc, db := newReviewService(t)
	author := seedUser(t, db, "alice", models.RoleUser)
	title := seedTitle(t, db, "Solaris", 1972, nil)
	review := seedReview(t, db, title.ID, author, 6)

	t.Run("ScoreOutOfRange", func(t *testing.T) {
		_, err := svc.Update(ctx, author, title.ID, review.ID, dto.UpdateReviewDTO{
			Score: intPtr(0),
		})
		assert.ErrorIs(t, err, ErrScoreOutOfRange)
	})

	t.Run("PartialUpdateKeepsScore", func(t *testing.T) {
		resp, err := svc.Update(ctx, author, title.ID, review.ID, dto.UpdateReviewDTO{
			Text: strPtr("still good"),
		})
		require.NoError(t, err)
		assert.Equal(t, "still good", resp.Text)
		assert.Equal(t, 6, resp.Score)
	})

	t.Run("WrongTitleScope", func(t *testing.T) {
		other := seedTitle(t, db, "Stalker", 1979, nil)
		_, err := svc.Update(ctx, author, other.ID, review.ID, dto.UpdateReviewDTO{
			Text: strPtr("x"),
		})
		assert.ErrorIs(t, err, ErrReviewNotFound)
	})
}

func TestReviewService_ListByTitle(t *testing.T) {
	ctx := context.Background()
	svc, db := newReviewService(t)
	title := seedTitle(t, db, "Solaris", 1972, nil)
	other := seedTitle(t, db, "Stalker", 1979, nil)

	for i, name := range []string{"u1", "u2", "u3"} {
		u := seedUser(t, db, name, models.RoleUser)
		seedReview(t, db, title.ID, u, i+5)
	}
	outsider := seedUser(t, db, "u4", models.RoleUser)
	seedReview(t, db, other.ID, outsider, 10)

	resp, err := svc.ListByTitle(ctx, title.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 2, resp.TotalPages)

	_, err = svc.ListByTitle(ctx, 9999, 1, 20)
	assert.ErrorIs(t, err, ErrTitleNotFound)
}
