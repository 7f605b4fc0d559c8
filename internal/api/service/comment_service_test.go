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

func newCommentService(t *testing.T) (CommentService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewCommentService(
		repository.NewCommentRepository(db),
		repository.NewReviewRepository(db),
	)
	return svc, db
}

func TestCommentService_Create(t *testing.T) {
	ctx := context.Background()
	svc, db := newCommentService(t)

	author := seedUser(t, db, "alice", models.RoleUser)
	commenter := seedUser(t, db, "bob", models.RoleUser)
	title := seedTitle(t, db, "Solaris", 1972, nil)
	review := seedReview(t, db, title.ID, author, 8)

	t.Run("Success", func(t *testing.T) {
		resp, err := svc.Create(ctx, commenter, title.ID, review.ID, dto.CreateCommentDTO{
			Text: "agreed",
		})
		require.NoError(t, err)
		assert.Equal(t, "bob", resp.Author)
		assert.Equal(t, "agreed", resp.Text)
	})

	t.Run("WrongTitleScope", func(t *testing.T) {
		other := seedTitle(t, db, "Stalker", 1979, nil)
		_, err := svc.Create(ctx, commenter, other.ID, review.ID, dto.CreateCommentDTO{
			Text: "lost",
		})
		assert.ErrorIs(t, err, ErrReviewNotFound)
	})

	t.Run("UnknownReview", func(t *testing.T) {
		_, err := svc.Create(ctx, commenter, title.ID, 9999, dto.CreateCommentDTO{Text: "?"})
		assert.ErrorIs(t, err, ErrReviewNotFound)
	})
}

func TestCommentService_Get(t *testing.T) {
	ctx := context.Background()
	svc, db := newCommentService(t)

	author := seedUser(t, db, "alice", models.RoleUser)
	title := seedTitle(t, db, "Solaris", 1972, nil)
	review := seedReview(t, db, title.ID, author, 8)

	created, err := svc.Create(ctx, author, title.ID, review.ID, dto.CreateCommentDTO{Text: "hi"})
	require.NoError(t, err)

	resp, err := svc.Get(ctx, title.ID, review.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "hi", resp.Text)

	_, err = svc.Get(ctx, title.ID, review.ID, 9999)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCommentService_Ownership(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		role    string
		owner   bool
		allowed bool
	}{
		{name: "Author", role: models.RoleUser, owner: true, allowed: true},
		{name: "Stranger", role: models.RoleUser, allowed: false},
		{name: "Moderator", role: models.RoleModerator, allowed: true},
		{name: "Admin", role: models.RoleAdmin, allowed: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, db := newCommentService(t)
			reviewer := seedUser(t, db, "reviewer", models.RoleUser)
			owner := seedUser(t, db, "owner", models.RoleUser)
			title := seedTitle(t, db, "Solaris", 1972, nil)
			review := seedReview(t, db, title.ID, reviewer, 7)

			created, err := svc.Create(ctx, owner, title.ID, review.ID, dto.CreateCommentDTO{
				Text: "mine",
			})
			require.NoError(t, err)

			actor := owner
			if !tc.owner {
				actor = seedUser(t, db, "actor", tc.role)
			}

			_, err = svc.Update(ctx, actor, title.ID, review.ID, created.ID, dto.UpdateCommentDTO{
				Text: strPtr("edited"),
			})
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrPermissionDenied)
			}

			err = svc.Delete(ctx, actor, title.ID, review.ID, created.ID)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrPermissionDenied)
			}
		})
	}
}

func TestCommentService_ListByReview(t *testing.T) {
	ctx := context.Background()
	svc, db := newCommentService(t)

	author := seedUser(t, db, "alice", models.RoleUser)
	title := seedTitle(t, db, "Solaris", 1972, nil)
	review := seedReview(t, db, title.ID, author, 8)

	for _, text := range []string{"one", "two", "three"} {
		_, err := svc.Create(ctx, author, title.ID, review.ID, dto.CreateCommentDTO{Text: text})
		require.NoError(t, err)
	}

	resp, err := svc.ListByReview(ctx, title.ID, review.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
	assert.Len(t, resp.Data, 2)

	_, err = svc.ListByReview(ctx, title.ID, 9999, 1, 20)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}
