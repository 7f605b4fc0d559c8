package service

import "errors"

// Sentinel errors shared across services. Handlers map these onto the HTTP
// taxonomy: validation 400, missing resource 404, denied 403.
var (
	// validation (400)
	ErrUsernameReserved    = errors.New("username 'me' is not allowed")
	ErrUsernameEqualsEmail = errors.New("username and email must not match")
	ErrUserExists          = errors.New("user with this username or email already exists")
	ErrInvalidCode         = errors.New("invalid confirmation code")
	ErrInvalidSlug         = errors.New("slug may only contain letters, numbers, hyphens and underscores")
	ErrSlugExists          = errors.New("slug already in use")
	ErrYearInFuture        = errors.New("year must not be in the future")
	ErrUnknownCategory     = errors.New("unknown category slug")
	ErrUnknownGenre        = errors.New("unknown genre slug")
	ErrReviewExists        = errors.New("you have already reviewed this title")
	ErrScoreOutOfRange     = errors.New("score must be between 1 and 10")

	// not found (404)
	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrTitleNotFound    = errors.New("title not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrCommentNotFound  = errors.New("comment not found")

	// denied (403)
	ErrPermissionDenied = errors.New("you don't have permission to modify this resource")
)
