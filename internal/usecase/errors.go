package usecase

import "errors"

var (
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrDuplicateMovie      = errors.New("movie already in catalog")
	ErrAlreadyCommented    = errors.New("already commented on this movie")
	ErrEmptyComment        = errors.New("comment has no text")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrMovieNotFound       = errors.New("movie not found")
	ErrCommentNotFound     = errors.New("comment not found")
	ErrForbidden           = errors.New("not allowed")
	ErrProviderUnavailable = errors.New("movie database unavailable")
)
