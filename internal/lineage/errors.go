package lineage

import "errors"

var (
	ErrNotFound      = errors.New("mutt not found")
	ErrInvalidScore  = errors.New("score must be an integer from 1 to 5")
	ErrSelfRating    = errors.New("breeders cannot rate their own mutts")
	ErrAlreadyRated  = errors.New("voter has already rated this mutt")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyExists = errors.New("mutt already exists")
)
