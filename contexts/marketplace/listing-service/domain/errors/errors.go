package errors

import "errors"

var (
	ErrInvalidListingInput = errors.New("title, category, and a positive price are required")
	ErrListingNotFound     = errors.New("listing not found")
	ErrNotListingOwner     = errors.New("actor is not the listing owner")
	ErrNoQualifyingChange  = errors.New("renewal must change price, image, or shipping cost")
	ErrInvalidStatusFilter = errors.New("invalid status filter")

	ErrRepositoryInvariantBroke = errors.New("repository invariant violated")
)
