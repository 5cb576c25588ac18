package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrEmptyCart is returned when checkout finds no cart items for the user.
	ErrEmptyCart = errors.New("cart is empty")
)
