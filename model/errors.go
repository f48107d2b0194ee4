package model

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrLoginRequired    = errors.New("login required")
	ErrNotBookable      = errors.New("event is not bookable")
	ErrSlugConflict     = errors.New("slug already taken")
)
