package main

import "errors"

var (
	ErrImageTooLarge   = errors.New("image too large")
	ErrNotImage        = errors.New("not an image")
	ErrQuotaExceeded   = errors.New("storage quota exceeded")
	ErrNotFound        = errors.New("not found")
	ErrNothingToExport = errors.New("nothing to export")
)
