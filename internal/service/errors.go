package service

import "errors"

// ErrInvalidInput marks validation rejections so handlers can answer with a
// 4xx instead of treating them as store failures. Wrap it with the
// field-level detail: fmt.Errorf("%w: name is required", ErrInvalidInput).
var ErrInvalidInput = errors.New("invalid input")
