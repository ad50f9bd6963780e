package session

import "errors"

var (
	ErrNotPrivileged    = errors.New("operator only")
	ErrIndexOutOfRange  = errors.New("profile index out of range")
	ErrItemOutOfRange   = errors.New("item index out of range")
	ErrNotEditing       = errors.New("profile is not being edited")
	ErrEditInProgress   = errors.New("profile is being edited")
	ErrSaveInProgress   = errors.New("save already in progress")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrUnknownFormField = errors.New("unknown form field")
)
