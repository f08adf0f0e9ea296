package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrModuleNotFound      = errors.New("module not found")
	ErrScenarioNotFound    = errors.New("scenario not found")
	ErrAchievementNotFound = errors.New("achievement not found")
	ErrInvalidFileType     = errors.New("invalid file type")
)
