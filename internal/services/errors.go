package services

import (
	"errors"

	apperrors "github.com/SAP-F-2025/phrase-sort-service/internal/errors"
	"github.com/SAP-F-2025/phrase-sort-service/internal/exercise"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")

	// Session specific errors
	ErrSessionNotFound  = errors.New("exercise session not found")
	ErrQuestionNotFound = errors.New("question not found in exercise")

	// Import specific errors
	ErrImportUnsupportedFormat = errors.New("unsupported question set file format")
	ErrImportMissingSheet      = errors.New("question set workbook has no questions sheet")
)

// ===== CUSTOM ERROR TYPES =====

type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// ===== ERROR HELPERS =====

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrQuestionNotFound)
}

func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *ValidationError
	return errors.As(err, &single)
}

// IsInvalidAction reports an action the exercise store refused: unknown kind,
// a slot index outside its list, or a malformed question set.
func IsInvalidAction(err error) bool {
	return errors.Is(err, exercise.ErrUnrecognizedAction) ||
		errors.Is(err, exercise.ErrUnknownActionKind) ||
		errors.Is(err, exercise.ErrIndexOutOfRange) ||
		errors.Is(err, exercise.ErrInvalidQSet) ||
		errors.Is(err, ErrBadRequest) ||
		errors.Is(err, ErrImportUnsupportedFormat) ||
		errors.Is(err, ErrImportMissingSheet)
}

func IsConflict(err error) bool {
	return errors.Is(err, exercise.ErrNotInitialized)
}
