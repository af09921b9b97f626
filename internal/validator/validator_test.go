package validator

import (
	"errors"
	"testing"

	apperrors "github.com/SAP-F-2025/phrase-sort-service/internal/errors"
	"github.com/SAP-F-2025/phrase-sort-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type actionRequest struct {
	Type string `json:"type" validate:"required,action_kind"`
}

type listRequest struct {
	List models.TokenStatus `json:"list" validate:"token_status"`
}

type createRequest struct {
	Title string      `json:"title" validate:"required"`
	QSet  models.QSet `json:"qset"`
}

func TestValidator_ActionKind(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(actionRequest{Type: "response_token_sort"}))

	err := v.Validate(actionRequest{Type: "launch"})
	var errs apperrors.ValidationErrors
	require.True(t, errors.As(err, &errs))
	require.Len(t, errs, 1)
	assert.Equal(t, "type", errs[0].Field)
	assert.Equal(t, "action_kind", errs[0].Rule)
}

// Drag payloads carry free-form statuses that the reducer ignores when they
// name no list, so no status tag is registered.
func TestValidator_NoTokenStatusTag(t *testing.T) {
	v := New()

	assert.Panics(t, func() {
		_ = v.Validate(listRequest{List: models.TokenDragging})
	})
}

func TestValidator_QSet(t *testing.T) {
	v := New()

	err := v.Validate(createRequest{Title: "T"})
	var errs apperrors.ValidationErrors
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, "qset.items", errs[0].Field)

	err = v.Validate(createRequest{Title: "T", QSet: models.QSet{Items: []models.QSetItem{{
		Questions: []models.QSetText{{Text: "q"}},
	}}}})
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, "qset.items[0].answers", errs[0].Field)

	assert.NoError(t, v.Validate(createRequest{Title: "T", QSet: models.QSet{Items: []models.QSetItem{{
		Questions: []models.QSetText{{Text: "q"}},
		Answers:   []models.QSetAnswer{{Text: "a"}},
	}}}}))
}
