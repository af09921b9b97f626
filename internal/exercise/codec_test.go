package exercise

import (
	"encoding/json"
	"testing"

	"github.com/SAP-F-2025/phrase-sort-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAction(t *testing.T) {
	left := 2
	tests := []struct {
		kind    string
		payload string
		want    Action
	}{
		{"select_question", `3`, SelectQuestion{Index: 3}},
		{"token_dragging", `{"questionIndex":1,"tokenIndex":2,"status":"unsorted"}`,
			TokenDragging{QuestionIndex: 1, TokenIndex: 2, Status: models.TokenUnsorted}},
		{"token_drag_complete", `{"questionIndex":0,"tokenIndex":1,"origin":"sorted"}`,
			TokenDragComplete{QuestionIndex: 0, TokenIndex: 1, Origin: models.TokenSorted}},
		{"token_update_position", `{"questionIndex":0,"tokenIndex":1,"x":12.5,"width":30}`,
			TokenUpdatePosition{QuestionIndex: 0, TokenIndex: 1, X: 12.5, Width: 30}},
		{"response_token_sort", `{"questionIndex":0,"phraseIndex":1,"targetIndex":0,"value":"x","legend":"L"}`,
			TokenSort{QuestionIndex: 0, PhraseIndex: 1, TargetIndex: 0, Value: "x", Legend: "L"}},
		{"response_token_rearrange", `{"questionIndex":0,"originIndex":1,"targetIndex":3,"value":"B","legend":"L"}`,
			TokenRearrange{QuestionIndex: 0, OriginIndex: 1, TargetIndex: 3, Value: "B", Legend: "L"}},
		{"response_token_unsort", `{"questionIndex":0,"sortedIndex":1,"phraseIndex":2}`,
			TokenUnsort{QuestionIndex: 0, SortedIndex: 1, PhraseIndex: 2}},
		{"adjacent_token_update", `{"questionIndex":0,"left":2}`,
			AdjacentTokenUpdate{QuestionIndex: 0, Left: &left}},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			got, err := DecodeAction(tt.kind, json.RawMessage(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, ActionKind(tt.kind), got.Kind())
		})
	}
}

func TestDecodeAction_Init(t *testing.T) {
	payload := `{
		"title": "German",
		"qset": {
			"items": [{
				"questions": [{"text": "Translate"}],
				"answers": [{"text": "Ich bin", "options": {"phrase": [{"value": "Ich", "legend": "pronoun"}, {"value": "bin", "legend": "verb"}]}}],
				"options": {"displayPref": "word"}
			}],
			"options": {"legend": [{"id": "pronoun", "color": "#00f"}]}
		}
	}`

	action, err := DecodeAction("init", json.RawMessage(payload))
	require.NoError(t, err)

	ia, ok := action.(Init)
	require.True(t, ok)
	assert.Equal(t, "German", ia.Title)
	require.Len(t, ia.QSet.Items, 1)
	assert.Equal(t, "bin", ia.QSet.Items[0].Answers[0].Options.Phrase[1].Value)
	assert.JSONEq(t, `{"id": "pronoun", "color": "#00f"}`, string(ia.QSet.Options.Legend[0]))
}

func TestDecodeAction_Errors(t *testing.T) {
	_, err := DecodeAction("launch_rocket", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrUnknownActionKind)

	_, err = DecodeAction("response_token_sort", nil)
	assert.Error(t, err)

	_, err = DecodeAction("select_question", json.RawMessage(`{"index":1}`))
	assert.Error(t, err)
}

func TestIsKnownKind(t *testing.T) {
	for _, k := range Kinds {
		assert.True(t, IsKnownKind(string(k)))
	}
	assert.False(t, IsKnownKind("bogus"))
}

func TestResponseString(t *testing.T) {
	state := withSorted("Ich", "esse", "Brot")
	assert.Equal(t, "Ich,esse,Brot", ResponseString(state.Items[0].Sorted))
	assert.Equal(t, "", ResponseString(nil))
}

func TestStateJSON(t *testing.T) {
	state := withSorted("A")
	data, err := json.Marshal(state.Items[0].Sorted[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"index":0,"legend":"LA","value":"A","status":"sorted","position":{},"arrangement":null}`, string(data))

	var tok models.SortedToken
	require.NoError(t, json.Unmarshal([]byte(`{"value":"B","arrangement":"left","position":{"x":1,"width":2}}`), &tok))
	assert.Equal(t, models.ArrangementLeft, tok.Arrangement)
	require.NotNil(t, tok.Position.X)
	assert.Equal(t, 1.0, *tok.Position.X)
}
