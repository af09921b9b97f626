package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

type TokenStatus string

const (
	TokenUnsorted TokenStatus = "unsorted"
	TokenSorted   TokenStatus = "sorted"
	TokenDragging TokenStatus = "dragging"
)

// Arrangement marks a sorted token as the left or right neighbour of the
// current drop target. The zero value means no arrangement and encodes as null.
type Arrangement string

const (
	ArrangementNone  Arrangement = ""
	ArrangementLeft  Arrangement = "left"
	ArrangementRight Arrangement = "right"
)

func (a Arrangement) MarshalJSON() ([]byte, error) {
	if a == ArrangementNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(a))
}

func (a *Arrangement) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = ArrangementNone
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*a = Arrangement(s)
	return nil
}

// LegendEntry is passed through from the question set untouched.
type LegendEntry = datatypes.JSON

// Position is a layout hint owned by the renderer. It encodes as {} until set.
type Position struct {
	X     *float64 `json:"x,omitempty"`
	Width *float64 `json:"width,omitempty"`
}

func (p Position) IsZero() bool {
	return p.X == nil && p.Width == nil
}

// Token is an unsorted candidate in a question's pool. Index is the token's
// position in the source phrase and stays fixed for the life of the exercise.
// Source holds the authored fields the exercise does not read; they encode
// alongside the token's own fields.
type Token struct {
	Index  int            `json:"index"`
	Value  string         `json:"value"`
	Legend string         `json:"legend"`
	Status TokenStatus    `json:"status"`
	Source datatypes.JSON `json:"-"`
}

func (t Token) MarshalJSON() ([]byte, error) {
	type plain Token
	own, err := json.Marshal(plain(t))
	if err != nil {
		return nil, err
	}
	return mergeFields(t.Source, own)
}

func (t *Token) UnmarshalJSON(data []byte) error {
	type plain Token
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	source, err := extraFields(data, "index", "value", "legend", "status")
	if err != nil {
		return err
	}
	p.Source = source
	*t = Token(p)
	return nil
}

// SortedToken is a token placed into the learner's answer sequence. Source
// travels with it so the token regains its authored fields when unsorted.
type SortedToken struct {
	Index       int            `json:"index"`
	Legend      string         `json:"legend"`
	Value       string         `json:"value"`
	Status      TokenStatus    `json:"status"`
	Position    Position       `json:"position"`
	Arrangement Arrangement    `json:"arrangement"`
	Source      datatypes.JSON `json:"source,omitempty"`
}

type QuestionItem struct {
	Question    string         `json:"question"`
	Answer      string         `json:"answer"`
	Phrase      []Token        `json:"phrase"`
	Sorted      []SortedToken  `json:"sorted"`
	DisplayPref datatypes.JSON `json:"displayPref,omitempty"`
}

// ExerciseState is the whole state tree of one mounted widget.
type ExerciseState struct {
	Title        string         `json:"title"`
	Items        []QuestionItem `json:"items"`
	Legend       []LegendEntry  `json:"legend"`
	CurrentIndex int            `json:"currentIndex"`
	RequireInit  bool           `json:"requireInit"`
}

const DefaultExerciseTitle = "New Foreign Language Widget"

// NewExerciseState returns the state a widget starts with before a question
// set is loaded.
func NewExerciseState() ExerciseState {
	return ExerciseState{
		Title:        DefaultExerciseTitle,
		Items:        []QuestionItem{},
		Legend:       []LegendEntry{},
		CurrentIndex: 0,
		RequireInit:  true,
	}
}

// CurrentItem returns the active question, or false when CurrentIndex does
// not address one.
func (s ExerciseState) CurrentItem() (QuestionItem, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Items) {
		return QuestionItem{}, false
	}
	return s.Items[s.CurrentIndex], true
}
