package exercise

import "github.com/SAP-F-2025/phrase-sort-service/internal/models"

type ActionKind string

const (
	KindInit                ActionKind = "init"
	KindSelectQuestion      ActionKind = "select_question"
	KindTokenDragging       ActionKind = "token_dragging"
	KindTokenDragComplete   ActionKind = "token_drag_complete"
	KindTokenUpdatePosition ActionKind = "token_update_position"
	KindTokenSort           ActionKind = "response_token_sort"
	KindTokenRearrange      ActionKind = "response_token_rearrange"
	KindTokenUnsort         ActionKind = "response_token_unsort"
	KindAdjacentTokenUpdate ActionKind = "adjacent_token_update"
)

// Action is a closed set: only the types in this file implement it.
type Action interface {
	Kind() ActionKind
	isAction()
}

// QuestionAction is an action scoped to a single question of the set.
type QuestionAction interface {
	Action
	Question() int
}

type Init struct {
	Title string      `json:"title"`
	QSet  models.QSet `json:"qset"`
}

type SelectQuestion struct {
	Index int `json:"index"`
}

// TokenDragging marks the token at TokenIndex as being dragged. Status names
// the list the token lives in.
type TokenDragging struct {
	QuestionIndex int                `json:"questionIndex"`
	TokenIndex    int                `json:"tokenIndex"`
	Status        models.TokenStatus `json:"status"`
}

// TokenDragComplete restores the token at TokenIndex to Origin, which also
// names the list the token lives in.
type TokenDragComplete struct {
	QuestionIndex int                `json:"questionIndex"`
	TokenIndex    int                `json:"tokenIndex"`
	Origin        models.TokenStatus `json:"origin"`
}

type TokenUpdatePosition struct {
	QuestionIndex int     `json:"questionIndex"`
	TokenIndex    int     `json:"tokenIndex"`
	X             float64 `json:"x"`
	Width         float64 `json:"width"`
}

// TokenSort moves the pool token at PhraseIndex into the answer at TargetIndex.
type TokenSort struct {
	QuestionIndex int    `json:"questionIndex"`
	PhraseIndex   int    `json:"phraseIndex"`
	TargetIndex   int    `json:"targetIndex"`
	Value         string `json:"value"`
	Legend        string `json:"legend"`
}

// TokenRearrange moves a sorted token from OriginIndex to the slot TargetIndex,
// where TargetIndex is counted before the token is taken out.
type TokenRearrange struct {
	QuestionIndex int    `json:"questionIndex"`
	OriginIndex   int    `json:"originIndex"`
	TargetIndex   int    `json:"targetIndex"`
	Value         string `json:"value"`
	Legend        string `json:"legend"`
}

// TokenUnsort returns the sorted token at SortedIndex to the pool at PhraseIndex.
type TokenUnsort struct {
	QuestionIndex int `json:"questionIndex"`
	SortedIndex   int `json:"sortedIndex"`
	PhraseIndex   int `json:"phraseIndex"`
}

// AdjacentTokenUpdate flags the sorted tokens whose stable index equals Left
// or Right. Nil leaves that side unmarked.
type AdjacentTokenUpdate struct {
	QuestionIndex int  `json:"questionIndex"`
	Left          *int `json:"left,omitempty"`
	Right         *int `json:"right,omitempty"`
}

func (Init) Kind() ActionKind                { return KindInit }
func (SelectQuestion) Kind() ActionKind      { return KindSelectQuestion }
func (TokenDragging) Kind() ActionKind       { return KindTokenDragging }
func (TokenDragComplete) Kind() ActionKind   { return KindTokenDragComplete }
func (TokenUpdatePosition) Kind() ActionKind { return KindTokenUpdatePosition }
func (TokenSort) Kind() ActionKind           { return KindTokenSort }
func (TokenRearrange) Kind() ActionKind      { return KindTokenRearrange }
func (TokenUnsort) Kind() ActionKind         { return KindTokenUnsort }
func (AdjacentTokenUpdate) Kind() ActionKind { return KindAdjacentTokenUpdate }

func (Init) isAction()                {}
func (SelectQuestion) isAction()      {}
func (TokenDragging) isAction()       {}
func (TokenDragComplete) isAction()   {}
func (TokenUpdatePosition) isAction() {}
func (TokenSort) isAction()           {}
func (TokenRearrange) isAction()      {}
func (TokenUnsort) isAction()         {}
func (AdjacentTokenUpdate) isAction() {}

func (a TokenDragging) Question() int       { return a.QuestionIndex }
func (a TokenDragComplete) Question() int   { return a.QuestionIndex }
func (a TokenUpdatePosition) Question() int { return a.QuestionIndex }
func (a TokenSort) Question() int           { return a.QuestionIndex }
func (a TokenRearrange) Question() int      { return a.QuestionIndex }
func (a TokenUnsort) Question() int         { return a.QuestionIndex }
func (a AdjacentTokenUpdate) Question() int { return a.QuestionIndex }
