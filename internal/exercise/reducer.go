package exercise

import (
	"github.com/SAP-F-2025/phrase-sort-service/internal/models"
)

// Reducer applies actions to an exercise state. It never modifies the state
// it is given; every transition returns a new tree that shares the branches
// it did not touch.
type Reducer struct {
	shuffle Shuffler
}

func NewReducer(shuffle Shuffler) *Reducer {
	if shuffle == nil {
		shuffle = DefaultShuffler
	}
	return &Reducer{shuffle: shuffle}
}

// Reduce returns the state that follows action. On error the returned state
// is the input state.
func (r *Reducer) Reduce(state models.ExerciseState, action Action) (models.ExerciseState, error) {
	switch a := action.(type) {
	case Init:
		imported, err := ImportFromQset(a.QSet, r.shuffle)
		if err != nil {
			return state, err
		}
		state.Title = a.Title
		state.Items = imported.Items
		state.Legend = imported.Legend
		state.RequireInit = false
		return state, nil
	case SelectQuestion:
		state.CurrentIndex = a.Index
		return state, nil
	case QuestionAction:
		if state.RequireInit {
			return state, ErrNotInitialized
		}
		items, err := reduceQuestions(state.Items, a)
		if err != nil {
			return state, err
		}
		state.Items = items
		return state, nil
	default:
		return state, unrecognized("base", action)
	}
}

func reduceQuestions(items []models.QuestionItem, action QuestionAction) ([]models.QuestionItem, error) {
	switch a := action.(type) {
	case TokenDragging:
		return updateItem(items, a.QuestionIndex, func(item models.QuestionItem) (models.QuestionItem, error) {
			return routeByList(item, a.Status, a)
		})
	case TokenDragComplete:
		return updateItem(items, a.QuestionIndex, func(item models.QuestionItem) (models.QuestionItem, error) {
			return routeByList(item, a.Origin, a)
		})
	case TokenSort:
		return updateItem(items, a.QuestionIndex, func(item models.QuestionItem) (models.QuestionItem, error) {
			if a.PhraseIndex < 0 || a.PhraseIndex >= len(item.Phrase) {
				return item, &IndexError{Field: "phraseIndex", Index: a.PhraseIndex, Len: len(item.Phrase)}
			}
			moved := item.Phrase[a.PhraseIndex]
			sorted, err := reduceSorted(item.Sorted, a, &moved)
			if err != nil {
				return item, err
			}
			phrase, err := reduceUnsorted(item.Phrase, a, nil)
			if err != nil {
				return item, err
			}
			item.Sorted, item.Phrase = sorted, phrase
			return item, nil
		})
	case TokenUnsort:
		return updateItem(items, a.QuestionIndex, func(item models.QuestionItem) (models.QuestionItem, error) {
			if a.SortedIndex < 0 || a.SortedIndex >= len(item.Sorted) {
				return item, &IndexError{Field: "sortedIndex", Index: a.SortedIndex, Len: len(item.Sorted)}
			}
			moved := item.Sorted[a.SortedIndex]
			phrase, err := reduceUnsorted(item.Phrase, a, &moved)
			if err != nil {
				return item, err
			}
			sorted, err := reduceSorted(item.Sorted, a, nil)
			if err != nil {
				return item, err
			}
			item.Sorted, item.Phrase = sorted, phrase
			return item, nil
		})
	case TokenRearrange, TokenUpdatePosition, AdjacentTokenUpdate:
		return updateItem(items, a.Question(), func(item models.QuestionItem) (models.QuestionItem, error) {
			sorted, err := reduceSorted(item.Sorted, a, nil)
			if err != nil {
				return item, err
			}
			item.Sorted = sorted
			return item, nil
		})
	default:
		return nil, unrecognized("question item", action)
	}
}

// routeByList hands a drag action to the list named by status. Any other
// status leaves the item as it is.
func routeByList(item models.QuestionItem, status models.TokenStatus, action Action) (models.QuestionItem, error) {
	switch status {
	case models.TokenUnsorted:
		phrase, err := reduceUnsorted(item.Phrase, action, nil)
		if err != nil {
			return item, err
		}
		item.Phrase = phrase
	case models.TokenSorted:
		sorted, err := reduceSorted(item.Sorted, action, nil)
		if err != nil {
			return item, err
		}
		item.Sorted = sorted
	}
	return item, nil
}

// reduceSorted applies action to the answer sequence. moved is the pool token
// entering the sequence, set only for TokenSort.
func reduceSorted(list []models.SortedToken, action Action, moved *models.Token) ([]models.SortedToken, error) {
	switch a := action.(type) {
	case TokenDragging:
		return updateAt(list, a.TokenIndex, func(t models.SortedToken) models.SortedToken {
			t.Status = models.TokenDragging
			return t
		}), nil
	case TokenDragComplete:
		return updateAt(list, a.TokenIndex, func(t models.SortedToken) models.SortedToken {
			t.Status = a.Origin
			return t
		}), nil
	case TokenUpdatePosition:
		x, width := a.X, a.Width
		return updateAt(list, a.TokenIndex, func(t models.SortedToken) models.SortedToken {
			t.Position = models.Position{X: &x, Width: &width}
			return t
		}), nil
	case TokenSort:
		if a.TargetIndex < 0 || a.TargetIndex > len(list) {
			return nil, &IndexError{Field: "targetIndex", Index: a.TargetIndex, Len: len(list)}
		}
		token := newSortedToken(-1, a.Value, a.Legend)
		if moved != nil {
			token.Index = moved.Index
			token.Source = moved.Source
		}
		return insertAt(list, a.TargetIndex, token), nil
	case TokenRearrange:
		if a.OriginIndex < 0 || a.OriginIndex >= len(list) {
			return nil, &IndexError{Field: "originIndex", Index: a.OriginIndex, Len: len(list)}
		}
		if a.TargetIndex < 0 || a.TargetIndex > len(list) {
			return nil, &IndexError{Field: "targetIndex", Index: a.TargetIndex, Len: len(list)}
		}
		target := a.TargetIndex
		if a.OriginIndex < target {
			target--
		}
		origin := list[a.OriginIndex]
		token := newSortedToken(origin.Index, a.Value, a.Legend)
		token.Source = origin.Source
		rest := removeAt(list, a.OriginIndex)
		return insertAt(rest, target, token), nil
	case TokenUnsort:
		if a.SortedIndex < 0 || a.SortedIndex >= len(list) {
			return nil, &IndexError{Field: "sortedIndex", Index: a.SortedIndex, Len: len(list)}
		}
		return removeAt(list, a.SortedIndex), nil
	case AdjacentTokenUpdate:
		out := make([]models.SortedToken, len(list))
		for i, t := range list {
			switch {
			case a.Left != nil && t.Index == *a.Left:
				t.Arrangement = models.ArrangementLeft
			case a.Right != nil && t.Index == *a.Right:
				t.Arrangement = models.ArrangementRight
			default:
				t.Arrangement = models.ArrangementNone
			}
			out[i] = t
		}
		return out, nil
	default:
		return nil, unrecognized("sorted token", action)
	}
}

// reduceUnsorted applies action to the token pool. moved is the sorted token
// returning to the pool, set only for TokenUnsort.
func reduceUnsorted(list []models.Token, action Action, moved *models.SortedToken) ([]models.Token, error) {
	switch a := action.(type) {
	case TokenDragging:
		return updateAt(list, a.TokenIndex, func(t models.Token) models.Token {
			t.Status = models.TokenDragging
			return t
		}), nil
	case TokenDragComplete:
		return updateAt(list, a.TokenIndex, func(t models.Token) models.Token {
			t.Status = a.Origin
			return t
		}), nil
	case TokenSort:
		if a.PhraseIndex < 0 || a.PhraseIndex >= len(list) {
			return nil, &IndexError{Field: "phraseIndex", Index: a.PhraseIndex, Len: len(list)}
		}
		return removeAt(list, a.PhraseIndex), nil
	case TokenUnsort:
		if a.PhraseIndex < 0 || a.PhraseIndex > len(list) {
			return nil, &IndexError{Field: "phraseIndex", Index: a.PhraseIndex, Len: len(list)}
		}
		if moved == nil {
			return list, nil
		}
		return insertAt(list, a.PhraseIndex, models.Token{
			Index:  moved.Index,
			Value:  moved.Value,
			Legend: moved.Legend,
			Status: models.TokenUnsorted,
			Source: moved.Source,
		}), nil
	default:
		return nil, unrecognized("unsorted token", action)
	}
}

func newSortedToken(index int, value, legend string) models.SortedToken {
	return models.SortedToken{
		Index:       index,
		Legend:      legend,
		Value:       value,
		Status:      models.TokenSorted,
		Position:    models.Position{},
		Arrangement: models.ArrangementNone,
	}
}

func updateItem(items []models.QuestionItem, index int, fn func(models.QuestionItem) (models.QuestionItem, error)) ([]models.QuestionItem, error) {
	if index < 0 || index >= len(items) {
		return items, nil
	}
	item, err := fn(items[index])
	if err != nil {
		return nil, err
	}
	out := make([]models.QuestionItem, len(items))
	copy(out, items)
	out[index] = item
	return out, nil
}

// updateAt copies list and replaces the element at index. An index outside
// the list changes nothing.
func updateAt[T any](list []T, index int, fn func(T) T) []T {
	out := make([]T, len(list))
	copy(out, list)
	if index >= 0 && index < len(out) {
		out[index] = fn(out[index])
	}
	return out
}

func insertAt[T any](list []T, index int, v T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, list[:index]...)
	out = append(out, v)
	return append(out, list[index:]...)
}

func removeAt[T any](list []T, index int) []T {
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:index]...)
	return append(out, list[index+1:]...)
}
