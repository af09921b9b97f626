package exercise

import (
	"math/rand/v2"

	"github.com/SAP-F-2025/phrase-sort-service/internal/models"
	"gorm.io/datatypes"
)

func noShuffle(int, func(i, j int)) {}

func seededShuffler(seed uint64) Shuffler {
	return rand.New(rand.NewPCG(seed, seed+1)).Shuffle
}

type bogusAction struct{}

func (bogusAction) Kind() ActionKind { return "bogus" }
func (bogusAction) isAction()        {}

type bogusQuestionAction struct{}

func (bogusQuestionAction) Kind() ActionKind { return "bogus_question" }
func (bogusQuestionAction) isAction()        {}
func (bogusQuestionAction) Question() int    { return 0 }

func qsetItem(question, answer string, values ...string) models.QSetItem {
	phrase := make([]models.QSetToken, len(values))
	for i, v := range values {
		phrase[i] = models.QSetToken{Value: v, Legend: "L" + v}
	}
	return models.QSetItem{
		Questions: []models.QSetText{{Text: question}},
		Answers: []models.QSetAnswer{{
			Text:    answer,
			Options: models.QSetAnswerOptions{Phrase: phrase},
		}},
		Options: models.QSetItemOptions{DisplayPref: datatypes.JSON(`"word"`)},
	}
}

func testQSet(items ...models.QSetItem) models.QSet {
	return models.QSet{
		Items: items,
		Options: models.QSetOptions{Legend: []models.LegendEntry{
			datatypes.JSON(`{"id":"noun","name":"Noun","color":"#f00"}`),
		}},
	}
}

// initialized returns a state loaded with an unshuffled question set.
func initialized(items ...models.QSetItem) models.ExerciseState {
	state, err := NewReducer(noShuffle).Reduce(models.NewExerciseState(), Init{Title: "Test", QSet: testQSet(items...)})
	if err != nil {
		panic(err)
	}
	return state
}

// withSorted returns a one-question state whose answer already holds values
// in order, with stable indices 0..n-1.
func withSorted(values ...string) models.ExerciseState {
	state := initialized(qsetItem("q", "a"))
	sorted := make([]models.SortedToken, len(values))
	for i, v := range values {
		sorted[i] = newSortedToken(i, v, "L"+v)
	}
	state.Items[0].Sorted = sorted
	return state
}

func sortedValues(sorted []models.SortedToken) []string {
	out := make([]string, len(sorted))
	for i, t := range sorted {
		out[i] = t.Value
	}
	return out
}

func phraseValues(phrase []models.Token) []string {
	out := make([]string, len(phrase))
	for i, t := range phrase {
		out[i] = t.Value
	}
	return out
}
