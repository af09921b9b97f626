package exercise

import (
	"fmt"

	"github.com/SAP-F-2025/phrase-sort-service/internal/models"
)

// Imported is the part of the state tree built from a question set.
type Imported struct {
	Items  []models.QuestionItem
	Legend []models.LegendEntry
}

// ImportFromQset builds one question item per qset item from its first
// question and first answer. Pool tokens are shuffled so the presentation
// order differs from the answer order.
func ImportFromQset(qset models.QSet, shuffle Shuffler) (Imported, error) {
	items := make([]models.QuestionItem, 0, len(qset.Items))
	for i, src := range qset.Items {
		if len(src.Questions) == 0 {
			return Imported{}, fmt.Errorf("%w: item %d has no question", ErrInvalidQSet, i)
		}
		if len(src.Answers) == 0 {
			return Imported{}, fmt.Errorf("%w: item %d has no answer", ErrInvalidQSet, i)
		}
		answer := src.Answers[0]

		phrase := make([]models.Token, len(answer.Options.Phrase))
		for j, tok := range answer.Options.Phrase {
			phrase[j] = models.Token{
				Index:  j,
				Value:  tok.Value,
				Legend: tok.Legend,
				Status: models.TokenUnsorted,
				Source: tok.Extra,
			}
		}

		items = append(items, models.QuestionItem{
			Question:    src.Questions[0].Text,
			Answer:      answer.Text,
			Phrase:      Shuffle(phrase, shuffle),
			Sorted:      []models.SortedToken{},
			DisplayPref: src.Options.DisplayPref,
		})
	}

	legend := qset.Options.Legend
	if legend == nil {
		legend = []models.LegendEntry{}
	}
	return Imported{Items: items, Legend: legend}, nil
}
