package exercise

import (
	"strings"

	"github.com/SAP-F-2025/phrase-sort-service/internal/models"
)

// ResponseString joins the values of the sorted tokens with commas, the form
// in which a learner's answer is submitted.
func ResponseString(sorted []models.SortedToken) string {
	values := make([]string, len(sorted))
	for i, t := range sorted {
		values[i] = t.Value
	}
	return strings.Join(values, ",")
}
