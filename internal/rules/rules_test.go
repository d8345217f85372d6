package rules

import (
	"testing"

	"github.com/dmitrijs2005/nutritrack/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendationsForIssue_BackPain(t *testing.T) {
	e := NewEngine()

	got := e.RecommendationsForIssue(models.HealthIssue{
		Name: "Back pain", Category: models.CategoryPhysical, Severity: models.SeverityModerate,
	})

	want := []Advice{
		{Text: "Practice daily stretching exercises focused on lower back", Type: models.AdviceExercise},
		{Text: "Take short walking breaks every hour during work", Type: models.AdviceLifestyle},
	}
	assert.Empty(t, cmp.Diff(want, got))
}

func TestRecommendationsForIssue_Stress(t *testing.T) {
	got := NewEngine().RecommendationsForIssue(models.HealthIssue{Name: "Stress", Category: models.CategoryMental})

	require.Len(t, got, 2)
	assert.Equal(t, models.AdviceLifestyle, got[0].Type)
	assert.Equal(t, models.AdviceDiet, got[1].Type)
}

func TestRecommendationsForIssue_UnknownIsEmpty(t *testing.T) {
	got := NewEngine().RecommendationsForIssue(models.HealthIssue{Name: "Unknown issue", Category: models.CategoryPhysical})

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecommendationsForIssue_ExactNameOnly(t *testing.T) {
	got := NewEngine().RecommendationsForIssue(models.HealthIssue{Name: "back pain"})
	assert.Empty(t, got)
}

func TestRecommendationsForIssue_MostSpecificWins(t *testing.T) {
	e := NewEmptyEngine(
		WithRules(
			Rule{When: Signature{Category: models.CategoryMental}, Advice: []Advice{{Text: "talk to someone", Type: models.AdviceLifestyle}}},
			Rule{When: Signature{Category: models.CategoryMental, Severity: models.SeveritySevere}, Advice: []Advice{{Text: "see a doctor", Type: models.AdviceMedical}}},
			Rule{When: Signature{Name: "Insomnia"}, Advice: []Advice{{Text: "keep a sleep schedule", Type: models.AdviceLifestyle}}},
		),
	)

	got := e.RecommendationsForIssue(models.HealthIssue{Name: "Anxiety", Category: models.CategoryMental, Severity: models.SeveritySevere})
	require.Len(t, got, 1)
	assert.Equal(t, "see a doctor", got[0].Text)

	got = e.RecommendationsForIssue(models.HealthIssue{Name: "Anxiety", Category: models.CategoryMental, Severity: models.SeverityMild})
	require.Len(t, got, 1)
	assert.Equal(t, "talk to someone", got[0].Text)

	got = e.RecommendationsForIssue(models.HealthIssue{Name: "Insomnia", Category: models.CategoryMental, Severity: models.SeveritySevere})
	require.Len(t, got, 1)
	assert.Equal(t, "keep a sleep schedule", got[0].Text)
}

func TestRecommendationsForIssue_Fallback(t *testing.T) {
	e := NewEngine(WithFallback(Advice{Text: "track symptoms daily", Type: models.AdviceLifestyle}))

	got := e.RecommendationsForIssue(models.HealthIssue{Name: "Unknown issue"})
	require.Len(t, got, 1)
	assert.Equal(t, "track symptoms daily", got[0].Text)

	// named rules still win over the fallback
	got = e.RecommendationsForIssue(models.HealthIssue{Name: "Stress"})
	assert.Len(t, got, 2)
}

func TestRecommendationsForIssue_ResultIsACopy(t *testing.T) {
	e := NewEngine()
	issue := models.HealthIssue{Name: "Stress"}

	first := e.RecommendationsForIssue(issue)
	first[0].Text = "mutated"

	second := e.RecommendationsForIssue(issue)
	assert.Equal(t, "Practice 10 minutes of mindfulness meditation daily", second[0].Text)
}
