// Package recognition turns a food photo into a prefilled food form.
//
// A Classifier only has to produce ranked label guesses; picking a food
// label and looking up its nutrition happens here, so any classifier
// (a vision LLM, a hosted label detector, a test fake) can be plugged in.
package recognition

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/nutritrack/internal/common"
	"github.com/dmitrijs2005/nutritrack/internal/models"
)

// Guess is one ranked classifier result.
type Guess struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Classifier labels an image.
type Classifier interface {
	Classify(ctx context.Context, image []byte) ([]Guess, error)
}

var foodHints = []string{"food", "fruit", "vegetable"}

// BestFoodLabel returns the most confident guess that looks like food: its
// label mentions food, fruit or vegetable, or names a known dish.
func BestFoodLabel(guesses []Guess) (string, bool) {
	ranked := slices.Clone(guesses)
	slices.SortStableFunc(ranked, func(a, b Guess) int {
		switch {
		case a.Confidence > b.Confidence:
			return -1
		case a.Confidence < b.Confidence:
			return 1
		}
		return 0
	})

	for _, g := range ranked {
		label := strings.ToLower(g.Label)
		for _, h := range foodHints {
			if strings.Contains(label, h) {
				return g.Label, true
			}
		}
		if _, ok := Lookup(g.Label); ok {
			return g.Label, true
		}
	}
	return "", false
}

// Prefill builds the form for label: known foods come with their nutrition,
// anything else keeps the raw label and leaves the numbers for the user.
func Prefill(label string) models.FoodForm {
	form := models.FoodForm{Name: label, MealType: string(models.MealBreakfast)}
	n, ok := Lookup(label)
	if !ok {
		return form
	}
	form.Name = n.Name
	form.Calories = fmt.Sprint(n.Calories)
	form.Protein = fmt.Sprint(n.Protein)
	form.Carbs = fmt.Sprint(n.Carbs)
	form.Fat = fmt.Sprint(n.Fat)
	return form
}

// Recognize classifies image and prefills a form from the best food label.
// It fails with common.ErrNoFoodDetected when no guess looks like food.
func Recognize(ctx context.Context, c Classifier, image []byte) (models.FoodForm, error) {
	guesses, err := c.Classify(ctx, image)
	if err != nil {
		return models.FoodForm{}, fmt.Errorf("classify image: %w", err)
	}
	label, ok := BestFoodLabel(guesses)
	if !ok {
		return models.FoodForm{}, common.ErrNoFoodDetected
	}
	return Prefill(label), nil
}
