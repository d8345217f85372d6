package ledger

import "github.com/dmitrijs2005/nutritrack/internal/models"

// DefaultDailyTarget is the calorie goal shown when the user has not set one.
const DefaultDailyTarget = 2000

// Summarize folds entries into totals and a per-meal calorie breakdown.
// Entries with an unrecognized meal type count as snacks, so the totals
// always equal the sum of the breakdown.
func Summarize(entries []models.FoodEntry) models.NutritionalSummary {
	s := models.EmptySummary()
	for _, e := range entries {
		meal := e.MealType
		if !meal.Valid() {
			meal = models.MealSnack
		}
		s.TotalCalories += e.Calories
		s.TotalProtein += e.Protein
		s.TotalCarbs += e.Carbs
		s.TotalFat += e.Fat
		s.MealBreakdown[meal] += e.Calories
	}
	return s
}

// Progress compares consumed calories with a daily target.
type Progress struct {
	Consumed  int
	Target    int
	Remaining int     // never negative
	Percent   float64 // capped at 100
	Over      bool    // target reached or passed
}

// ProgressFor reports progress of s against target.
func ProgressFor(s models.NutritionalSummary, target int) Progress {
	p := Progress{
		Consumed:  s.TotalCalories,
		Target:    target,
		Remaining: max(target-s.TotalCalories, 0),
		Over:      s.TotalCalories > 0 && s.TotalCalories >= target,
	}
	switch {
	case target > 0:
		p.Percent = min(float64(s.TotalCalories)/float64(target)*100, 100)
	case s.TotalCalories > 0:
		p.Percent = 100
	}
	return p
}
