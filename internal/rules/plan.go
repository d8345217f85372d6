package rules

import (
	"math"
	"slices"

	"github.com/dmitrijs2005/nutritrack/internal/models"
)

// Plan is the identity-free shape of a FitnessRecommendation.
type Plan struct {
	CalorieTarget   int
	Activities      []models.Activity
	DietSuggestions []string
}

// TargetRatio is the share of consumed calories the plan aims to burn.
const TargetRatio = 0.8

// Tier cutoffs. A value equal to a cutoff belongs to the lower tier.
const (
	HighActivityAbove     = 1500 // calorie target
	ModerateActivityAbove = 1000 // calorie target
	ReductionDietAbove    = 2500 // calories consumed
	MaintenanceDietAbove  = 1800 // calories consumed
)

var (
	highActivities = []models.Activity{
		{Name: "Running (10km)", Duration: 60, CaloriesBurned: 600},
		{Name: "Strength training", Duration: 45, CaloriesBurned: 400},
		{Name: "Swimming", Duration: 30, CaloriesBurned: 300},
	}
	moderateActivities = []models.Activity{
		{Name: "Jogging (5km)", Duration: 30, CaloriesBurned: 300},
		{Name: "Cycling", Duration: 45, CaloriesBurned: 350},
		{Name: "Yoga", Duration: 30, CaloriesBurned: 150},
	}
	lightActivities = []models.Activity{
		{Name: "Walking (3km)", Duration: 30, CaloriesBurned: 150},
		{Name: "Light stretching", Duration: 20, CaloriesBurned: 80},
		{Name: "Gentle yoga", Duration: 30, CaloriesBurned: 120},
	}

	reductionDiet = []string{
		"Reduce portion sizes for all meals",
		"Avoid sugary drinks and snacks",
		"Increase water intake to 3L per day",
		"Include more fiber-rich vegetables",
	}
	maintenanceDiet = []string{
		"Maintain balanced portions",
		"Limit processed foods",
		"Stay hydrated with 2.5L of water",
		"Include protein with each meal",
	}
	adequacyDiet = []string{
		"Ensure adequate protein intake",
		"Don't skip meals",
		"Include healthy fats from nuts and avocados",
		"Stay hydrated throughout the day",
	}
)

// CalorieTarget is round(consumed * 0.8), halves rounded away from zero.
func CalorieTarget(caloriesConsumed int) int {
	return int(math.Round(float64(caloriesConsumed) * TargetRatio))
}

// PlanForCalories builds the plan for a calorie total. Activities are chosen
// by the calorie target, diet suggestions by the calories consumed. The
// returned slices are fresh copies.
func PlanForCalories(caloriesConsumed int) Plan {
	target := CalorieTarget(caloriesConsumed)
	return Plan{
		CalorieTarget:   target,
		Activities:      slices.Clone(activitiesFor(target)),
		DietSuggestions: slices.Clone(dietFor(caloriesConsumed)),
	}
}

func activitiesFor(target int) []models.Activity {
	switch {
	case target > HighActivityAbove:
		return highActivities
	case target > ModerateActivityAbove:
		return moderateActivities
	default:
		return lightActivities
	}
}

func dietFor(consumed int) []string {
	switch {
	case consumed > ReductionDietAbove:
		return reductionDiet
	case consumed > MaintenanceDietAbove:
		return maintenanceDiet
	default:
		return adequacyDiet
	}
}

// PlanForCalories on the engine delegates to the package function so callers
// holding an *Engine need a single dependency.
func (e *Engine) PlanForCalories(caloriesConsumed int) Plan {
	return PlanForCalories(caloriesConsumed)
}
