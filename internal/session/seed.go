package session

import (
	"time"

	"github.com/dmitrijs2005/nutritrack/internal/ledger"
	"github.com/dmitrijs2005/nutritrack/internal/models"
)

// Seed is the data a first-time user starts with. Food entries are
// backdated relative to activation; issue recommendations come from the
// rule engine.
type Seed struct {
	Food   []ledger.Backdated
	Issues []models.NewHealthIssue
}

// EmptySeed starts users with nothing.
var EmptySeed = Seed{}

// DemoSeed is a small sample day with two known issues.
var DemoSeed = Seed{
	Food: []ledger.Backdated{
		{
			Entry: models.NewFoodEntry{
				Name: "Oatmeal with Banana", Quantity: "1 bowl", Calories: 350,
				Protein: 10, Carbs: 60, Fat: 7, MealType: models.MealBreakfast,
			},
			Age: 12 * time.Hour,
		},
		{
			Entry: models.NewFoodEntry{
				Name: "Grilled Chicken Salad", Quantity: "1 plate", Calories: 450,
				Protein: 35, Carbs: 20, Fat: 22, MealType: models.MealLunch,
			},
			Age: 6 * time.Hour,
		},
		{
			Entry: models.NewFoodEntry{
				Name: "Apple", Quantity: "1 medium", Calories: 95,
				Protein: 0.5, Carbs: 25, Fat: 0.3, MealType: models.MealSnack,
			},
			Age: 4 * time.Hour,
		},
	},
	Issues: []models.NewHealthIssue{
		{
			Category:    models.CategoryPhysical,
			Name:        "Back pain",
			Description: "Lower back pain when sitting for long periods",
			Severity:    models.SeverityModerate,
		},
		{
			Category:    models.CategoryMental,
			Name:        "Stress",
			Description: "Work-related stress and occasional anxiety",
			Severity:    models.SeverityMild,
		},
	},
}
