// Package models defines the NutriTrack domain records and their JSON shape.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/nutritrack/internal/common"
)

// MealType classifies a food entry.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// MealTypes lists every meal type in display order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}

// Valid reports whether m is one of MealTypes.
func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// ParseMealType is case-insensitive and ignores surrounding spaces.
func ParseMealType(s string) (MealType, error) {
	m := MealType(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidMealType, s)
	}
	return m, nil
}

// FoodEntry is one logged consumption event. Timestamp is set once, when the
// entry is logged, and never changes afterwards.
type FoodEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Quantity  string    `json:"quantity"`
	Calories  int       `json:"calories"`
	Protein   float64   `json:"protein"`
	Carbs     float64   `json:"carbs"`
	Fat       float64   `json:"fat"`
	Timestamp time.Time `json:"timestamp"`
	MealType  MealType  `json:"mealType"`
}

// NewFoodEntry is the payload for logging food: a FoodEntry without the
// fields the ledger assigns (id, user id, timestamp).
type NewFoodEntry struct {
	Name     string   `json:"name"`
	Quantity string   `json:"quantity"`
	Calories int      `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
	MealType MealType `json:"mealType"`
}

// NutritionalSummary is derived from a set of entries and never stored.
// TotalCalories always equals the sum of MealBreakdown.
type NutritionalSummary struct {
	TotalCalories int              `json:"totalCalories"`
	TotalProtein  float64          `json:"totalProtein"`
	TotalCarbs    float64          `json:"totalCarbs"`
	TotalFat      float64          `json:"totalFat"`
	MealBreakdown map[MealType]int `json:"mealBreakdown"`
}

// EmptySummary returns the zero summary with all four meal buckets present.
func EmptySummary() NutritionalSummary {
	breakdown := make(map[MealType]int, len(MealTypes))
	for _, m := range MealTypes {
		breakdown[m] = 0
	}
	return NutritionalSummary{MealBreakdown: breakdown}
}
