package models

import (
	"math"
	"strconv"
	"strings"
)

// maxCalories bounds a single entry; larger values are treated as garbage.
const maxCalories = 1_000_000

// FoodForm is raw, user-typed input for a food entry. Numeric fields are
// coerced leniently: anything absent, unparseable, negative or non-finite
// becomes 0 and is left for the user to correct.
type FoodForm struct {
	Name     string
	Quantity string
	Calories string
	Protein  string
	Carbs    string
	Fat      string
	MealType string
}

// Entry converts the form into a NewFoodEntry. Only an unknown meal type is
// an error.
func (f FoodForm) Entry() (NewFoodEntry, error) {
	meal, err := ParseMealType(f.MealType)
	if err != nil {
		return NewFoodEntry{}, err
	}
	return NewFoodEntry{
		Name:     strings.TrimSpace(f.Name),
		Quantity: strings.TrimSpace(f.Quantity),
		Calories: ParseCalories(f.Calories),
		Protein:  ParseGrams(f.Protein),
		Carbs:    ParseGrams(f.Carbs),
		Fat:      ParseGrams(f.Fat),
		MealType: meal,
	}, nil
}

// ParseCalories reads a whole number of kcal. Fractions are truncated.
func ParseCalories(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > maxCalories {
			return 0
		}
		return n
	}
	f := ParseGrams(s)
	if f > maxCalories {
		return 0
	}
	return int(f)
}

// ParseGrams reads a non-negative decimal amount.
func ParseGrams(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

// Normalize clamps negative or non-finite numbers in e to 0.
func (e NewFoodEntry) Normalize() NewFoodEntry {
	if e.Calories < 0 {
		e.Calories = 0
	}
	e.Protein = nonNegative(e.Protein)
	e.Carbs = nonNegative(e.Carbs)
	e.Fat = nonNegative(e.Fat)
	return e
}

func nonNegative(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}
