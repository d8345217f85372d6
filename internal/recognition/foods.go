package recognition

import "strings"

// Nutrition is the per-serving value of a known food.
type Nutrition struct {
	Name     string
	Calories int
	Protein  float64
	Carbs    float64
	Fat      float64
}

// known is matched in order, so earlier foods win when a label mentions two.
var known = []Nutrition{
	{Name: "apple", Calories: 95, Protein: 0.5, Carbs: 25, Fat: 0.3},
	{Name: "banana", Calories: 105, Protein: 1.3, Carbs: 27, Fat: 0.4},
	{Name: "orange", Calories: 62, Protein: 1.2, Carbs: 15, Fat: 0.2},
	{Name: "pizza", Calories: 266, Protein: 11, Carbs: 33, Fat: 10},
	{Name: "hamburger", Calories: 250, Protein: 12, Carbs: 30, Fat: 9},
	{Name: "salad", Calories: 100, Protein: 3, Carbs: 11, Fat: 7},
}

// Lookup finds the known food named by label. Only the text before the
// first comma is used ("Granny Smith apple, fruit" looks up "granny smith
// apple"), and a food matches when its name occurs anywhere in it.
func Lookup(label string) (Nutrition, bool) {
	clean, _, _ := strings.Cut(strings.ToLower(label), ",")
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return Nutrition{}, false
	}
	for _, n := range known {
		if strings.Contains(clean, n.Name) {
			return n, true
		}
	}
	return Nutrition{}, false
}
