package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/nutritrack/internal/common"
)

// Category groups health issues.
type Category string

const (
	CategoryPhysical Category = "physical"
	CategoryMental   Category = "mental"
)

// Severity grades a health issue.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// AdviceType classifies a health recommendation.
type AdviceType string

const (
	AdviceLifestyle AdviceType = "lifestyle"
	AdviceDiet      AdviceType = "diet"
	AdviceExercise  AdviceType = "exercise"
	AdviceMedical   AdviceType = "medical"
)

// ParseCategory accepts a category in any letter case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CategoryPhysical, CategoryMental:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", common.ErrInvalidCategory, s)
}

// ParseSeverity accepts a severity in any letter case.
func ParseSeverity(s string) (Severity, error) {
	v := Severity(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case SeverityMild, SeverityModerate, SeveritySevere:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", common.ErrInvalidSeverity, s)
}

// ParseAdviceType accepts a recommendation type in any letter case.
func ParseAdviceType(s string) (AdviceType, error) {
	v := AdviceType(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case AdviceLifestyle, AdviceDiet, AdviceExercise, AdviceMedical:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", common.ErrInvalidAdvice, s)
}

// HealthIssue is a self-reported condition. Deleting an issue deletes the
// recommendations generated for it.
type HealthIssue struct {
	ID          string   `json:"id"`
	UserID      string   `json:"userId"`
	Category    Category `json:"category"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// NewHealthIssue is the add payload: a HealthIssue without id and user id.
type NewHealthIssue struct {
	Category    Category `json:"category"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// Issue returns the issue shape of n, without identity. Used to ask the rule
// engine about an issue before it has been stored.
func (n NewHealthIssue) Issue() HealthIssue {
	return HealthIssue{Category: n.Category, Name: n.Name, Description: n.Description, Severity: n.Severity}
}

// HealthRecommendation is advice tied to exactly one live issue.
type HealthRecommendation struct {
	ID             string     `json:"id"`
	IssueID        string     `json:"issueId"`
	Recommendation string     `json:"recommendation"`
	Type           AdviceType `json:"type"`
}

// Activity is one suggested workout in a fitness plan.
type Activity struct {
	Name           string `json:"name"`
	Duration       int    `json:"duration"` // minutes
	CaloriesBurned int    `json:"caloriesBurned"`
}

// FitnessRecommendation is the single current plan of a user. Regenerating
// replaces it as a whole.
type FitnessRecommendation struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	CalorieTarget   int        `json:"calorieTarget"`
	Activities      []Activity `json:"activities"`
	DietSuggestions []string   `json:"dietSuggestions"`
}
