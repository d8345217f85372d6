package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/nutritrack/internal/models"
)

func (a *App) AddIssue(ctx context.Context) error {
	name, err := a.ask("Issue name (e.g. Back pain)", "")
	if err != nil {
		return err
	}
	rawCategory, err := a.ask("Category (physical, mental)", string(models.CategoryPhysical))
	if err != nil {
		return err
	}
	category, err := models.ParseCategory(rawCategory)
	if err != nil {
		return err
	}
	description, err := a.ask("Description", "")
	if err != nil {
		return err
	}
	rawSeverity, err := a.ask("Severity (mild, moderate, severe)", string(models.SeverityMild))
	if err != nil {
		return err
	}
	severity, err := models.ParseSeverity(rawSeverity)
	if err != nil {
		return err
	}

	issue, recs, err := a.sess.AddIssue(ctx, models.NewHealthIssue{
		Category: category, Name: name, Description: description, Severity: severity,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Added %s as %s.\n", issue.Name, issue.ID)
	a.printRecommendations(recs)
	return nil
}

func (a *App) RemoveIssue(ctx context.Context, args []string) error {
	id, err := oneArg(args, "unissue <id>")
	if err != nil {
		return err
	}
	if err := a.sess.RemoveIssue(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Removed.")
	return nil
}

func (a *App) Issues(ctx context.Context) error {
	r := a.sess.Registry()
	issues := r.Issues()
	if len(issues) == 0 {
		fmt.Fprintln(a.out, "No health issues recorded.")
		return nil
	}
	for _, is := range issues {
		fmt.Fprintf(a.out, "%s  %s (%s, %s)\n", is.ID, is.Name, is.Category, is.Severity)
		if is.Description != "" {
			fmt.Fprintf(a.out, "    %s\n", is.Description)
		}
		a.printRecommendations(r.RecommendationsFor(is.ID))
	}
	return nil
}

func (a *App) printRecommendations(recs []models.HealthRecommendation) {
	if len(recs) == 0 {
		fmt.Fprintln(a.out, "    no recommendations")
		return
	}
	for _, rec := range recs {
		fmt.Fprintf(a.out, "    - [%s] %s\n", rec.Type, rec.Recommendation)
	}
}

// Plan shows the saved fitness plan, creating one on first use. "plan regen"
// replaces it with a plan for the current recent window.
func (a *App) Plan(ctx context.Context, args []string) error {
	var (
		plan models.FitnessRecommendation
		ok   bool
		err  error
	)
	switch {
	case len(args) == 0:
		plan, ok, err = a.sess.CurrentPlan(ctx)
	case len(args) == 1 && args[0] == "regen":
		plan, err = a.sess.GeneratePlan(ctx)
		ok = err == nil
	default:
		return errors.New("usage: plan [regen]")
	}
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "No fitness plan yet. Log some food first.")
		return nil
	}

	fmt.Fprintf(a.out, "Daily burn target: %d kcal\n", plan.CalorieTarget)
	fmt.Fprintln(a.out, "Activities:")
	for _, act := range plan.Activities {
		fmt.Fprintf(a.out, "  - %s, %d min, ~%d kcal\n", act.Name, act.Duration, act.CaloriesBurned)
	}
	fmt.Fprintln(a.out, "Diet:")
	for _, s := range plan.DietSuggestions {
		fmt.Fprintf(a.out, "  - %s\n", s)
	}
	return nil
}
