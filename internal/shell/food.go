package shell

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/nutritrack/internal/ledger"
	"github.com/dmitrijs2005/nutritrack/internal/models"
)

// editForm walks the user through every field of form, keeping the shown
// value on an empty answer.
func (a *App) editForm(form models.FoodForm) (models.FoodForm, error) {
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Food name", &form.Name},
		{"Quantity (e.g. 1 bowl)", &form.Quantity},
		{"Calories (kcal)", &form.Calories},
		{"Protein (g)", &form.Protein},
		{"Carbs (g)", &form.Carbs},
		{"Fat (g)", &form.Fat},
		{"Meal (breakfast, lunch, dinner, snack)", &form.MealType},
	}
	for _, f := range fields {
		v, err := a.ask(f.prompt, *f.dst)
		if err != nil {
			return form, err
		}
		*f.dst = v
	}
	return form, nil
}

func (a *App) AddFood(ctx context.Context) error {
	form, err := a.editForm(models.FoodForm{MealType: string(models.MealBreakfast)})
	if err != nil {
		return err
	}
	in, err := form.Entry()
	if err != nil {
		return err
	}
	e, err := a.sess.AddFood(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged %s (%d kcal) as %s.\n", e.Name, e.Calories, e.ID)
	return nil
}

func (a *App) RemoveFood(ctx context.Context, args []string) error {
	id, err := oneArg(args, "rm <id>")
	if err != nil {
		return err
	}
	if err := a.sess.RemoveFood(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Removed.")
	return nil
}

func (a *App) Recent(ctx context.Context) error {
	entries, err := a.sess.Recent()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No food logged in the recent window.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWHEN\tMEAL\tFOOD\tKCAL\tP/C/F (g)")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%g/%g/%g\n",
			e.ID, e.Timestamp.In(a.loc).Format("Jan 2 15:04"), e.MealType,
			describe(e), e.Calories, e.Protein, e.Carbs, e.Fat)
	}
	return tw.Flush()
}

func describe(e models.FoodEntry) string {
	if e.Quantity == "" {
		return e.Name
	}
	return fmt.Sprintf("%s (%s)", e.Name, e.Quantity)
}

func (a *App) Summary(ctx context.Context) error {
	s, err := a.sess.Summary()
	if err != nil {
		return err
	}
	p := ledger.ProgressFor(s, a.target)

	fmt.Fprintf(a.out, "Calories: %d / %d kcal (%.0f%%)", p.Consumed, p.Target, p.Percent)
	switch {
	case p.Over && p.Consumed == p.Target:
		fmt.Fprintln(a.out, ", target reached")
	case p.Over:
		fmt.Fprintf(a.out, ", %d over\n", p.Consumed-p.Target)
	default:
		fmt.Fprintf(a.out, ", %d remaining\n", p.Remaining)
	}
	fmt.Fprintf(a.out, "Protein %.1fg, carbs %.1fg, fat %.1fg\n", s.TotalProtein, s.TotalCarbs, s.TotalFat)

	parts := make([]string, 0, len(models.MealTypes))
	for _, m := range models.MealTypes {
		parts = append(parts, fmt.Sprintf("%s %d", m, s.MealBreakdown[m]))
	}
	fmt.Fprintln(a.out, "By meal:", strings.Join(parts, ", "))
	return nil
}
