// Package registry keeps the self-reported health issues of one user, the
// recommendations generated for them and the current fitness plan.
//
// A recommendation never outlives its issue: RemoveIssue drops both in one
// batch write. Like the ledger, every mutation persists before it changes
// memory.
package registry

import (
	"context"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/nutritrack/internal/common"
	"github.com/dmitrijs2005/nutritrack/internal/logging"
	"github.com/dmitrijs2005/nutritrack/internal/models"
	"github.com/dmitrijs2005/nutritrack/internal/rules"
	"github.com/dmitrijs2005/nutritrack/internal/store"
	"github.com/google/uuid"
)

// State is the persisted content of a registry.
type State struct {
	Issues          []models.HealthIssue
	Recommendations []models.HealthRecommendation
	Plan            *models.FitnessRecommendation
}

// Registry is not safe for concurrent use.
type Registry struct {
	store  store.Store
	userID string
	engine *rules.Engine

	issues []models.HealthIssue
	recs   []models.HealthRecommendation
	plan   *models.FitnessRecommendation

	newID func() string
	log   logging.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithEngine replaces the default rule engine.
func WithEngine(e *rules.Engine) Option {
	return func(r *Registry) { r.engine = e }
}

// WithIDs sets the id generator for issues, recommendations and plans.
func WithIDs(newID func() string) Option {
	return func(r *Registry) { r.newID = newID }
}

// WithLogger sets where persistence failures are logged.
func WithLogger(log logging.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// New returns a registry for userID holding st, which is typically built
// from LoadIssues and LoadPlan.
func New(s store.Store, userID string, st State, opts ...Option) *Registry {
	r := &Registry{
		store:  s,
		userID: userID,
		engine: rules.NewEngine(),
		issues: slices.Clone(st.Issues),
		recs:   slices.Clone(st.Recommendations),
		newID:  uuid.NewString,
		log:    logging.Nop(),
	}
	if st.Plan != nil {
		p := clonePlan(*st.Plan)
		r.plan = &p
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LoadIssues reads the issue and recommendation collections. found is true
// only when both have been written before.
func LoadIssues(ctx context.Context, s store.Store, userID string) (issues []models.HealthIssue, recs []models.HealthRecommendation, found bool, err error) {
	foundIssues, err := store.GetJSON(ctx, s, store.HealthIssues, userID, &issues)
	if err != nil {
		return nil, nil, false, common.Persistence("load health issues", err)
	}
	foundRecs, err := store.GetJSON(ctx, s, store.HealthRecommendations, userID, &recs)
	if err != nil {
		return nil, nil, false, common.Persistence("load health recommendations", err)
	}
	return issues, recs, foundIssues && foundRecs, nil
}

// LoadPlan reads the current fitness plan, nil when there is none.
func LoadPlan(ctx context.Context, s store.Store, userID string) (*models.FitnessRecommendation, error) {
	var plan *models.FitnessRecommendation
	if _, err := store.GetJSON(ctx, s, store.FitnessRecommendations, userID, &plan); err != nil {
		return nil, common.Persistence("load fitness plan", err)
	}
	return plan, nil
}

// AddIssue stores a new issue together with the recommendations the rule
// engine produces for it.
func (r *Registry) AddIssue(ctx context.Context, in models.NewHealthIssue) (models.HealthIssue, []models.HealthRecommendation, error) {
	if _, err := models.ParseCategory(string(in.Category)); err != nil {
		return models.HealthIssue{}, nil, fmt.Errorf("add health issue: %w", err)
	}
	if _, err := models.ParseSeverity(string(in.Severity)); err != nil {
		return models.HealthIssue{}, nil, fmt.Errorf("add health issue: %w", err)
	}

	issue, recs := r.bind(in)
	nextIssues := append(slices.Clone(r.issues), issue)
	nextRecs := append(slices.Clone(r.recs), recs...)

	if err := r.save(ctx, nextIssues, nextRecs); err != nil {
		return models.HealthIssue{}, nil, err
	}
	r.issues, r.recs = nextIssues, nextRecs

	r.log.Debug(ctx, "health issue added", "user_id", r.userID, "issue_id", issue.ID, "recommendations", len(recs))
	return issue, slices.Clone(recs), nil
}

// RemoveIssue deletes the issue with id and every recommendation generated
// for it. An unknown id does nothing and writes nothing.
func (r *Registry) RemoveIssue(ctx context.Context, id string) error {
	i := slices.IndexFunc(r.issues, func(is models.HealthIssue) bool { return is.ID == id })
	if i < 0 {
		return nil
	}

	nextIssues := slices.Delete(slices.Clone(r.issues), i, i+1)
	nextRecs := slices.DeleteFunc(slices.Clone(r.recs), func(rec models.HealthRecommendation) bool {
		return rec.IssueID == id
	})

	if err := r.save(ctx, nextIssues, nextRecs); err != nil {
		return err
	}
	r.issues, r.recs = nextIssues, nextRecs
	return nil
}

// Seed replaces issues and recommendations with in and the advice generated
// for each. With persist both collections are written first.
func (r *Registry) Seed(ctx context.Context, in []models.NewHealthIssue, persist bool) error {
	issues := make([]models.HealthIssue, 0, len(in))
	recs := make([]models.HealthRecommendation, 0, len(in)*2)
	for _, n := range in {
		issue, rs := r.bind(n)
		issues = append(issues, issue)
		recs = append(recs, rs...)
	}

	if persist {
		if err := r.save(ctx, issues, recs); err != nil {
			return err
		}
	}
	r.issues, r.recs = issues, recs
	return nil
}

// Issues returns the issues in insertion order.
func (r *Registry) Issues() []models.HealthIssue {
	return slices.Clone(r.issues)
}

// Recommendations returns every recommendation in insertion order.
func (r *Registry) Recommendations() []models.HealthRecommendation {
	return slices.Clone(r.recs)
}

// RecommendationsFor returns the recommendations of one issue.
func (r *Registry) RecommendationsFor(issueID string) []models.HealthRecommendation {
	out := []models.HealthRecommendation{}
	for _, rec := range r.recs {
		if rec.IssueID == issueID {
			out = append(out, rec)
		}
	}
	return out
}

// GeneratePlan computes a plan for caloriesConsumed and makes it the
// current plan, replacing any previous one.
func (r *Registry) GeneratePlan(ctx context.Context, caloriesConsumed int) (models.FitnessRecommendation, error) {
	p := r.engine.PlanForCalories(caloriesConsumed)
	plan := models.FitnessRecommendation{
		ID:              r.newID(),
		UserID:          r.userID,
		CalorieTarget:   p.CalorieTarget,
		Activities:      p.Activities,
		DietSuggestions: p.DietSuggestions,
	}

	b, err := store.JSONBlob(store.FitnessRecommendations, plan)
	if err == nil {
		err = r.store.PutBatch(ctx, r.userID, b)
	}
	if err != nil {
		r.log.Error(ctx, "failed to save fitness plan", "user_id", r.userID, "error", err)
		return models.FitnessRecommendation{}, common.Persistence("save fitness plan", err)
	}

	r.plan = &plan
	return clonePlan(plan), nil
}

// Plan returns the current plan, if any.
func (r *Registry) Plan() (models.FitnessRecommendation, bool) {
	if r.plan == nil {
		return models.FitnessRecommendation{}, false
	}
	return clonePlan(*r.plan), true
}

func (r *Registry) bind(in models.NewHealthIssue) (models.HealthIssue, []models.HealthRecommendation) {
	issue := in.Issue()
	issue.ID = r.newID()
	issue.UserID = r.userID

	advice := r.engine.RecommendationsForIssue(issue)
	recs := make([]models.HealthRecommendation, 0, len(advice))
	for _, a := range advice {
		recs = append(recs, models.HealthRecommendation{
			ID:             r.newID(),
			IssueID:        issue.ID,
			Recommendation: a.Text,
			Type:           a.Type,
		})
	}
	return issue, recs
}

func (r *Registry) save(ctx context.Context, issues []models.HealthIssue, recs []models.HealthRecommendation) error {
	if issues == nil {
		issues = []models.HealthIssue{}
	}
	if recs == nil {
		recs = []models.HealthRecommendation{}
	}

	bi, err := store.JSONBlob(store.HealthIssues, issues)
	if err != nil {
		return common.Persistence("save health issues", err)
	}
	br, err := store.JSONBlob(store.HealthRecommendations, recs)
	if err != nil {
		return common.Persistence("save health recommendations", err)
	}

	if err := r.store.PutBatch(ctx, r.userID, bi, br); err != nil {
		r.log.Error(ctx, "failed to save health issues", "user_id", r.userID, "error", err)
		return common.Persistence("save health issues", err)
	}
	return nil
}

func clonePlan(p models.FitnessRecommendation) models.FitnessRecommendation {
	p.Activities = slices.Clone(p.Activities)
	p.DietSuggestions = slices.Clone(p.DietSuggestions)
	return p
}
