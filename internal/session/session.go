// Package session binds the ledger and the registry to the one active user.
//
// Activate loads (or seeds) everything a user owns; Deactivate forgets it
// again without touching the store. Mutations made while nobody is active
// fail with common.ErrNoActiveSession.
package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/nutritrack/internal/common"
	"github.com/dmitrijs2005/nutritrack/internal/ledger"
	"github.com/dmitrijs2005/nutritrack/internal/logging"
	"github.com/dmitrijs2005/nutritrack/internal/models"
	"github.com/dmitrijs2005/nutritrack/internal/registry"
	"github.com/dmitrijs2005/nutritrack/internal/rules"
	"github.com/dmitrijs2005/nutritrack/internal/store"
	"github.com/google/uuid"
)

// Session is not safe for concurrent use.
type Session struct {
	store  store.Store
	seed   Seed
	engine *rules.Engine
	window time.Duration
	now    func() time.Time
	newID  func() string
	log    logging.Logger

	userID   string
	ledger   *ledger.Ledger
	registry *registry.Registry
}

// Option configures a Session.
type Option func(*Session)

// WithSeed sets the data new users start with. The default is DemoSeed.
func WithSeed(seed Seed) Option {
	return func(s *Session) { s.seed = seed }
}

// WithEngine replaces the default recommendation rules.
func WithEngine(e *rules.Engine) Option {
	return func(s *Session) { s.engine = e }
}

// WithWindow sets the span of the recent view.
func WithWindow(d time.Duration) Option {
	return func(s *Session) { s.window = d }
}

// WithClock sets the time source used for new entries and the recent window.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithIDs sets the id generator. The default is uuid.NewString.
func WithIDs(newID func() string) Option {
	return func(s *Session) { s.newID = newID }
}

// WithLogger sets the logger passed down to the ledger and the registry.
func WithLogger(log logging.Logger) Option {
	return func(s *Session) { s.log = log }
}

// New returns an inactive session over st.
func New(st store.Store, opts ...Option) *Session {
	s := &Session{
		store:  st,
		seed:   DemoSeed,
		engine: rules.NewEngine(),
		window: ledger.DefaultWindow,
		now:    time.Now,
		newID:  uuid.NewString,
		log:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Activate makes userID the active user, replacing whoever was active.
//
// A collection that was never written is seeded and persisted at once. A
// collection that cannot be read or decoded is seeded in memory only, so the
// unreadable blob survives until the user changes that collection. A failed
// seed write is returned and leaves the session inactive. An empty userID is
// rejected with common.ErrInvalidUser and the current user stays active.
func (s *Session) Activate(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("activate: %w", common.ErrInvalidUser)
	}
	s.Deactivate()
	log := s.log.With("user_id", userID)

	l, err := s.activateLedger(ctx, userID, log)
	if err != nil {
		return fmt.Errorf("activate %s: %w", userID, err)
	}
	r, err := s.activateRegistry(ctx, userID, log)
	if err != nil {
		return fmt.Errorf("activate %s: %w", userID, err)
	}

	s.userID, s.ledger, s.registry = userID, l, r
	log.Info(ctx, "session activated", "entries", len(l.Entries()), "issues", len(r.Issues()))
	return nil
}

func (s *Session) activateLedger(ctx context.Context, userID string, log logging.Logger) (*ledger.Ledger, error) {
	entries, found, err := ledger.Load(ctx, s.store, userID)
	l := ledger.New(s.store, userID, entries,
		ledger.WithClock(s.now),
		ledger.WithWindow(s.window),
		ledger.WithIDs(s.newID),
		ledger.WithLogger(log),
	)

	switch {
	case err != nil:
		log.Warn(ctx, "food entries unreadable, using seed in memory", "error", err)
		return l, l.Seed(ctx, s.seed.Food, false)
	case !found:
		log.Info(ctx, "seeding food entries", "count", len(s.seed.Food))
		return l, l.Seed(ctx, s.seed.Food, true)
	}
	return l, nil
}

func (s *Session) activateRegistry(ctx context.Context, userID string, log logging.Logger) (*registry.Registry, error) {
	var st registry.State
	issues, recs, found, err := registry.LoadIssues(ctx, s.store, userID)
	if err == nil {
		st.Issues, st.Recommendations = issues, recs
	}

	plan, planErr := registry.LoadPlan(ctx, s.store, userID)
	if planErr != nil {
		log.Warn(ctx, "fitness plan unreadable, starting without one", "error", planErr)
	}
	st.Plan = plan

	r := registry.New(s.store, userID, st,
		registry.WithEngine(s.engine),
		registry.WithIDs(s.newID),
		registry.WithLogger(log),
	)

	switch {
	case err != nil:
		log.Warn(ctx, "health issues unreadable, using seed in memory", "error", err)
		return r, r.Seed(ctx, s.seed.Issues, false)
	case !found:
		log.Info(ctx, "seeding health issues", "count", len(s.seed.Issues))
		return r, r.Seed(ctx, s.seed.Issues, true)
	}
	return r, nil
}

// Deactivate forgets the active user. Persisted data is left as is.
func (s *Session) Deactivate() {
	s.userID, s.ledger, s.registry = "", nil, nil
}

// Active reports whether a user is active.
func (s *Session) Active() bool { return s.ledger != nil }

// UserID returns the active user, or "" when none is.
func (s *Session) UserID() string { return s.userID }

// Ledger returns the food ledger of the active user, nil when none is active.
func (s *Session) Ledger() *ledger.Ledger { return s.ledger }

// Registry returns the health registry of the active user, nil when none is
// active.
func (s *Session) Registry() *registry.Registry { return s.registry }

// Now returns the session clock reading.
func (s *Session) Now() time.Time { return s.now() }

// AddFood logs a food entry for the active user.
func (s *Session) AddFood(ctx context.Context, in models.NewFoodEntry) (models.FoodEntry, error) {
	if !s.Active() {
		return models.FoodEntry{}, common.ErrNoActiveSession
	}
	return s.ledger.Add(ctx, in)
}

// RemoveFood deletes a food entry. Unknown ids are ignored.
func (s *Session) RemoveFood(ctx context.Context, id string) error {
	if !s.Active() {
		return common.ErrNoActiveSession
	}
	return s.ledger.Remove(ctx, id)
}

// AddIssue records a health issue together with its recommendations.
func (s *Session) AddIssue(ctx context.Context, in models.NewHealthIssue) (models.HealthIssue, []models.HealthRecommendation, error) {
	if !s.Active() {
		return models.HealthIssue{}, nil, common.ErrNoActiveSession
	}
	return s.registry.AddIssue(ctx, in)
}

// RemoveIssue deletes a health issue and its recommendations.
func (s *Session) RemoveIssue(ctx context.Context, id string) error {
	if !s.Active() {
		return common.ErrNoActiveSession
	}
	return s.registry.RemoveIssue(ctx, id)
}

// GeneratePlan plans against the calories of the recent window.
func (s *Session) GeneratePlan(ctx context.Context) (models.FitnessRecommendation, error) {
	if !s.Active() {
		return models.FitnessRecommendation{}, common.ErrNoActiveSession
	}
	consumed := s.ledger.DailySummary(s.now()).TotalCalories
	return s.registry.GeneratePlan(ctx, consumed)
}

// CurrentPlan returns the saved fitness plan. When there is none and
// something was eaten in the recent window, a plan is generated and saved.
// ok is false when there is no plan and nothing to plan against.
func (s *Session) CurrentPlan(ctx context.Context) (plan models.FitnessRecommendation, ok bool, err error) {
	if !s.Active() {
		return models.FitnessRecommendation{}, false, common.ErrNoActiveSession
	}
	if plan, ok := s.registry.Plan(); ok {
		return plan, true, nil
	}
	if s.ledger.DailySummary(s.now()).TotalCalories <= 0 {
		return models.FitnessRecommendation{}, false, nil
	}
	plan, err = s.GeneratePlan(ctx)
	if err != nil {
		return models.FitnessRecommendation{}, false, err
	}
	return plan, true, nil
}

// LogRecognized logs a food form, typically prefilled from an image and
// corrected by the user.
func (s *Session) LogRecognized(ctx context.Context, form models.FoodForm) (models.FoodEntry, error) {
	if !s.Active() {
		return models.FoodEntry{}, common.ErrNoActiveSession
	}
	in, err := form.Entry()
	if err != nil {
		return models.FoodEntry{}, err
	}
	return s.ledger.Add(ctx, in)
}

// Summary returns the summary of the recent window.
func (s *Session) Summary() (models.NutritionalSummary, error) {
	if !s.Active() {
		return models.NutritionalSummary{}, common.ErrNoActiveSession
	}
	return s.ledger.DailySummary(s.now()), nil
}

// Recent returns the entries of the recent window, newest first.
func (s *Session) Recent() ([]models.FoodEntry, error) {
	if !s.Active() {
		return nil, common.ErrNoActiveSession
	}
	return s.ledger.Recent(s.now()), nil
}
