// Package ledger keeps the food entries of one user and derives rolling
// window views and nutritional summaries from them.
//
// Every mutation computes the new entry set, persists it as a whole and only
// then replaces the in-memory state, so a failed write changes nothing.
package ledger

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/nutritrack/internal/common"
	"github.com/dmitrijs2005/nutritrack/internal/logging"
	"github.com/dmitrijs2005/nutritrack/internal/models"
	"github.com/dmitrijs2005/nutritrack/internal/store"
	"github.com/google/uuid"
)

// DefaultWindow is the span of the "recent" view.
const DefaultWindow = 24 * time.Hour

// Ledger is the food log of a single user. It is not safe for concurrent use.
type Ledger struct {
	store   store.Store
	userID  string
	entries []models.FoodEntry // insertion order

	window time.Duration
	now    func() time.Time
	newID  func() string
	log    logging.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock sets the time source used for new entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithWindow sets the span used by Recent and DailySummary.
func WithWindow(d time.Duration) Option {
	return func(l *Ledger) {
		if d > 0 {
			l.window = d
		}
	}
}

// WithIDs sets the entry id generator.
func WithIDs(newID func() string) Option {
	return func(l *Ledger) { l.newID = newID }
}

// WithLogger sets where persistence failures are logged.
func WithLogger(log logging.Logger) Option {
	return func(l *Ledger) { l.log = log }
}

// New returns a ledger for userID holding entries, which is typically the
// result of Load.
func New(s store.Store, userID string, entries []models.FoodEntry, opts ...Option) *Ledger {
	l := &Ledger{
		store:   s,
		userID:  userID,
		entries: slices.Clone(entries),
		window:  DefaultWindow,
		now:     time.Now,
		newID:   uuid.NewString,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the persisted entries of userID. found is false when the
// collection has never been written.
func Load(ctx context.Context, s store.Store, userID string) (entries []models.FoodEntry, found bool, err error) {
	found, err = store.GetJSON(ctx, s, store.FoodEntries, userID, &entries)
	if err != nil {
		return nil, found, common.Persistence("load food entries", err)
	}
	return entries, found, nil
}

// UserID returns the owner of the ledger.
func (l *Ledger) UserID() string { return l.userID }

// Window returns the span of the recent view.
func (l *Ledger) Window() time.Duration { return l.window }

// Add logs in as a new entry stamped with the current time. Negative amounts
// are clamped to zero; an unknown meal type is rejected.
func (l *Ledger) Add(ctx context.Context, in models.NewFoodEntry) (models.FoodEntry, error) {
	if !in.MealType.Valid() {
		return models.FoodEntry{}, fmt.Errorf("add food entry: %w: %q", common.ErrInvalidMealType, in.MealType)
	}
	e := l.entry(in.Normalize(), l.now())

	next := append(slices.Clone(l.entries), e)
	if err := l.save(ctx, next); err != nil {
		return models.FoodEntry{}, err
	}
	l.entries = next
	return e, nil
}

// Remove deletes the entry with id. Removing an unknown id does nothing and
// writes nothing.
func (l *Ledger) Remove(ctx context.Context, id string) error {
	i := slices.IndexFunc(l.entries, func(e models.FoodEntry) bool { return e.ID == id })
	if i < 0 {
		return nil
	}

	next := slices.Delete(slices.Clone(l.entries), i, i+1)
	if err := l.save(ctx, next); err != nil {
		return err
	}
	l.entries = next
	return nil
}

// Backdated is a seed entry logged Age before the moment of seeding.
type Backdated struct {
	Entry models.NewFoodEntry
	Age   time.Duration
}

// Seed replaces the ledger contents with items. With persist the new set is
// written first; otherwise it lives in memory until the next mutation.
func (l *Ledger) Seed(ctx context.Context, items []Backdated, persist bool) error {
	now := l.now()
	next := make([]models.FoodEntry, 0, len(items))
	for _, it := range items {
		in := it.Entry.Normalize()
		if !in.MealType.Valid() {
			in.MealType = models.MealSnack
		}
		next = append(next, l.entry(in, now.Add(-it.Age)))
	}

	if persist {
		if err := l.save(ctx, next); err != nil {
			return err
		}
	}
	l.entries = next
	return nil
}

// Entries returns every entry, newest first.
func (l *Ledger) Entries() []models.FoodEntry {
	return newestFirst(slices.Clone(l.entries))
}

// EntriesInWindow returns the entries stamped within [now-window, now],
// both ends inclusive, newest first.
func (l *Ledger) EntriesInWindow(now time.Time, window time.Duration) []models.FoodEntry {
	from := now.Add(-window)
	out := make([]models.FoodEntry, 0, len(l.entries))
	for _, e := range l.entries {
		if e.Timestamp.Before(from) || e.Timestamp.After(now) {
			continue
		}
		out = append(out, e)
	}
	return newestFirst(out)
}

// Recent is EntriesInWindow over the configured window.
func (l *Ledger) Recent(now time.Time) []models.FoodEntry {
	return l.EntriesInWindow(now, l.window)
}

// DailySummary summarizes Recent(now).
func (l *Ledger) DailySummary(now time.Time) models.NutritionalSummary {
	return Summarize(l.Recent(now))
}

func (l *Ledger) entry(in models.NewFoodEntry, at time.Time) models.FoodEntry {
	return models.FoodEntry{
		ID:        l.newID(),
		UserID:    l.userID,
		Name:      in.Name,
		Quantity:  in.Quantity,
		Calories:  in.Calories,
		Protein:   in.Protein,
		Carbs:     in.Carbs,
		Fat:       in.Fat,
		Timestamp: at.UTC().Round(0),
		MealType:  in.MealType,
	}
}

func (l *Ledger) save(ctx context.Context, entries []models.FoodEntry) error {
	if entries == nil {
		entries = []models.FoodEntry{}
	}
	b, err := store.JSONBlob(store.FoodEntries, entries)
	if err == nil {
		err = l.store.PutBatch(ctx, l.userID, b)
	}
	if err != nil {
		l.log.Error(ctx, "failed to save food entries", "user_id", l.userID, "error", err)
		return common.Persistence("save food entries", err)
	}
	return nil
}

func newestFirst(entries []models.FoodEntry) []models.FoodEntry {
	slices.SortStableFunc(entries, func(a, b models.FoodEntry) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return entries
}
