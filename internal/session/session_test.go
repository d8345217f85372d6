package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/nutritrack/internal/common"
	"github.com/dmitrijs2005/nutritrack/internal/ledger"
	"github.com/dmitrijs2005/nutritrack/internal/models"
	"github.com/dmitrijs2005/nutritrack/internal/registry"
	"github.com/dmitrijs2005/nutritrack/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)

func newSession(t *testing.T, st store.Store, opts ...Option) *Session {
	t.Helper()
	seq := 0
	base := []Option{
		WithClock(func() time.Time { return t0 }),
		WithIDs(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	}
	return New(st, append(base, opts...)...)
}

func TestActivate_SeedsNewUser(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	s := newSession(t, st)

	require.NoError(t, s.Activate(ctx, "alice"))
	require.True(t, s.Active())
	assert.Equal(t, "alice", s.UserID())

	entries := s.Ledger().Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "Apple", entries[0].Name)
	assert.Equal(t, t0.Add(-4*time.Hour), entries[0].Timestamp)
	assert.Equal(t, "Oatmeal with Banana", entries[2].Name)

	sum, err := s.Summary()
	require.NoError(t, err)
	assert.Equal(t, 895, sum.TotalCalories)

	issues := s.Registry().Issues()
	require.Len(t, issues, 2)
	assert.Equal(t, "Back pain", issues[0].Name)
	assert.Len(t, s.Registry().RecommendationsFor(issues[0].ID), 2)
	assert.Len(t, s.Registry().RecommendationsFor(issues[1].ID), 2)

	_, ok := s.Registry().Plan()
	assert.False(t, ok)

	// seeds were persisted
	stored, found, err := ledger.Load(ctx, st, "alice")
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, stored, 3)
	_, _, found, err = registry.LoadIssues(ctx, st, "alice")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestActivate_ReloadReturnsPersistedData(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	s := newSession(t, st)
	require.NoError(t, s.Activate(ctx, "alice"))
	added, err := s.AddFood(ctx, models.NewFoodEntry{Name: "Pizza", Calories: 266, MealType: models.MealDinner})
	require.NoError(t, err)
	plan, err := s.GeneratePlan(ctx)
	require.NoError(t, err)
	before := s.Ledger().Entries()
	issues := s.Registry().Issues()

	s.Deactivate()
	assert.False(t, s.Active())
	assert.Nil(t, s.Ledger())

	other := newSession(t, st, WithSeed(EmptySeed))
	require.NoError(t, other.Activate(ctx, "alice"))
	assert.Equal(t, before, other.Ledger().Entries())
	assert.Equal(t, issues, other.Registry().Issues())
	assert.Equal(t, added.ID, other.Ledger().Entries()[0].ID)

	got, ok := other.Registry().Plan()
	require.True(t, ok)
	assert.Equal(t, plan, got)
}

func TestActivate_SwitchingUsersIsolatesData(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	s := newSession(t, st, WithSeed(EmptySeed))

	require.NoError(t, s.Activate(ctx, "alice"))
	_, err := s.AddFood(ctx, models.NewFoodEntry{Name: "Salad", Calories: 100, MealType: models.MealLunch})
	require.NoError(t, err)

	require.NoError(t, s.Activate(ctx, "bob"))
	assert.Equal(t, "bob", s.UserID())
	assert.Empty(t, s.Ledger().Entries())
	assert.Empty(t, s.Registry().Issues())
}

func TestActivate_UnreadableCollectionSeedsInMemoryOnly(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.Put(ctx, store.FoodEntries, "alice", []byte("garbage")))
	st.FailGet(store.HealthIssues, errors.New("offline"))
	require.NoError(t, st.Put(ctx, store.FitnessRecommendations, "alice", []byte("{")))
	writes := st.Writes()

	s := newSession(t, st)
	require.NoError(t, s.Activate(ctx, "alice"))

	assert.Len(t, s.Ledger().Entries(), 3)
	assert.Len(t, s.Registry().Issues(), 2)
	_, ok := s.Registry().Plan()
	assert.False(t, ok)
	assert.Equal(t, writes, st.Writes())

	raw, err := st.Get(ctx, store.FoodEntries, "alice")
	require.NoError(t, err)
	assert.Equal(t, "garbage", string(raw))
}

func TestActivate_SeedWriteFailureLeavesInactive(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	st.FailPut(store.HealthRecommendations, errors.New("read-only"))

	s := newSession(t, st)
	err := s.Activate(ctx, "alice")
	require.ErrorIs(t, err, common.ErrPersistence)
	assert.False(t, s.Active())
	assert.Equal(t, "", s.UserID())
}

func TestActivate_HalfMissingPairIsReseeded(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	require.NoError(t, st.Put(ctx, store.HealthIssues, "alice", []byte(`[]`)))

	s := newSession(t, st)
	require.NoError(t, s.Activate(ctx, "alice"))
	assert.Len(t, s.Registry().Issues(), 2)
	assert.Len(t, s.Registry().Recommendations(), 4)
}

func TestActivate_RejectsEmptyUserID(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	s := newSession(t, st)

	for _, id := range []string{"", "   "} {
		err := s.Activate(ctx, id)
		require.ErrorIs(t, err, common.ErrInvalidUser)
		assert.False(t, s.Active())
	}
	assert.Equal(t, 0, st.Writes())

	_, err := s.AddFood(ctx, models.NewFoodEntry{Name: "Apple", MealType: models.MealSnack})
	assert.ErrorIs(t, err, common.ErrNoActiveSession)
	assert.Equal(t, 0, st.Writes())

	require.NoError(t, s.Activate(ctx, "alice"))
	require.ErrorIs(t, s.Activate(ctx, ""), common.ErrInvalidUser)
	assert.True(t, s.Active())
	assert.Equal(t, "alice", s.UserID())
}

func TestMutations_RequireActiveSession(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, store.NewMemoryStore())

	_, err := s.AddFood(ctx, models.NewFoodEntry{MealType: models.MealSnack})
	assert.ErrorIs(t, err, common.ErrNoActiveSession)
	assert.ErrorIs(t, s.RemoveFood(ctx, "x"), common.ErrNoActiveSession)
	_, _, err = s.AddIssue(ctx, models.NewHealthIssue{})
	assert.ErrorIs(t, err, common.ErrNoActiveSession)
	assert.ErrorIs(t, s.RemoveIssue(ctx, "x"), common.ErrNoActiveSession)
	_, err = s.GeneratePlan(ctx)
	assert.ErrorIs(t, err, common.ErrNoActiveSession)
	_, _, err = s.CurrentPlan(ctx)
	assert.ErrorIs(t, err, common.ErrNoActiveSession)
	_, err = s.LogRecognized(ctx, models.FoodForm{MealType: "snack"})
	assert.ErrorIs(t, err, common.ErrNoActiveSession)
	_, err = s.Summary()
	assert.ErrorIs(t, err, common.ErrNoActiveSession)
	_, err = s.Recent()
	assert.ErrorIs(t, err, common.ErrNoActiveSession)
}

func TestDeactivate_KeepsPersistedData(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	s := newSession(t, st)
	require.NoError(t, s.Activate(ctx, "alice"))
	writes := st.Writes()

	s.Deactivate()
	assert.Equal(t, writes, st.Writes())

	stored, found, err := ledger.Load(ctx, st, "alice")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, stored, 3)
}

func TestGeneratePlan_UsesRecentCalories(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, store.NewMemoryStore())
	require.NoError(t, s.Activate(ctx, "alice"))

	plan, err := s.GeneratePlan(ctx)
	require.NoError(t, err)
	// demo day: 350 + 450 + 95
	assert.Equal(t, 716, plan.CalorieTarget)
	assert.Equal(t, "Walking (3km)", plan.Activities[0].Name)
}

func TestCurrentPlan_GeneratesOnceThenReturnsSaved(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	s := newSession(t, st)
	require.NoError(t, s.Activate(ctx, "alice"))
	writes := st.Writes()

	plan, ok, err := s.CurrentPlan(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 716, plan.CalorieTarget)
	assert.Equal(t, writes+1, st.Writes())

	_, err = s.AddFood(ctx, models.NewFoodEntry{Name: "Pizza", Calories: 1000, MealType: models.MealDinner})
	require.NoError(t, err)
	writes = st.Writes()

	again, ok, err := s.CurrentPlan(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, plan, again)
	assert.Equal(t, writes, st.Writes(), "a saved plan is not regenerated")

	fresh, err := s.GeneratePlan(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1516, fresh.CalorieTarget)
}

func TestCurrentPlan_NothingEaten(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	s := newSession(t, st, WithSeed(EmptySeed))
	require.NoError(t, s.Activate(ctx, "alice"))
	writes := st.Writes()

	_, ok, err := s.CurrentPlan(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, writes, st.Writes())
}

func TestCurrentPlan_ReloadsSavedPlan(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	s := newSession(t, st)
	require.NoError(t, s.Activate(ctx, "alice"))
	saved, err := s.GeneratePlan(ctx)
	require.NoError(t, err)

	other := newSession(t, st, WithSeed(EmptySeed))
	require.NoError(t, other.Activate(ctx, "alice"))
	plan, ok, err := other.CurrentPlan(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, saved, plan)
}

func TestLogRecognized(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, store.NewMemoryStore(), WithSeed(EmptySeed))
	require.NoError(t, s.Activate(ctx, "alice"))

	e, err := s.LogRecognized(ctx, models.FoodForm{
		Name: "Banana", Quantity: "1", Calories: "105", Protein: "1.3", Carbs: "27", Fat: "oops", MealType: "Snack",
	})
	require.NoError(t, err)
	assert.Equal(t, 105, e.Calories)
	assert.Equal(t, 0.0, e.Fat)
	assert.Equal(t, models.MealSnack, e.MealType)

	_, err = s.LogRecognized(ctx, models.FoodForm{Name: "x", MealType: "supper"})
	require.ErrorIs(t, err, common.ErrInvalidMealType)

	recent, err := s.Recent()
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}
