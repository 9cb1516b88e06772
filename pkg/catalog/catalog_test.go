package catalog_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maeled/pkg/catalog"
	"maeled/pkg/logger"
	"maeled/pkg/notify"
	"maeled/pkg/storage"
	"maeled/pkg/storage/memory"
)

func newTestService(t *testing.T) *catalog.Service {
	t.Helper()
	store := storage.New(memory.New())
	log := logger.New(io.Discard, logger.LevelError, "test", nil)
	return catalog.NewService(store, notify.New(store, nil), log)
}

func TestCreateAllocatesIDs(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	first, err := s.Create(ctx, catalog.Item{Name: "Tiramisu", Category: "desserts", Price: 7})
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)

	second, err := s.Create(ctx, catalog.Item{Name: "Burrata", Category: "starters", Price: 6})
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)

	require.NoError(t, s.Delete(ctx, second.ID))

	third, err := s.Create(ctx, catalog.Item{Name: "Panna Cotta", Category: "desserts", Price: 6})
	require.NoError(t, err)
	assert.Equal(t, 2, third.ID)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	_, err := s.Create(ctx, catalog.Item{Price: -1})
	require.ErrorIs(t, err, catalog.ErrInvalid)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "category is required")
	assert.Contains(t, err.Error(), "price must not be negative")
}

func TestCreateClampsPopularity(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	item, err := s.Create(ctx, catalog.Item{Name: "Tiramisu", Category: "desserts", Price: 7, Popularity: 250})
	require.NoError(t, err)
	assert.Equal(t, 100, item.Popularity)
}

func TestListSortsByPopularity(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	_, err := s.Create(ctx, catalog.Item{Name: "Burrata", Category: "starters", Price: 6, Popularity: 65})
	require.NoError(t, err)
	_, err = s.Create(ctx, catalog.Item{Name: "Pizza", Category: "pizzas", Price: 12, Popularity: 92})
	require.NoError(t, err)
	_, err = s.Create(ctx, catalog.Item{Name: "Asperges", Category: "starters", Price: 9, Popularity: 65})
	require.NoError(t, err)

	items, err := s.List(ctx, catalog.Filter{})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Pizza", items[0].Name)
	// equal popularity falls back to name order
	assert.Equal(t, "Asperges", items[1].Name)
	assert.Equal(t, "Burrata", items[2].Name)
}

func TestListSearchesNameAndIngredients(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	_, err := s.Create(ctx, catalog.Item{Name: "Pizza 4 Fromages", Category: "pizzas", Price: 12, Ingredients: "mozzarella, gorgonzola"})
	require.NoError(t, err)
	_, err = s.Create(ctx, catalog.Item{Name: "Tiramisu", Category: "desserts", Price: 7, Ingredients: "mascarpone, coffee"})
	require.NoError(t, err)

	byName, err := s.List(ctx, catalog.Filter{Query: "pizza"})
	require.NoError(t, err)
	assert.Len(t, byName, 1)

	byIngredient, err := s.List(ctx, catalog.Filter{Query: "mascarpone"})
	require.NoError(t, err)
	require.Len(t, byIngredient, 1)
	assert.Equal(t, "Tiramisu", byIngredient[0].Name)
}

func TestSetAvailableAndOrderingView(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	item, err := s.Create(ctx, catalog.Item{Name: "Burrata", Category: "starters", Price: 6, Available: true})
	require.NoError(t, err)

	updated, err := s.SetAvailable(ctx, item.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.Available)

	orderable, err := s.AvailableForOrdering(ctx)
	require.NoError(t, err)
	assert.Empty(t, orderable)
}

func TestMenuGroupsStandardCategoriesFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	for _, it := range []catalog.Item{
		{Name: "Mystery Special", Category: "specials", Price: 20, Available: true},
		{Name: "Tiramisu", Category: "desserts", Price: 7, Available: true},
		{Name: "Salade", Category: "starters", Price: 8, Available: true},
		{Name: "Hidden", Category: "starters", Price: 5, Available: false},
	} {
		_, err := s.Create(ctx, it)
		require.NoError(t, err)
	}

	sections, err := s.Menu(ctx)
	require.NoError(t, err)
	require.Len(t, sections, 3)
	assert.Equal(t, "starters", sections[0].Category)
	assert.Equal(t, "desserts", sections[1].Category)
	assert.Equal(t, "specials", sections[2].Category)
	// unavailable items never reach the public menu
	require.Len(t, sections[0].Items, 1)
	assert.Equal(t, "Salade", sections[0].Items[0].Name)
}

func TestUpdateMissingItem(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)

	_, err := s.Update(ctx, catalog.Item{ID: 42, Name: "Ghost", Category: "pasta", Price: 10})
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestMargin(t *testing.T) {
	assert.InDelta(t, 62.5, catalog.Item{Price: 12, Cost: 4.5}.Margin(), 1e-9)
	assert.Equal(t, 0.0, catalog.Item{Price: 12}.Margin())
}
