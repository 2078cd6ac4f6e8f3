package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/KativuCraig/manymor-frontend/internal/catalog/domain"
)

func makeProducts(count int) []domain.Product {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	products := make([]domain.Product, 0, count)
	for i := 1; i <= count; i++ {
		products = append(products, domain.Product{
			ID:            uint(i),
			Name:          fmt.Sprintf("Product %03d", i),
			Description:   "A product",
			Price:         decimal.NewFromInt(int64(i * 10)),
			StockQuantity: i % 3, // every third product is out of stock
			CategoryID:    uint(i%4 + 1),
			CategoryName:  fmt.Sprintf("Category %d", i%4+1),
			CreatedAt:     base.Add(time.Duration(i) * time.Hour),
		})
	}
	return products
}

func collectIDs(products []domain.Product) []uint {
	ids := make([]uint, 0, len(products))
	for _, product := range products {
		ids = append(ids, product.ID)
	}
	return ids
}

func TestApplyPagination(t *testing.T) {
	products := makeProducts(30)

	t.Run("page partition covers every match exactly once", func(t *testing.T) {
		state := domain.DefaultFilterState()
		first := Apply(products, state)

		require.Equal(t, 30, first.TotalCount)
		require.Equal(t, 3, first.TotalPages)

		seen := map[uint]int{}
		for page := 1; page <= first.TotalPages; page++ {
			state.Page = page
			view := Apply(products, state)
			require.LessOrEqual(t, len(view.Items), state.PageSize)
			for _, id := range collectIDs(view.Items) {
				seen[id]++
			}
		}
		require.Len(t, seen, 30)
		for id, count := range seen {
			require.Equal(t, 1, count, "product %d appeared %d times", id, count)
		}
	})

	t.Run("last partial page", func(t *testing.T) {
		state := domain.DefaultFilterState()
		state.Page = 3
		view := Apply(products[:25], state)
		require.Equal(t, 25, view.TotalCount)
		require.Equal(t, 3, view.TotalPages)
		require.Len(t, view.Items, 1)
	})

	t.Run("out-of-range page clamps to first and flags it", func(t *testing.T) {
		state := domain.DefaultFilterState()
		state.Page = 9
		view := Apply(products, state)
		require.Equal(t, 1, view.Page)
		require.True(t, view.PageClamped)
		require.Len(t, view.Items, state.PageSize)
	})

	t.Run("in-range page is not flagged", func(t *testing.T) {
		state := domain.DefaultFilterState()
		state.Page = 2
		view := Apply(products, state)
		require.Equal(t, 2, view.Page)
		require.False(t, view.PageClamped)
	})

	t.Run("empty result set", func(t *testing.T) {
		state := domain.DefaultFilterState()
		state.Search = "no such product"
		view := Apply(products, state)
		require.Equal(t, 0, view.TotalCount)
		require.Equal(t, 0, view.TotalPages)
		require.Equal(t, 1, view.Page)
		require.NotNil(t, view.Items)
		require.Empty(t, view.Items)
	})
}

func TestApplyFilters(t *testing.T) {
	products := makeProducts(30)

	t.Run("search matches name, description and category", func(t *testing.T) {
		state := domain.DefaultFilterState()
		state.Search = "product 007"
		view := Apply(products, state)
		require.Equal(t, 1, view.TotalCount)
		require.Equal(t, uint(7), view.Items[0].ID)

		state.Search = "CATEGORY 2"
		view = Apply(products, state)
		require.NotZero(t, view.TotalCount)
		for _, item := range view.Items {
			require.Equal(t, uint(2), item.CategoryID)
		}
	})

	t.Run("category filter", func(t *testing.T) {
		state := domain.DefaultFilterState()
		state.Category = "3"
		view := Apply(products, state)
		require.NotZero(t, view.TotalCount)
		for _, item := range view.Items {
			require.Equal(t, uint(3), item.CategoryID)
		}
	})

	t.Run("price bounds are inclusive", func(t *testing.T) {
		state := domain.DefaultFilterState()
		state.MinPrice = decimalPtr("100")
		state.MaxPrice = decimalPtr("150")
		view := Apply(products, state)
		require.Equal(t, 6, view.TotalCount)
		for _, item := range view.Items {
			require.True(t, item.Price.GreaterThanOrEqual(*state.MinPrice))
			require.True(t, item.Price.LessThanOrEqual(*state.MaxPrice))
		}
	})

	t.Run("min above max yields empty view", func(t *testing.T) {
		state := domain.DefaultFilterState()
		state.MinPrice = decimalPtr("200")
		state.MaxPrice = decimalPtr("100")
		view := Apply(products, state)
		require.Equal(t, 0, view.TotalCount)
		require.Empty(t, view.Items)
	})

	t.Run("in stock only", func(t *testing.T) {
		state := domain.DefaultFilterState()
		state.InStockOnly = true
		view := Apply(products, state)
		require.Equal(t, 20, view.TotalCount)
		for _, item := range view.Items {
			require.Positive(t, item.StockQuantity)
		}
	})

	t.Run("clearing filters restores the unfiltered first page", func(t *testing.T) {
		unfiltered := Apply(products, domain.DefaultFilterState())
		cleared := Apply(products, Clear())
		require.Equal(t, unfiltered.TotalCount, cleared.TotalCount)
		require.Equal(t, collectIDs(unfiltered.Items), collectIDs(cleared.Items))
		require.Equal(t, 1, cleared.Page)
	})
}

func TestApplySorting(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	products := []domain.Product{
		{ID: 1, Name: "banana stand", Price: decimal.NewFromInt(30), CreatedAt: base.Add(2 * time.Hour)},
		{ID: 2, Name: "Apple crate", Price: decimal.NewFromInt(10), CreatedAt: base.Add(3 * time.Hour)},
		{ID: 3, Name: "cherry box", Price: decimal.NewFromInt(20), CreatedAt: base.Add(time.Hour)},
	}

	tests := []struct {
		name string
		sort domain.SortKey
		want []uint
	}{
		{"price ascending", domain.SortPriceAsc, []uint{2, 3, 1}},
		{"price descending", domain.SortPriceDesc, []uint{1, 3, 2}},
		{"name A to Z ignores case", domain.SortNameAsc, []uint{2, 1, 3}},
		{"name Z to A ignores case", domain.SortNameDesc, []uint{3, 1, 2}},
		{"newest first", domain.SortNewest, []uint{2, 1, 3}},
		{"no sort keeps gateway order", domain.SortNone, []uint{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := domain.DefaultFilterState()
			state.Sort = tt.sort
			view := Apply(products, state)
			require.Equal(t, tt.want, collectIDs(view.Items))
		})
	}
}

func TestApplySortIsStable(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Name: "a", Price: decimal.NewFromInt(10)},
		{ID: 2, Name: "b", Price: decimal.NewFromInt(10)},
		{ID: 3, Name: "c", Price: decimal.NewFromInt(10)},
	}

	state := domain.DefaultFilterState()
	state.Sort = domain.SortPriceAsc
	view := Apply(products, state)
	require.Equal(t, []uint{1, 2, 3}, collectIDs(view.Items))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	products := makeProducts(10)
	original := collectIDs(products)

	state := domain.DefaultFilterState()
	state.Sort = domain.SortPriceDesc
	Apply(products, state)

	require.Equal(t, original, collectIDs(products))
}

func TestActiveFilterLabels(t *testing.T) {
	categories := []domain.Category{
		{ID: 1, Name: "Electronics"},
		{ID: 2, Name: "Furniture"},
	}

	t.Run("no filters means no labels", func(t *testing.T) {
		require.Empty(t, ActiveFilterLabels(domain.DefaultFilterState(), categories))
	})

	t.Run("labels render every active filter", func(t *testing.T) {
		state := domain.FilterState{
			Search:      "desk",
			Category:    "2",
			MinPrice:    decimalPtr("10"),
			MaxPrice:    decimalPtr("99.99"),
			InStockOnly: true,
			Sort:        domain.SortPriceAsc,
			Page:        1,
			PageSize:    domain.DefaultPageSize,
		}
		labels := ActiveFilterLabels(state, categories)
		require.Equal(t, []string{
			`Search: "desk"`,
			"Category: Furniture",
			"Min Price: $10",
			"Max Price: $99.99",
			"In Stock Only",
			"Sorted: Price: Low to High",
		}, labels)
	})

	t.Run("unknown category id renders no label", func(t *testing.T) {
		state := domain.DefaultFilterState()
		state.Category = "42"
		require.Empty(t, ActiveFilterLabels(state, categories))
	})
}

func TestCountByCategory(t *testing.T) {
	products := makeProducts(30)
	total := 0
	for categoryID := uint(1); categoryID <= 4; categoryID++ {
		total += CountByCategory(products, categoryID)
	}
	require.Equal(t, len(products), total)
	require.Zero(t, CountByCategory(products, 99))
}
