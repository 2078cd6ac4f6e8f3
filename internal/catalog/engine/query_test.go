package engine

import (
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/KativuCraig/manymor-frontend/internal/catalog/domain"
)

func decimalPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func TestParseFilterQuery(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
		want  domain.FilterState
	}{
		{
			name:  "empty query yields defaults",
			query: url.Values{},
			want:  domain.DefaultFilterState(),
		},
		{
			name: "all parameters",
			query: url.Values{
				"search":    {"laptop"},
				"category":  {"3"},
				"min_price": {"10.50"},
				"max_price": {"200"},
				"in_stock":  {"true"},
				"sort":      {"price_asc"},
				"page":      {"4"},
			},
			want: domain.FilterState{
				Search:      "laptop",
				Category:    "3",
				MinPrice:    decimalPtr("10.50"),
				MaxPrice:    decimalPtr("200"),
				InStockOnly: true,
				Sort:        domain.SortPriceAsc,
				Page:        4,
				PageSize:    domain.DefaultPageSize,
			},
		},
		{
			name:  "search is trimmed",
			query: url.Values{"search": {"  phone  "}},
			want: domain.FilterState{
				Search:   "phone",
				Page:     1,
				PageSize: domain.DefaultPageSize,
			},
		},
		{
			name:  "malformed price is dropped",
			query: url.Values{"min_price": {"abc"}},
			want:  domain.DefaultFilterState(),
		},
		{
			name:  "negative price is dropped",
			query: url.Values{"max_price": {"-5"}},
			want:  domain.DefaultFilterState(),
		},
		{
			name:  "unknown sort key degrades to none",
			query: url.Values{"sort": {"alphabetical"}},
			want:  domain.DefaultFilterState(),
		},
		{
			name:  "page zero coerced to one",
			query: url.Values{"page": {"0"}},
			want:  domain.DefaultFilterState(),
		},
		{
			name:  "negative page coerced to one",
			query: url.Values{"page": {"-3"}},
			want:  domain.DefaultFilterState(),
		},
		{
			name:  "malformed page coerced to one",
			query: url.Values{"page": {"two"}},
			want:  domain.DefaultFilterState(),
		},
		{
			name:  "in_stock only honors the literal true",
			query: url.Values{"in_stock": {"yes"}},
			want:  domain.DefaultFilterState(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFilterQuery(tt.query)
			require.True(t, tt.want.Equal(got), "want %+v, got %+v", tt.want, got)
		})
	}
}

func TestEncodeFilterQueryOmitsDefaults(t *testing.T) {
	encoded := EncodeFilterQuery(domain.DefaultFilterState())
	require.Empty(t, encoded)
}

func TestEncodeFilterQueryOmitsFirstPage(t *testing.T) {
	state := domain.DefaultFilterState()
	state.Search = "mug"
	state.Page = 1

	encoded := EncodeFilterQuery(state)
	require.False(t, encoded.Has(ParamPage))
	require.Equal(t, "mug", encoded.Get(ParamSearch))
}

// Encoding a parsed state and parsing it again must land on the same state,
// so the client can replace its URL with the canonical form at any time.
func TestParseEncodeRoundTrip(t *testing.T) {
	queries := []url.Values{
		{},
		{"search": {"desk"}},
		{"category": {"7"}, "page": {"3"}},
		{"min_price": {"5"}, "max_price": {"50.25"}},
		{"in_stock": {"true"}, "sort": {"name_desc"}},
		{"search": {"  chair "}, "page": {"0"}, "min_price": {"oops"}},
		{"search": {"a b"}, "sort": {"newest"}, "page": {"12"}},
	}

	for _, query := range queries {
		first := ParseFilterQuery(query)
		second := ParseFilterQuery(EncodeFilterQuery(first))
		require.True(t, first.Equal(second), "round trip changed %v: %+v vs %+v", query, first, second)

		// The canonical serialization is a fixed point.
		require.Equal(t,
			EncodeFilterQuery(first).Encode(),
			EncodeFilterQuery(second).Encode(),
		)
	}
}

func TestMerge(t *testing.T) {
	base := domain.FilterState{
		Search:   "desk",
		Category: "2",
		Sort:     domain.SortPriceAsc,
		Page:     5,
		PageSize: domain.DefaultPageSize,
	}

	t.Run("changing a filter resets the page", func(t *testing.T) {
		merged := Merge(base, url.Values{"search": {"lamp"}})
		require.Equal(t, "lamp", merged.Search)
		require.Equal(t, 1, merged.Page)
		require.Equal(t, "2", merged.Category, "untouched filters survive")
	})

	t.Run("empty value clears the filter", func(t *testing.T) {
		merged := Merge(base, url.Values{"category": {""}})
		require.Empty(t, merged.Category)
		require.Equal(t, 1, merged.Page)
	})

	t.Run("explicit page wins over the reset", func(t *testing.T) {
		merged := Merge(base, url.Values{"search": {"lamp"}, "page": {"3"}})
		require.Equal(t, 3, merged.Page)
	})

	t.Run("page-only change keeps filters", func(t *testing.T) {
		merged := Merge(base, url.Values{"page": {"2"}})
		require.Equal(t, 2, merged.Page)
		require.Equal(t, "desk", merged.Search)
		require.Equal(t, domain.SortPriceAsc, merged.Sort)
	})

	t.Run("unknown parameters are ignored", func(t *testing.T) {
		merged := Merge(base, url.Values{"utm_source": {"mail"}})
		require.True(t, base.Equal(merged))
	})
}

func TestClear(t *testing.T) {
	require.True(t, domain.DefaultFilterState().Equal(Clear()))
	require.False(t, Clear().HasActiveFilters())
}
