package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a        string
		b        string
		expected int
	}{
		{"", "", 0},
		{"hello", "hello", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"a", "ab", 1},
		{"abc", "ab", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"Hello", "hello", 1},
		{"createdat", "updatedat", 3},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.expected, Levenshtein(tt.b, tt.a), "symmetry")
		})
	}
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("", ""), 0.001)
	assert.InDelta(t, 0.0, Similarity("abc", "xyz"), 0.001)
	assert.InDelta(t, 1.0-3.0/7.0, Similarity("kitten", "sitting"), 0.001)
}

func TestSuggest(t *testing.T) {
	candidates := []string{"firstName", "lastName", "email", "orderID", "address"}

	got := Suggest("firstname", candidates)
	require.NotEmpty(t, got)
	assert.Equal(t, "firstName", got[0])
	assert.LessOrEqual(t, len(got), MaxSuggestions)

	got = Suggest("order_id", candidates)
	require.NotEmpty(t, got)
	assert.Equal(t, "orderID", got[0])

	assert.Contains(t, Suggest("adress", candidates), "address")
	assert.Empty(t, Suggest("zzz", candidates))
	assert.Empty(t, Suggest("email", candidates), "exact names are not suggestions")
}

func TestFind(t *testing.T) {
	candidates := []string{"orderID", "OrderId", "total"}

	name, ok := Find("order_id", candidates)
	assert.True(t, ok)
	assert.Equal(t, "orderID", name)

	name, ok = Find("OrderId", candidates)
	assert.True(t, ok)
	assert.Equal(t, "OrderId", name)

	_, ok = Find("missing", candidates)
	assert.False(t, ok)
}

func BenchmarkSuggest(b *testing.B) {
	candidates := []string{"customerOrderID", "customerName", "total", "createdAt"}
	for range b.N {
		Suggest("customer_order_id", candidates)
	}
}
