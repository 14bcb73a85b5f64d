package keywords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t,
		[]string{"bupati", "resmikan", "jalan", "baru"},
		Tokenize("Bupati resmikan jalan-baru!"))
	assert.Empty(t, Tokenize("2024 12 31 ..."))
}

func TestExtractTopCountsAndRanks(t *testing.T) {
	titles := []string{
		"Harga pasar naik",
		"Pasar saham turun",
		"Event olahraga",
	}

	top := ExtractTop(titles, 2)
	require.Len(t, top, 2)

	assert.Equal(t, "pasar", top[0].Token)
	assert.Equal(t, 2, top[0].Count)

	// All remaining tokens are singletons; first encountered wins the tie.
	assert.Equal(t, "harga", top[1].Token)
	assert.Equal(t, 1, top[1].Count)
}

func TestExtractTopFiltersStopwordsAndShortTokens(t *testing.T) {
	titles := []string{"yang di ke itu re pembangunan dan pembangunan"}

	top := ExtractTop(titles, 10)
	require.Len(t, top, 1)
	assert.Equal(t, Keyword{Token: "pembangunan", Count: 2}, top[0])
}

func TestExtractTopStableTieOrder(t *testing.T) {
	top := ExtractTop([]string{"alpha bravo charlie"}, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "alpha", top[0].Token)
	assert.Equal(t, "bravo", top[1].Token)
	assert.Equal(t, "charlie", top[2].Token)
}

func TestExtractTopEdgeCases(t *testing.T) {
	assert.Empty(t, ExtractTop(nil, 5))
	assert.Empty(t, ExtractTop([]string{"pembangunan"}, 0))

	top := ExtractTop([]string{"pembangunan"}, 5)
	require.Len(t, top, 1)
}
