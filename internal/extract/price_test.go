package extract

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		name string
		text string
		want float64
		ok   bool
	}{
		{"plain", "50000", 50000, true},
		{"currency symbol", "$1500", 1500, true},
		{"euro symbol", "€ 2500", 2500, true},
		{"thousands commas", "1,500,000", 1500000, true},
		{"multiple dots keeps rightmost", "1.250.000", 1250.0, true},
		{"decimal", "1500.50", 1500.50, true},
		{"empty", "", 0, false},
		{"words only", "consultar precio", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParsePrice(tc.text)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestParsePriceRange(t *testing.T) {
	t.Run("estimate range with dots", func(t *testing.T) {
		info := ParsePriceRange("$50.000.000 - $80.000.000")

		require.NotNil(t, info.Min)
		require.NotNil(t, info.Max)
		assert.Equal(t, float64(50000000), *info.Min)
		assert.Equal(t, float64(80000000), *info.Max)
		assert.False(t, info.Sold)
		assert.Nil(t, info.Final)
	})

	t.Run("en dash range", func(t *testing.T) {
		info := ParsePriceRange("1000 – 3000")

		require.NotNil(t, info.Min)
		require.NotNil(t, info.Max)
		assert.Equal(t, float64(1000), *info.Min)
		assert.Equal(t, float64(3000), *info.Max)
	})

	t.Run("single price sets min and max", func(t *testing.T) {
		info := ParsePriceRange("Estimado: $2.000")

		require.NotNil(t, info.Min)
		require.NotNil(t, info.Max)
		assert.Equal(t, float64(2000), *info.Min)
		assert.Equal(t, float64(2000), *info.Max)
	})

	t.Run("sold marker sets final price", func(t *testing.T) {
		info := ParsePriceRange("Vendido: $75.000")

		assert.True(t, info.Sold)
		require.NotNil(t, info.Final)
		assert.Equal(t, float64(75000), *info.Final)
	})

	t.Run("sold marker in english", func(t *testing.T) {
		info := ParsePriceRange("Sold for 120,000")

		assert.True(t, info.Sold)
		require.NotNil(t, info.Final)
		assert.Equal(t, float64(120000), *info.Final)
	})

	t.Run("empty text yields nothing", func(t *testing.T) {
		info := ParsePriceRange("")

		assert.Nil(t, info.Min)
		assert.Nil(t, info.Max)
		assert.Nil(t, info.Final)
		assert.False(t, info.Sold)
	})

	t.Run("no digits yields nothing", func(t *testing.T) {
		info := ParsePriceRange("precio a consultar")

		assert.Nil(t, info.Min)
		assert.Nil(t, info.Max)
	})
}

func FuzzTest_ParsePriceRange(f *testing.F) {
	// seed corpus entries
	f.Add(uint32(0), uint32(0))
	f.Add(uint32(1), uint32(2))
	f.Add(uint32(50000), uint32(80000))
	f.Add(uint32(999999), uint32(1))

	f.Fuzz(func(t *testing.T, a uint32, b uint32) {
		info := ParsePriceRange(fmt.Sprintf("%d - %d", a, b))

		if info.Min == nil || info.Max == nil {
			t.Fatalf("ParsePriceRange() did not recognize range %d - %d", a, b)
		}
		if *info.Min != float64(a) || *info.Max != float64(b) {
			t.Errorf("ParsePriceRange() = %v-%v, want %d-%d", *info.Min, *info.Max, a, b)
		}
	})
}
