package token

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_PoolSize(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for p := 0; p <= 20; p++ {
		for s := 0; s <= 20; s++ {
			for _, random := range []bool{false, true} {
				pool := Build(p, s, random, rng)
				require.Equal(t, p+s, pool.Len(), "p=%d s=%d random=%v", p, s, random)
			}
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	pool := Build(3, 2, false, rand.New(rand.NewSource(1)))

	contents := pool.Contents()
	assert.Equal(t, 3, Count(contents, Primary))
	assert.Equal(t, 2, Count(contents, Secondary))

	p, s := pool.Counts()
	assert.Equal(t, 3, p)
	assert.Equal(t, 2, s)
}

func TestBuild_RandomNeverConvertsSecondary(t *testing.T) {
	rng := rand.New(rand.NewSource(99))

	for range 200 {
		pool := Build(0, 6, true, rng)
		assert.Equal(t, 6, Count(pool.Contents(), Secondary))
	}
}

func TestBuild_RandomConvertsSomePrimary(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	converted := 0
	for range 50 {
		pool := Build(10, 0, true, rng)
		converted += Count(pool.Contents(), Secondary)
	}

	// 500 fair coin flips; an all-heads or all-tails run is not a realistic outcome.
	assert.Greater(t, converted, 0)
	assert.Less(t, converted, 500)
}

func TestBuild_NegativeCountsClamp(t *testing.T) {
	pool := Build(-3, -1, false, rand.New(rand.NewSource(1)))
	assert.Equal(t, 0, pool.Len())
}

func TestDraw_Cardinality(t *testing.T) {
	tests := []struct {
		name     string
		primary  int
		second   int
		n        int
		wantLen  int
		wantLeft int
	}{
		{"draw fewer than pool", 5, 3, 2, 2, 6},
		{"draw exact pool", 2, 2, 4, 4, 0},
		{"draw more than pool", 1, 1, 5, 2, 0},
		{"draw from empty pool", 0, 0, 3, 0, 0},
		{"draw zero", 4, 4, 0, 0, 8},
		{"draw negative", 4, 4, -2, 0, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := Build(tt.primary, tt.second, false, rand.New(rand.NewSource(11)))
			before := pool.Contents()

			drawn := pool.Draw(tt.n)

			assert.Len(t, drawn, tt.wantLen)
			assert.Equal(t, tt.wantLeft, pool.Len())

			// drawn + remaining is the original multiset
			after := append(pool.Contents(), drawn...)
			assert.Equal(t, Count(before, Primary), Count(after, Primary))
			assert.Equal(t, Count(before, Secondary), Count(after, Secondary))
		})
	}
}

func TestDraw_SameSeedSameSequence(t *testing.T) {
	a := Build(6, 6, false, rand.New(rand.NewSource(42))).Draw(5)
	b := Build(6, 6, false, rand.New(rand.NewSource(42))).Draw(5)
	assert.Equal(t, a, b)
}

func TestDraw_NilPool(t *testing.T) {
	var pool *Pool
	assert.Empty(t, pool.Draw(3))
	assert.Equal(t, 0, pool.Len())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "White", Primary.String())
	assert.Equal(t, "Red", Secondary.String())
	assert.Equal(t, "Unknown", Kind(9).String())
}

func TestKindText(t *testing.T) {
	for _, k := range []Kind{Primary, Secondary} {
		b, err := k.MarshalText()
		require.NoError(t, err)

		var got Kind
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, k, got)
	}

	_, err := Kind(7).MarshalText()
	require.Error(t, err)

	var k Kind
	require.Error(t, k.UnmarshalText([]byte("Blue")))
}
