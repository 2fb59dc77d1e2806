package tt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSizesToPowerOfTwoBuckets(t *testing.T) {
	table := New(1)
	assert.True(t, len(table.buckets) > 0)
	assert.Equal(t, uint64(len(table.buckets)-1), table.bucketMask)
}

func TestGetOnEmptyTableIsMiss(t *testing.T) {
	table := New(1)
	data := table.Get(0x1, 0x2, 12345)
	assert.Equal(t, int8(-ScoreInf), data.Lower)
	assert.Equal(t, int8(ScoreInf), data.Upper)
	assert.Equal(t, uint64(1), table.Stats.Misses)
}

func TestPutThenGetRoundTrips(t *testing.T) {
	table := New(1)
	p, o := uint64(0xFF), uint64(0xFF00)
	table.Put(p, o, 7, 10, -20, 20, 8, 0, 3, 27)

	data := table.Get(p, o, 7)
	assert.Equal(t, uint8(8), data.Depth())
	assert.Equal(t, uint8(27), data.Move[0])
	require.Equal(t, uint64(1), table.Len())
}

func TestPutUpdateTightensBoundsAtSameDepth(t *testing.T) {
	table := New(1)
	p, o := uint64(0x1), uint64(0x2)
	// a fail-high store (score == beta) sets only the lower bound, 10;
	// the exact 12 then tightens lower to 12 and upper to 12.
	table.Put(p, o, 99, 10, -20, 10, 8, 0, 1, 5)
	table.Put(p, o, 99, 12, -20, 20, 8, 0, 1, 5)

	data := table.Get(p, o, 99)
	assert.Equal(t, int8(12), data.Lower)
}

func TestPutUpgradeResetsBoundsAtDifferentDepth(t *testing.T) {
	table := New(1)
	p, o := uint64(0x1), uint64(0x2)
	table.Put(p, o, 99, 10, -20, 20, 4, 0, 1, 5)
	table.Put(p, o, 99, -5, -20, 20, 9, 0, 1, 6)

	data := table.Get(p, o, 99)
	assert.Equal(t, uint8(9), data.Depth())
	assert.Equal(t, uint8(6), data.Move[0])
}

func TestNewSearchAdvancesDateAndWrapsAt127(t *testing.T) {
	table := New(1)
	table.date = 126
	table.NewSearch()
	assert.Equal(t, uint8(127), table.date)
	table.NewSearch()
	assert.Equal(t, uint8(1), table.date)
	assert.Equal(t, uint64(1), table.Stats.DateResets)
}

func TestClearResetsStatsAndEntries(t *testing.T) {
	table := New(1)
	table.Put(1, 2, 5, 0, -20, 20, 1, 0, 0, 3)
	table.Clear()
	assert.Equal(t, uint64(0), table.Len())
	assert.Equal(t, Stats{}, table.Stats)
}

func TestExcludeMoveRemovesSquareAndResetsLowerBound(t *testing.T) {
	table := New(1)
	p, o := uint64(3), uint64(5)
	table.Put(p, o, 42, 10, -20, 20, 6, 0, 0, 19)

	table.ExcludeMove(p, o, 42, 19)
	data := table.Get(p, o, 42)
	assert.Equal(t, uint8(NoMove), data.Move[0])
	assert.Equal(t, int8(-ScoreInf), data.Lower)
}

func TestHashfullReflectsOccupancy(t *testing.T) {
	table := New(1)
	assert.Equal(t, 0, table.Hashfull())
	// a 1 MB table has 8192 buckets x 4 ways = 32768 slots, so 33
	// entries in distinct buckets are just over one permill.
	for i := uint64(1); i <= 33; i++ {
		table.Put(i, i<<8, i, 0, -20, 20, 1, 0, 0, 1)
	}
	assert.Greater(t, table.Hashfull(), 0)
}

func TestResizeZeroProducesUsableEmptyTable(t *testing.T) {
	table := New(0)
	assert.Equal(t, uint64(0), table.maxEntries)
	table.Put(1, 2, 1, 0, -20, 20, 1, 0, 0, 1) // must not panic
	data := table.Get(1, 2, 1)
	assert.Equal(t, int8(ScoreInf), data.Upper)
}

func TestStringIsHumanReadable(t *testing.T) {
	table := New(1)
	assert.Contains(t, table.String(), "TT:")
}
