package sequence_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icarus-vfx/icshared/pkg/errors"
	"github.com/icarus-vfx/icshared/pkg/sequence"
)

func TestNumList(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		sorted bool
		want   []int
	}{
		{"mixed", "1-5, 20, 24, 50-55x2, 1001-1002", true, []int{1, 2, 3, 4, 5, 20, 24, 50, 52, 54, 1001, 1002}},
		{"single", "1001", true, []int{1001}},
		{"reverse_sorted", "5-1", true, []int{1, 2, 3, 4, 5}},
		{"reverse_unsorted", "5-1", false, []int{5, 4, 3, 2, 1}},
		{"reverse_stepped", "10-1x3", false, []int{10, 7, 4, 1}},
		{"duplicates_sorted", "3, 1-3, 2", true, []int{1, 2, 3}},
		{"duplicates_first_seen", "3, 1-3, 2", false, []int{3, 1, 2}},
		{"no_spaces", "1,3,5", true, []int{1, 3, 5}},
		{"trailing_comma", "1-2,", true, []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sequence.NumList(tt.input, tt.sorted)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumListInvalid(t *testing.T) {
	for _, input := range []string{"", "  ", "1-x", "a", "1-5x0", "1--5"} {
		t.Run(input, func(t *testing.T) {
			_, err := sequence.NumList(input, true)
			assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "got %v", err)
		})
	}
}

func TestNumRange(t *testing.T) {
	tests := []struct {
		name    string
		nums    []int
		padding int
		want    string
	}{
		{"runs", []int{1, 2, 3, 4, 5, 20, 24, 1001, 1002}, 0, "1-5, 20, 24, 1001-1002"},
		{"unsorted_duplicates", []int{3, 1, 2, 2, 7}, 0, "1-3, 7"},
		{"padded", []int{1, 2, 9}, 4, "0001-0002, 0009"},
		{"empty", nil, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sequence.NumRange(tt.nums, tt.padding))
		})
	}
}

func TestNumRangeRoundTrip(t *testing.T) {
	nums, err := sequence.NumList("1-5, 20, 24, 1001-1002", true)
	require.NoError(t, err)
	assert.Equal(t, "1-5, 20, 24, 1001-1002", sequence.NumRange(nums, 0))
}

func TestRanges(t *testing.T) {
	assert.Equal(t, [][2]int{{1, 3}, {5, 5}, {7, 8}}, sequence.Ranges([]int{1, 2, 3, 5, 7, 8}))
	assert.Nil(t, sequence.Ranges(nil))
}

func TestChunks(t *testing.T) {
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, sequence.Chunks([]int{1, 2, 3, 4, 5}, 2))
	assert.Equal(t, [][]string{{"a", "b"}}, sequence.Chunks([]string{"a", "b"}, 5))
	assert.Nil(t, sequence.Chunks([]int{1}, 0))
	assert.Nil(t, sequence.Chunks([]int{}, 3))
}
