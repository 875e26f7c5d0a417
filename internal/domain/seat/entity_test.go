package seat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected ID
	}{
		{"1桁の行", "5C", ID{Row: 5, Column: ColumnC}},
		{"2桁の行", "15F", ID{Row: 15, Column: ColumnF}},
		{"最前列", "1A", ID{Row: 1, Column: ColumnA}},
		{"最後列", "80F", ID{Row: 80, Column: ColumnF}},
		{"小文字は大文字化される", "12b", ID{Row: 12, Column: ColumnB}},
		{"前後の空白は除去される", "  7d \n", ID{Row: 7, Column: ColumnD}},
		{"先頭ゼロは正規化される", "05C", ID{Row: 5, Column: ColumnC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{
		"", "A", "5", "0A", "81A", "99F", "100A", "5G", "5X", "A5",
		"5CC", "-1A", "1 A", "１A", "5C!",
	}

	for _, raw := range inputs {
		t.Run(fmt.Sprintf("%q", raw), func(t *testing.T) {
			_, err := Parse(raw)
			assert.ErrorIs(t, err, ErrInvalidFormat)
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	for row := MinRow; row <= MaxRow; row++ {
		for _, col := range Columns {
			code := fmt.Sprintf("%d%s", row, col)

			id, err := Parse(code)
			require.NoError(t, err)
			assert.Equal(t, code, id.String())

			again, err := Parse(id.String())
			require.NoError(t, err)
			assert.Equal(t, id, again)
		}
	}
}

func TestMustParse(t *testing.T) {
	assert.Equal(t, ID{Row: 77, Column: ColumnD}, MustParse("77D"))
	assert.Panics(t, func() { MustParse("0Z") })
}

func TestID_Less(t *testing.T) {
	assert.True(t, MustParse("1F").Less(MustParse("2A")))
	assert.True(t, MustParse("3A").Less(MustParse("3B")))
	assert.False(t, MustParse("3B").Less(MustParse("3B")))
	assert.False(t, MustParse("10A").Less(MustParse("9F")))
}

func TestID_IsZero(t *testing.T) {
	assert.True(t, ID{}.IsZero())
	assert.False(t, MustParse("1A").IsZero())
}

func TestSet(t *testing.T) {
	s := NewSet(MustParse("1A"), MustParse("2B"))

	assert.True(t, s.Contains(MustParse("1A")))
	assert.True(t, s.Contains(MustParse("2b")))
	assert.False(t, s.Contains(MustParse("3C")))
	assert.Len(t, s, 2)
}
