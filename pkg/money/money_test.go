package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type line struct {
	price string
	qty   int
}

func (l line) UnitPrice() string { return l.price }
func (l line) Units() int { return l.qty }

func TestParseCents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "179.00", want: 17900},
		{in: "5.5", want: 550},
		{in: "10", want: 1000},
		{in: ".75", want: 75},
		{in: " 0.01 ", want: 1},
		{in: "-2.50", want: -250},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "1.234", wantErr: true},
		{in: "1.", wantErr: true},
		{in: "1.x0", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseCents(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidPrice)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatCents(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0.00", FormatCents(0))
	assert.Equal(t, "25.50", FormatCents(2550))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "-1.20", FormatCents(-120))
}

func TestTotal(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "25.50", Total([]line{{"10.00", 2}, {"5.50", 1}}))
	assert.Equal(t, "10.00", Total([]line{{"10.00", 1}, {"n/a", 3}}))
	assert.Equal(t, "0.00", Total([]line{}))
}
