package codec

import (
	"errors"
	"testing"

	"github.com/longbridgeapp/assert"

	"github.com/emiliopalmerini/researchlog/internal/domain"
)

func TestLegacy_Encode(t *testing.T) {
	line, err := Legacy{}.Encode(domain.NewRecord("exp1", "2024-01-15", "Dr. A", []float64{1, 2.5, 3}))
	assert.Nil(t, err)
	assert.Equal(t, "exp1,2024-01-15,Dr. A,1.0,2.5,3.0", string(line))
}

func TestLegacy_EncodeNoPoints(t *testing.T) {
	line, err := Legacy{}.Encode(domain.NewRecord("exp1", "2024-01-15", "Dr. A", nil))
	assert.Nil(t, err)
	assert.Equal(t, "exp1,2024-01-15,Dr. A", string(line))

	got, err := Legacy{}.Decode(line)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(got.DataPoints))
}

func TestLegacy_Decode(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    domain.Record
		wantErr error
	}{
		{
			name: "plain research_data.txt line",
			line: "exp1,2024-01-15,Dr. A,1.0,2.5,3.0\n",
			want: domain.NewRecord("exp1", "2024-01-15", "Dr. A", []float64{1, 2.5, 3}),
		},
		{
			name: "spaced data points",
			line: "exp1,2024-01-15,Dr. A, 1 ,2  \r\n",
			want: domain.NewRecord("exp1", "2024-01-15", "Dr. A", []float64{1, 2}),
		},
		{
			name: "text fields keep their spacing",
			line: "  padded exp,2024-01-15,ann \r\n",
			want: domain.NewRecord("  padded exp", "2024-01-15", "ann ", nil),
		},
		{
			name:    "non numeric token",
			line:    "exp1,2024-01-15,Dr. A,1.0,oops",
			wantErr: domain.ErrInvalidDataPoint,
		},
		{
			name:    "comma inside a text field shifts the columns",
			line:    "dose, high,2024-01-15,Dr. A,1.0",
			wantErr: domain.ErrInvalidDataPoint,
		},
		{
			name:    "trailing comma",
			line:    "exp1,2024-01-15,Dr. A,",
			wantErr: domain.ErrInvalidDataPoint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Legacy{}.Decode([]byte(tt.line))
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLegacy_DecodeTooFewFields(t *testing.T) {
	_, err := Legacy{}.Decode([]byte("exp1,2024-01-15"))
	assert.True(t, err != nil)
}
