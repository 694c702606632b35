package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	templateIDs := []int64{1, 2, 42, 999, 123_456, 1_000_000, 98_765_432}
	dates := []int64{
		240115,   // YYMMDD
		20240115, // YYYYMMDD
		991231,
		20991231,
		20260829,
		100101, // earliest six-digit form the heuristic can carry
	}

	for _, tid := range templateIDs {
		for _, d := range dates {
			got := Decode(Encode(tid, d))
			assert.Equal(t, tid, got, "template %d date %d", tid, d)
		}
	}
}

func TestEncode_SpecScenario(t *testing.T) {
	// encode(42, 20240115) must decode back to 42 even though the date
	// arrives in its eight-digit form.
	id := Encode(42, 20240115)
	assert.Equal(t, int64(42), Decode(id))
}

func TestEncodeDate(t *testing.T) {
	occ := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local)
	id := EncodeDate(42, occ)
	assert.Equal(t, int64(42_240_115), id)
	assert.Equal(t, int64(42), Decode(id))
}

func TestDecode_TemplateIDsPassThrough(t *testing.T) {
	tests := []struct {
		name string
		id   int64
		want int64
	}{
		{name: "small template id", id: 17, want: 17},
		{name: "at the threshold", id: 1_000_000, want: 1_000_000},
		{name: "short remainder is not a date", id: 5_000_123, want: 5_000_123},
		{name: "six digit remainder decodes", id: 5_240_115, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.id))
		})
	}
}

func TestIsSynthetic(t *testing.T) {
	assert.False(t, IsSynthetic(42))
	assert.False(t, IsSynthetic(1_000_000))
	assert.True(t, IsSynthetic(Encode(42, 240115)))
	// Known heuristic limitation: a large plain template id whose trailing
	// six digits happen to look like a date reads as synthetic.
	assert.True(t, IsSynthetic(7_240_115))
}
