package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    string
		wantErr bool
	}

	tests := []testCase{
		{name: "Midnight", input: "00:00", want: "0 0 * * *"},
		{name: "EarlyMorning", input: "02:00", want: "0 2 * * *"},
		{name: "WithMinutes", input: "14:30", want: "30 14 * * *"},
		{name: "MissingColon", input: "0200", wantErr: true},
		{name: "OutOfRange", input: "25:00", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTimeOfDay(tt.input)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
