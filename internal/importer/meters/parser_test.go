package meters_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardinghub/boardinghub/internal/importer/meters"
)

func TestImporter_Parse_MonthlyProfile(t *testing.T) {
	csv := strings.Join([]string{
		"meter_id;year;month;units",
		"MTR-1;2026;3;120",
		"MTR-2;2026;3;85",
		"",
	}, "\n")

	readings, err := meters.New().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, readings, 2)

	assert.Equal(t, "MTR-1", readings[0].MeterID)
	assert.Equal(t, 2026, readings[0].Year)
	assert.Equal(t, time.March, readings[0].Month)
	assert.Equal(t, int64(120), readings[0].Units)
	assert.Equal(t, int64(85), readings[1].Units)
}

func TestImporter_Parse_PeriodProfile(t *testing.T) {
	csv := strings.Join([]string{
		"Utility Export",
		"meter_id;period;units",
		"MTR-1;2026-03;120",
	}, "\n")

	readings, err := meters.New().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, readings, 1)

	assert.Equal(t, 2026, readings[0].Year)
	assert.Equal(t, time.March, readings[0].Month)
}

func TestImporter_Parse_BlankMeterRowsSkipped(t *testing.T) {
	csv := strings.Join([]string{
		"meter_id;year;month;units",
		"MTR-1;2026;3;120",
		";;;",
		";2026;3;0",
	}, "\n")

	readings, err := meters.New().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, readings, 1)
}

func TestImporter_Parse_Errors(t *testing.T) {
	type testCase struct {
		name    string
		csv     string
		wantMsg string
	}

	tests := []testCase{
		{
			name: "DuplicateReading",
			csv: strings.Join([]string{
				"meter_id;year;month;units",
				"MTR-1;2026;3;120",
				"MTR-1;2026;3;130",
			}, "\n"),
			wantMsg: "duplicate reading",
		},
		{
			name: "NegativeUnits",
			csv: strings.Join([]string{
				"meter_id;year;month;units",
				"MTR-1;2026;3;-5",
			}, "\n"),
			wantMsg: "negative units",
		},
		{
			name: "BadMonth",
			csv: strings.Join([]string{
				"meter_id;year;month;units",
				"MTR-1;2026;13;120",
			}, "\n"),
			wantMsg: "invalid month",
		},
		{
			name: "BadUnits",
			csv: strings.Join([]string{
				"meter_id;year;month;units",
				"MTR-1;2026;3;lots",
			}, "\n"),
			wantMsg: "invalid units",
		},
		{
			name:    "UnknownFormat",
			csv:     "id;value\n1;2",
			wantMsg: "no matching reading format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			readings, err := meters.New().Parse(strings.NewReader(tt.csv))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Nil(t, readings)
		})
	}
}
