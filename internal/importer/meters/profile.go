package meters

import "time"

// periodMode determines how the billing period is extracted from a row.
type periodMode int

const (
	// periodSplit means separate year and month columns.
	periodSplit periodMode = iota
	// periodCombined means one YYYY-MM column.
	periodCombined
)

// Profile describes the column layout of a reading export format.
// Column names are matched case-insensitively. Adding a new format is
// just adding a new Profile to the profiles slice.
type Profile struct {
	Name       string
	MeterCol   string
	UnitsCol   string
	PeriodMode periodMode
	PeriodCol  string // used when PeriodMode == periodCombined
	YearCol    string // used when PeriodMode == periodSplit
	MonthCol   string // used when PeriodMode == periodSplit
}

func (p Profile) requiredCols() []string {
	cols := []string{p.MeterCol, p.UnitsCol}

	switch p.PeriodMode {
	case periodSplit:
		cols = append(cols, p.YearCol, p.MonthCol)
	case periodCombined:
		cols = append(cols, p.PeriodCol)
	}

	return cols
}

func (p Profile) parsePeriod(row []string, cols colIndex) (int, time.Month, error) {
	if p.PeriodMode == periodCombined {
		return parseCombinedPeriod(row, cols[p.PeriodCol])
	}

	return parseYearMonth(row, cols[p.YearCol], cols[p.MonthCol])
}

// profiles is the ordered list of export formats to try during
// auto-detection. More specific profiles come first.
var profiles = []Profile{
	{
		Name:       "monthly",
		MeterCol:   "meter_id",
		UnitsCol:   "units",
		PeriodMode: periodSplit,
		YearCol:    "year",
		MonthCol:   "month",
	},
	{
		Name:       "period",
		MeterCol:   "meter_id",
		UnitsCol:   "units",
		PeriodMode: periodCombined,
		PeriodCol:  "period",
	},
}
