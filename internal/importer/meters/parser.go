package meters

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/boardinghub/boardinghub/internal/billing"
	enc "github.com/boardinghub/boardinghub/internal/encoding"
)

// Importer reads meter-reading CSV exports and produces readings. It
// auto-detects which layout is used (monthly columns or a combined
// YYYY-MM period column) by matching headers against known profiles.
type Importer struct{}

func New() *Importer {
	return &Importer{}
}

func (i *Importer) Parse(r io.Reader) ([]billing.MeterReading, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, colMap, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching reading format found: expected meter/period/units columns")
	}

	return parseRows(profile, colMap, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts readings from data rows using the matched
// profile. Duplicate (meter, period) rows within one file are an
// error: the file is ambiguous about which value is meant.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]billing.MeterReading, error) {
	type key struct {
		meter string
		year  int
		month time.Month
	}

	seen := make(map[key]bool)

	var readings []billing.MeterReading

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		meterID := cellValue(row, cols[p.MeterCol])
		if meterID == "" {
			// Footer or blank row.
			continue
		}

		year, month, err := p.parsePeriod(row, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		unitsStr := cellValue(row, cols[p.UnitsCol])

		units, err := strconv.ParseInt(unitsStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid units %q", rowNum, unitsStr)
		}

		if units < 0 {
			return nil, fmt.Errorf("row %d: negative units", rowNum)
		}

		k := key{meter: meterID, year: year, month: month}
		if seen[k] {
			return nil, fmt.Errorf("row %d: duplicate reading for meter %s %d-%02d", rowNum, meterID, year, int(month))
		}

		seen[k] = true

		readings = append(readings, billing.MeterReading{
			MeterID: meterID,
			Year:    year,
			Month:   month,
			Units:   units,
		})
	}

	return readings, nil
}

func parseYearMonth(row []string, yearIdx, monthIdx int) (int, time.Month, error) {
	year, err := strconv.Atoi(cellValue(row, yearIdx))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year %q", cellValue(row, yearIdx))
	}

	month, err := strconv.Atoi(cellValue(row, monthIdx))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month %q", cellValue(row, monthIdx))
	}

	return year, time.Month(month), nil
}

func parseCombinedPeriod(row []string, idx int) (int, time.Month, error) {
	s := cellValue(row, idx)

	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid period %q", s)
	}

	return t.Year(), t.Month(), nil
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
