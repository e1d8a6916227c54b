package data

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// ErrMalformedRow is returned for CSV rows that are not "label,score".
var ErrMalformedRow = errors.New("data: malformed score row")

// LoadScoresCSV reads labeled scores from a CSV file. See ReadScoresCSV.
func LoadScoresCSV(path string) ([]LabeledScore, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadScoresCSV(file)
}

// ReadScoresCSV reads "label,score" rows. A first row whose label column is
// not numeric is treated as a header and skipped. Label domain is not checked
// here; the curve builder rejects anything outside {0,1}.
func ReadScoresCSV(r io.Reader) ([]LabeledScore, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.ReuseRecord = true
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var out []LabeledScore
	for row := 1; ; row++ {
		rec, err := reader.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if len(rec) != 2 {
			return nil, fmt.Errorf("row %d: want 2 columns, got %d: %w", row, len(rec), ErrMalformedRow)
		}

		lv, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			if row == 1 {
				continue // header
			}
			return nil, fmt.Errorf("row %d: label %q: %w", row, rec[0], ErrMalformedRow)
		}
		if lv != math.Trunc(lv) {
			return nil, fmt.Errorf("row %d: label %q is not an integer: %w", row, rec[0], ErrMalformedRow)
		}
		sv, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: score %q: %w", row, rec[1], ErrMalformedRow)
		}
		out = append(out, LabeledScore{Label: int(lv), Score: sv})
	}
}
