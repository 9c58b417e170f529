package dataset

import (
	"crypto/md5"
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Load parses raw CSV bytes into a Frame and returns the content-derived
// dataset identifier (MD5 of the raw bytes). Delimiter is sniffed by trying
// comma, semicolon, and tab in order; the first that yields more than one
// column wins.
func Load(data []byte) (*Frame, string, error) {
	var frame *Frame
	var lastErr error
	for _, delim := range []rune{',', ';', '\t'} {
		f, err := parseWithDelimiter(data, delim)
		if err != nil {
			lastErr = err
			continue
		}
		if f.NumCols() > 1 {
			frame = f
			break
		}
		if frame == nil {
			frame = f
		}
	}
	if frame == nil {
		if lastErr != nil {
			return nil, "", fmt.Errorf("unable to parse CSV: %w", lastErr)
		}
		return nil, "", fmt.Errorf("unable to parse CSV")
	}
	if frame.NumRows() == 0 {
		return nil, "", fmt.Errorf("CSV has no data rows")
	}

	sum := md5.Sum(data)
	return frame, hex.EncodeToString(sum[:]), nil
}

func parseWithDelimiter(data []byte, delim rune) (*Frame, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read headers: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	raw := make([][]string, len(headers))
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // skip malformed rows
		}
		for i := range headers {
			if i < len(row) {
				raw[i] = append(raw[i], strings.TrimSpace(row[i]))
			} else {
				raw[i] = append(raw[i], "")
			}
		}
	}

	series := make([]*Series, len(headers))
	for i, name := range headers {
		series[i] = inferSeries(name, raw[i])
	}
	return NewFrame(series)
}

// inferSeries classifies a raw column as float, bool, or string. A column
// qualifies as typed only when every non-empty cell parses.
func inferSeries(name string, cells []string) *Series {
	nulls := make([]bool, len(cells))
	allFloat, allBool := true, true
	nonEmpty := 0
	for i, cell := range cells {
		if cell == "" {
			nulls[i] = true
			continue
		}
		nonEmpty++
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			allFloat = false
		}
		if !isBoolCell(cell) {
			allBool = false
		}
	}
	if nonEmpty == 0 {
		return NewStringSeries(name, cells, nulls)
	}

	if allBool {
		values := make([]bool, len(cells))
		for i, cell := range cells {
			if !nulls[i] {
				values[i] = parseBoolCell(cell)
			}
		}
		return NewBoolSeries(name, values, nulls)
	}
	if allFloat {
		values := make([]float64, len(cells))
		for i, cell := range cells {
			if !nulls[i] {
				values[i], _ = strconv.ParseFloat(cell, 64)
			}
		}
		return NewFloatSeries(name, values, nulls)
	}
	return NewStringSeries(name, cells, nulls)
}

func isBoolCell(cell string) bool {
	switch strings.ToLower(cell) {
	case "true", "false", "yes", "no":
		return true
	}
	return false
}

func parseBoolCell(cell string) bool {
	switch strings.ToLower(cell) {
	case "true", "yes":
		return true
	}
	return false
}
