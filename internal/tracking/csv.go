package tracking

import (
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var ErrMissingColumn = errors.New("missing required column")

var requiredColumns = []string{"gameId", "playId", "frameId", "x", "y", "team"}

// ReadCSV parses tracking rows from a CSV stream with a header line.
// Columns are matched by name; unknown columns are ignored.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}
	nflCol, hasNfl := col["nflId"]

	var rows []Row
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		field := func(name string) string {
			i := col[name]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		var row Row
		if row.GameID, err = strconv.ParseInt(field("gameId"), 10, 64); err != nil {
			return nil, fmt.Errorf("line %d: gameId: %w", line, err)
		}
		if row.PlayID, err = strconv.ParseInt(field("playId"), 10, 64); err != nil {
			return nil, fmt.Errorf("line %d: playId: %w", line, err)
		}
		if row.FrameID, err = strconv.Atoi(field("frameId")); err != nil {
			return nil, fmt.Errorf("line %d: frameId: %w", line, err)
		}
		if row.X, err = strconv.ParseFloat(field("x"), 64); err != nil {
			return nil, fmt.Errorf("line %d: x: %w", line, err)
		}
		if row.Y, err = strconv.ParseFloat(field("y"), 64); err != nil {
			return nil, fmt.Errorf("line %d: y: %w", line, err)
		}
		row.Team = field("team")

		if hasNfl && nflCol < len(rec) {
			v := strings.TrimSpace(rec[nflCol])
			if v != "" && v != "NA" {
				// nflId is sometimes exported as a float ("2543.0")
				f, err := strconv.ParseFloat(v, 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: nflId: %w", line, err)
				}
				row.NflID = int64(f)
			}
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// LoadFile reads a .csv or .csv.gz tracking file.
func LoadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gzip %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	rows, err := ReadCSV(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}
