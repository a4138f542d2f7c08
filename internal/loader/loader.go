package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"frigate_confgen/internal/camera"
)

// Required input columns, matched case-insensitively against the header row.
var requiredColumns = []string{"Username", "Password", "IP", "Camera Name"}

var (
	// ErrFileNotFound marks a missing camera list. Fatal: nothing is written.
	ErrFileNotFound = errors.New("camera list not found")
	// ErrSchemaInvalid marks a header missing required columns. Fatal: a
	// broken header invalidates every row.
	ErrSchemaInvalid = errors.New("camera list schema invalid")
)

// Result is the loaded batch plus the rows that were dropped along the way.
type Result struct {
	Records  []camera.Record
	Warnings []camera.RowWarning
}

// Load reads the camera list CSV at path. Rows with missing values are
// dropped and reported as warnings; only a missing file or a broken header
// fails the load.
func Load(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Result{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return Result{}, fmt.Errorf("open camera list: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads camera records from r. The first row must be a header naming
// every required column; column order is free and extra columns are ignored.
func Parse(r io.Reader) (Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Result{}, fmt.Errorf("%w: empty input, header row required", ErrSchemaInvalid)
	}
	if err != nil {
		return Result{}, fmt.Errorf("read header: %w", err)
	}

	byName := make(map[string]int, len(header))
	for i, col := range header {
		byName[strings.ToLower(strings.TrimSpace(col))] = i
	}

	cols := make([]int, len(requiredColumns))
	var missing []string
	for i, name := range requiredColumns {
		idx, ok := byName[strings.ToLower(name)]
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols[i] = idx
	}
	if len(missing) > 0 {
		return Result{}, fmt.Errorf("%w: missing columns %s", ErrSchemaInvalid, strings.Join(missing, ", "))
	}

	var res Result
	for row := 2; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			res.Warnings = append(res.Warnings, camera.RowWarning{
				Row:    row,
				Reason: "malformed row: " + err.Error(),
			})
			continue
		}

		values := make([]string, len(cols))
		var empty []string
		for i, idx := range cols {
			var v string
			if idx < len(record) {
				v = strings.TrimSpace(record[idx])
			}
			if v == "" {
				empty = append(empty, requiredColumns[i])
			}
			values[i] = v
		}
		if len(empty) > 0 {
			res.Warnings = append(res.Warnings, camera.RowWarning{
				Row:    row,
				Reason: "missing values in columns: " + strings.Join(empty, ", "),
			})
			continue
		}

		res.Records = append(res.Records, camera.Record{
			Username: values[0],
			Password: values[1],
			IP:       values[2],
			RawName:  values[3],
		})
	}

	return res, nil
}
