// Package dataset reads and writes the flat dataset files the jobs
// exchange: CSV and Parquet for tabular rows, JSON for both tabular and
// hierarchical payloads.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jszwec/csvutil"
	"github.com/parquet-go/parquet-go"
)

// WriteCSV marshals rows to a headered CSV file.
func WriteCSV[T any](path string, rows []T) error {
	data, err := csvutil.Marshal(rows)
	if err != nil {
		return fmt.Errorf("marshal csv: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadCSV unmarshals a headered CSV file into rows.
func ReadCSV[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var rows []T
	if err := csvutil.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal csv %s: %w", path, err)
	}
	return rows, nil
}

// WriteParquet writes rows to a Parquet file.
func WriteParquet[T any](path string, rows []T) error {
	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadParquet reads all rows of a Parquet file.
func ReadParquet[T any](path string) ([]T, error) {
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// WriteJSON writes v as indented JSON, the record-oriented format consumed
// by the appjson job.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// WriteJSONCompact writes v without indentation; the app payloads are large
// and served as-is.
func WriteJSONCompact(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadJSON unmarshals a JSON file into v.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal json %s: %w", path, err)
	}
	return nil
}
