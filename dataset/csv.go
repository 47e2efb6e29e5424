package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	gerrors "github.com/chemolab/specgo/pkg/errors"
)

// CSV layout: the header row carries the dataset name in the corner cell
// followed by the variable-axis coordinates; every following row starts with
// its observation-axis coordinate followed by the intensities. Masked cells
// are written empty and read back as masked NaN cells.

// ReadCSV parses a dataset from r.
func ReadCSV(r io.Reader) (*SpectralMatrix, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, gerrors.Wrap(err, "dataset: reading csv")
	}
	if len(records) < 2 {
		return nil, gerrors.Wrap(gerrors.ErrEmptyData, "dataset: csv needs a header and at least one observation row")
	}

	header := records[0]
	if len(header) < 2 {
		return nil, gerrors.NewValueError("dataset.ReadCSV", "header row needs a corner cell and at least one coordinate")
	}
	cols := len(header) - 1

	xCoords := make([]float64, cols)
	for j := 1; j < len(header); j++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(header[j]), 64)
		if err != nil {
			return nil, gerrors.NewValueError("dataset.ReadCSV",
				fmt.Sprintf("header column %d: %q is not a coordinate", j, header[j]))
		}
		xCoords[j-1] = v
	}

	rows := len(records) - 1
	yCoords := make([]float64, rows)
	data := make([]float64, rows*cols)
	var mask []bool

	for i, record := range records[1:] {
		if len(record) != cols+1 {
			return nil, gerrors.NewDimensionError("dataset.ReadCSV", cols+1, len(record), 1)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		if err != nil {
			return nil, gerrors.NewValueError("dataset.ReadCSV",
				fmt.Sprintf("row %d: %q is not a coordinate", i+1, record[0]))
		}
		yCoords[i] = y

		for j := 1; j <= cols; j++ {
			cell := strings.TrimSpace(record[j])
			idx := i*cols + (j - 1)
			if cell == "" || strings.EqualFold(cell, "nan") {
				data[idx] = math.NaN()
				if mask == nil {
					mask = make([]bool, rows*cols)
				}
				mask[idx] = true
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, gerrors.NewValueError("dataset.ReadCSV",
					fmt.Sprintf("row %d column %d: %q is not a number", i+1, j, record[j]))
			}
			data[idx] = v
		}
	}

	sm := New(mat.NewDense(rows, cols, data))
	sm.XCoords = xCoords
	sm.YCoords = yCoords
	sm.Mask = mask
	sm.Name = strings.TrimSpace(records[0][0])
	return sm, nil
}

// ReadCSVFile parses a dataset from the file at path.
func ReadCSVFile(path string) (*SpectralMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, gerrors.Wrapf(err, "dataset: opening %s", path)
	}
	defer f.Close()
	return ReadCSV(f)
}

// WriteCSV writes the dataset to w. Masked cells and NaN values are written
// as empty cells.
func WriteCSV(w io.Writer, s *SpectralMatrix) error {
	if err := s.Validate(); err != nil {
		return err
	}
	n, p := s.Data.Dims()

	writer := csv.NewWriter(w)

	header := make([]string, p+1)
	header[0] = s.Name
	for j, x := range s.XCoords {
		header[j+1] = formatCoord(x)
	}
	if err := writer.Write(header); err != nil {
		return gerrors.Wrap(err, "dataset: writing csv header")
	}

	record := make([]string, p+1)
	for i := 0; i < n; i++ {
		record[0] = formatCoord(s.YCoords[i])
		for j := 0; j < p; j++ {
			v := s.Data.At(i, j)
			if s.IsMasked(i, j) || math.IsNaN(v) {
				record[j+1] = ""
				continue
			}
			record[j+1] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := writer.Write(record); err != nil {
			return gerrors.Wrapf(err, "dataset: writing csv row %d", i)
		}
	}

	writer.Flush()
	return gerrors.Wrap(writer.Error(), "dataset: flushing csv")
}

// WriteCSVFile writes the dataset to the file at path, creating or
// truncating it.
func WriteCSVFile(path string, s *SpectralMatrix) error {
	f, err := os.Create(path)
	if err != nil {
		return gerrors.Wrapf(err, "dataset: creating %s", path)
	}
	defer f.Close()
	return WriteCSV(f, s)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
