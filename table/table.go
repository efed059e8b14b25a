// Package table provides the canonical in-memory representations for
// community-composition data: a dense numeric Matrix with named rows and
// columns, and a string-valued Frame for sample metadata.
//
// Both types are value-oriented: selection operations return new instances
// and never mutate the receiver, so callers may safely hold references to
// pre-selection tables.
package table

import "fmt"

// Matrix is a dense numeric matrix with named rows and columns.
//
// For abundance data rows are features and columns are samples. For
// dissimilarity data rows and columns are both samples.
type Matrix struct {
	RowIDs []string
	ColIDs []string
	Data   [][]float64 // row-major; len(Data) == len(RowIDs), len(Data[i]) == len(ColIDs)
}

// NewMatrix validates the shape of data against the given row and column IDs.
func NewMatrix(rowIDs, colIDs []string, data [][]float64) (*Matrix, error) {
	if len(data) != len(rowIDs) {
		return nil, fmt.Errorf("table: %d data rows for %d row IDs", len(data), len(rowIDs))
	}
	for i, row := range data {
		if len(row) != len(colIDs) {
			return nil, fmt.Errorf("table: row %q has %d cells, want %d", rowIDs[i], len(row), len(colIDs))
		}
	}
	return &Matrix{RowIDs: rowIDs, ColIDs: colIDs, Data: data}, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return len(m.RowIDs) }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return len(m.ColIDs) }

// At returns the value at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.Data[i][j] }

// SelectRows returns a new Matrix restricted to the given row positions,
// in the given order.
func (m *Matrix) SelectRows(idx []int) *Matrix {
	rowIDs := make([]string, len(idx))
	data := make([][]float64, len(idx))
	for k, i := range idx {
		rowIDs[k] = m.RowIDs[i]
		row := make([]float64, len(m.Data[i]))
		copy(row, m.Data[i])
		data[k] = row
	}
	return &Matrix{RowIDs: rowIDs, ColIDs: m.ColIDs, Data: data}
}

// SelectCols returns a new Matrix restricted to the given column positions,
// in the given order.
func (m *Matrix) SelectCols(idx []int) *Matrix {
	colIDs := make([]string, len(idx))
	for k, j := range idx {
		colIDs[k] = m.ColIDs[j]
	}
	data := make([][]float64, len(m.RowIDs))
	for i, row := range m.Data {
		sel := make([]float64, len(idx))
		for k, j := range idx {
			sel[k] = row[j]
		}
		data[i] = sel
	}
	return &Matrix{RowIDs: m.RowIDs, ColIDs: colIDs, Data: data}
}

// RowTotals returns the per-row sums.
func (m *Matrix) RowTotals() []float64 {
	totals := make([]float64, len(m.Data))
	for i, row := range m.Data {
		var sum float64
		for _, v := range row {
			sum += v
		}
		totals[i] = sum
	}
	return totals
}

// Total returns the grand sum over all cells.
func (m *Matrix) Total() float64 {
	var sum float64
	for _, row := range m.Data {
		for _, v := range row {
			sum += v
		}
	}
	return sum
}

// Frame is a string-valued table keyed by row ID, used for sample metadata.
// Cells keep their raw textual form; interpretation (numeric vs categorical)
// is left to the consumer.
type Frame struct {
	RowIDs []string
	Cols   []string
	Data   [][]string // row-major; len(Data) == len(RowIDs), len(Data[i]) == len(Cols)
}

// NewFrame validates the shape of data against the given row IDs and
// column names.
func NewFrame(rowIDs, cols []string, data [][]string) (*Frame, error) {
	if len(data) != len(rowIDs) {
		return nil, fmt.Errorf("table: %d data rows for %d row IDs", len(data), len(rowIDs))
	}
	for i, row := range data {
		if len(row) != len(cols) {
			return nil, fmt.Errorf("table: row %q has %d cells, want %d", rowIDs[i], len(row), len(cols))
		}
	}
	return &Frame{RowIDs: rowIDs, Cols: cols, Data: data}, nil
}

// Rows returns the number of rows.
func (f *Frame) Rows() int { return len(f.RowIDs) }

// Col returns the column with the given name, in row order.
// The second return value reports whether the column exists.
func (f *Frame) Col(name string) ([]string, bool) {
	for j, col := range f.Cols {
		if col == name {
			values := make([]string, len(f.Data))
			for i, row := range f.Data {
				values[i] = row[j]
			}
			return values, true
		}
	}
	return nil, false
}

// SelectRows returns a new Frame restricted to the given row positions,
// in the given order.
func (f *Frame) SelectRows(idx []int) *Frame {
	rowIDs := make([]string, len(idx))
	data := make([][]string, len(idx))
	for k, i := range idx {
		rowIDs[k] = f.RowIDs[i]
		row := make([]string, len(f.Data[i]))
		copy(row, f.Data[i])
		data[k] = row
	}
	return &Frame{RowIDs: rowIDs, Cols: f.Cols, Data: data}
}
