package tensor

import "fmt"

// Matrix is a dense row-major matrix of float32.
//
// Orientation is fixed: a matrix with R rows and C columns multiplies a
// width-C vector into a width-R vector (Mul), and its transpose multiplies a
// width-R vector into a width-C vector (TransposeMul). Dense layers keep one
// row per output, sparse layers one row per input feature.
type Matrix struct {
	rows int
	cols int
	data []float32
}

// NewMatrix returns a zeroed rows×cols matrix.
func NewMatrix(rows, cols int) Matrix {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("NewMatrix: invalid shape %dx%d", rows, cols))
	}
	return Matrix{rows: rows, cols: cols, data: make([]float32, rows*cols)}
}

// MatrixFromRows builds a matrix from equally wide rows. The rows are copied.
func MatrixFromRows(rows ...Vector) Matrix {
	if len(rows) == 0 {
		return Matrix{}
	}
	m := NewMatrix(len(rows), len(rows[0]))
	for i, r := range rows {
		if len(r) != m.cols {
			panic(fmt.Sprintf("MatrixFromRows: row %d has width %d, want %d", i, len(r), m.cols))
		}
		copy(m.Row(i), r)
	}
	return m
}

// Rows returns the number of rows.
func (m Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m Matrix) Cols() int { return m.cols }

// Data returns the flat row-major backing storage.
func (m Matrix) Data() Vector { return m.data }

// Row returns row i as a view into the matrix; writes go through.
func (m Matrix) Row(i int) Vector {
	start := i * m.cols
	return m.data[start : start+m.cols : start+m.cols]
}

// Mul returns m·v.
func (m Matrix) Mul(v Vector) Vector {
	if len(v) != m.cols {
		panic(fmt.Sprintf("Matrix.Mul: vector width %d, want %d", len(v), m.cols))
	}
	out := NewVector(m.rows)
	for i := range out {
		out[i] = m.Row(i).Dot(v)
	}
	return out
}

// TransposeMul returns mᵀ·v.
func (m Matrix) TransposeMul(v Vector) Vector {
	if len(v) != m.rows {
		panic(fmt.Sprintf("Matrix.TransposeMul: vector width %d, want %d", len(v), m.rows))
	}
	out := NewVector(m.cols)
	for i, s := range v {
		out.MAdd(s, m.Row(i))
	}
	return out
}

// AddAssign performs m += o.
func (m Matrix) AddAssign(o Matrix) {
	if m.rows != o.rows || m.cols != o.cols {
		panic(fmt.Sprintf("Matrix.AddAssign: shape mismatch %dx%d != %dx%d", m.rows, m.cols, o.rows, o.cols))
	}
	Vector(m.data).AddAssign(o.data)
}

// Zero sets every element to zero in place.
func (m Matrix) Zero() {
	clear(m.data)
}
