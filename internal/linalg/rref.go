package linalg

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Gauss-Jordan reduction over mgl64's dense M×N matrix.

// FromRows builds a matrix from row slices. All rows must have the same
// length as the first one.
func FromRows(rows [][]float64) *mgl64.MatMxN {
	if len(rows) == 0 {
		return mgl64.NewMatrix(0, 0)
	}
	m := mgl64.NewMatrix(len(rows), len(rows[0]))
	for r, row := range rows {
		for c, v := range row {
			m.Set(r, c, v)
		}
	}
	return m
}

// Clone returns an independent copy of m.
func Clone(m *mgl64.MatMxN) *mgl64.MatMxN {
	out := mgl64.NewMatrix(m.NumRows(), m.NumCols())
	for r := 0; r < m.NumRows(); r++ {
		for c := 0; c < m.NumCols(); c++ {
			out.Set(r, c, m.At(r, c))
		}
	}
	return out
}

// ReducedRowEchelon returns the reduced row-echelon form of m. The input is
// left untouched.
func ReducedRowEchelon(m *mgl64.MatMxN) *mgl64.MatMxN {
	out := Clone(m)
	ReduceInPlace(out)
	return out
}

// ReduceInPlace runs Gauss-Jordan elimination on m with row swapping.
// Columns with no non-zero candidate below the current row are skipped
// without consuming a row; a zero pivot is never divided by.
func ReduceInPlace(m *mgl64.MatMxN) {
	rows, cols := m.NumRows(), m.NumCols()
	lead := 0
	for r := 0; r < rows; r++ {
		if lead >= cols {
			return
		}
		i, ok := findPivot(m, r, &lead)
		if !ok {
			return
		}
		swapRows(m, i, r)

		if div := m.At(r, lead); div != 0 {
			for c := 0; c < cols; c++ {
				m.Set(r, c, m.At(r, c)/div)
			}
		}
		for j := 0; j < rows; j++ {
			if j == r {
				continue
			}
			sub := m.At(j, lead)
			if sub == 0 {
				continue
			}
			for c := 0; c < cols; c++ {
				m.Set(j, c, m.At(j, c)-sub*m.At(r, c))
			}
		}
		lead++
	}
}

// findPivot searches rows r.. for a non-zero entry, advancing lead past
// all-zero columns. It reports false once every remaining column is zero.
func findPivot(m *mgl64.MatMxN, r int, lead *int) (int, bool) {
	rows, cols := m.NumRows(), m.NumCols()
	for ; *lead < cols; *lead++ {
		for i := r; i < rows; i++ {
			if m.At(i, *lead) != 0 {
				return i, true
			}
		}
	}
	return r, false
}

func swapRows(m *mgl64.MatMxN, a, b int) {
	if a == b {
		return
	}
	for c := 0; c < m.NumCols(); c++ {
		va, vb := m.At(a, c), m.At(b, c)
		m.Set(a, c, vb)
		m.Set(b, c, va)
	}
}
