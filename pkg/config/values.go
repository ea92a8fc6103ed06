package config

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// GeometryProvider supplies lattice geometry data to the parser. It is only
// consulted by the element-name variant of ion selection, which resolves an
// element symbol to the indices of all ions of that element.
type GeometryProvider interface {
	// IonCount returns the total number of ions in the unit cell.
	IonCount() int

	// ElementName returns the element name of the ion with the given
	// zero-based index.
	ElementName(ion int) (string, error)
}

// ionRangePattern matches the inclusive 1-based range form "a..b".
var ionRangePattern = regexp.MustCompile(`^([0-9]+)\.\.([0-9]+)$`)

// parseIonList converts a raw ion selection into zero-based ion indices.
//
// Two forms are accepted: an inclusive 1-based range "a..b", and a
// whitespace-separated list of 1-based indices which is sorted ascending.
// A third form, an element name resolved through the geometry provider, is
// part of the contract but not implemented yet.
func parseIonList(raw string, geom GeometryProvider) ([]int, error) {
	trimmed := strings.TrimSpace(raw)

	if m := ionRangePattern.FindStringSubmatch(trimmed); m != nil {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		if lo > hi {
			return nil, newError(KindRangeOrder, "", "",
				"first index of the range %q must be smaller or equal to the second", trimmed)
		}
		ions := make([]int, 0, hi-lo+1)
		for i := lo; i <= hi; i++ {
			ions = append(ions, i-1)
		}
		return checkIonIndices(ions, trimmed)
	}

	fields := strings.Fields(trimmed)
	ions := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			// Element-name selection is recognized but needs the geometry
			// collaborator wired through; not supported yet.
			_ = geom
			return nil, newError(KindNotImplemented, "", "",
				"only ion index lists are implemented, cannot interpret %q", trimmed)
		}
		ions = append(ions, n-1)
	}
	sort.Ints(ions)
	return checkIonIndices(ions, trimmed)
}

func checkIonIndices(ions []int, raw string) ([]int, error) {
	for _, ion := range ions {
		if ion < 0 {
			return nil, newError(KindIndexRange, "", "",
				"lowest ion index is smaller than 1 in %q", raw)
		}
	}
	return ions, nil
}

// parseLogical converts a logical parameter given as 'True' or 'False'.
// Only the first character matters, so 'T' and 'f' are accepted; case is
// ignored.
func parseLogical(raw string) (bool, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false, newError(KindInvalidBoolean, "", "",
			"logical parameter is empty, expected 'True' or 'False'")
	}
	switch trimmed[0] {
	case 't', 'T':
		return true, nil
	case 'f', 'F':
		return false, nil
	default:
		return false, newError(KindInvalidBoolean, "", "",
			"logical parameter %q should be given by either 'True' or 'False'", trimmed)
	}
}

// parseIntList converts a whitespace-separated list of integers.
func parseIntList(raw string) ([]int, error) {
	fields := strings.Fields(raw)
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, wrapError(KindInvalidNumber, "", "", err,
				"cannot parse integer list %q", raw)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseInt(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, wrapError(KindInvalidNumber, "", "", err, "cannot parse integer %q", raw)
	}
	return n, nil
}

func parseFloat(raw string) (float64, error) {
	x, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, wrapError(KindInvalidNumber, "", "", err, "cannot parse number %q", raw)
	}
	return x, nil
}

// matrixRows tokenizes a multi-line matrix value into rows of floats and
// verifies that all rows have the same number of columns.
func matrixRows(raw string) ([][]float64, error) {
	var rows [][]float64
	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		row := make([]float64, len(fields))
		for i, f := range fields {
			x, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, wrapError(KindInvalidNumber, "", "", err,
					"cannot parse matrix row %q", line)
			}
			row[i] = x
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, newError(KindInvalidNumber, "", "", "matrix value is empty")
	}
	ncols := len(rows[0])
	for _, row := range rows {
		if len(row) != ncols {
			return nil, newError(KindRaggedMatrix, "", "",
				"number of matrix columns must be the same in every row")
		}
	}
	return rows, nil
}

// parseRealTMatrix parses a transform matrix given as newline-separated rows
// of real values.
func parseRealTMatrix(raw string) (*TMatrix, error) {
	rows, err := matrixRows(raw)
	if err != nil {
		return nil, err
	}
	nr, nc := len(rows), len(rows[0])
	m := mat.NewDense(nr, nc, nil)
	for i, row := range rows {
		m.SetRow(i, row)
	}
	return &TMatrix{Real: m}, nil
}

// parseComplexTMatrix parses a transform matrix whose rows interleave real
// and imaginary parts, pairing raw columns (2k, 2k+1) into complex entries.
func parseComplexTMatrix(raw string) (*TMatrix, error) {
	rows, err := matrixRows(raw)
	if err != nil {
		return nil, err
	}
	nr, nc := len(rows), len(rows[0])
	if nc%2 != 0 {
		return nil, newError(KindOddComplexColumns, "", "",
			"complex matrix must contain an even number of columns, got %d", nc)
	}
	m := mat.NewCDense(nr, nc/2, nil)
	for i, row := range rows {
		for j := 0; j < nc/2; j++ {
			m.Set(i, j, complex(row[2*j], row[2*j+1]))
		}
	}
	return &TMatrix{Complex: m}, nil
}
