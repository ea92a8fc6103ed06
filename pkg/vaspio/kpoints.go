package vaspio

import (
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
)

// Kpoints holds the irreducible k-point set from IBZKPT, with optional
// tetrahedron data for Brillouin-zone integration.
type Kpoints struct {
	// NKTot is the total number of k-points in the irreducible zone.
	NKTot int

	// Kpts holds the k-point vectors in fractional coordinates, NKTot x 3.
	Kpts *mat.Dense

	// KWeights holds the integer symmetry weights of the k-points.
	KWeights []float64

	// NTet is the number of tetrahedra, zero when the file carries none.
	NTet int

	// VolT is the volume of one tetrahedron on the assumed-uniform grid.
	VolT float64

	// ITet holds one row of 5 values per tetrahedron: the multiplicity
	// followed by the four corner k-point indices.
	ITet [][]int
}

// ReadKpoints reads the IBZKPT file from a VASP working directory. Missing
// tetrahedron data is not an error; NTet is left at zero.
func ReadKpoints(dir string) (*Kpoints, error) {
	path := filepath.Join(dir, "IBZKPT")
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lr := newLineReader(f, path)
	k := &Kpoints{}

	// Comment line, then the k-point count.
	if err := lr.Skip(1); err != nil {
		return nil, err
	}
	fields, err := lr.NextFields()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, lr.errorf("missing k-point count")
	}
	counts, err := parseInts(fields[:1])
	if err != nil {
		return nil, lr.errorf("cannot parse k-point count: %v", err)
	}
	k.NKTot = counts[0]

	// Comment line ("Reciprocal lattice"), then the k-points themselves.
	if err := lr.Skip(1); err != nil {
		return nil, err
	}
	k.Kpts = mat.NewDense(k.NKTot, 3, nil)
	k.KWeights = make([]float64, k.NKTot)
	for i := 0; i < k.NKTot; i++ {
		fields, err := lr.NextFields()
		if err != nil {
			return nil, err
		}
		if len(fields) < 3 {
			return nil, lr.errorf("k-point needs 3 components, got %d", len(fields))
		}
		vals, err := parseFloats(fields)
		if err != nil {
			return nil, lr.errorf("cannot parse k-point: %v", err)
		}
		k.Kpts.SetRow(i, vals[:3])
		if len(vals) > 3 {
			k.KWeights[i] = vals[3]
		}
	}

	// Optional tetrahedron block: comment line, then count and volume.
	if _, err := lr.Next(); err != nil {
		return k, nil
	}
	fields, err = lr.NextFields()
	if err != nil || len(fields) < 2 {
		return k, nil
	}
	ntet, err1 := parseInts(fields[:1])
	volt, err2 := parseFloats(fields[1:2])
	if err1 != nil || err2 != nil {
		return k, nil
	}
	k.NTet = ntet[0]
	k.VolT = volt[0]

	k.ITet = make([][]int, 0, k.NTet)
	for i := 0; i < k.NTet; i++ {
		fields, err := lr.NextFields()
		if err != nil {
			return nil, err
		}
		if len(fields) < 5 {
			return nil, lr.errorf("tetrahedron row needs 5 values, got %d", len(fields))
		}
		row, err := parseInts(fields[:5])
		if err != nil {
			return nil, lr.errorf("cannot parse tetrahedron row: %v", err)
		}
		k.ITet = append(k.ITet, row)
	}

	return k, nil
}
