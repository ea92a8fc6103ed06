package vaspio

import (
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
)

// Eigenval holds Kohn-Sham eigenvalues from the EIGENVAL file, together with
// the k-points and weights the file repeats for consistency checking.
type Eigenval struct {
	// NQ is the number of ions.
	NQ int

	// ISpin is the number of spin channels.
	ISpin int

	// NElect is the number of electrons.
	NElect int

	// NKTot is the number of k-points.
	NKTot int

	// NBand is the number of bands.
	NBand int

	// Kpts holds the k-point vectors, NKTot x 3.
	Kpts *mat.Dense

	// KWeights holds the k-point weights.
	KWeights []float64

	// Eigs holds one NKTot x NBand matrix per spin channel.
	Eigs []*mat.Dense
}

// ReadEigenval reads the EIGENVAL file from a VASP working directory.
func ReadEigenval(dir string) (*Eigenval, error) {
	path := filepath.Join(dir, "EIGENVAL")
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lr := newLineReader(f, path)
	e := &Eigenval{}

	// First line: only the first (nions) and fourth (ispin) numbers matter.
	fields, err := lr.NextFields()
	if err != nil {
		return nil, err
	}
	if len(fields) < 4 {
		return nil, lr.errorf("header needs 4 values, got %d", len(fields))
	}
	head, err := parseInts([]string{fields[0], fields[3]})
	if err != nil {
		return nil, lr.errorf("cannot parse header: %v", err)
	}
	e.NQ, e.ISpin = head[0], head[1]

	// Cell volume, temperature, and two unused lines.
	if err := lr.Skip(4); err != nil {
		return nil, err
	}

	// NELECT, NKTOT, NBTOT.
	fields, err = lr.NextFields()
	if err != nil {
		return nil, err
	}
	if len(fields) < 3 {
		return nil, lr.errorf("expected NELECT NKTOT NBTOT, got %d values", len(fields))
	}
	dims, err := parseInts(fields[:3])
	if err != nil {
		return nil, lr.errorf("cannot parse NELECT NKTOT NBTOT: %v", err)
	}
	e.NElect, e.NKTot, e.NBand = dims[0], dims[1], dims[2]

	e.Kpts = mat.NewDense(e.NKTot, 3, nil)
	e.KWeights = make([]float64, e.NKTot)
	e.Eigs = make([]*mat.Dense, e.ISpin)
	for s := range e.Eigs {
		e.Eigs[s] = mat.NewDense(e.NKTot, e.NBand, nil)
	}

	for ik := 0; ik < e.NKTot; ik++ {
		// Blank separator, then the k-point line.
		if err := lr.Skip(1); err != nil {
			return nil, err
		}
		fields, err := lr.NextFields()
		if err != nil {
			return nil, err
		}
		if len(fields) < 4 {
			return nil, lr.errorf("k-point line needs 4 values, got %d", len(fields))
		}
		kvals, err := parseFloats(fields[:4])
		if err != nil {
			return nil, lr.errorf("cannot parse k-point line: %v", err)
		}
		e.Kpts.SetRow(ik, kvals[:3])
		e.KWeights[ik] = kvals[3]

		for ib := 0; ib < e.NBand; ib++ {
			fields, err := lr.NextFields()
			if err != nil {
				return nil, err
			}
			if len(fields) < 1+e.ISpin {
				return nil, lr.errorf("band line needs %d values, got %d", 1+e.ISpin, len(fields))
			}
			eigs, err := parseFloats(fields[1 : 1+e.ISpin])
			if err != nil {
				return nil, lr.errorf("cannot parse eigenvalues: %v", err)
			}
			for s := 0; s < e.ISpin; s++ {
				e.Eigs[s].Set(ik, ib, eigs[s])
			}
		}
	}

	return e, nil
}
