package vaspio

import (
	"os"
	"path/filepath"
)

// Doscar holds the part of DOSCAR the converter needs: the Fermi energy.
type Doscar struct {
	// EFermi is the Fermi energy in eV.
	EFermi float64
}

// ReadDoscar reads the Fermi energy from the DOSCAR file in a VASP working
// directory. It sits in the fourth column of the sixth line
// (EMAX, EMIN, NEDOS, EFERMI, 1.0).
func ReadDoscar(dir string) (*Doscar, error) {
	path := filepath.Join(dir, "DOSCAR")
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lr := newLineReader(f, path)
	if err := lr.Skip(5); err != nil {
		return nil, err
	}
	fields, err := lr.NextFields()
	if err != nil {
		return nil, err
	}
	if len(fields) < 4 {
		return nil, lr.errorf("expected EMAX EMIN NEDOS EFERMI, got %d values", len(fields))
	}
	vals, err := parseFloats(fields[3:4])
	if err != nil {
		return nil, lr.errorf("cannot parse Fermi energy: %v", err)
	}
	return &Doscar{EFermi: vals[0]}, nil
}
