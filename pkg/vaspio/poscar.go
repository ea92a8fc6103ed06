package vaspio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Poscar holds the lattice geometry from a POSCAR file: scaled lattice
// vectors, element names, ion counts per type, and fractional ion positions.
//
// Poscar implements the geometry collaborator contract the config parser
// uses for ion selections (IonCount, ElementName).
type Poscar struct {
	// Comment is the title line.
	Comment string

	// ABrav holds the scaled lattice vectors, one per row.
	ABrav *mat.Dense

	// ElementNames lists the element name of each ion type. Old-format
	// files without element names get synthetic "El0", "El1", ... entries.
	ElementNames []string

	// NIons is the number of ions of each type.
	NIons []int

	// NTypes is the number of ion types.
	NTypes int

	// NQ is the total number of ions.
	NQ int

	// Coords holds per-type fractional ion positions, each NIons[t] x 3.
	Coords []*mat.Dense
}

// IonCount returns the total number of ions in the unit cell.
func (p *Poscar) IonCount() int {
	return p.NQ
}

// ElementName returns the element name of the ion with the given zero-based
// global index.
func (p *Poscar) ElementName(ion int) (string, error) {
	if ion < 0 || ion >= p.NQ {
		return "", fmt.Errorf("ion index %d out of range [0, %d)", ion, p.NQ)
	}
	for t, n := range p.NIons {
		if ion < n {
			return p.ElementNames[t], nil
		}
		ion -= n
	}
	return "", fmt.Errorf("inconsistent ion counts in POSCAR")
}

// ReadPoscar reads the POSCAR file from a VASP working directory.
func ReadPoscar(dir string) (*Poscar, error) {
	path := filepath.Join(dir, "POSCAR")
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lr := newLineReader(f, path)
	p := &Poscar{}

	line, err := lr.Next()
	if err != nil {
		return nil, err
	}
	p.Comment = strings.TrimRight(line, " \t\r")

	// Uncommented content of the next line: the scale factor.
	fields, err := nextContentFields(lr)
	if err != nil {
		return nil, err
	}
	scales, err := parseFloats(fields[:1])
	if err != nil {
		return nil, lr.errorf("cannot parse scale factor: %v", err)
	}
	ascale := scales[0]

	p.ABrav = mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		fields, err := nextContentFields(lr)
		if err != nil {
			return nil, err
		}
		if len(fields) < 3 {
			return nil, lr.errorf("lattice vector needs 3 components, got %d", len(fields))
		}
		row, err := parseFloats(fields[:3])
		if err != nil {
			return nil, lr.errorf("cannot parse lattice vector: %v", err)
		}
		p.ABrav.SetRow(i, row)
	}

	// A negative scale is a volume scale.
	if ascale < 0 {
		vol := mat.Det(p.ABrav)
		ascale = math.Cbrt(-ascale / vol)
	}
	p.ABrav.Scale(ascale, p.ABrav)

	// Depending on the VASP version there may be an element-name line before
	// the ion counts (v5.x) or not (v4.6).
	fields, err = nextContentFields(lr)
	if err != nil {
		return nil, err
	}
	counts, err := parseInts(fields)
	if err == nil {
		p.NIons = counts
		p.ElementNames = make([]string, len(counts))
		for i := range p.ElementNames {
			p.ElementNames[i] = fmt.Sprintf("El%d", i)
		}
	} else {
		p.ElementNames = fields
		fields, err = nextContentFields(lr)
		if err != nil {
			return nil, err
		}
		if p.NIons, err = parseInts(fields); err != nil {
			return nil, lr.errorf("cannot parse ion counts: %v", err)
		}
		if len(p.NIons) != len(p.ElementNames) {
			return nil, lr.errorf("%d element names but %d ion counts",
				len(p.ElementNames), len(p.NIons))
		}
	}
	p.NTypes = len(p.NIons)
	for _, n := range p.NIons {
		p.NQ += n
	}

	// Optional "Selective dynamics" line, then the coordinate mode line.
	fields, err = nextContentFields(lr)
	if err != nil {
		return nil, err
	}
	if strings.HasPrefix(strings.ToLower(fields[0]), "s") {
		if fields, err = nextContentFields(lr); err != nil {
			return nil, err
		}
	}
	cartesian := strings.ContainsAny(strings.ToLower(fields[0][:1]), "ck")

	// For cartesian input, positions are converted to fractional via the
	// inverse transposed lattice matrix.
	var brec mat.Dense
	if cartesian {
		if err := brec.Inverse(p.ABrav.T()); err != nil {
			return nil, fmt.Errorf("%s: lattice matrix is singular: %w", path, err)
		}
	}

	for _, n := range p.NIons {
		coords := mat.NewDense(n, 3, nil)
		for i := 0; i < n; i++ {
			fields, err := nextContentFields(lr)
			if err != nil {
				return nil, err
			}
			if len(fields) < 3 {
				return nil, lr.errorf("ion position needs 3 components, got %d", len(fields))
			}
			pos, err := parseFloats(fields[:3])
			if err != nil {
				return nil, lr.errorf("cannot parse ion position: %v", err)
			}
			if cartesian {
				q := mat.NewVecDense(3, pos)
				var frac mat.VecDense
				frac.MulVec(&brec, q)
				pos = []float64{frac.AtVec(0), frac.AtVec(1), frac.AtVec(2)}
			}
			coords.SetRow(i, pos)
		}
		p.Coords = append(p.Coords, coords)
	}

	return p, nil
}

// nextContentFields returns the fields of the next line with trailing
// comments ("! ...") removed; fully commented or blank lines are not
// expected in POSCAR and yield an error.
func nextContentFields(lr *lineReader) ([]string, error) {
	line, err := lr.Next()
	if err != nil {
		return nil, err
	}
	if i := strings.IndexByte(line, '!'); i >= 0 {
		line = line[:i]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, lr.errorf("unexpected blank line")
	}
	return fields, nil
}
