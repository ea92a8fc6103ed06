package vaspio

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Symmcar holds symmetry data from the SYMMCAR file produced by the VASP PLO
// interface: rotation matrices per angular momentum channel and ion
// permutation maps per rotation and translation.
type Symmcar struct {
	// NRot is the number of rotation operations.
	NRot int

	// NTrans is the number of primitive-cell translations.
	NTrans int

	// LMax is the highest angular momentum channel.
	LMax int

	// NIon is the number of ions the permutation maps cover.
	NIon int

	// RotMats holds, per rotation and per l channel, the (2l+1)x(2l+1)
	// rotation matrix.
	RotMats [][]*mat.Dense

	// PermMap holds, per rotation and translation, the ion permutation as
	// given in the file.
	PermMap [][][]int
}

var symmcarHeaderPattern = regexp.MustCompile(`([A-Z]+)\s*=\s*(\d+)`)

func headerValue(line, name string) (int, bool) {
	for _, m := range symmcarHeaderPattern.FindAllStringSubmatch(line, -1) {
		if m[1] == name {
			n, err := strconv.Atoi(m[2])
			if err != nil {
				return 0, false
			}
			return n, true
		}
	}
	return 0, false
}

// ReadSymmcar reads the SYMMCAR file from a VASP working directory.
func ReadSymmcar(dir string) (*Symmcar, error) {
	path := filepath.Join(dir, "SYMMCAR")
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lr := newLineReader(f, path)
	s := &Symmcar{}

	// Four header lines: NROT, NPCELL, LMAX, NION.
	for _, h := range []struct {
		name string
		dst  *int
	}{
		{"NROT", &s.NRot},
		{"NPCELL", &s.NTrans},
		{"LMAX", &s.LMax},
		{"NION", &s.NIon},
	} {
		line, err := lr.Next()
		if err != nil {
			return nil, err
		}
		v, ok := headerValue(line, h.name)
		if !ok {
			return nil, lr.errorf("missing %s in header", h.name)
		}
		*h.dst = v
	}

	s.RotMats = make([][]*mat.Dense, s.NRot)
	s.PermMap = make([][][]int, s.NRot)

	for irot := 0; irot < s.NRot; irot++ {
		// Blank line, rotation index, the 3x3 ISYMOP matrix, and the
		// permutation-map comment; none of them are needed.
		if err := lr.Skip(6); err != nil {
			return nil, err
		}

		// Permutations come per translation, in chunks of 20 indices.
		s.PermMap[irot] = make([][]int, s.NTrans)
		for it := 0; it < s.NTrans; it++ {
			perm := make([]int, 0, s.NIon)
			for len(perm) < s.NIon {
				fields, err := lr.NextFields()
				if err != nil {
					return nil, err
				}
				chunk, err := parseInts(fields)
				if err != nil {
					return nil, lr.errorf("cannot parse permutation map: %v", err)
				}
				perm = append(perm, chunk...)
			}
			if len(perm) != s.NIon {
				return nil, lr.errorf("permutation map has %d entries, want %d", len(perm), s.NIon)
			}
			s.PermMap[irot][it] = perm
		}

		// One rotation matrix per l channel, each preceded by a comment.
		s.RotMats[irot] = make([]*mat.Dense, s.LMax+1)
		for l := 0; l <= s.LMax; l++ {
			if err := lr.Skip(1); err != nil {
				return nil, err
			}
			mmax := 2*l + 1
			rm := mat.NewDense(mmax, mmax, nil)
			for m := 0; m < mmax; m++ {
				fields, err := lr.NextFields()
				if err != nil {
					return nil, err
				}
				if len(fields) < mmax {
					return nil, lr.errorf("rotation matrix row needs %d values, got %d", mmax, len(fields))
				}
				row, err := parseFloats(fields[:mmax])
				if err != nil {
					return nil, lr.errorf("cannot parse rotation matrix: %v", err)
				}
				rm.SetRow(m, row)
			}
			s.RotMats[irot][l] = rm
		}
	}

	return s, nil
}
