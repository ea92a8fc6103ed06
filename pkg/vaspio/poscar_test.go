package vaspio

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s fixture: %v", name, err)
	}
}

const poscarSrVO3 = `Cubic SrVO3
1.0
 3.84 0.00 0.00
 0.00 3.84 0.00
 0.00 0.00 3.84
Sr V O
1 1 3
Direct
 0.0 0.0 0.0
 0.5 0.5 0.5
 0.5 0.5 0.0
 0.5 0.0 0.5
 0.0 0.5 0.5
`

func TestReadPoscar(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "POSCAR", poscarSrVO3)

	p, err := ReadPoscar(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.Comment != "Cubic SrVO3" {
		t.Errorf("comment = %q", p.Comment)
	}
	if p.NQ != 5 || p.NTypes != 3 {
		t.Errorf("got %d ions of %d types, want 5 of 3", p.NQ, p.NTypes)
	}
	if got := p.ABrav.At(0, 0); got != 3.84 {
		t.Errorf("lattice a11 = %v, want 3.84", got)
	}
	if p.Coords[1].At(0, 0) != 0.5 {
		t.Errorf("V position x = %v, want 0.5", p.Coords[1].At(0, 0))
	}
}

func TestPoscar_ElementName(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "POSCAR", poscarSrVO3)

	p, err := ReadPoscar(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		ion  int
		want string
	}{
		{0, "Sr"},
		{1, "V"},
		{2, "O"},
		{4, "O"},
	}
	for _, tt := range tests {
		got, err := p.ElementName(tt.ion)
		if err != nil {
			t.Fatalf("ElementName(%d): %v", tt.ion, err)
		}
		if got != tt.want {
			t.Errorf("ElementName(%d) = %q, want %q", tt.ion, got, tt.want)
		}
	}

	if _, err := p.ElementName(5); err == nil {
		t.Error("expected out-of-range error for ion 5")
	}
	if p.IonCount() != 5 {
		t.Errorf("IonCount() = %d, want 5", p.IonCount())
	}
}

func TestReadPoscar_OldFormatWithoutElementNames(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "POSCAR", `old format
1.0
 1.0 0.0 0.0
 0.0 1.0 0.0
 0.0 0.0 1.0
2 1
Direct
 0.0 0.0 0.0
 0.5 0.5 0.5
 0.25 0.25 0.25
`)

	p, err := ReadPoscar(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.NQ != 3 {
		t.Errorf("NQ = %d, want 3", p.NQ)
	}
	if p.ElementNames[0] != "El0" || p.ElementNames[1] != "El1" {
		t.Errorf("synthetic element names = %v", p.ElementNames)
	}
}

func TestReadPoscar_CartesianCoordinates(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "POSCAR", `cartesian cell
2.0
 1.0 0.0 0.0
 0.0 1.0 0.0
 0.0 0.0 1.0
H
1
Cartesian
 1.0 1.0 0.0
`)

	p, err := ReadPoscar(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Lattice 2*I, cartesian (1,1,0) -> fractional (0.5,0.5,0).
	for j, want := range []float64{0.5, 0.5, 0.0} {
		if got := p.Coords[0].At(0, j); math.Abs(got-want) > 1e-12 {
			t.Errorf("fractional coord %d = %v, want %v", j, got, want)
		}
	}
}

func TestReadPoscar_VolumeScale(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "POSCAR", `volume scaled
-8.0
 1.0 0.0 0.0
 0.0 1.0 0.0
 0.0 0.0 1.0
H
1
Direct
 0.0 0.0 0.0
`)

	p, err := ReadPoscar(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Unit cell volume 1, target volume 8: each vector is scaled by 2.
	if got := p.ABrav.At(0, 0); math.Abs(got-2.0) > 1e-12 {
		t.Errorf("scaled a11 = %v, want 2.0", got)
	}
}

func TestReadPoscar_SelectiveDynamics(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "POSCAR", `selective
1.0
 1.0 0.0 0.0
 0.0 1.0 0.0
 0.0 0.0 1.0
H
1
Selective dynamics
Direct
 0.1 0.2 0.3
`)

	p, err := ReadPoscar(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := p.Coords[0].At(0, 2); got != 0.3 {
		t.Errorf("coord z = %v, want 0.3", got)
	}
}
