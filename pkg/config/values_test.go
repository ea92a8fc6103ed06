package config

import (
	"reflect"
	"testing"
)

func TestParseIonList(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		want     []int
		wantKind ErrorKind
	}{
		{name: "range", raw: "3..5", want: []int{2, 3, 4}},
		{name: "range single", raw: "7..7", want: []int{6}},
		{name: "reversed range", raw: "5..3", wantKind: KindRangeOrder},
		{name: "range starting at zero", raw: "0..2", wantKind: KindIndexRange},
		{name: "list is sorted and shifted", raw: "3 1 2", want: []int{0, 1, 2}},
		{name: "single index", raw: "4", want: []int{3}},
		{name: "zero index", raw: "0", wantKind: KindIndexRange},
		{name: "element name", raw: "Ni", wantKind: KindNotImplemented},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIonList(tt.raw, nil)
			if tt.wantKind != "" {
				if !IsKind(err, tt.wantKind) {
					t.Fatalf("expected %s error, got %v", tt.wantKind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseLogical(t *testing.T) {
	tests := []struct {
		raw      string
		want     bool
		wantKind ErrorKind
	}{
		{raw: "True", want: true},
		{raw: "t", want: true},
		{raw: "TRUE", want: true},
		{raw: "false", want: false},
		{raw: "F", want: false},
		{raw: "x", wantKind: KindInvalidBoolean},
		{raw: "", wantKind: KindInvalidBoolean},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseLogical(tt.raw)
			if tt.wantKind != "" {
				if !IsKind(err, tt.wantKind) {
					t.Fatalf("expected %s error, got %v", tt.wantKind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseLogical(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseRealTMatrix(t *testing.T) {
	m, err := parseRealTMatrix("1 2\n3 4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.IsComplex() {
		t.Fatal("expected a real matrix")
	}
	nr, nc := m.Dims()
	if nr != 2 || nc != 2 {
		t.Fatalf("expected 2x2 matrix, got %dx%d", nr, nc)
	}
	want := [][]float64{{1, 2}, {3, 4}}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			if m.Real.At(i, j) != want[i][j] {
				t.Errorf("entry (%d,%d) = %v, want %v", i, j, m.Real.At(i, j), want[i][j])
			}
		}
	}
}

func TestParseRealTMatrix_Ragged(t *testing.T) {
	_, err := parseRealTMatrix("1 2\n3")
	if !IsKind(err, KindRaggedMatrix) {
		t.Fatalf("expected ragged matrix error, got %v", err)
	}
}

func TestParseRealTMatrix_BadToken(t *testing.T) {
	_, err := parseRealTMatrix("1 2\n3 oops")
	if !IsKind(err, KindInvalidNumber) {
		t.Fatalf("expected invalid number error, got %v", err)
	}
}

func TestParseComplexTMatrix(t *testing.T) {
	m, err := parseComplexTMatrix("1 2 3 4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.IsComplex() {
		t.Fatal("expected a complex matrix")
	}
	nr, nc := m.Dims()
	if nr != 1 || nc != 2 {
		t.Fatalf("expected 1x2 matrix, got %dx%d", nr, nc)
	}
	if got := m.Complex.At(0, 0); got != complex(1, 2) {
		t.Errorf("entry (0,0) = %v, want 1+2i", got)
	}
	if got := m.Complex.At(0, 1); got != complex(3, 4) {
		t.Errorf("entry (0,1) = %v, want 3+4i", got)
	}
}

func TestParseComplexTMatrix_OddColumns(t *testing.T) {
	_, err := parseComplexTMatrix("1 2 3")
	if !IsKind(err, KindOddComplexColumns) {
		t.Fatalf("expected odd complex columns error, got %v", err)
	}
}

func TestParseIntList(t *testing.T) {
	got, err := parseIntList(" 1  3 2 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, []int{1, 3, 2}) {
		t.Errorf("got %v, want [1 3 2]", got)
	}

	if _, err := parseIntList("1 two"); !IsKind(err, KindInvalidNumber) {
		t.Errorf("expected invalid number error, got %v", err)
	}
}
