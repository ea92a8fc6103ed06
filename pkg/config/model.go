package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"gonum.org/v1/gonum/mat"
)

// TMatrix is an optional basis transform attached to a shell. Exactly one of
// Real and Complex is set, depending on whether the shell declared
// `rtransform` or `ctransform`.
type TMatrix struct {
	Real    *mat.Dense
	Complex *mat.CDense
}

// IsComplex reports whether the transform is complex-valued.
func (t *TMatrix) IsComplex() bool {
	return t.Complex != nil
}

// Dims returns the matrix dimensions.
func (t *TMatrix) Dims() (rows, cols int) {
	if t.IsComplex() {
		return t.Complex.Dims()
	}
	return t.Real.Dims()
}

// MarshalYAML renders the transform as nested row lists; complex entries are
// rendered as "a+bi" strings.
func (t *TMatrix) MarshalYAML() (interface{}, error) {
	nr, nc := t.Dims()
	rows := make([][]interface{}, nr)
	for i := 0; i < nr; i++ {
		row := make([]interface{}, nc)
		for j := 0; j < nc; j++ {
			if t.IsComplex() {
				v := t.Complex.At(i, j)
				row[j] = fmt.Sprintf("%g%+gi", real(v), imag(v))
			} else {
				row[j] = t.Real.At(i, j)
			}
		}
		rows[i] = row
	}
	return rows, nil
}

// Shell is a projector subset: a selection of ions and an angular momentum
// channel, with an optional basis transform.
type Shell struct {
	// UserIndex is the 1-based identifier the author assigned in the
	// [Shell N] section name. Unique across all shells, not necessarily
	// contiguous.
	UserIndex int `yaml:"user_index" validate:"gte=0"`

	// Ions holds the selected ion indices, zero-based, sorted ascending.
	Ions []int `yaml:"ion_list" validate:"min=1,dive,gte=0"`

	// LShell is the angular momentum channel (0=s, 1=p, 2=d, 3=f).
	LShell int `yaml:"lshell" validate:"gte=0"`

	// TMatrix is the optional basis transform.
	TMatrix *TMatrix `yaml:"transform_matrix,omitempty"`
}

// Group is a collection of shells sharing an energy window and normalization
// settings.
type Group struct {
	// Index is the identifier parsed from the [Group N] section name, or -1
	// for the implicit group synthesized from a lone shell.
	Index int `yaml:"index"`

	// Shells references member shells by their user index.
	Shells []int `yaml:"shells" validate:"min=1"`

	// EMin and EMax bound the projection energy window.
	EMin float64 `yaml:"emin"`
	EMax float64 `yaml:"emax"`

	// Normalize requests projector normalization. Nil means unset.
	Normalize *bool `yaml:"normalize,omitempty"`

	// NormIon requests per-ion normalization. Nil means unset.
	NormIon *bool `yaml:"normion,omitempty"`
}

// Model is the validated configuration: all declared shells and groups with
// referential integrity established. It is immutable after a successful
// parse and safe for concurrent reads.
type Model struct {
	// Shells in ascending user-index order.
	Shells []Shell `yaml:"shells" validate:"min=1,dive"`

	// Groups in ascending declared-index order.
	Groups []Group `yaml:"groups" validate:"min=1,dive"`

	shellByUser map[int]int
	groupByIdx  map[int]int
}

// ShellByUserIndex returns the shell with the given user index.
func (m *Model) ShellByUserIndex(userIndex int) (*Shell, bool) {
	i, ok := m.shellByUser[userIndex]
	if !ok {
		return nil, false
	}
	return &m.Shells[i], true
}

// GroupByIndex returns the group with the given declared index.
func (m *Model) GroupByIndex(index int) (*Group, bool) {
	i, ok := m.groupByIdx[index]
	if !ok {
		return nil, false
	}
	return &m.Groups[i], true
}

// NumShells returns the number of declared shells.
func (m *Model) NumShells() int {
	return len(m.Shells)
}

// NumGroups returns the number of groups, including a synthesized one.
func (m *Model) NumGroups() int {
	return len(m.Groups)
}

var modelValidator = validator.New()

// Validate cross-checks the frozen model with struct-tag validation. A model
// returned by Parse always passes; the method exists for callers assembling
// models by hand.
func (m *Model) Validate() error {
	if err := modelValidator.Struct(m); err != nil {
		return fmt.Errorf("model validation failed: %w", err)
	}
	return nil
}

func (m *Model) buildLookups() {
	m.shellByUser = make(map[int]int, len(m.Shells))
	for i, sh := range m.Shells {
		m.shellByUser[sh.UserIndex] = i
	}
	m.groupByIdx = make(map[int]int, len(m.Groups))
	for i, gr := range m.Groups {
		m.groupByIdx[gr.Index] = i
	}
}
