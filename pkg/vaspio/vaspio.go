package vaspio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tailung1129/dft-tools/pkg/telemetry"
)

// Data aggregates all VASP output read from one working directory.
type Data struct {
	Poscar   *Poscar
	Kpoints  *Kpoints
	Eigenval *Eigenval
	Doscar   *Doscar

	// Symmcar is nil when no SYMMCAR file exists.
	Symmcar *Symmcar
}

type loader struct {
	log zerolog.Logger
	rep *telemetry.Reporter
}

// Option customizes Load.
type Option func(*loader)

// WithLogger sets the loader's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *loader) { l.log = telemetry.ComponentLogger(logger, "vaspio") }
}

// WithReporter routes advisories (such as missing tetrahedron data) to the
// given reporter.
func WithReporter(rep *telemetry.Reporter) Option {
	return func(l *loader) { l.rep = rep }
}

// Load reads POSCAR, IBZKPT, EIGENVAL and DOSCAR from the given VASP working
// directory. SYMMCAR is read when present and skipped otherwise.
func Load(dir string, opts ...Option) (*Data, error) {
	l := &loader{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(l)
	}

	var (
		data Data
		err  error
	)
	if data.Poscar, err = ReadPoscar(dir); err != nil {
		return nil, err
	}
	l.log.Debug().Int("ions", data.Poscar.NQ).Int("types", data.Poscar.NTypes).Msg("POSCAR read")

	if data.Kpoints, err = ReadKpoints(dir); err != nil {
		return nil, err
	}
	l.log.Debug().Int("kpoints", data.Kpoints.NKTot).Int("tetrahedra", data.Kpoints.NTet).Msg("IBZKPT read")
	if data.Kpoints.NTet == 0 && l.rep != nil {
		l.rep.Advise(telemetry.Advisory{
			Code:    telemetry.AdvisoryMissingTetrahedra,
			Message: "no tetrahedron data found in IBZKPT; tetrahedron integration unavailable",
		})
	}

	if data.Eigenval, err = ReadEigenval(dir); err != nil {
		return nil, err
	}
	l.log.Debug().Int("bands", data.Eigenval.NBand).Int("spins", data.Eigenval.ISpin).Msg("EIGENVAL read")

	if data.Doscar, err = ReadDoscar(dir); err != nil {
		return nil, err
	}
	l.log.Debug().Float64("efermi", data.Doscar.EFermi).Msg("DOSCAR read")

	sym, err := ReadSymmcar(dir)
	switch {
	case err == nil:
		data.Symmcar = sym
		l.log.Debug().Int("rotations", sym.NRot).Msg("SYMMCAR read")
	case errors.Is(err, os.ErrNotExist):
		l.log.Debug().Msg("no SYMMCAR file, skipping")
	default:
		return nil, err
	}

	return &data, nil
}

// lineReader yields lines from a file one at a time, tracking position for
// error messages.
type lineReader struct {
	sc   *bufio.Scanner
	name string
	line int
}

func newLineReader(r io.Reader, name string) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &lineReader{sc: sc, name: name}
}

// Next returns the next line.
func (lr *lineReader) Next() (string, error) {
	if !lr.sc.Scan() {
		if err := lr.sc.Err(); err != nil {
			return "", fmt.Errorf("%s: read error after line %d: %w", lr.name, lr.line, err)
		}
		return "", fmt.Errorf("%s: unexpected end of file after line %d: %w", lr.name, lr.line, io.ErrUnexpectedEOF)
	}
	lr.line++
	return lr.sc.Text(), nil
}

// NextFields returns the next line split into whitespace-separated fields.
func (lr *lineReader) NextFields() ([]string, error) {
	line, err := lr.Next()
	if err != nil {
		return nil, err
	}
	return strings.Fields(line), nil
}

// Skip discards n lines.
func (lr *lineReader) Skip(n int) error {
	for i := 0; i < n; i++ {
		if _, err := lr.Next(); err != nil {
			return err
		}
	}
	return nil
}

func (lr *lineReader) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%s:%d: %s", lr.name, lr.line, fmt.Sprintf(format, args...))
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}

func parseInts(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}
