package config

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/tailung1129/dft-tools/pkg/telemetry"
)

func TestParse_NoShellSections(t *testing.T) {
	doc := mustDocument(t, `
[General]
basename = test
`)

	_, err := Parse(doc)
	if !IsKind(err, KindNoShells) {
		t.Fatalf("expected no shells error, got %v", err)
	}
}

func TestParse_ShellSectionWithoutIndex(t *testing.T) {
	doc := mustDocument(t, `
[Shell one]
ions = 1
lshell = 2
`)

	_, err := Parse(doc)
	if !IsKind(err, KindSectionIndex) {
		t.Fatalf("expected section index error, got %v", err)
	}
}

func TestParse_GroupSectionWithoutIndex(t *testing.T) {
	doc := mustDocument(t, `
[Shell 1]
ions = 1
lshell = 2

[Group main]
shells = 1
emin = -8.0
emax = 4.0
`)

	_, err := Parse(doc)
	if !IsKind(err, KindSectionIndex) {
		t.Fatalf("expected section index error, got %v", err)
	}
}

func TestParse_DuplicateShellIndex(t *testing.T) {
	// "Shell 1" and "Shell 01" are distinct section names carrying the same
	// numeric index.
	doc := mustDocument(t, `
[Shell 1]
ions = 1
lshell = 2

[Shell 01]
ions = 2
lshell = 1
`)

	_, err := Parse(doc)
	if !IsKind(err, KindDuplicateShellIndex) {
		t.Fatalf("expected duplicate shell index error, got %v", err)
	}
}

func TestParse_DuplicateGroupIndex(t *testing.T) {
	// "Group 1" and "Group 01" are distinct section names carrying the same
	// numeric index.
	doc := mustDocument(t, `
[Shell 1]
ions = 1
lshell = 2

[Group 1]
shells = 1
emin = -8.0
emax = 4.0

[Group 01]
shells = 1
emin = -2.0
emax = 2.0
`)

	_, err := Parse(doc)
	if !IsKind(err, KindDuplicateGroupIndex) {
		t.Fatalf("expected duplicate group index error, got %v", err)
	}
}

func TestParse_NonContiguousShellIndicesAdvisory(t *testing.T) {
	doc := mustDocument(t, `
[Shell 1]
ions = 1
lshell = 2

[Shell 3]
ions = 2
lshell = 1

[Group 1]
shells = 1 3
emin = -8.0
emax = 4.0
`)

	rep := telemetry.NewReporter(zerolog.Nop())
	model, err := Parse(doc, WithReporter(rep))
	if err != nil {
		t.Fatalf("non-contiguous indices must not fail the parse: %v", err)
	}
	if model.NumShells() != 2 {
		t.Fatalf("expected 2 shells, got %d", model.NumShells())
	}

	found := false
	for _, adv := range rep.Advisories() {
		if adv.Code == telemetry.AdvisoryNonContiguousShells {
			found = true
		}
	}
	if !found {
		t.Error("expected a non-contiguous shell indices advisory")
	}
}

func TestParse_ShellOrderFollowsIndices(t *testing.T) {
	doc := mustDocument(t, `
[Shell 2]
ions = 2
lshell = 1

[Shell 1]
ions = 1
lshell = 2

[Group 1]
shells = 2 1
emin = -8.0
emax = 4.0
`)

	model, err := Parse(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.Shells[0].UserIndex != 1 || model.Shells[1].UserIndex != 2 {
		t.Errorf("shells not ordered by user index: %d, %d",
			model.Shells[0].UserIndex, model.Shells[1].UserIndex)
	}
}

func TestDocument_CaseInsensitiveLookup(t *testing.T) {
	doc := mustDocument(t, `
[SHELL 1]
IONS = 1
LShell = 2
emin = -1.0
EMAX = 1.0
`)

	if _, ok := doc.Get("shell 1", "ions"); !ok {
		t.Error("expected case-insensitive section/key lookup to succeed")
	}

	model, err := Parse(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.Shells[0].LShell != 2 {
		t.Errorf("lshell = %d, want 2", model.Shells[0].LShell)
	}
}
