package config

import (
	"fmt"
	"sort"

	"github.com/tailung1129/dft-tools/pkg/telemetry"
)

// enginePhase tracks the consistency engine's progress. Phases are strictly
// sequential gates; a failure at any gate moves to phaseRejected and no
// partial model is ever exposed.
type enginePhase int

const (
	phaseBuilt enginePhase = iota
	phaseDefaulted
	phaseValidated
	phaseFinal
	phaseRejected
)

// implicitGroupIndex marks the group synthesized for a lone shell when the
// document declares no [Group] sections.
const implicitGroupIndex = -1

// consistencyEngine reconciles shell and group drafts into a final model.
// It owns the cross-record logic: implicit-group defaulting, referential
// resolution, redundant-parameter stripping, and the coverage check.
type consistencyEngine struct {
	shells []*shellDraft
	groups []*groupDraft
	rep    *telemetry.Reporter
	phase  enginePhase
}

func (e *consistencyEngine) run() (*Model, error) {
	steps := []func() error{
		e.applyDefaults,
		e.resolveReferences,
		e.checkCoverage,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			e.phase = phaseRejected
			return nil, err
		}
	}
	e.phase = phaseFinal
	return e.freeze(), nil
}

// applyDefaults handles the zero-group case: with exactly one shell, a group
// is synthesized from the group-scoped parameters the shell section carried;
// with several shells the document is ambiguous and rejected.
func (e *consistencyEngine) applyDefaults() error {
	defer func() {
		if e.phase == phaseBuilt {
			e.phase = phaseDefaulted
		}
	}()

	if len(e.groups) > 0 {
		return nil
	}
	if len(e.shells) != 1 {
		return newError(KindAmbiguousGrouping, "", "",
			"at least one group must be defined if there are more than one shells (found %d)", len(e.shells))
	}

	lone := e.shells[0]
	// The member list of the synthesized group is always just the lone
	// shell, so "shells" is not required here and any given value is
	// ignored.
	var missing []string
	for _, key := range lone.pending.missingRequired() {
		if key != "shells" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return newError(KindIncompleteImplicitGroup, lone.section, "",
			"one [Shell] section is specified but no explicit [Group] section is provided; "+
				"in this case the [Shell] section must contain all required group parameters, missing: %v", missing)
	}

	g := &groupDraft{
		section:     lone.section,
		index:       implicitGroupIndex,
		groupFields: lone.pending,
	}
	// The synthesized group references the lone shell by its user index,
	// regardless of what the shell-level "shells" value said.
	g.shells = []int{lone.shell.UserIndex}
	g.hasShells = true
	lone.pending = groupFields{}

	e.groups = append(e.groups, g)
	return nil
}

// resolveReferences checks every group→shell reference and strips group
// parameters still lingering on referenced shell drafts, advising about each
// discarded one: explicit group values take precedence.
func (e *consistencyEngine) resolveReferences() error {
	defer func() {
		if e.phase == phaseDefaulted {
			e.phase = phaseValidated
		}
	}()

	byUser := make(map[int]*shellDraft, len(e.shells))
	for _, sh := range e.shells {
		byUser[sh.shell.UserIndex] = sh
	}

	for _, g := range e.groups {
		for _, ref := range g.shells {
			sh, ok := byUser[ref]
			if !ok {
				return newError(KindUnknownShellReference, g.section, "",
					"shell %d referenced in group %d does not exist", ref, g.index)
			}
			e.stripRedundant(sh)
		}
	}
	return nil
}

func (e *consistencyEngine) stripRedundant(sh *shellDraft) {
	for _, par := range append(append([]groupParam{}, groupRequired...), groupOptional...) {
		if !par.isSet(&sh.pending) {
			continue
		}
		par.clear(&sh.pending)
		e.rep.Advise(telemetry.Advisory{
			Code:    telemetry.AdvisoryRedundantGroupParameter,
			Section: sh.section,
			Message: fmt.Sprintf("redundant group parameter %q in [Shell] section %d is discarded; "+
				"the explicit group declaration takes precedence", par.key, sh.shell.UserIndex),
		})
	}
}

// checkCoverage verifies that the union of all group references equals the
// full set of declared shells. Dangling references were already rejected, so
// only orphaned shells can remain.
func (e *consistencyEngine) checkCoverage() error {
	referenced := make(map[int]bool)
	for _, g := range e.groups {
		for _, ref := range g.shells {
			referenced[ref] = true
		}
	}

	var orphans []int
	for _, sh := range e.shells {
		if !referenced[sh.shell.UserIndex] {
			orphans = append(orphans, sh.shell.UserIndex)
		}
	}
	if len(orphans) > 0 {
		sort.Ints(orphans)
		return newError(KindUnreferencedShell, "", "",
			"shells %v are not inside any of the groups", orphans)
	}
	return nil
}

// freeze converts the reconciled drafts into the immutable model.
func (e *consistencyEngine) freeze() *Model {
	m := &Model{
		Shells: make([]Shell, 0, len(e.shells)),
		Groups: make([]Group, 0, len(e.groups)),
	}
	for _, sh := range e.shells {
		m.Shells = append(m.Shells, sh.shell)
	}
	for _, g := range e.groups {
		m.Groups = append(m.Groups, Group{
			Index:     g.index,
			Shells:    g.shells,
			EMin:      g.emin,
			EMax:      g.emax,
			Normalize: g.normalize,
			NormIon:   g.normIon,
		})
	}
	m.buildLookups()
	return m
}
