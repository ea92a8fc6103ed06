// Package config parses and validates the PLO input config document that
// declares projected shells and shell groups for a VASP calculation.
//
// # Overview
//
// The input document is an INI-style file with [Shell N] and [Group N]
// sections. A shell selects a set of ions and an angular momentum channel,
// optionally with a basis transform; a group collects shells under a common
// energy window and normalization settings. The package decodes both kinds
// of sections, reconciles them, and exposes a frozen Model once every
// consistency rule holds.
//
// # Components
//
// Document: thin wrapper over the raw INI file with case-insensitive
// section/key lookup.
//
// Parameter schemas: four fixed tables (shell required/optional, group
// required/optional) mapping external keys to typed conversion closures.
//
// Section extraction and builders: locate [Shell N]/[Group N] sections,
// extract their numeric indices, and apply the schemas per section.
// Group-scoped parameters found inside shell sections are kept only
// tentatively.
//
// Consistency engine: the cross-record stage. If no group is declared and
// exactly one shell exists, an implicit group is synthesized from the
// shell's tentative group parameters. Every group→shell reference must
// resolve to a declared shell, redundant shell-level group parameters are
// discarded in favor of explicit group declarations (with an advisory), and
// every shell must be claimed by at least one group.
//
// # Usage Example
//
//	doc, err := config.LoadDocument("plo.cfg")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	model, err := config.Parse(doc,
//	    config.WithReporter(reporter),
//	    config.WithGeometry(poscar),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	shell, _ := model.ShellByUserIndex(1)
//
// # Error Handling
//
// Every failure is a *ParseError carrying an ErrorKind plus the offending
// section and key. Errors are fatal to the parse; there is no partial model.
// Non-fatal findings (non-contiguous shell indices, discarded redundant
// parameters) are advisories on the telemetry side channel and never
// interrupt a successful parse.
//
// # Thread Safety
//
// A Model is immutable after Parse returns and safe for concurrent reads.
// Parser instances are single-use and not safe for concurrent use.
package config
