package config

import (
	"github.com/rs/zerolog"

	"github.com/tailung1129/dft-tools/pkg/telemetry"
)

// Parser drives a single parse of a config document. Zero-value options give
// a silent parser with no geometry collaborator.
type Parser struct {
	doc  *Document
	geom GeometryProvider
	rep  *telemetry.Reporter
	log  zerolog.Logger
}

// Option customizes a Parser.
type Option func(*Parser)

// WithGeometry wires the lattice geometry collaborator used by element-name
// ion selection.
func WithGeometry(geom GeometryProvider) Option {
	return func(p *Parser) { p.geom = geom }
}

// WithReporter routes advisories to the given reporter.
func WithReporter(rep *telemetry.Reporter) Option {
	return func(p *Parser) { p.rep = rep }
}

// WithLogger sets the parser's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) { p.log = telemetry.ComponentLogger(logger, "config") }
}

// Parse reads all [Shell N] and [Group N] sections from the document,
// reconciles them, and returns the validated model. Any violation of the
// format rules aborts the parse with a ParseError; no partial model is
// returned.
func Parse(doc *Document, opts ...Option) (*Model, error) {
	p := &Parser{
		doc: doc,
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.rep == nil {
		p.rep = telemetry.NewReporter(zerolog.Nop())
	}

	shellSecs, err := p.shellSections()
	if err != nil {
		return nil, err
	}
	groupSecs, err := p.groupSections()
	if err != nil {
		return nil, err
	}

	shells, err := p.buildShells(shellSecs)
	if err != nil {
		return nil, err
	}
	groups, err := p.buildGroups(groupSecs)
	if err != nil {
		return nil, err
	}

	engine := &consistencyEngine{
		shells: shells,
		groups: groups,
		rep:    p.rep,
		phase:  phaseBuilt,
	}
	model, err := engine.run()
	if err != nil {
		return nil, err
	}

	p.log.Info().
		Int("shells", model.NumShells()).
		Int("groups", model.NumGroups()).
		Msg("config document parsed")
	return model, nil
}

// ParseFile is a convenience wrapper loading and parsing a document in one
// step.
func ParseFile(path string, opts ...Option) (*Model, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return Parse(doc, opts...)
}
