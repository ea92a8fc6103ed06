package config

// shellDraft is a shell record under construction. Besides the concrete
// shell fields it can carry a transient copy of group-scoped parameters
// declared inside the [Shell] section; only the consistency engine may
// consume or clear those.
type shellDraft struct {
	section string
	shell   Shell

	// pending holds group-scoped parameters found in the shell section.
	// They either seed the implicit group (single-shell documents) or get
	// discarded with an advisory once an explicit group claims the shell.
	pending groupFields
}

// groupDraft is a group record under construction, keeping the section name
// for error reporting.
type groupDraft struct {
	section string
	index   int
	groupFields
}

// applyShellParams runs a shell schema over one section. With required=true
// the first absent key is fatal.
func (p *Parser) applyShellParams(params []shellParam, d *shellDraft, required bool) error {
	for _, par := range params {
		raw, ok := p.doc.Get(d.section, par.key)
		if !ok {
			if required {
				return newError(KindMissingRequiredParameter, d.section, par.key,
					"required parameter %q not found in section [%s]", par.key, d.section)
			}
			continue
		}
		p.log.Debug().Str("section", d.section).Str("key", par.key).Str("value", raw).Msg("shell parameter")
		if err := p.attachContext(par.set(p, raw, d), d.section, par.key); err != nil {
			return err
		}
	}
	return nil
}

// applyGroupParams runs a group schema over one section, writing into the
// given groupFields. Used both for [Group] sections and for the tentative
// copies inside [Shell] sections.
func (p *Parser) applyGroupParams(params []groupParam, section string, g *groupFields, required bool) error {
	for _, par := range params {
		raw, ok := p.doc.Get(section, par.key)
		if !ok {
			if required {
				return newError(KindMissingRequiredParameter, section, par.key,
					"required parameter %q not found in section [%s]", par.key, section)
			}
			continue
		}
		p.log.Debug().Str("section", section).Str("key", par.key).Str("value", raw).Msg("group parameter")
		if err := p.attachContext(par.set(raw, g), section, par.key); err != nil {
			return err
		}
	}
	return nil
}

// attachContext fills in section/key on ParseErrors produced by value
// parsers, which do not know where their input came from.
func (p *Parser) attachContext(err error, section, key string) error {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*ParseError); ok {
		if pe.Section == "" {
			pe.Section = section
		}
		if pe.Key == "" {
			pe.Key = key
		}
	}
	return err
}

// buildShells produces one draft per shell section, ascending by user index.
// Group-scoped parameters inside shell sections are collected tentatively:
// their absence is never an error here.
func (p *Parser) buildShells(secs []indexedSection) ([]*shellDraft, error) {
	drafts := make([]*shellDraft, 0, len(secs))
	for _, sec := range secs {
		d := &shellDraft{section: sec.name}
		d.shell.UserIndex = sec.index

		if err := p.applyShellParams(shellRequired, d, true); err != nil {
			return nil, err
		}
		if err := p.applyShellParams(shellOptional, d, false); err != nil {
			return nil, err
		}
		if err := p.applyGroupParams(groupRequired, sec.name, &d.pending, false); err != nil {
			return nil, err
		}
		if err := p.applyGroupParams(groupOptional, sec.name, &d.pending, false); err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

// buildGroups produces one draft per group section, ascending by index.
// Required group parameters are strict here.
func (p *Parser) buildGroups(secs []indexedSection) ([]*groupDraft, error) {
	drafts := make([]*groupDraft, 0, len(secs))
	for _, sec := range secs {
		g := &groupDraft{section: sec.name, index: sec.index}
		if err := p.applyGroupParams(groupRequired, sec.name, &g.groupFields, true); err != nil {
			return nil, err
		}
		if err := p.applyGroupParams(groupOptional, sec.name, &g.groupFields, false); err != nil {
			return nil, err
		}
		drafts = append(drafts, g)
	}
	return drafts, nil
}
