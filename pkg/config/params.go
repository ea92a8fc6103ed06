package config

// The parameter schemas map external config keys to typed conversion
// closures, split into the four fixed sets the input format defines:
// required/optional shell parameters and required/optional group parameters.
// The tables are plain package-level data built once; builders iterate them
// instead of switching on key names at every call site.

// shellParam describes one shell-section parameter.
type shellParam struct {
	key string
	set func(p *Parser, raw string, d *shellDraft) error
}

// groupParam describes one group-scoped parameter. Group parameters can live
// either in a [Group] section or, transiently, in a [Shell] section; both
// targets share the groupFields sub-structure, so one setter serves both.
// isSet and clear let the consistency engine inspect and strip the transient
// copies without knowing the field layout.
type groupParam struct {
	key   string
	set   func(raw string, g *groupFields) error
	isSet func(g *groupFields) bool
	clear func(g *groupFields)
}

// groupFields holds the group-scoped parameter values together with presence
// flags. On a group record the required ones are always present; on a shell
// draft any subset may be present until the consistency engine claims or
// discards them.
type groupFields struct {
	shells    []int
	hasShells bool

	emin    float64
	hasEMin bool

	emax    float64
	hasEMax bool

	normalize *bool
	normIon   *bool
}

var shellRequired = []shellParam{
	{
		key: "ions",
		set: func(p *Parser, raw string, d *shellDraft) error {
			ions, err := parseIonList(raw, p.geom)
			if err != nil {
				return err
			}
			d.shell.Ions = ions
			return nil
		},
	},
	{
		key: "lshell",
		set: func(_ *Parser, raw string, d *shellDraft) error {
			l, err := parseInt(raw)
			if err != nil {
				return err
			}
			d.shell.LShell = l
			return nil
		},
	},
}

var shellOptional = []shellParam{
	{
		key: "rtransform",
		set: func(_ *Parser, raw string, d *shellDraft) error {
			m, err := parseRealTMatrix(raw)
			if err != nil {
				return err
			}
			d.shell.TMatrix = m
			return nil
		},
	},
	{
		key: "ctransform",
		set: func(_ *Parser, raw string, d *shellDraft) error {
			m, err := parseComplexTMatrix(raw)
			if err != nil {
				return err
			}
			d.shell.TMatrix = m
			return nil
		},
	},
}

var groupRequired = []groupParam{
	{
		key: "shells",
		set: func(raw string, g *groupFields) error {
			refs, err := parseIntList(raw)
			if err != nil {
				return err
			}
			g.shells = refs
			g.hasShells = true
			return nil
		},
		isSet: func(g *groupFields) bool { return g.hasShells },
		clear: func(g *groupFields) { g.shells = nil; g.hasShells = false },
	},
	{
		key: "emin",
		set: func(raw string, g *groupFields) error {
			x, err := parseFloat(raw)
			if err != nil {
				return err
			}
			g.emin = x
			g.hasEMin = true
			return nil
		},
		isSet: func(g *groupFields) bool { return g.hasEMin },
		clear: func(g *groupFields) { g.emin = 0; g.hasEMin = false },
	},
	{
		key: "emax",
		set: func(raw string, g *groupFields) error {
			x, err := parseFloat(raw)
			if err != nil {
				return err
			}
			g.emax = x
			g.hasEMax = true
			return nil
		},
		isSet: func(g *groupFields) bool { return g.hasEMax },
		clear: func(g *groupFields) { g.emax = 0; g.hasEMax = false },
	},
}

var groupOptional = []groupParam{
	{
		key: "normalize",
		set: func(raw string, g *groupFields) error {
			b, err := parseLogical(raw)
			if err != nil {
				return err
			}
			g.normalize = &b
			return nil
		},
		isSet: func(g *groupFields) bool { return g.normalize != nil },
		clear: func(g *groupFields) { g.normalize = nil },
	},
	{
		key: "normion",
		set: func(raw string, g *groupFields) error {
			b, err := parseLogical(raw)
			if err != nil {
				return err
			}
			g.normIon = &b
			return nil
		},
		isSet: func(g *groupFields) bool { return g.normIon != nil },
		clear: func(g *groupFields) { g.normIon = nil },
	},
}

// missingRequired lists the external keys of required group parameters not
// present in g.
func (g *groupFields) missingRequired() []string {
	var missing []string
	for _, par := range groupRequired {
		if !par.isSet(g) {
			missing = append(missing, par.key)
		}
	}
	return missing
}
