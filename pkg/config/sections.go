package config

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/tailung1129/dft-tools/pkg/telemetry"
)

// One compiled matcher per construct. The loose patterns classify a section
// as shell- or group-related; the index patterns additionally extract the
// numeric identifier. Factoring them here keeps the "looks like a shell
// section" check and the "extract index" check from ever disagreeing.
var (
	shellLoosePattern = regexp.MustCompile(`(?i)^shell\s+`)
	shellIndexPattern = regexp.MustCompile(`(?i)^shell\s+([0-9]+)$`)
	groupLoosePattern = regexp.MustCompile(`(?i)^group\s+`)
	groupIndexPattern = regexp.MustCompile(`(?i)^group\s+([0-9]+)$`)
)

// indexedSection is a section name paired with the index parsed out of it.
type indexedSection struct {
	index int
	name  string
}

// extractIndexed collects all sections matching the loose pattern and
// extracts their indices with the strict pattern.
func extractIndexed(names []string, loose, strict *regexp.Regexp, construct string) ([]indexedSection, error) {
	var matched []string
	for _, name := range names {
		if loose.MatchString(name) {
			matched = append(matched, name)
		}
	}

	out := make([]indexedSection, 0, len(matched))
	var bad []string
	for _, name := range matched {
		m := strict.FindStringSubmatch(name)
		if m == nil {
			bad = append(bad, name)
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			bad = append(bad, name)
			continue
		}
		out = append(out, indexedSection{index: idx, name: name})
	}
	if len(bad) > 0 {
		return nil, newError(KindSectionIndex, "", "",
			"failed to extract %s indices from sections %v", construct, bad)
	}
	return out, nil
}

// shellSections locates all [Shell N] sections and returns them sorted by
// index. Zero shells and duplicate indices are fatal; a non-contiguous index
// run only raises an advisory.
func (p *Parser) shellSections() ([]indexedSection, error) {
	secs, err := extractIndexed(p.doc.SectionNames(), shellLoosePattern, shellIndexPattern, "shell")
	if err != nil {
		return nil, err
	}
	if len(secs) == 0 {
		return nil, newError(KindNoShells, "", "", "no projected shells found in the input file")
	}

	seen := make(map[int]string, len(secs))
	for _, s := range secs {
		if prev, dup := seen[s.index]; dup {
			return nil, newError(KindDuplicateShellIndex, s.name, "",
				"shell index %d already declared by section %q", s.index, prev)
		}
		seen[s.index] = s.name
	}

	sort.Slice(secs, func(i, j int) bool { return secs[i].index < secs[j].index })

	if !contiguousFromOne(secs) {
		p.rep.Advise(telemetry.Advisory{
			Code: telemetry.AdvisoryNonContiguousShells,
			Message: "shell indices are not uniform or not starting from 1; " +
				"this might be an indication of an incorrect setup",
		})
	}

	p.log.Debug().Int("count", len(secs)).Msg("found projected shells")
	return secs, nil
}

// groupSections locates all [Group N] sections sorted by index. Zero groups
// is legal; the consistency engine decides whether an implicit group can be
// synthesized. Duplicate indices are fatal, as for shells.
func (p *Parser) groupSections() ([]indexedSection, error) {
	secs, err := extractIndexed(p.doc.SectionNames(), groupLoosePattern, groupIndexPattern, "group")
	if err != nil {
		return nil, err
	}

	seen := make(map[int]string, len(secs))
	for _, s := range secs {
		if prev, dup := seen[s.index]; dup {
			return nil, newError(KindDuplicateGroupIndex, s.name, "",
				"group index %d already declared by section %q", s.index, prev)
		}
		seen[s.index] = s.name
	}

	sort.Slice(secs, func(i, j int) bool { return secs[i].index < secs[j].index })
	return secs, nil
}

func contiguousFromOne(secs []indexedSection) bool {
	for i, s := range secs {
		if s.index != i+1 {
			return false
		}
	}
	return true
}
