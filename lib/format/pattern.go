package format

import (
	"fmt"
	"strings"
)

// Variable names recognized inside file patterns.
const (
	FrameVar = "frame"
	SpeciesVar = "species"
)

// Pattern is a parsed file pattern. Expanding a pattern interleaves its
// fixed separators with its formatted variables:
// sep[0] var[0] sep[1] var[1] ... sep[n].
type Pattern struct {
	format string
	seps []string
	verbs, vars []string
}

// ParsePattern parses a file pattern such as
// "diags/{%s,species}/snap_{%05d,frame}.bundle".
func ParsePattern(format string) (*Pattern, error) {
	starts, ends, err := variableBounds(format)
	if err != nil { return nil, err }

	p := &Pattern{ format: format }
	prev := 0
	for i := range starts {
		p.seps = append(p.seps, format[prev: starts[i]])
		prev = ends[i]

		verb, name, err := parseVariable(format[starts[i]+1: ends[i]-1])
		if err != nil {
			return nil, fmt.Errorf("The file pattern '%s' has an invalid " +
				"variable, '%s': %s", format, format[starts[i]: ends[i]],
				err.Error())
		}
		p.verbs = append(p.verbs, verb)
		p.vars = append(p.vars, name)
	}
	p.seps = append(p.seps, format[prev:])

	return p, nil
}

// String returns the unparsed pattern.
func (p *Pattern) String() string { return p.format }

// Uses returns true if the pattern contains the named variable.
func (p *Pattern) Uses(name string) bool {
	for _, v := range p.vars {
		if v == name { return true }
	}
	return false
}

// Expand returns the file name for a given frame and species.
func (p *Pattern) Expand(frame int, species string) string {
	sb := &strings.Builder{ }
	for i := range p.vars {
		sb.WriteString(p.seps[i])
		switch p.vars[i] {
		case FrameVar:
			fmt.Fprintf(sb, p.verbs[i], frame)
		case SpeciesVar:
			fmt.Fprintf(sb, p.verbs[i], species)
		}
	}
	sb.WriteString(p.seps[len(p.seps) - 1])
	return sb.String()
}

// variableBounds returns the indices of the opening brace of each variable
// and the indices just past each closing brace.
func variableBounds(format string) (starts, ends []int, err error) {
	starts, ends = []int{ }, []int{ }
	open := false
	ending := "Make sure variables in file patterns are enclosed in " +
		"matching { ... } pairs."

	for i := range format {
		switch format[i] {
		case '{':
			if open {
				return nil, nil, fmt.Errorf("The file pattern '%s' has " +
					"nested '{' characters at indices %d and %d. %s",
					format, starts[len(starts) - 1], i, ending)
			}
			open = true
			starts = append(starts, i)
		case '}':
			if !open {
				return nil, nil, fmt.Errorf("The file pattern '%s' has a " +
					"'}' at index %d that doesn't come after a '{'. %s",
					format, i, ending)
			}
			open = false
			ends = append(ends, i + 1)
		}
	}

	if open {
		return nil, nil, fmt.Errorf("The file pattern '%s' has a '{' at " +
			"index %d without a matching '}'. %s",
			format, starts[len(starts) - 1], ending)
	}
	return starts, ends, nil
}

// parseVariable splits the body of a variable, "verb,name", and checks that
// the verb suits the variable. The error message is a trailing clause.
func parseVariable(body string) (verb, name string, err error) {
	tok := strings.Split(body, ",")
	if len(tok) != 2 {
		return "", "", fmt.Errorf("variables should contain a printf " +
			"verb, a comma, and a variable name, e.g. '{%%05d,frame}'.")
	}
	verb, name = strings.TrimSpace(tok[0]), strings.TrimSpace(tok[1])

	if len(verb) < 2 || verb[0] != '%' || strings.Count(verb, "%") != 1 {
		return "", "", fmt.Errorf("'%s' is not a single printf verb.", verb)
	}

	switch name {
	case FrameVar:
		if verb[len(verb) - 1] != 'd' {
			return "", "", fmt.Errorf("the frame must be printed with an " +
				"integer verb like '%%d', not '%s'.", verb)
		}
	case SpeciesVar:
		if verb[len(verb) - 1] != 's' {
			return "", "", fmt.Errorf("the species must be printed with a " +
				"string verb like '%%s', not '%s'.", verb)
		}
	default:
		return "", "", fmt.Errorf("'%s' is not a variable name. The " +
			"recognized names are '%s' and '%s'.", name, FrameVar, SpeciesVar)
	}

	return verb, name, nil
}
