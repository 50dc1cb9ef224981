/*package format handles lpadiag's miniature formatting languages for
snapshot files and frame lists, e.g:

   Input = "diags/{%s,species}/snap_{%05d,frame}.bundle"
   Frames = 0..1000 - 630

File patterns are a combination of fixed text and variables. Fixed text is
always the same, and variables change from file to file. Variables are
written as {verb,name}, where "verb" is a printf() verb (e.g. %05d) that
specifies how the variable is printed and "name" is one of:

  "frame" - the frame (timestep) currently being analysed. Uses an integer
            verb.
  "species" - the particle species currently being read. Uses a string
              verb.

Sequence formats are a generic way to specify non-contiguous sequences of
natural numbers. They consist of a series of tokens separated by "+" or "-".
Each token is either a number or two numbers separated by "..". E.g.:

  100
  0..100
  0..10 + 100
  0..100 - 63 - 10..20

All additions are applied before any removals. A number may not be added
twice, and a number which isn't in the sequence may not be removed. All
spaces around "-" and "+" symbols are ignored.
*/
package format

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	// Any expanded sequences which would have more than BigNumber elements
	// are assumed to be bugs.
	BigNumber = 1<<20
)

// span is a single term of a sequence format: the numbers lo through hi,
// either added to or removed from the sequence.
type span struct {
	lo, hi int
	remove bool
}

// ExpandSequence expands a sequence format string into a sorted sequence of
// integers.
func ExpandSequence(format string) ([]int, error) {
	spans, err := parseSequence(format)
	if err != nil { return nil, err }

	total := 0
	for _, s := range spans {
		// Each span is bounded before it is summed so total can't overflow.
		n := 0
		if !s.remove { n = s.hi - s.lo + 1 }
		if s.hi - s.lo >= BigNumber || total + n > BigNumber {
			return nil, fmt.Errorf("The sequence '%s' would have more than " +
				"%d elements, which is almost certainly a bug.",
				format, BigNumber)
		}
		total += n
	}

	m := map[int]bool{ }
	for _, s := range spans {
		if s.remove { continue }
		for n := s.lo; n <= s.hi; n++ {
			if m[n] {
				return nil, fmt.Errorf("The number %d is added to the " +
					"sequence '%s' more than once.", n, format)
			}
			m[n] = true
		}
	}

	for _, s := range spans {
		if !s.remove { continue }
		for n := s.lo; n <= s.hi; n++ {
			if !m[n] {
				return nil, fmt.Errorf("The number %d is removed from the " +
					"sequence '%s' more times than it was added.", n, format)
			}
			delete(m, n)
		}
	}

	out := make([]int, 0, len(m))
	for n := range m { out = append(out, n) }
	sort.Ints(out)
	return out, nil
}

// tokenize splits a sequence format into number tokens and "+"/"-"
// operators.
func tokenize(format string) ([]string, error) {
	clean := strings.ReplaceAll(format, "+", " + ")
	clean = strings.ReplaceAll(clean, "-", " - ")

	tok := strings.Fields(clean)
	if len(tok) == 0 {
		return nil, fmt.Errorf("The sequence format is empty.")
	}
	return tok, nil
}

// parseSequence converts a sequence format into its terms. A leading "+" may
// be omitted.
func parseSequence(format string) ([]span, error) {
	tok, err := tokenize(format)
	if err != nil { return nil, err }

	if tok[0] != "+" && tok[0] != "-" {
		tok = append([]string{ "+" }, tok...)
	}

	spans := []span{ }
	for i := 0; i < len(tok); i += 2 {
		if tok[i] != "+" && tok[i] != "-" {
			return nil, fmt.Errorf("'%s' in the sequence '%s' should be a " +
				"'-' or '+', but isn't.", tok[i], format)
		} else if i + 1 >= len(tok) {
			return nil, fmt.Errorf("The sequence '%s' ends in a trailing " +
				"'%s'.", format, tok[i])
		}

		s, err := parseSpan(tok[i+1])
		if err != nil {
			return nil, fmt.Errorf("'%s' in the sequence '%s' cannot be " +
				"parsed because %s", tok[i+1], format, err.Error())
		}
		s.remove = tok[i] == "-"
		spans = append(spans, s)
	}

	return spans, nil
}

// parseSpan parses a single number or "lo..hi" range. The error message
// assumes it is printed after a trailing "because".
func parseSpan(tok string) (span, error) {
	bounds := strings.Split(tok, "..")

	switch len(bounds) {
	case 1:
		n, err := strconv.Atoi(bounds[0])
		if err != nil {
			return span{ }, fmt.Errorf("'%s' is not an integer.", bounds[0])
		}
		return span{ lo: n, hi: n }, nil
	case 2:
		lo, err := strconv.Atoi(bounds[0])
		if err != nil {
			return span{ }, fmt.Errorf("'%s' is not an integer.", bounds[0])
		}
		hi, err := strconv.Atoi(bounds[1])
		if err != nil {
			return span{ }, fmt.Errorf("'%s' is not an integer.", bounds[1])
		}
		if hi < lo {
			return span{ }, fmt.Errorf("lower bound %d is larger than " +
				"upper bound %d.", lo, hi)
		}
		return span{ lo: lo, hi: hi }, nil
	}

	return span{ }, fmt.Errorf("it has more than one '..'.")
}
