package snapshot

import (
	"fmt"
)

// Group is a quantity group: a set of per-particle arrays that are always
// loaded together.
type Group int

const (
	Identity Group = iota
	Weight
	Position
	Momentum
	FieldE
	FieldB
	numGroups
)

var (
	groupNames = []string{ "PID", "Weight", "Position", "Momentum", "E", "B" }

	// groupColumns are the column names each group contributes, in column
	// order.
	groupColumns = [][]string{
		{ "PID" },
		{ "w" },
		{ "x", "y", "z" },
		{ "ux", "uy", "uz", "gamma" },
		{ "ex", "ey", "ez" },
		{ "bx", "by", "bz" },
	}
)

// rawField maps a column name to the name it is stored under in a snapshot
// file.
func rawField(column string) string {
	if column == "PID" { return "ssnum" }
	return column
}

// String returns the name used for g in configuration files.
func (g Group) String() string {
	if g < 0 || g >= numGroups { return fmt.Sprintf("Group(%d)", int(g)) }
	return groupNames[g]
}

// Columns returns the column names contributed by g.
func (g Group) Columns() []string {
	return append([]string{ }, groupColumns[g]...)
}

// AllGroups returns every quantity group in canonical order.
func AllGroups() []Group {
	out := make([]Group, numGroups)
	for i := range out { out[i] = Group(i) }
	return out
}

// ParseGroup converts a group name ("PID", "Weight", "Position",
// "Momentum", "E", "B") to a Group.
func ParseGroup(name string) (Group, error) {
	for i := range groupNames {
		if groupNames[i] == name { return Group(i), nil }
	}
	return -1, fmt.Errorf("'%s' is not a quantity group. The recognized " +
		"groups are %v.", name, groupNames)
}

// ParseGroups converts a list of group names into Groups, preserving their
// order. An empty list means every group.
func ParseGroups(names []string) ([]Group, error) {
	if len(names) == 0 { return AllGroups(), nil }

	out := make([]Group, len(names))
	for i := range names {
		g, err := ParseGroup(names[i])
		if err != nil { return nil, err }
		out[i] = g
	}

	if err := checkGroups(out); err != nil { return nil, err }
	return out, nil
}

func checkGroups(groups []Group) error {
	seen := make([]bool, numGroups)
	for _, g := range groups {
		if g < 0 || g >= numGroups {
			return fmt.Errorf("%s is not a quantity group.", g)
		} else if seen[g] {
			return fmt.Errorf("The quantity group %s was requested more " +
				"than once.", g)
		}
		seen[g] = true
	}
	return nil
}
