package lib

// Mode is one of the ways lpadiag can be run.
type Mode string
const (
	HelpMode Mode = "help"
	CheckMode Mode = "check"
	SpectrumMode Mode = "spectrum"
	AnalyzeMode Mode = "analyze"
)

// Modes lists every mode.
func Modes() []Mode {
	return []Mode{ HelpMode, CheckMode, SpectrumMode, AnalyzeMode }
}

// CheckStrictness indicates how functions related to the "check" mode
// should behave when they encounter an error.
type CheckStrictness int
const (
	CrashOnError CheckStrictness = iota
	WarnOnError
)
