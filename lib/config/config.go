/*package config reads lpadiag run configurations. A configuration starts from
the defaults below, is overwritten by a YAML config file, then by LPADIAG_*
environment variables, and finally by --<Key> <Value> command line arguments.
Keys have the same names in all three places, e.g. the config file line

    binSize: 0.25

can be overridden with LPADIAG_BINSIZE=1 or with --binSize 1.
*/
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to the upper-cased key names to get the names of
// environment variable overrides.
const EnvPrefix = "LPADIAG_"

// RawArgs stores the unprocessed values which the user assigned to each
// config variable.
type RawArgs struct {
	// Input is the file pattern for snapshot files. See lib/format.
	Input string `yaml:"input"`
	// Species are the particle species to analyse.
	Species []string `yaml:"species"`
	// Frames is a sequence format giving the frames to analyse.
	Frames string `yaml:"frames"`
	// Quantities are the quantity groups to load.
	Quantities []string `yaml:"quantities"`

	// Gamma and ROI are the selection ranges on gamma and on z. An empty
	// list does not filter, one element is a lower bound, and two elements
	// are lower and upper bounds.
	Gamma []float64 `yaml:"gamma"`
	ROI []float64 `yaml:"roi"`

	BinSize float64 `yaml:"binSize"`
	Density bool `yaml:"density"`
	PeakWidth float64 `yaml:"peakWidth"`
	// Spread is "fwhm", "rms", or "none", where "none" measures the spread
	// of the whole spectrum instead of around its highest peak.
	Spread string `yaml:"spread"`
	// EmittanceAxis is "x", "y", or "" to skip the emittance.
	EmittanceAxis string `yaml:"emittanceAxis"`
	// EmittanceWeighted weights the emittance moments by particle weight.
	EmittanceWeighted bool `yaml:"emittanceWeighted"`

	ResultDir string `yaml:"resultDir"`
	Write bool `yaml:"write"`
	Figure bool `yaml:"figure"`
	Legend []string `yaml:"legend"`

	Threads int `yaml:"threads"`
	LogLevel string `yaml:"logLevel"`
	LogFormat string `yaml:"logFormat"`
}

// Keys returns the names of every config variable.
func Keys() []string {
	return []string{
		"input", "species", "frames", "quantities", "gamma", "roi",
		"binSize", "density", "peakWidth", "spread",
		"emittanceAxis", "emittanceWeighted",
		"resultDir", "write", "figure", "legend",
		"threads", "logLevel", "logFormat",
	}
}

// Default returns the default configuration.
func Default() *RawArgs {
	return &RawArgs{
		Species: []string{ "electrons" },
		Frames: "0",
		Quantities: []string{ "PID", "Weight", "Position", "Momentum" },
		BinSize: 0.5,
		PeakWidth: 50,
		Spread: "fwhm",
		EmittanceAxis: "x",
		ResultDir: "results",
		Write: true,
		Figure: true,
		Threads: 1,
		LogLevel: "info",
		LogFormat: "text",
	}
}

// Load returns the defaults overwritten by the config file at path (if path
// is non-empty) and then by environment variables.
func Load(path string) (*RawArgs, error) {
	args := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("Could not read the config file %s: %w",
				path, err)
		}
		if err := decode(string(data), args); err != nil {
			return nil, fmt.Errorf("Could not parse the config file %s: %w",
				path, err)
		}
	}

	if err := args.applyEnv(os.LookupEnv); err != nil { return nil, err }
	return args, nil
}

func decode(text string, args *RawArgs) error {
	if strings.TrimSpace(text) == "" { return nil }
	dec := yaml.NewDecoder(strings.NewReader(text))
	dec.KnownFields(true)
	return dec.Decode(args)
}

// stringKeys are the variables whose values are always taken literally
// instead of being parsed as YAML. File patterns in particular often start
// with characters that YAML reserves.
var stringKeys = map[string]bool{
	"input": true, "frames": true, "spread": true, "emittanceAxis": true,
	"resultDir": true, "logLevel": true, "logFormat": true,
}

// Set overwrites a single variable. Non-string values are parsed as YAML, so
// lists are written as "[a, b]" and an empty value clears the variable.
func (args *RawArgs) Set(key, value string) error {
	k, ok := canonicalKey(key)
	if !ok {
		return fmt.Errorf("'%s' is not a config variable. The recognized " +
			"variables are %s.", key, strings.Join(Keys(), ", "))
	}

	val := &yaml.Node{ Kind: yaml.ScalarNode, Tag: "!!str", Value: value }
	if !stringKeys[k] {
		doc := &yaml.Node{ }
		if err := yaml.Unmarshal([]byte(value), doc); err != nil {
			return fmt.Errorf("The value '%s' given to %s is not valid " +
				"YAML: %w", value, k, err)
		}
		if len(doc.Content) == 0 {
			val = &yaml.Node{ Kind: yaml.ScalarNode, Tag: "!!null" }
		} else {
			val = doc.Content[0]
		}
	}

	m := &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{ { Kind: yaml.ScalarNode, Value: k }, val },
	}
	if err := m.Decode(args); err != nil {
		return fmt.Errorf("The value '%s' given to %s is not valid: %w",
			value, k, err)
	}
	return nil
}

// Overwrite calls Set on each key-value pair, in order.
func (args *RawArgs) Overwrite(overrides [][2]string) error {
	for _, kv := range overrides {
		if err := args.Set(kv[0], kv[1]); err != nil { return err }
	}
	return nil
}

func (args *RawArgs) applyEnv(lookup func(string) (string, bool)) error {
	for _, k := range Keys() {
		v, ok := lookup(EnvPrefix + strings.ToUpper(k))
		if !ok { continue }
		if err := args.Set(k, v); err != nil {
			return fmt.Errorf("Could not apply %s%s: %w",
				EnvPrefix, strings.ToUpper(k), err)
		}
	}
	return nil
}

func canonicalKey(key string) (string, bool) {
	for _, k := range Keys() {
		if strings.EqualFold(k, key) { return k, true }
	}
	return "", false
}

// ParseCommandLine splits the command line arguments (without the program
// name) into the mode, the name of the config file, and any overrides that
// were set. Expects that the arguments are presented in the order:
// $ lpadiag <mode> [<config file>] [--<Arg1> <Value1>] [--<Arg2> <Value2>]
func ParseCommandLine(
	argv []string,
) (mode, configFile string, overrides [][2]string, err error) {
	if len(argv) == 0 {
		return "", "", nil, fmt.Errorf("No mode was given.")
	}
	mode, argv = argv[0], argv[1:]

	if len(argv) > 0 && !strings.HasPrefix(argv[0], "--") {
		configFile, argv = argv[0], argv[1:]
	}

	for i := 0; i < len(argv); i += 2 {
		if !strings.HasPrefix(argv[i], "--") || len(argv[i]) == 2 {
			return "", "", nil, fmt.Errorf("Expected an argument of the " +
				"form '--<Key>', but got '%s'.", argv[i])
		} else if i + 1 >= len(argv) {
			return "", "", nil, fmt.Errorf("The argument '%s' was not " +
				"given a value.", argv[i])
		}
		overrides = append(overrides, [2]string{ argv[i][2:], argv[i+1] })
	}

	return mode, configFile, overrides, nil
}
