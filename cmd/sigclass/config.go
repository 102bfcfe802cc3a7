package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-cbmc/dsp/core"
	"github.com/cwbudde/algo-cbmc/dsp/modclass"
)

// config is the merged result of the optional YAML file and the flags.
// Flags win over the file for every option they set explicitly.
type config struct {
	Decimation   int  `yaml:"decimation"`
	Subdivisions int  `yaml:"subdivisions"`
	Probe        bool `yaml:"probe"`
	Verbose      bool `yaml:"verbose"`

	Input   string `yaml:"input"`
	Output  string `yaml:"output"`
	Metrics string `yaml:"metrics"`
	Expect  string `yaml:"expect"`

	Synth synthConfig `yaml:"synth"`
}

type synthConfig struct {
	Modulation string  `yaml:"modulation"`
	Offset     float64 `yaml:"offset"`
	SPS        int     `yaml:"sps"`
	Blocks     int     `yaml:"blocks"`
	Noise      float64 `yaml:"noise"`
	Seed       uint64  `yaml:"seed"`
}

func defaultConfig() config {
	block := core.DefaultBlockConfig()
	return config{
		Decimation:   block.Decimation,
		Subdivisions: block.Subdivisions,
		Synth: synthConfig{
			SPS:    8,
			Blocks: 8,
			Seed:   1,
		},
	}
}

func loadConfigFile(path string, cfg *config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// flagValues mirrors config for pflag; only flags the user changed are
// copied over the file values.
type flagValues struct {
	configPath string
	cfg        config
}

func newFlagSet(v *flagValues) *pflag.FlagSet {
	fs := pflag.NewFlagSet("sigclass", pflag.ContinueOnError)
	d := defaultConfig()

	fs.StringVarP(&v.configPath, "config", "c", "", "YAML configuration file.")
	fs.IntVarP(&v.cfg.Decimation, "decimation", "d", d.Decimation, "Samples per analysis block.")
	fs.IntVarP(&v.cfg.Subdivisions, "subdivisions", "s", d.Subdivisions, "Sub-bin refinement factor, 1 disables refinement.")
	fs.BoolVarP(&v.cfg.Probe, "probe", "p", false, "Keep the classifier decision log and print it at the end.")
	fs.BoolVarP(&v.cfg.Verbose, "verbose", "v", false, "Log debug output.")
	fs.StringVarP(&v.cfg.Input, "input", "i", "", "Interleaved little-endian float32 IQ file, - for stdin.")
	fs.StringVarP(&v.cfg.Output, "output", "o", "", "Write the corrected samples to this file.")
	fs.StringVarP(&v.cfg.Metrics, "metrics", "m", "", "Write Prometheus metrics to this textfile when done.")
	fs.StringVarP(&v.cfg.Expect, "expect", "e", "", "Modulation that was sent; adds a verification column.")
	fs.StringVar(&v.cfg.Synth.Modulation, "synth", "", "Synthesise bpsk, qpsk, 8psk or 16qam instead of reading input.")
	fs.Float64Var(&v.cfg.Synth.Offset, "offset", 0, "Synthetic carrier offset in cycles/sample.")
	fs.IntVar(&v.cfg.Synth.SPS, "sps", d.Synth.SPS, "Synthetic samples per symbol.")
	fs.IntVar(&v.cfg.Synth.Blocks, "blocks", d.Synth.Blocks, "Number of synthetic blocks.")
	fs.Float64Var(&v.cfg.Synth.Noise, "noise", 0, "Synthetic noise standard deviation per component.")
	fs.Uint64Var(&v.cfg.Synth.Seed, "seed", d.Synth.Seed, "Synthetic symbol and noise seed.")

	return fs
}

// resolveConfig parses args, applies the config file and then every flag
// that was set explicitly.
func resolveConfig(args []string) (config, error) {
	var v flagValues
	fs := newFlagSet(&v)
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	cfg := defaultConfig()
	if v.configPath != "" {
		if err := loadConfigFile(v.configPath, &cfg); err != nil {
			return config{}, err
		}
	}

	overrides := map[string]func(){
		"decimation":   func() { cfg.Decimation = v.cfg.Decimation },
		"subdivisions": func() { cfg.Subdivisions = v.cfg.Subdivisions },
		"probe":        func() { cfg.Probe = v.cfg.Probe },
		"verbose":      func() { cfg.Verbose = v.cfg.Verbose },
		"input":        func() { cfg.Input = v.cfg.Input },
		"output":       func() { cfg.Output = v.cfg.Output },
		"metrics":      func() { cfg.Metrics = v.cfg.Metrics },
		"expect":       func() { cfg.Expect = v.cfg.Expect },
		"synth":        func() { cfg.Synth.Modulation = v.cfg.Synth.Modulation },
		"offset":       func() { cfg.Synth.Offset = v.cfg.Synth.Offset },
		"sps":          func() { cfg.Synth.SPS = v.cfg.Synth.SPS },
		"blocks":       func() { cfg.Synth.Blocks = v.cfg.Synth.Blocks },
		"noise":        func() { cfg.Synth.Noise = v.cfg.Synth.Noise },
		"seed":         func() { cfg.Synth.Seed = v.cfg.Synth.Seed },
	}
	fs.Visit(func(f *pflag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply()
		}
	})
	if fs.NArg() > 0 && !fs.Changed("input") {
		cfg.Input = fs.Arg(0)
	}

	return cfg, cfg.validate()
}

var errNoSource = errors.New("no input: pass --input, a file argument or --synth")

func (c config) validate() error {
	if c.Decimation <= 0 {
		return fmt.Errorf("decimation must be > 0: %d", c.Decimation)
	}
	if c.Subdivisions < 1 {
		return fmt.Errorf("subdivisions must be >= 1: %d", c.Subdivisions)
	}
	if c.Input == "" && c.Synth.Modulation == "" {
		return errNoSource
	}
	if c.Input != "" && c.Synth.Modulation != "" {
		return errors.New("--input and --synth are mutually exclusive")
	}
	if c.Synth.Modulation != "" {
		if _, err := modclass.ParseModulation(c.Synth.Modulation); err != nil {
			return err
		}
		if c.Synth.SPS < 1 {
			return fmt.Errorf("sps must be >= 1: %d", c.Synth.SPS)
		}
		if c.Synth.Blocks < 1 {
			return fmt.Errorf("blocks must be >= 1: %d", c.Synth.Blocks)
		}
		if c.Synth.Offset < -0.5 || c.Synth.Offset >= 0.5 {
			return fmt.Errorf("offset must be in [-0.5, 0.5): %v", c.Synth.Offset)
		}
	}
	if _, err := c.expected(); err != nil {
		return err
	}
	return nil
}

// expected returns the modulation named by Expect, or nil when no
// verification was requested.
func (c config) expected() (*modclass.Modulation, error) {
	if c.Expect == "" {
		return nil, nil
	}
	m, err := modclass.ParseModulation(c.Expect)
	if err != nil {
		return nil, fmt.Errorf("expect: %w", err)
	}
	return &m, nil
}

// blockOptions maps the config onto the analyzer options.
func (c config) blockOptions() []core.BlockOption {
	return []core.BlockOption{
		core.WithDecimation(c.Decimation),
		core.WithSubdivisions(c.Subdivisions),
		core.WithProbe(c.Probe),
	}
}
