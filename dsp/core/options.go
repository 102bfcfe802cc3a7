package core

// BlockConfig defines the block-analysis settings shared by the estimator,
// the classifier and the stream analyzer.
type BlockConfig struct {
	// Decimation is the number of samples per analysis block.
	Decimation int
	// Subdivisions is the Goertzel refinement factor. 1 disables refinement.
	Subdivisions int
	// Probe enables the classifier diagnostic logs.
	Probe bool
}

// BlockOption mutates a BlockConfig.
type BlockOption func(*BlockConfig)

// DefaultBlockConfig returns defaults suited to narrowband captures.
func DefaultBlockConfig() BlockConfig {
	return BlockConfig{
		Decimation:   512,
		Subdivisions: 16,
	}
}

// WithDecimation sets the block size.
func WithDecimation(decimation int) BlockOption {
	return func(cfg *BlockConfig) {
		if decimation > 0 {
			cfg.Decimation = decimation
		}
	}
}

// WithSubdivisions sets the sub-bin refinement factor.
func WithSubdivisions(subdivisions int) BlockOption {
	return func(cfg *BlockConfig) {
		if subdivisions > 0 {
			cfg.Subdivisions = subdivisions
		}
	}
}

// WithProbe enables or disables diagnostic logging.
func WithProbe(enabled bool) BlockOption {
	return func(cfg *BlockConfig) {
		cfg.Probe = enabled
	}
}

// ApplyBlockOptions applies zero or more options to the default config.
func ApplyBlockOptions(opts ...BlockOption) BlockConfig {
	cfg := DefaultBlockConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
