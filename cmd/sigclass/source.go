package main

import (
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/cwbudde/algo-cbmc/dsp/modclass"
)

// chunkSamples is the read size for file and stdin input.
const chunkSamples = 4096

// source delivers samples either from a synthetic signal or an IQ stream.
type source struct {
	cfg    config
	reader *iqReader
	closer io.Closer
}

func openSource(cfg config, stdin io.Reader) (*source, error) {
	s := &source{cfg: cfg}
	if cfg.Synth.Modulation != "" {
		return s, nil
	}

	r := stdin
	if cfg.Input != "-" {
		f, err := os.Open(cfg.Input)
		if err != nil {
			return nil, err
		}
		s.closer = f
		r = f
	}
	s.reader = newIQReader(r)

	return s, nil
}

// Close releases the input file, if any.
func (s *source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// feed passes all samples to consume in order.
func (s *source) feed(consume func([]complex128) error, logger *log.Logger) error {
	if s.reader == nil {
		m, err := modclass.ParseModulation(s.cfg.Synth.Modulation)
		if err != nil {
			return err
		}
		syn := s.cfg.Synth
		logger.Debug("synthesising", "mod", m, "offset", syn.Offset, "sps", syn.SPS, "blocks", syn.Blocks, "noise", syn.Noise)
		return consume(synthesize(m, syn, syn.Blocks*s.cfg.Decimation))
	}

	chunk := make([]complex128, chunkSamples)
	for {
		n, err := s.reader.ReadSamples(chunk)
		if n > 0 {
			if cerr := consume(chunk[:n]); cerr != nil {
				return cerr
			}
		}
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, errTruncated):
			logger.Warn("input truncated", "err", err)
			return nil
		default:
			return err
		}
	}
}
