// Command sigclass estimates carrier offset and samples per symbol and
// classifies the modulation of a complex baseband capture, block by block.
//
// Usage:
//
//	sigclass [flags] [iq-file]
//
// Input is interleaved little-endian float32 I/Q. Use - to read stdin.
//
// Examples:
//
//	sigclass capture.cf32
//	sigclass -d 1024 -s 32 capture.cf32
//	sigclass --synth qpsk --offset 0.01 --sps 8 --expect qpsk
//	sigclass -c sigclass.yaml --probe
//	sigclass --metrics /var/lib/node_exporter/sigclass.prom capture.cf32
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-cbmc/dsp/modclass"
	"github.com/cwbudde/algo-cbmc/measure/blind"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		os.Exit(1)
	}
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "sigclass",
		Level:  log.InfoLevel,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := resolveConfig(args)
	if err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			newLogger(stderr, false).Error("invalid arguments", "err", err)
		}
		return err
	}

	logger := newLogger(stderr, cfg.Verbose)

	expect, err := cfg.expected()
	if err != nil {
		logger.Error("invalid arguments", "err", err)
		return err
	}
	logger.Debug("configuration", "decimation", cfg.Decimation, "subdivisions", cfg.Subdivisions, "probe", cfg.Probe)

	source, err := openSource(cfg, stdin)
	if err != nil {
		logger.Error("loading samples failed", "err", err)
		return err
	}
	defer source.Close()

	analyzer, err := blind.New(cfg.blockOptions()...)
	if err != nil {
		logger.Error("creating analyzer failed", "err", err)
		return err
	}

	var sink *os.File
	if cfg.Output != "" {
		if sink, err = os.Create(cfg.Output); err != nil {
			logger.Error("creating output failed", "err", err)
			return err
		}
		defer sink.Close()
	}

	var (
		registry *prometheus.Registry
		metrics  *blind.Metrics
	)
	if cfg.Metrics != "" {
		registry = prometheus.NewRegistry()
		metrics = blind.NewMetrics(registry)
	}

	var (
		reports []blind.Report
		written int
	)
	consume := func(chunk []complex128) error {
		r, out, err := analyzer.Write(chunk)
		reports = append(reports, r...)
		metrics.Observe(r...)
		if err != nil {
			return err
		}
		if sink != nil && len(out) > 0 {
			if err := writeIQ(sink, out); err != nil {
				return err
			}
			written += len(out)
		}
		return nil
	}

	if err := source.feed(consume, logger); err != nil {
		logger.Error("analysis stopped", "err", err, "blocks", len(reports))
		return err
	}

	if n := analyzer.Pending(); n > 0 {
		logger.Warn("ignoring trailing partial block", "samples", n)
	}
	if len(reports) == 0 {
		logger.Warn("input shorter than one block", "samples", analyzer.Pending(), "decimation", cfg.Decimation)
	}


	if err := printReports(stdout, reports, expect); err != nil {
		return err
	}

	summary := analyzer.Summary()
	logger.Debug("stream envelope", "samples", summary.Length, "power_db", fmt.Sprintf("%.2f", summary.Power_dB),
		"papr_db", fmt.Sprintf("%.2f", summary.PAPR_dB), "envelope_kurtosis", fmt.Sprintf("%.3f", summary.EnvelopeKurtosis))

	if expect != nil {
		metrics.ObserveVerification(reports, *expect)
	}
	if registry != nil {
		if err := prometheus.WriteToTextfile(cfg.Metrics, registry); err != nil {
			logger.Error("writing metrics failed", "err", err)
			return err
		}
		logger.Debug("wrote metrics", "path", cfg.Metrics)
	}

	if expect != nil && len(reports) > 0 {
		logger.Info("verification", "expected", *expect, "accuracy", fmt.Sprintf("%.1f%%", 100*blind.Accuracy(reports, *expect)))
	}
	if cfg.Probe {
		logger.Info("decision log", "mod", analyzer.Classifier().StoredMod(), "c40", analyzer.Classifier().StoredCumu())
	}

	if sink != nil {
		if err := sink.Close(); err != nil {
			logger.Error("writing corrected samples failed", "err", err)
			return err
		}
		logger.Debug("wrote corrected samples", "path", cfg.Output, "samples", written)
	}

	return nil
}

func printReports(w io.Writer, reports []blind.Report, expect *modclass.Modulation) error {
	var verified map[int64]any
	if expect != nil {
		verified = make(map[int64]any, len(reports))
		for _, tag := range blind.Verify(reports, *expect) {
			verified[tag.Offset] = tag.Value
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := "BLOCK\tSAMPLE\tPOWER dB\tPAPR dB\tOFFSET\tSPS\tORDER\tMOD\t|C40|"
	if expect != nil {
		header += "\tVERIFIED"
	}
	fmt.Fprintln(tw, header)

	for i, r := range reports {
		if r.Skipped {
			fmt.Fprintf(tw, "%d\t%d\t-inf\t-\t-\t-\t-\tsilent\t-", i, r.Offset)
		} else {
			fmt.Fprintf(tw, "%d\t%d\t%.1f\t%.1f\t%+.6f\t%.2f\t%d\t%s\t%.3f",
				i, r.Offset, r.PowerDB, r.PAPRDB, r.Estimate.Offset, r.Estimate.SamplesPerSymbol,
				r.Estimate.Order, r.Modulation, r.AbsC40)
		}
		if expect != nil {
			v, ok := verified[r.Offset]
			if !ok {
				v = "-"
			}
			fmt.Fprintf(tw, "\t%v", v)
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}
