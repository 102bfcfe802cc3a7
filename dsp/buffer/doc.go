// Package buffer provides reusable sample buffers for allocation-friendly
// block processing. Buffer doubles as a FIFO that collects arbitrarily sized
// chunks until whole blocks are available; Pool recycles scratch buffers in
// hot paths. All DSP functions accept raw slices; Buffer is an optional
// convenience.
package buffer
