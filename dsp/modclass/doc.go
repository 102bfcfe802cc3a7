// Package modclass classifies the modulation of a block of complex baseband
// symbols as BPSK, QPSK, 8PSK or 16QAM from its normalized fourth-order
// cumulant.
//
// The magnitude of C40 normalized by C21^2 is invariant to carrier phase and
// signal scaling and takes the values 2 (BPSK), 1 (QPSK), 0.68 (16QAM) and
// 0 (8PSK) for noise-free symbols. After deciding, the classifier estimates
// the residual carrier phase with an Mth-power estimator matched to the
// decision and derotates the block.
//
// Classify is the recommended path. ClassifyLegacy keeps the earlier
// phase-shift-first decision tree, which compares the real part of C40 after
// derotating under each hypothesis; it is known to report QPSK blocks as
// 16QAM and is kept for comparison only.
package modclass
