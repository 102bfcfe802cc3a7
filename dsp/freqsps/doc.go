// Package freqsps estimates the residual carrier frequency offset and the
// samples-per-symbol of a digitally modulated complex baseband signal
// without knowledge of the modulation.
//
// Each block of Decimation samples is raised to the 2nd, 4th and 8th power.
// For an M-PSK or QAM signal one of these nonlinearities strips the
// modulation and leaves a spectral line at M times the carrier offset, and
// the symbol-rate cyclostationarity shows up as side lines spaced one symbol
// rate apart. The estimator picks the nonlinearity whose magnitude spectrum
// is most concentrated (peak divided by total), reads the offset from its
// peak, optionally refines it below one bin with a Goertzel search, reads
// the symbol rate from the strongest remaining line, and derotates the
// block with a phase accumulator that persists across blocks.
//
// An offset seen through the Mth power is only unambiguous for
// |offset| < 0.5/M cycles/sample.
package freqsps
