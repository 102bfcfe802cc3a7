// Package blind chains carrier offset estimation and modulation
// classification over a stream of complex baseband samples.
//
// An Analyzer cuts the stream into blocks of Decimation samples. Each block
// is frequency corrected by a freqsps.Estimator and the corrected block is
// classified and phase corrected by a modclass.Classifier. Every processed
// block yields a Report, and Tags turns reports into the per-block
// annotations ("det_sps", "det_mod") a downstream consumer attaches to the
// first sample of each block.
package blind
