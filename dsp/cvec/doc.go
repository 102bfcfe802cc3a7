// Package cvec provides element-wise primitives over complex sample blocks.
//
// The functions mirror the small kernel set a block-based classifier needs:
// squaring, conjugation, products, rotation and block means for complex
// slices, plus magnitude, sum and arg-max reductions over real slices.
// Reductions over real data are delegated to gonum; magnitudes use the
// SIMD-dispatched kernels from algo-vecmath.
//
// Like the vecmath kernels, functions taking a destination panic when the
// lengths disagree. dst may alias src.
package cvec
