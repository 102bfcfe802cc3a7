package main

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Interleaved little-endian float32 I/Q, the layout of a complex file sink.
const bytesPerSample = 8

var errTruncated = errors.New("input ends inside a sample")

// iqReader decodes samples from a byte stream in chunks.
type iqReader struct {
	r   *bufio.Reader
	buf []byte
}

func newIQReader(r io.Reader) *iqReader {
	return &iqReader{r: bufio.NewReader(r)}
}

// ReadSamples fills dst and returns the number of samples decoded. It
// returns io.EOF once the stream is exhausted and errTruncated when the
// stream ends inside a sample.
func (r *iqReader) ReadSamples(dst []complex128) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if need := len(dst) * bytesPerSample; cap(r.buf) < need {
		r.buf = make([]byte, need)
	}
	buf := r.buf[:len(dst)*bytesPerSample]

	n, err := io.ReadFull(r.r, buf)
	whole := n / bytesPerSample
	for i := range whole {
		rec := buf[i*bytesPerSample:]
		re := math.Float32frombits(binary.LittleEndian.Uint32(rec))
		im := math.Float32frombits(binary.LittleEndian.Uint32(rec[4:]))
		dst[i] = complex(float64(re), float64(im))
	}

	switch {
	case err == nil:
		return whole, nil
	case errors.Is(err, io.EOF):
		return 0, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		if rem := n % bytesPerSample; rem != 0 {
			return whole, fmt.Errorf("%w: %d trailing bytes", errTruncated, rem)
		}
		return whole, nil
	default:
		return whole, fmt.Errorf("read IQ: %w", err)
	}
}

// writeIQ writes samples to w as float32 pairs.
func writeIQ(w io.Writer, samples []complex128) error {
	bw := bufio.NewWriter(w)
	var rec [bytesPerSample]byte
	for _, s := range samples {
		binary.LittleEndian.PutUint32(rec[:4], math.Float32bits(float32(real(s))))
		binary.LittleEndian.PutUint32(rec[4:], math.Float32bits(float32(imag(s))))
		if _, err := bw.Write(rec[:]); err != nil {
			return fmt.Errorf("write IQ: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write IQ: %w", err)
	}
	return nil
}
