package blind

import (
	"github.com/cwbudde/algo-cbmc/dsp/modclass"
)

// Tag keys.
const (
	KeySPS      = "det_sps"
	KeyMod      = "det_mod"
	KeyVerified = "Verified"
)

// Verification outcomes carried by KeyVerified tags.
const (
	Passed = "Passed"
	Failed = "Failed"
)

// Tag annotates the stream sample at Offset.
type Tag struct {
	Offset int64
	Key    string
	// Value is a float64 for KeySPS and a string otherwise.
	Value any
}

// Tags returns one KeySPS and one KeyMod tag per analysed report, in stream
// order. Skipped reports produce no tags.
func Tags(reports []Report) []Tag {
	tags := make([]Tag, 0, 2*len(reports))
	for _, r := range reports {
		if r.Skipped {
			continue
		}
		tags = append(tags,
			Tag{Offset: r.Offset, Key: KeySPS, Value: r.Estimate.SamplesPerSymbol},
			Tag{Offset: r.Offset, Key: KeyMod, Value: r.Modulation.String()},
		)
	}
	return tags
}

// Verify compares every analysed report against the modulation that was
// actually sent and returns one KeyVerified tag per report.
func Verify(reports []Report, sent modclass.Modulation) []Tag {
	tags := make([]Tag, 0, len(reports))
	for _, r := range reports {
		if r.Skipped {
			continue
		}
		v := Failed
		if r.Modulation == sent {
			v = Passed
		}
		tags = append(tags, Tag{Offset: r.Offset, Key: KeyVerified, Value: v})
	}
	return tags
}

// Accuracy returns the fraction of analysed reports whose decision equals
// sent, or 0 when nothing was analysed.
func Accuracy(reports []Report, sent modclass.Modulation) float64 {
	var hits, total int
	for _, r := range reports {
		if r.Skipped {
			continue
		}
		total++
		if r.Modulation == sent {
			hits++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
