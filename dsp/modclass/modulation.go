package modclass

import "fmt"

// Modulation is a classifier decision. The numeric codes are stable and are
// what the diagnostic log records.
type Modulation int

const (
	PSK8  Modulation = 0
	QAM16 Modulation = 1
	QPSK  Modulation = 2
	BPSK  Modulation = 3
)

var modulationNames = [...]string{
	PSK8:  "8PSK",
	QAM16: "16QAM",
	QPSK:  "QPSK",
	BPSK:  "BPSK",
}

// String returns the conventional name, e.g. "16QAM".
func (m Modulation) String() string {
	if m < 0 || int(m) >= len(modulationNames) {
		return fmt.Sprintf("Modulation(%d)", int(m))
	}
	return modulationNames[m]
}

// ParseModulation maps a name such as "qpsk" or "16QAM" to its Modulation.
func ParseModulation(name string) (Modulation, error) {
	switch name {
	case "8PSK", "8psk", "psk8":
		return PSK8, nil
	case "16QAM", "16qam", "qam16":
		return QAM16, nil
	case "QPSK", "qpsk":
		return QPSK, nil
	case "BPSK", "bpsk":
		return BPSK, nil
	}
	return 0, fmt.Errorf("modclass: unknown modulation %q", name)
}

// phaseParams returns the power M and weight my of the Mth-power phase
// estimator matched to m. my = -0.68 compensates the negative C40 of 16QAM.
func (m Modulation) phaseParams() (power int, weight float64) {
	switch m {
	case PSK8:
		return 8, 1
	case QAM16:
		return 4, -0.68
	case QPSK:
		return 4, 1
	default:
		return 2, 1
	}
}
