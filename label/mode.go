package label

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/gnnlimit/core"
)

// ErrUnknownMode indicates an unset or unrecognized generation mode.
var ErrUnknownMode = core.NewInvalid("label: unknown generation mode")

// Mode selects the labeling rule. The zero value is ModeUnset, which every
// operation rejects: a mode must always be chosen explicitly.
type Mode int

const (
	// ModeUnset is the invalid zero value.
	ModeUnset Mode = iota
	// ModeParity labels by parity of n.
	ModeParity
	// ModeAverageDegree labels by average degree (2- or 3-class).
	ModeAverageDegree
)

const (
	modeParityName        = "parity"
	modeAverageDegreeName = "average_degree"
)

// ParseMode maps "parity" / "average_degree" (case-insensitive) to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case modeParityName:
		return ModeParity, nil
	case modeAverageDegreeName:
		return ModeAverageDegree, nil
	default:
		return ModeUnset, fmt.Errorf("ParseMode: %q: %w", s, ErrUnknownMode)
	}
}

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeParity:
		return modeParityName
	case ModeAverageDegree:
		return modeAverageDegreeName
	default:
		return "unset"
	}
}

// Valid reports whether m is a known, explicitly chosen mode.
func (m Mode) Valid() bool { return m == ModeParity || m == ModeAverageDegree }

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("MarshalText: %d: %w", int(m), ErrUnknownMode)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler; YAML and JSON configs
// decode the mode through it.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// NumClasses reports how many classes mode produces: 2 for parity and the
// 2-class average-degree rule, 3 when split thresholds are supplied.
func NumClasses(mode Mode, split *Split) (int, error) {
	switch mode {
	case ModeParity:
		return 2, nil
	case ModeAverageDegree:
		if split != nil {
			return 3, nil
		}
		return 2, nil
	default:
		return 0, fmt.Errorf("NumClasses: %v: %w", mode, ErrUnknownMode)
	}
}
