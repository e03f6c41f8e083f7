package timecode

import "time"

// Symbol is one second of the JJY timecode. Markers are a third pulse-width
// class distinct from the data bits.
type Symbol uint8

const (
	Zero Symbol = iota
	One
	Marker
)

// Carrier-on durations per symbol; the remainder of the one-second slot is
// carrier-off.
const (
	MarkerWidth = 200 * time.Millisecond
	OneWidth    = 500 * time.Millisecond
	ZeroWidth   = 800 * time.Millisecond

	SymbolPeriod = time.Second
)

// PulseWidth returns how long the carrier stays enabled for the symbol.
func (s Symbol) PulseWidth() time.Duration {
	switch s {
	case One:
		return OneWidth
	case Marker:
		return MarkerWidth
	default:
		return ZeroWidth
	}
}

func (s Symbol) String() string {
	switch s {
	case Zero:
		return "0"
	case One:
		return "1"
	case Marker:
		return "M"
	default:
		return "?"
	}
}

// Variant selects between the two minute-dependent frame layouts.
type Variant uint8

const (
	// VariantStandard carries year and weekday fields.
	VariantStandard Variant = iota
	// VariantCallSign replaces them with reserved call-sign and station-ID
	// fields; transmitted at minutes 15 and 45.
	VariantCallSign
)

// VariantFor selects the layout for the minute about to be transmitted.
func VariantFor(minute int) Variant {
	if minute == 15 || minute == 45 {
		return VariantCallSign
	}
	return VariantStandard
}

func (v Variant) String() string {
	if v == VariantCallSign {
		return "callsign"
	}
	return "standard"
}
