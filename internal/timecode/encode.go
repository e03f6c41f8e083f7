package timecode

// FrameLen is the number of symbols in one minute frame, one per second.
const FrameLen = 60

// Frame is one minute of timecode; the index is the second-of-minute.
type Frame [FrameLen]Symbol

// markerPositions are fixed for both layouts: M, P1..P5, P0.
var markerPositions = [...]int{0, 9, 19, 29, 39, 49, 59}

func (f Frame) String() string {
	buf := make([]byte, 0, FrameLen)
	for _, s := range f {
		buf = append(buf, s.String()[0])
	}
	return string(buf)
}

// Encode builds the minute frame for t.
//
// Both layouts share the prefix: minute BCD, hour BCD, year-day BCD and the
// PA1/PA2 parity bits. The standard layout then carries the two-digit year
// and the weekday; the call-sign layout (minutes 15 and 45) carries reserved
// call-sign and station-ID fields, all emitted as zero. Leap-second and
// summer-time bits are always zero.
func Encode(t CalendarTime) (Frame, error) {
	if err := t.Validate(); err != nil {
		return Frame{}, err
	}

	var b frameBuilder
	b.marker() // M
	pa2 := b.bcd(t.Minute/10, 3)
	b.zeros(1)
	pa2 += b.bcd(t.Minute, 4)
	b.marker() // P1
	b.zeros(2)
	pa1 := b.bcd(t.Hour/10, 2)
	b.zeros(1)
	pa1 += b.bcd(t.Hour, 4)
	b.marker() // P2
	b.zeros(2)
	b.bcd(t.YearDay/100, 2)
	b.zeros(1)
	b.bcd(t.YearDay/10, 4)
	b.marker() // P3
	b.bcd(t.YearDay, 4)
	b.zeros(2)
	b.bit(pa1 % 2) // PA1
	b.bit(pa2 % 2) // PA2

	switch VariantFor(t.Minute) {
	case VariantStandard:
		b.zeros(1) // SU1
		b.marker() // P4
		b.zeros(1) // SU2
		b.bcd(t.Year/10, 4)
		b.bcd(t.Year, 4)
		b.marker() // P5
		b.bcd((t.Weekday+1)%7, 3)
		b.zeros(2) // LS1, LS2
		b.zeros(4)
	case VariantCallSign:
		b.zeros(1)
		b.marker() // P4
		b.zeros(9) // call sign
		b.marker() // P5
		b.zeros(6) // ST1..ST6
		b.zeros(3)
	}
	b.marker() // P0

	return b.frame, nil
}

// frameBuilder appends symbols at the next free position. Encode always
// fills all 60 slots; the layouts above account for every position.
type frameBuilder struct {
	frame Frame
	n     int
}

func (b *frameBuilder) put(s Symbol) {
	b.frame[b.n] = s
	b.n++
}

func (b *frameBuilder) marker() {
	b.put(Marker)
}

func (b *frameBuilder) zeros(count int) {
	for i := 0; i < count; i++ {
		b.put(Zero)
	}
}

func (b *frameBuilder) bit(v int) {
	if v&1 == 1 {
		b.put(One)
	} else {
		b.put(Zero)
	}
}

// bcd emits the low decimal digit of value as width bits, most significant
// first, and returns the number of one bits for parity accumulation.
func (b *frameBuilder) bcd(value, width int) int {
	digit := value % 10
	ones := 0
	for pos := width - 1; pos >= 0; pos-- {
		bit := (digit >> pos) & 1
		b.bit(bit)
		ones += bit
	}
	return ones
}
