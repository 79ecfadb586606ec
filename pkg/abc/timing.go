package abc

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Tempo bounds in beats per minute.
const (
	MinTempo     = 60
	MaxTempo     = 200
	DefaultTempo = 120
)

// ClampTempo limits bpm to [MinTempo, MaxTempo].
func ClampTempo(bpm int) int {
	if bpm < MinTempo {
		return MinTempo
	}
	if bpm > MaxTempo {
		return MaxTempo
	}
	return bpm
}

// TimeSignature selects the meter.
type TimeSignature int

// Supported meters.
const (
	FourFour TimeSignature = iota
	ThreeFour
	TwoFour
	SixEight
	NineEight
	TwelveEight
	TwoTwo
	ThreeEight
)

var meters = []struct {
	name        string
	beats, unit uint8
}{
	FourFour:    {"4/4", 4, 4},
	ThreeFour:   {"3/4", 3, 4},
	TwoFour:     {"2/4", 2, 4},
	SixEight:    {"6/8", 6, 8},
	NineEight:   {"9/8", 9, 8},
	TwelveEight: {"12/8", 12, 8},
	TwoTwo:      {"2/2", 2, 2},
	ThreeEight:  {"3/8", 3, 8},
}

// IsValid indicates the time signature is supported.
func (ts TimeSignature) IsValid() bool {
	return ts >= 0 && int(ts) < len(meters)
}

// Fraction returns numerator and denominator.
func (ts TimeSignature) Fraction() (beats, unit uint8) {
	if !ts.IsValid() {
		return 4, 4
	}
	return meters[ts].beats, meters[ts].unit
}

// IsCompound indicates the beat unit is an eighth note.
func (ts TimeSignature) IsCompound() bool {
	_, unit := ts.Fraction()
	return unit == 8
}

// String implements fmt.Stringer.
func (ts TimeSignature) String() string {
	if !ts.IsValid() {
		return fmt.Sprintf("TimeSignature(%d)", int(ts))
	}
	return meters[ts].name
}

// Set implements flag.Value.
func (ts *TimeSignature) Set(s string) error {
	v, err := ParseTimeSignature(s)
	if err != nil {
		return err
	}
	*ts = v
	return nil
}

// ParseTimeSignature parses meters like "6/8". "C" is common time and
// "C|" is cut time.
func ParseTimeSignature(s string) (TimeSignature, error) {
	name := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	switch name {
	case "C":
		return FourFour, nil
	case "C|":
		return TwoTwo, nil
	}
	for n := range meters {
		if meters[n].name == name {
			return TimeSignature(n), nil
		}
	}
	return FourFour, fmt.Errorf("unsupported time signature %q", s)
}

// NoteLength is the default note length a duration multiplier of 1 means.
type NoteLength int

// Default note lengths.
const (
	WholeNote NoteLength = iota
	HalfNote
	QuarterNote
	EighthNote
	SixteenthNote
)

var noteLengths = []struct {
	name     string
	alias    string
	quarters float64
}{
	WholeNote:     {"1", "whole", 4},
	HalfNote:      {"1/2", "half", 2},
	QuarterNote:   {"1/4", "quarter", 1},
	EighthNote:    {"1/8", "eighth", 0.5},
	SixteenthNote: {"1/16", "sixteenth", 0.25},
}

// IsValid indicates the note length is supported.
func (l NoteLength) IsValid() bool {
	return l >= 0 && int(l) < len(noteLengths)
}

// Quarters returns the length in quarter notes.
func (l NoteLength) Quarters() float64 {
	if !l.IsValid() {
		return 1
	}
	return noteLengths[l].quarters
}

// String implements fmt.Stringer.
func (l NoteLength) String() string {
	if !l.IsValid() {
		return fmt.Sprintf("NoteLength(%d)", int(l))
	}
	return noteLengths[l].name
}

// Set implements flag.Value.
func (l *NoteLength) Set(s string) error {
	v, err := ParseNoteLength(s)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// ParseNoteLength parses "1/8" or "eighth" style lengths.
func ParseNoteLength(s string) (NoteLength, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for n := range noteLengths {
		if noteLengths[n].name == name || noteLengths[n].alias == name {
			return NoteLength(n), nil
		}
	}
	return QuarterNote, fmt.Errorf("unsupported note length %q", s)
}

// Timing converts duration multipliers into wall-clock durations.
type Timing struct {
	// Tempo in BPM, clamped to [MinTempo, MaxTempo] on use.
	Tempo  int
	Meter  TimeSignature
	Length NoteLength
}

// DefaultTiming is 120 BPM, 4/4 with quarter notes.
func DefaultTiming() Timing {
	return Timing{Tempo: DefaultTempo, Meter: FourFour, Length: QuarterNote}
}

// BeatMillis is the length of one beat in milliseconds.
func (t Timing) BeatMillis() float64 {
	return 60000 / float64(ClampTempo(t.Tempo))
}

// Beats returns the length of a duration multiplier in beats.
// Compound meters halve the base duration.
func (t Timing) Beats(d Duration) float64 {
	base := 1.0
	if t.Meter.IsCompound() {
		base = 0.5
	}
	return base * t.Length.Quarters() * d.Float()
}

// Millis returns the rounded length of a duration multiplier in
// milliseconds.
func (t Timing) Millis(d Duration) int {
	return int(math.Round(t.BeatMillis() * t.Beats(d)))
}

// Duration returns the length of a duration multiplier.
func (t Timing) Duration(d Duration) time.Duration {
	return time.Duration(t.Millis(d)) * time.Millisecond
}
