package abc

import (
	"strconv"
	"strings"
)

// Letter is a note letter A-G or Rest.
type Letter byte

// Rest is the letter of a rest token.
const Rest Letter = 'z'

// IsNote indicates the letter is one of A-G.
func (l Letter) IsNote() bool {
	return l >= 'A' && l <= 'G'
}

// Accidental is an explicit accidental written on a note.
type Accidental int

// Accidentals.
const (
	NoAccidental Accidental = iota
	Sharp
	Flat
	Natural
)

// String implements fmt.Stringer.
func (a Accidental) String() string {
	switch a {
	case Sharp:
		return "^"
	case Flat:
		return "_"
	case Natural:
		return "="
	}
	return ""
}

// Duration is a rational length multiplier relative to the default note
// length. The zero value means 1.
type Duration struct {
	Num int
	Den int
}

// Whole is the multiplier used when no duration suffix is written.
var Whole = Duration{Num: 1, Den: 1}

// Float returns the multiplier as a float.
func (d Duration) Float() float64 {
	if d.Den == 0 {
		if d.Num == 0 {
			return 1
		}
		return float64(d.Num)
	}
	return float64(d.Num) / float64(d.Den)
}

// String implements fmt.Stringer.
func (d Duration) String() string {
	if d.Den <= 1 {
		return strconv.Itoa(d.Num)
	}
	return strconv.Itoa(d.Num) + "/" + strconv.Itoa(d.Den)
}

// Token is one note or rest scanned from notation.
type Token struct {
	Letter     Letter
	Accidental Accidental
	// Octave is the resolved octave, 4 for A-G, 5 for a-g, shifted by
	// octave marks.
	Octave int
	Length Duration
}

// IsRest indicates the token is a rest.
func (t Token) IsRest() bool {
	return t.Letter == Rest
}

// String formats the token back into notation.
func (t Token) String() string {
	var sb strings.Builder
	if t.IsRest() {
		sb.WriteByte(byte(Rest))
	} else {
		sb.WriteString(t.Accidental.String())
		octave := t.Octave
		if octave >= ReferenceOctave+1 {
			sb.WriteByte(byte(t.Letter) + 'a' - 'A')
			octave--
		} else {
			sb.WriteByte(byte(t.Letter))
		}
		for ; octave > ReferenceOctave; octave-- {
			sb.WriteByte('\'')
		}
		for ; octave < ReferenceOctave; octave++ {
			sb.WriteByte(',')
		}
	}
	if t.Length != Whole {
		if t.Length.Num == 1 && t.Length.Den > 1 {
			sb.WriteString("/" + strconv.Itoa(t.Length.Den))
		} else {
			sb.WriteString(t.Length.String())
		}
	}
	return sb.String()
}
