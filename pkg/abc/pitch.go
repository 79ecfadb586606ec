package abc

import "math"

// ReferenceOctave is the octave of the uppercase letters A-G.
const ReferenceOctave = 4

// SemitoneRatio is the frequency ratio of one equal-tempered semitone.
var SemitoneRatio = math.Pow(2, 1.0/12)

// basePitches are the natural frequencies in Hz at the reference octave.
var basePitches = map[Letter]float64{
	'C': 261.63,
	'D': 293.66,
	'E': 329.63,
	'F': 349.23,
	'G': 392.00,
	'A': 440.00,
	'B': 493.88,
}

// semitones are the offsets of the natural letters from C.
var semitones = map[Letter]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

// BaseFrequency returns the natural frequency of a letter at the
// reference octave, or 0 for anything but A-G.
func BaseFrequency(l Letter) float64 {
	return basePitches[l]
}

// alteration returns the semitone alteration of a token in a key.
// An explicit accidental overrides the key signature.
func alteration(tok Token, key Key) int {
	switch tok.Accidental {
	case Sharp:
		return 1
	case Flat:
		return -1
	case Natural:
		return 0
	}
	return key.Adjust(tok.Letter)
}

// Frequency computes the frequency in Hz without rounding.
func Frequency(tok Token, key Key) float64 {
	freq := BaseFrequency(tok.Letter)
	if freq == 0 {
		return 0
	}
	switch alteration(tok, key) {
	case 1:
		freq *= SemitoneRatio
	case -1:
		freq /= SemitoneRatio
	}
	return freq * math.Pow(2, float64(tok.Octave-ReferenceOctave))
}

// Resolve computes the frequency of a token in a key, rounded to the
// nearest Hz. Rests resolve to 0.
func Resolve(tok Token, key Key) int {
	return int(math.Round(Frequency(tok, key)))
}

// MIDINote returns the MIDI key number of a token in a key (C4 = 60).
// ok is false for rests and notes outside 0-127.
func MIDINote(tok Token, key Key) (note uint8, ok bool) {
	semi, found := semitones[tok.Letter]
	if !found {
		return 0, false
	}
	n := (tok.Octave+1)*12 + semi + alteration(tok, key)
	if n < 0 || n > 127 {
		return 0, false
	}
	return uint8(n), true
}
