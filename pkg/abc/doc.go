// Package abc resolves a subset of ABC notation into pitches and durations.
package abc

// The supported subset covers one melodic line: note letters A-G (octave 4)
// and a-g (octave 5), the rest z, accidental prefixes ^ = _, trailing
// accidentals # b, octave marks ' and , and duration suffixes (a digit,
// /digit or a bare /). Bar lines, repeat colons and whitespace separate
// tokens and are otherwise ignored.
//
// Pitches use twelve-tone equal temperament with A4 = 440 Hz and are
// rounded to whole Hz. Durations are derived from a Timing (tempo, meter
// and default note length) and rounded to whole milliseconds.
