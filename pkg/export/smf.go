// Package export renders notation into Standard MIDI Files.
package export

import (
	"io"
	"math"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/robotalks/ambar.go/pkg/abc"
)

// TicksPerQuarter is the resolution of exported files.
const TicksPerQuarter = 480

// Options controls exported notes.
type Options struct {
	Key      abc.Key
	Timing   abc.Timing
	Channel  uint8
	Velocity uint8
	// Gap is the silence after each note in milliseconds, matching playback.
	Gap int
}

// DefaultOptions returns options matching the default player.
func DefaultOptions() Options {
	return Options{
		Key:      abc.KeyC,
		Timing:   abc.DefaultTiming(),
		Velocity: 100,
		Gap:      50,
	}
}

// Build creates a single-track SMF from notes. Each note lasts the same
// time as during playback, rests and gaps become delays.
func Build(notes string, opts Options) (*smf.SMF, error) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(TicksPerQuarter)

	tempo := abc.ClampTempo(opts.Timing.Tempo)
	num, denom := opts.Timing.Meter.Fraction()
	var track smf.Track
	track.Add(0, smf.MetaTempo(float64(tempo)))
	track.Add(0, smf.MetaMeter(num, denom))

	var delay uint32
	for sc := abc.NewScanner(notes); sc.Scan(); {
		tok := sc.Token()
		ticks := msToTicks(opts.Timing.Millis(tok.Length), tempo)
		key, ok := abc.MIDINote(tok, opts.Key)
		if !ok || abc.Resolve(tok, opts.Key) <= 0 {
			delay += ticks
			continue
		}
		track.Add(delay, midi.NoteOn(opts.Channel, key, opts.Velocity))
		track.Add(ticks, midi.NoteOff(opts.Channel, key))
		delay = msToTicks(opts.Gap, tempo)
	}
	track.Close(delay)
	if err := s.Add(track); err != nil {
		return nil, err
	}
	return s, nil
}

// WriteSMF writes notes as a MIDI file to w.
func WriteSMF(w io.Writer, notes string, opts Options) error {
	s, err := Build(notes, opts)
	if err != nil {
		return err
	}
	_, err = s.WriteTo(w)
	return err
}

func msToTicks(ms, tempo int) uint32 {
	return uint32(math.Round(float64(ms) * TicksPerQuarter * float64(tempo) / 60000))
}
