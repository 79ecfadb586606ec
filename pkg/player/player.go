// Package player drives note playback over the L0 link.
package player

import (
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/ambar.go/pkg/abc"
	"github.com/robotalks/ambar.go/pkg/l0/comm"
)

// DefaultGap is the silence inserted after each note.
const DefaultGap = 50 * time.Millisecond

// Sender sends values on a channel. Send may suppress repeated values,
// Force always writes.
type Sender interface {
	Send(comm.Channel, int) error
	Force(comm.Channel, int) error
}

// Pauser blocks for a duration.
type Pauser interface {
	Pause(time.Duration)
}

// PauseFunc is func form of Pauser.
type PauseFunc func(time.Duration)

// Pause implements Pauser.
func (f PauseFunc) Pause(d time.Duration) {
	f(d)
}

// Sleep pauses using time.Sleep.
var Sleep Pauser = PauseFunc(time.Sleep)

// Player plays notation synchronously on one channel.
type Player struct {
	Sender  Sender
	Pauser  Pauser
	Channel comm.Channel
	Key     abc.Key
	Timing  abc.Timing
	Gap     time.Duration
}

// New creates a Player with default key, timing and gap.
func New(sender Sender) *Player {
	return &Player{
		Sender: sender,
		Pauser: Sleep,
		Key:    abc.KeyC,
		Timing: abc.DefaultTiming(),
		Gap:    DefaultGap,
	}
}

// Play sends every note of notes and blocks for its duration. Each note is
// followed by a 0 value and the gap; rests send 0 and wait. Silence is
// forced at the end. Empty notes send nothing.
// Only a transport error stops playback early.
func (p *Player) Play(notes string) error {
	if notes == "" {
		return nil
	}
	for sc := abc.NewScanner(notes); sc.Scan(); {
		tok := sc.Token()
		dur := p.Timing.Duration(tok.Length)
		freq := comm.RoundValue(abc.Frequency(tok, p.Key))
		glog.V(3).Infof("%s: %d Hz %v", tok, freq, dur)
		if freq <= 0 {
			if err := p.Sender.Send(p.Channel, 0); err != nil {
				return err
			}
			p.pause(dur)
			continue
		}
		if err := p.Sender.Send(p.Channel, freq); err != nil {
			return err
		}
		p.pause(dur)
		if err := p.Sender.Send(p.Channel, 0); err != nil {
			return err
		}
		p.pause(p.Gap)
	}
	return p.Sender.Force(p.Channel, 0)
}

// Step pulls one note from the stepper for notes using the player's key
// and channel, and sends the resulting value. Empty notes send nothing
// and report the end.
func (p *Player) Step(s *Stepper, notes string) (Step, error) {
	if notes == "" {
		return Step{End: true}, nil
	}
	step := s.Next(notes, p.Key, p.Channel)
	return step, p.Sender.Send(p.Channel, step.Frequency)
}

func (p *Player) pause(d time.Duration) {
	if d > 0 && p.Pauser != nil {
		p.Pauser.Pause(d)
	}
}
