package player

import (
	"github.com/robotalks/ambar.go/pkg/abc"
	"github.com/robotalks/ambar.go/pkg/l0/comm"
)

// Step is the result of one Stepper call. Frequency is 0 for rests and
// at the end.
type Step struct {
	Frequency int
	// Rest is set when the note was a rest.
	Rest bool
	// End is set when no note was left; the cursor has been rewound and
	// the next call starts from the beginning.
	End bool
}

// Stepper yields one note per call, keeping a cursor between calls.
// It is not safe for concurrent use.
type Stepper struct {
	text    string
	key     abc.Key
	channel comm.Channel
	index   int
	started bool
}

// Next returns the next note of text. A call with a different text, key
// or channel than the previous call restarts from the beginning.
func (s *Stepper) Next(text string, key abc.Key, ch comm.Channel) Step {
	if !s.started || text != s.text || key != s.key || ch != s.channel {
		s.text, s.key, s.channel = text, key, ch
		s.index, s.started = 0, true
	}
	for {
		s.index = abc.SkipSeparators(s.text, s.index)
		if s.index >= len(s.text) {
			s.index = 0
			return Step{End: true}
		}
		tok, next, ok := abc.Tokenize(s.text, s.index)
		s.index = next
		if !ok {
			continue
		}
		if tok.IsRest() {
			return Step{Rest: true}
		}
		return Step{Frequency: comm.RoundValue(abc.Frequency(tok, s.key))}
	}
}

// Index returns the offset the next call continues from.
func (s *Stepper) Index() int {
	return s.index
}

// Reset rewinds the cursor.
func (s *Stepper) Reset() {
	s.index = 0
}
