package player

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/ambar.go/pkg/abc"
	"github.com/robotalks/ambar.go/pkg/l0/comm"
)

// recorder logs frames written and pauses in order.
type recorder struct {
	events []string
	err    error
}

func (r *recorder) Write(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.events = append(r.events, string(p))
	return len(p), nil
}

func (r *recorder) Pause(d time.Duration) {
	r.events = append(r.events, d.String())
}

func newTestPlayer(r *recorder) *Player {
	p := New(comm.NewEncoder(r))
	p.Pauser = r
	return p
}

func TestPlayScenario(t *testing.T) {
	var r recorder
	p := newTestPlayer(&r)
	p.Key = abc.KeyC
	p.Timing = abc.Timing{Tempo: 120, Meter: abc.FourFour, Length: abc.QuarterNote}
	require.NoError(t, p.Play("GABc"))
	require.Equal(t, []string{
		"sa392e", "500ms", "sa0e", "50ms",
		"sa440e", "500ms", "sa0e", "50ms",
		"sa494e", "500ms", "sa0e", "50ms",
		"sa523e", "500ms", "sa0e", "50ms",
		"sa0e",
	}, r.events)
}

func TestPlay(t *testing.T) {
	testCases := []struct {
		name    string
		notes   string
		key     abc.Key
		channel comm.Channel
		timing  abc.Timing
		expect  []string
	}{
		{
			name:   "empty",
			notes:  "",
			timing: abc.DefaultTiming(),
		},
		{
			name:   "nothing playable",
			notes:  "|: x :|",
			timing: abc.DefaultTiming(),
			expect: []string{"sa0e"},
		},
		{
			name:   "rest",
			notes:  "Cz2D",
			timing: abc.DefaultTiming(),
			expect: []string{
				"sa262e", "500ms", "sa0e", "50ms",
				"1s",
				"sa294e", "500ms", "sa0e", "50ms",
				"sa0e",
			},
		},
		{
			name:    "key and channel",
			notes:   "F =F",
			key:     abc.KeyG,
			channel: comm.ChannelD,
			timing:  abc.Timing{Tempo: 60, Meter: abc.SixEight, Length: abc.EighthNote},
			expect: []string{
				"sd370e", "250ms", "sd0e", "50ms",
				"sd349e", "250ms", "sd0e", "50ms",
				"sd0e",
			},
		},
		{
			name:   "zero length",
			notes:  "A0",
			timing: abc.DefaultTiming(),
			expect: []string{"sa440e", "sa0e", "50ms", "sa0e"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var r recorder
			p := newTestPlayer(&r)
			p.Key, p.Channel, p.Timing = tc.key, tc.channel, tc.timing
			require.NoError(t, p.Play(tc.notes))
			require.Equal(t, tc.expect, r.events)
		})
	}
}

func TestPlayTempoClamp(t *testing.T) {
	play := func(tempo int) []string {
		var r recorder
		p := newTestPlayer(&r)
		p.Timing.Tempo = tempo
		require.NoError(t, p.Play("CD/E2"))
		return r.events
	}
	require.Equal(t, play(60), play(30))
	require.Equal(t, play(200), play(500))
	require.NotEqual(t, play(60), play(200))
}

func TestPlayTransportError(t *testing.T) {
	r := recorder{err: errors.New("unplugged")}
	p := newTestPlayer(&r)
	require.Equal(t, r.err, p.Play("CDE"))
	require.Empty(t, r.events)
}

func TestPlayerStep(t *testing.T) {
	var r recorder
	p := newTestPlayer(&r)
	p.Channel = comm.ChannelB
	var s Stepper
	for _, expect := range []Step{{Frequency: 262}, {Rest: true}, {Frequency: 262}, {End: true}} {
		step, err := p.Step(&s, "CzC")
		require.NoError(t, err)
		require.Equal(t, expect, step)
	}
	require.Equal(t, []string{"sb262e", "sb0e", "sb262e", "sb0e"}, r.events)
}

func TestPlayerStepEmpty(t *testing.T) {
	var r recorder
	p := newTestPlayer(&r)
	var s Stepper
	step, err := p.Step(&s, "")
	require.NoError(t, err)
	require.Equal(t, Step{End: true}, step)
	require.Empty(t, r.events)
}

func TestPlayHighNoteClamped(t *testing.T) {
	var r recorder
	p := newTestPlayer(&r)
	p.Gap = 0
	require.NoError(t, p.Play("c"))
	require.Equal(t, "sa20000e", r.events[0])
}

func TestConfigNewPlayer(t *testing.T) {
	conf := NewConfig()
	conf.Channel = comm.ChannelC
	conf.Key = abc.KeyEb
	conf.Tempo = 90
	conf.Meter = abc.NineEight
	conf.Length = abc.EighthNote
	p := conf.NewPlayer(comm.NewEncoder(nil))
	require.Equal(t, comm.ChannelC, p.Channel)
	require.Equal(t, abc.KeyEb, p.Key)
	require.Equal(t, abc.Timing{Tempo: 90, Meter: abc.NineEight, Length: abc.EighthNote}, p.Timing)
	require.Equal(t, DefaultGap, p.Gap)
}
