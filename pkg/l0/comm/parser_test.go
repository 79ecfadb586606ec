package comm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func parseAll(p *Parser, in string) []Frame {
	var frames []Frame
	for n := 0; n < len(in); n++ {
		if f, ok := p.Parse(in[n]); ok {
			frames = append(frames, f)
		}
	}
	return frames
}

func TestParser(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		expect  []Frame
		dropped int
	}{
		{"single", "sa440e", []Frame{{ChannelA, 440}}, 0},
		{"sequence", "sa1esb22ese333e", []Frame{{ChannelA, 1}, {ChannelB, 22}, {ChannelE, 333}}, 0},
		{"leading zeros", "sc007e", []Frame{{ChannelC, 7}}, 0},
		{"no range check", "sd99999e", []Frame{{ChannelD, 99999}}, 0},
		{"bad start", "xz12e", nil, 1},
		{"truncated", "sae", nil, 1},
		{"empty", "e", nil, 1},
		{"bad channel", "sf12e", nil, 1},
		{"uppercase channel", "sA12e", nil, 1},
		{"sign", "sa-1e", nil, 1},
		{"garbage digits", "sa1x2e", nil, 1},
		{"resync after garbage", "xyz123esb5e", []Frame{{ChannelB, 5}}, 1},
		{"garbage before start", "xsa5esa6e", []Frame{{ChannelA, 6}}, 1},
		{"too long", "sa12345678901234567e", nil, 1},
		{"too long then valid", "sa12345678901234567esa1e", []Frame{{ChannelA, 1}}, 1},
		{"channel e", "se5e", []Frame{{ChannelE, 5}}, 0},
		{"lone start swallows next frame", "sese5e", nil, 2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var p Parser
			require.Equal(t, tc.expect, parseAll(&p, tc.in))
			require.Equal(t, tc.dropped, p.Dropped())
			require.Equal(t, 0, p.Buffered())
		})
	}
}

func TestParserRoundTrip(t *testing.T) {
	var p Parser
	for n := 0; n < NumChannels; n++ {
		for _, v := range []int{0, 1, 9, 10, 101, 440, 4186, 19999, MaxValue} {
			f := Frame{Channel: Channel(n), Value: v}
			require.Equal(t, []Frame{f}, parseAll(&p, f.String()))
		}
	}
	require.Equal(t, 0, p.Dropped())
}

func TestParserReset(t *testing.T) {
	var p Parser
	require.Empty(t, parseAll(&p, "sa12"))
	require.Equal(t, 4, p.Buffered())
	p.Reset()
	require.Equal(t, []Frame{{ChannelB, 3}}, parseAll(&p, "sb3e"))
}

func TestParserDroppedWhileParsing(t *testing.T) {
	var p Parser
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			for _, b := range []byte("xz12e") {
				p.Parse(b)
			}
		}
	}()
	for last := 0; ; {
		n := p.Dropped()
		require.True(t, n >= last)
		last = n
		select {
		case <-done:
			require.Equal(t, 100, p.Dropped())
			return
		default:
		}
	}
}
