package comm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChannel(t *testing.T) {
	for n := 0; n < NumChannels; n++ {
		ch := Channel(n)
		require.True(t, ch.IsValid())
		parsed, ok := ChannelFromLetter(ch.Letter())
		require.True(t, ok)
		require.Equal(t, ch, parsed)
	}
	require.False(t, Channel(5).IsValid())
	_, ok := ChannelFromLetter('f')
	require.False(t, ok)
	require.Equal(t, "C", ChannelC.String())
}

func TestParseChannel(t *testing.T) {
	testCases := []struct {
		in     string
		expect Channel
	}{
		{"a", ChannelA},
		{"B", ChannelB},
		{" e ", ChannelE},
		{"0", ChannelA},
		{"4", ChannelE},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			ch, err := ParseChannel(tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.expect, ch)
		})
	}
	for _, in := range []string{"", "f", "5", "ab"} {
		_, err := ParseChannel(in)
		require.Error(t, err, in)
	}
}

func TestFrame(t *testing.T) {
	testCases := []struct {
		name   string
		frame  Frame
		expect string
	}{
		{"zero", Frame{ChannelA, 0}, "sa0e"},
		{"pitch", Frame{ChannelB, 440}, "sb440e"},
		{"max", Frame{ChannelE, MaxValue}, "se20000e"},
		{"clamp high", Frame{ChannelC, 65535}, "sc20000e"},
		{"clamp low", Frame{ChannelD, -3}, "sd0e"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, []byte(tc.expect), tc.frame.Bytes())
			var buf bytes.Buffer
			n, err := tc.frame.WriteTo(&buf)
			require.NoError(t, err)
			require.Equal(t, tc.expect, buf.String())
			require.Equal(t, int64(len(tc.expect)), n)
		})
	}
}

func TestRoundValue(t *testing.T) {
	require.Equal(t, 0, RoundValue(-1))
	require.Equal(t, 262, RoundValue(261.63))
	require.Equal(t, 20000, RoundValue(1e9))
	require.Equal(t, 19999, RoundValue(19999.4))
}
