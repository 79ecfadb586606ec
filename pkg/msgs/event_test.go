package msgs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/ambar.go/pkg/l0/comm"
)

func TestFrameEvent(t *testing.T) {
	ev := NewFrameEvent("dev1", DirectionToDevice, comm.Frame{Channel: comm.ChannelC, Value: 25000})
	require.Equal(t, uint32(comm.MaxValue), ev.Value)
	require.NotZero(t, ev.Timestamp)

	data, err := ev.Encode()
	require.NoError(t, err)
	decoded, err := DecodeFrameEvent(data)
	require.NoError(t, err)
	require.Equal(t, ev, decoded)

	f, err := decoded.Frame()
	require.NoError(t, err)
	require.Equal(t, comm.Frame{Channel: comm.ChannelC, Value: comm.MaxValue}, f)
}

func TestFrameEventBadChannel(t *testing.T) {
	_, err := (&FrameEvent{Channel: "x"}).Frame()
	require.Error(t, err)
}
