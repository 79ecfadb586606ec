package msgs

import (
	"time"

	"github.com/golang/protobuf/proto"

	"github.com/robotalks/ambar.go/pkg/l0/comm"
)

// Directions of a frame relative to the host.
const (
	DirectionToDevice   = "in"
	DirectionFromDevice = "out"
)

// FrameEvent reports a frame seen on a device link.
type FrameEvent struct {
	Device    string `protobuf:"bytes,1,opt,name=device,proto3" json:"device,omitempty"`
	Channel   string `protobuf:"bytes,2,opt,name=channel,proto3" json:"channel,omitempty"`
	Value     uint32 `protobuf:"varint,3,opt,name=value,proto3" json:"value,omitempty"`
	Direction string `protobuf:"bytes,4,opt,name=direction,proto3" json:"direction,omitempty"`
	Timestamp int64  `protobuf:"varint,5,opt,name=timestamp,proto3" json:"timestamp,omitempty"`
}

// Reset implements proto.Message.
func (m *FrameEvent) Reset() { *m = FrameEvent{} }

// String implements proto.Message.
func (m *FrameEvent) String() string { return proto.CompactTextString(m) }

// ProtoMessage implements proto.Message.
func (*FrameEvent) ProtoMessage() {}

// NewFrameEvent creates a FrameEvent stamped with the current time.
func NewFrameEvent(device, direction string, f comm.Frame) *FrameEvent {
	return &FrameEvent{
		Device:    device,
		Channel:   f.Channel.String(),
		Value:     uint32(comm.ClampValue(f.Value)),
		Direction: direction,
		Timestamp: time.Now().UnixNano() / int64(time.Millisecond),
	}
}

// Frame converts the event back to a frame.
func (m *FrameEvent) Frame() (comm.Frame, error) {
	ch, err := comm.ParseChannel(m.Channel)
	if err != nil {
		return comm.Frame{}, err
	}
	return comm.Frame{Channel: ch, Value: int(m.Value)}, nil
}

// Encode serializes the event.
func (m *FrameEvent) Encode() ([]byte, error) {
	return proto.Marshal(m)
}

// DecodeFrameEvent parses a serialized event.
func DecodeFrameEvent(data []byte) (*FrameEvent, error) {
	m := &FrameEvent{}
	if err := proto.Unmarshal(data, m); err != nil {
		return nil, err
	}
	return m, nil
}
