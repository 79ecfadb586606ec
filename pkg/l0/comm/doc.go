// Package comm provides L0 protocol support.
package comm

// L0 protocol is communicated between the microcontroller driving the
// sound output and a host over a peer-to-peer channel (e.g. serial port).
//
// Each frame carries one unsigned value for one of five logical channels
// as plain ASCII: 's', the channel letter 'a'-'e', the decimal value and
// the terminator 'e'. Values are clamped to [0, MaxValue]. There is no
// checksum and no escaping; a malformed frame is dropped and the parser
// resynchronizes on the next terminator.
//
// The sending side keeps the last value written per channel and
// suppresses repeated values, so a frame is only emitted on change.
