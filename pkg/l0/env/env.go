// Package env opens the L0 link described by the environment.
package env

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/golang/glog"

	"github.com/robotalks/ambar.go/pkg/l0/comm"
	"github.com/robotalks/ambar.go/pkg/l0/comm/mqtt"
	"github.com/robotalks/ambar.go/pkg/l0/comm/websocket"
)

// Config defines where the device is.
type Config struct {
	// LinkURL is one of
	//   serial:///dev/ttyACM0 (or a bare path)
	//   tcp://host:port
	//   ws://host:port/path, wss://...
	//   mqtt://broker:1883/prefix
	//   stdio:
	LinkURL  string
	DeviceID string
}

// ErrUnknownScheme indicates the link URL scheme is not supported.
var ErrUnknownScheme = errors.New("unknown link scheme")

var defaultConfig = Config{
	LinkURL: "serial:///dev/ttyACM0",
}

func init() {
	if val := os.Getenv("AMBAR_LINK_URL"); val != "" {
		defaultConfig.LinkURL = val
	}
	if val := os.Getenv("AMBAR_DEVICE_ID"); val != "" {
		defaultConfig.DeviceID = val
	}
}

// SetupFlags registers flags for the default config.
func SetupFlags() {
	flag.StringVar(&defaultConfig.LinkURL, "link", defaultConfig.LinkURL, "Link URL of the device.")
	flag.StringVar(&defaultConfig.DeviceID, "device", defaultConfig.DeviceID, "Device ID (MQTT topic prefix), defaults to machine ID.")
}

// Default returns the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a new config by copying the default config.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Device returns DeviceID or the machine ID.
func (c *Config) Device() string {
	if c.DeviceID != "" {
		return c.DeviceID
	}
	return MachineID()
}

// Scheme returns the normalized scheme of LinkURL.
func (c *Config) Scheme() (string, *url.URL, error) {
	if strings.HasPrefix(c.LinkURL, "/") {
		return "serial", &url.URL{Scheme: "serial", Path: c.LinkURL}, nil
	}
	u, err := url.Parse(c.LinkURL)
	if err != nil {
		return "", nil, err
	}
	switch u.Scheme {
	case "serial", "file":
		return "serial", u, nil
	case "tcp", "ws", "wss", "stdio":
		return u.Scheme, u, nil
	case "mqtt", "mqtts":
		return "mqtt", u, nil
	}
	return "", nil, fmt.Errorf("%w: %q", ErrUnknownScheme, u.Scheme)
}

// Open opens the byte stream to the device.
func (c *Config) Open() (io.ReadWriteCloser, error) {
	scheme, u, err := c.Scheme()
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof("OPEN %s", c.LinkURL)
	var rw io.ReadWriteCloser
	switch scheme {
	case "serial":
		var f *os.File
		if f, err = os.OpenFile(u.Path, os.O_RDWR, 0); err == nil {
			rw = f
		}
	case "tcp":
		rw, err = net.Dial("tcp", u.Host)
	case "ws", "wss":
		origin := "http://" + u.Host
		if scheme == "wss" {
			origin = "https://" + u.Host
		}
		var ws *websocket.ReadWriter
		if ws, err = websocket.Dial(c.LinkURL, origin); err == nil {
			rw = ws
		}
	case "mqtt":
		var q *mqtt.ReadWriter
		if q, err = mqtt.Dial(c.LinkURL, c.Device()); err == nil {
			rw = q
		}
	case "stdio":
		rw = stdio{}
	}
	if err != nil {
		return nil, err
	}
	return rw, nil
}

// NewLink opens the stream and creates a Link on it.
func (c *Config) NewLink(handler comm.FrameHandler) (*comm.Link, error) {
	rw, err := c.Open()
	if err != nil {
		return nil, err
	}
	l := comm.NewLink(rw)
	l.Handler = handler
	return l, nil
}

type stdio struct{}

func (stdio) Read(b []byte) (int, error)  { return os.Stdin.Read(b) }
func (stdio) Write(b []byte) (int, error) { return os.Stdout.Write(b) }
func (stdio) Close() error                { return nil }
