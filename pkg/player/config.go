package player

import (
	"flag"
	"os"
	"strconv"

	"github.com/robotalks/ambar.go/pkg/abc"
	"github.com/robotalks/ambar.go/pkg/l0/comm"
)

// Config defines the playback settings.
type Config struct {
	Channel comm.Channel
	Key     abc.Key
	Tempo   int
	Meter   abc.TimeSignature
	Length  abc.NoteLength
}

var defaultConfig = Config{
	Channel: comm.ChannelA,
	Key:     abc.KeyG,
	Tempo:   abc.DefaultTempo,
	Meter:   abc.FourFour,
	Length:  abc.QuarterNote,
}

func init() {
	if val := os.Getenv("AMBAR_CHANNEL"); val != "" {
		defaultConfig.Channel.Set(val)
	}
	if val := os.Getenv("AMBAR_KEY"); val != "" {
		defaultConfig.Key.Set(val)
	}
	if val := os.Getenv("AMBAR_TEMPO"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			defaultConfig.Tempo = n
		}
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.Var(&defaultConfig.Channel, "channel", "Channel a-e.")
	flag.Var(&defaultConfig.Key, "key", "Major key, e.g. G, F#, Bb.")
	flag.IntVar(&defaultConfig.Tempo, "tempo", defaultConfig.Tempo, "Tempo in BPM (60-200).")
	flag.Var(&defaultConfig.Meter, "meter", "Time signature, e.g. 4/4, 6/8.")
	flag.Var(&defaultConfig.Length, "length", "Default note length, e.g. 1/4, 1/8.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Timing returns the timing settings.
func (c *Config) Timing() abc.Timing {
	return abc.Timing{Tempo: c.Tempo, Meter: c.Meter, Length: c.Length}
}

// NewPlayer creates a Player using the config.
func (c *Config) NewPlayer(sender Sender) *Player {
	p := New(sender)
	p.Channel = c.Channel
	p.Key = c.Key
	p.Timing = c.Timing()
	return p
}
