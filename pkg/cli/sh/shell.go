// Package sh provides the interactive ambar shell.
package sh

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/ambar.go/pkg/abc"
	"github.com/robotalks/ambar.go/pkg/l0/comm"
	"github.com/robotalks/ambar.go/pkg/l0/env"
	"github.com/robotalks/ambar.go/pkg/player"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	AutoOpen    bool

	Shell  *ishell.Shell
	Config *env.Config
	Player *player.Config
	Conn   *Conn

	stepper player.Stepper
}

// Conn is an open link with its receive loop.
type Conn struct {
	URL    string
	Link   *comm.Link
	Cancel func()
	Done   chan error
}

const (
	shellKey     = "$shell"
	closedPrompt = "[none] > "
)

var (
	evalOnly bool

	commands = []*ishell.Cmd{
		&OpenCmd,
		&CloseCmd,
		&SendCmd,
		&PlayCmd,
		&StepCmd,
		&KeyCmd,
		&TempoCmd,
		&MeterCmd,
		&LengthCmd,
		&ChannelCmd,
		&StatusCmd,
	}
)

// SetupFlags registers shell flags.
func SetupFlags() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
}

// New creates a new shell.
func New(conf *env.Config, playerConf *player.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		Shell:       ishell.New(),
		Config:      conf,
		Player:      playerConf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(closedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeOpen wraps command func requiring an open link.
func MustBeOpen(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Conn == nil {
			c.Err(fmt.Errorf("not open"))
			return
		}
		fn(c)
	}
}

// WithAutoOpen sets AutoOpen.
func (s *Shell) WithAutoOpen(en bool) *Shell {
	s.AutoOpen = en
	return s
}

// Open opens the link at url, replacing the current one. Received frames
// are printed.
func (s *Shell) Open(url string) error {
	conf := *s.Config
	if url != "" {
		conf.LinkURL = url
	}
	link, err := conf.NewLink(comm.HandleFrameFunc(func(_ context.Context, f comm.Frame) {
		s.Shell.Printf("<- %s\n", f)
	}))
	if err != nil {
		return err
	}
	s.Close()
	ctx, cancel := context.WithCancel(context.Background())
	conn := &Conn{URL: conf.LinkURL, Link: link, Cancel: cancel, Done: make(chan error, 1)}
	go func() {
		conn.Done <- link.Run(ctx)
	}()
	s.Conn = conn
	s.stepper.Reset()
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", conf.LinkURL))
	return nil
}

// Close closes the current link.
func (s *Shell) Close() {
	if s.Conn == nil {
		return
	}
	s.Conn.Cancel()
	s.Conn.Link.Close()
	s.Conn = nil
	s.Shell.SetPrompt(closedPrompt)
}

// NewPlayer creates a player on the open link.
func (s *Shell) NewPlayer() *player.Player {
	return s.Player.NewPlayer(s.Conn.Link)
}

// Status describes the link and playback settings.
func (s *Shell) Status() string {
	var b strings.Builder
	if s.Conn == nil {
		b.WriteString("link: none\n")
	} else {
		fmt.Fprintf(&b, "link: %s (dropped %d)\n", s.Conn.URL, s.Conn.Link.Dropped())
	}
	p := s.Player
	fmt.Fprintf(&b, "channel: %s\nkey: %s\ntempo: %d\nmeter: %s\nlength: %s\n",
		p.Channel, p.Key, abc.ClampTempo(p.Tempo), p.Meter, p.Length)
	return b.String()
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if s.AutoOpen {
		if err := s.Open(""); err != nil {
			log.Fatalf("open %q failed: %v", s.Config.LinkURL, err)
		}
		defer s.Close()
	}
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

func setValue(c *ishell.Context, name string, v flag.Value) {
	if len(c.Args) == 0 {
		c.Println(v.String())
		return
	}
	if err := v.Set(c.Args[0]); err != nil {
		c.Err(fmt.Errorf("%s: %v", name, err))
	}
}

type intValue struct{ p *int }

func (v intValue) String() string { return strconv.Itoa(*v.p) }

func (v intValue) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err == nil {
		*v.p = n
	}
	return err
}

var (
	// OpenCmd opens a link.
	OpenCmd = ishell.Cmd{
		Name:    "open",
		Aliases: []string{"o"},
		Help:    "[URL]",
		Func: func(c *ishell.Context) {
			var url string
			if len(c.Args) > 0 {
				url = c.Args[0]
			}
			if err := ShellFrom(c).Open(url); err != nil {
				c.Err(err)
			}
		},
	}

	// CloseCmd closes the link.
	CloseCmd = ishell.Cmd{
		Name: "close",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Close()
		},
	}

	// SendCmd sends a raw value on a channel.
	SendCmd = ishell.Cmd{
		Name:    "send",
		Aliases: []string{"s"},
		Help:    "CHANNEL VALUE",
		Func: MustBeOpen(func(c *ishell.Context) {
			if len(c.Args) != 2 {
				c.Err(fmt.Errorf("usage: send CHANNEL VALUE"))
				return
			}
			ch, err := comm.ParseChannel(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			value, err := strconv.Atoi(c.Args[1])
			if err != nil {
				c.Err(err)
				return
			}
			if err := ShellFrom(c).Conn.Link.Force(ch, value); err != nil {
				c.Err(err)
			}
		}),
	}

	// PlayCmd plays notes synchronously.
	PlayCmd = ishell.Cmd{
		Name:    "play",
		Aliases: []string{"p"},
		Help:    "NOTES",
		Func: MustBeOpen(func(c *ishell.Context) {
			if err := ShellFrom(c).NewPlayer().Play(strings.Join(c.Args, " ")); err != nil {
				c.Err(err)
			}
		}),
	}

	// StepCmd sends the next note of NOTES.
	StepCmd = ishell.Cmd{
		Name:    "step",
		Aliases: []string{"n"},
		Help:    "NOTES",
		Func: MustBeOpen(func(c *ishell.Context) {
			s := ShellFrom(c)
			step, err := s.NewPlayer().Step(&s.stepper, strings.Join(c.Args, " "))
			if err != nil {
				c.Err(err)
				return
			}
			switch {
			case step.End:
				c.Println("end")
			case step.Rest:
				c.Println("rest")
			default:
				c.Printf("%d Hz\n", step.Frequency)
			}
		}),
	}

	// KeyCmd shows or sets the key.
	KeyCmd = ishell.Cmd{
		Name: "key",
		Help: "[KEY]",
		Func: func(c *ishell.Context) {
			setValue(c, "key", &ShellFrom(c).Player.Key)
		},
	}

	// TempoCmd shows or sets the tempo.
	TempoCmd = ishell.Cmd{
		Name: "tempo",
		Help: "[BPM]",
		Func: func(c *ishell.Context) {
			setValue(c, "tempo", intValue{&ShellFrom(c).Player.Tempo})
		},
	}

	// MeterCmd shows or sets the time signature.
	MeterCmd = ishell.Cmd{
		Name: "meter",
		Help: "[N/D]",
		Func: func(c *ishell.Context) {
			setValue(c, "meter", &ShellFrom(c).Player.Meter)
		},
	}

	// LengthCmd shows or sets the default note length.
	LengthCmd = ishell.Cmd{
		Name: "length",
		Help: "[1/N]",
		Func: func(c *ishell.Context) {
			setValue(c, "length", &ShellFrom(c).Player.Length)
		},
	}

	// ChannelCmd shows or sets the channel.
	ChannelCmd = ishell.Cmd{
		Name: "channel",
		Help: "[a-e]",
		Func: func(c *ishell.Context) {
			setValue(c, "channel", &ShellFrom(c).Player.Channel)
		},
	}

	// StatusCmd prints link and playback settings.
	StatusCmd = ishell.Cmd{
		Name: "status",
		Func: func(c *ishell.Context) {
			c.Print(ShellFrom(c).Status())
		},
	}
)

// Main is a helper to provide a single call in main.
func Main(args ...string) {
	New(env.NewConfig(), player.NewConfig()).WithAutoOpen(true).Run(args...)
}
