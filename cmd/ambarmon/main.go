package main

import (
	"flag"
	"os"
	"strings"
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/ambar.go/pkg/l0/comm"
	"github.com/robotalks/ambar.go/pkg/l0/comm/mqtt"
	"github.com/robotalks/ambar.go/pkg/msgs"
)

var (
	mqttURL = "mqtt://localhost:1883/ambar/"
	publish = true
)

func init() {
	if val := os.Getenv("AMBAR_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.BoolVar(&publish, "publish", publish, "Publish decoded frames to <device>/events.")
}

// monitor decodes the byte streams of every device topic.
type monitor struct {
	bus *mqtt.Bus

	lock    sync.Mutex
	parsers map[string]*comm.Parser
}

func newMonitor(bus *mqtt.Bus) *monitor {
	return &monitor{bus: bus, parsers: make(map[string]*comm.Parser)}
}

// frames decodes payload received on topic, keeping partial frames per
// topic.
func (m *monitor) frames(topic string, payload []byte) []comm.Frame {
	m.lock.Lock()
	defer m.lock.Unlock()
	p := m.parsers[topic]
	if p == nil {
		p = &comm.Parser{}
		m.parsers[topic] = p
	}
	var frames []comm.Frame
	for _, b := range payload {
		if f, ok := p.Parse(b); ok {
			frames = append(frames, f)
		}
	}
	return frames
}

func (m *monitor) handle(topic string, payload []byte) {
	device, dir := splitTopic(topic)
	if device == "" {
		return
	}
	for _, f := range m.frames(topic, payload) {
		glog.Infof("%s %s: %s %d", device, dir, f.Channel, f.Value)
		if !publish {
			continue
		}
		data, err := msgs.NewFrameEvent(device, dir, f).Encode()
		if err != nil {
			glog.Errorf("encode event: %v", err)
			continue
		}
		m.bus.Pub(device+"/"+mqtt.TopicEvents, data)
	}
}

// splitTopic splits device/in or device/out.
func splitTopic(topic string) (device, dir string) {
	pos := strings.LastIndex(topic, "/")
	if pos <= 0 {
		return "", ""
	}
	switch dir = topic[pos+1:]; dir {
	case mqtt.TopicIn, mqtt.TopicOut:
		return topic[:pos], dir
	}
	return "", ""
}

func main() {
	flag.Parse()

	bus, err := mqtt.NewBusFromURL(mqttURL)
	if err != nil {
		glog.Exit(err)
	}
	if err = bus.Connect(); err != nil {
		glog.Exit(err)
	}
	mon := newMonitor(bus)
	bus.Sub("+/"+mqtt.TopicIn, mon.handle)
	bus.Sub("+/"+mqtt.TopicOut, mon.handle)
	<-(chan struct{})(nil)
}
