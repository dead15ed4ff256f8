package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/robotalks/uartled/pkg/l1/comm/mqtt"
	"github.com/robotalks/uartled/pkg/l1/msgs"
)

//go-build: CGO_ENABLED=0

var (
	mqttURL = "mqtt://localhost:1883/"
	topic   = "#"

	metaColor  = color.New(color.FgYellow)
	cmdColor   = color.New(color.FgBlue)
	replyColor = color.New(color.FgGreen)
	eventColor = color.New(color.FgCyan)
	errColor   = color.New(color.FgRed)
)

func init() {
	if val := os.Getenv("ULED_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.StringVar(&topic, "topic", topic, "Topic filter under the prefix.")
}

func colorOf(typed *msgs.Typed) *color.Color {
	switch {
	case typed.IsEvent():
		return eventColor
	case typed.IsReply():
		return replyColor
	default:
		return cmdColor
	}
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalln(token.Error())
	}

	q.Sub(topic, mqtt.Handler(func(topic string, payload []byte) {
		if strings.HasSuffix(topic, "/"+mqtt.TopicMeta) {
			if len(payload) == 0 {
				log.Printf("%s: %s", topic, metaColor.Sprint("offline"))
				return
			}
			log.Printf("%s: %s", topic, metaColor.Sprint(string(payload)))
			return
		}
		typed, err := msgs.DecodeTyped(payload)
		if err != nil {
			log.Printf("%s: %s", topic, errColor.Sprintf("bad message: %v", err))
			return
		}
		msg, err := typed.Decode()
		if err != nil {
			log.Printf("%s: %s", topic, errColor.Sprintf("decode error: (type_id=%x) %v", typed.TypeId, err))
			return
		}
		log.Printf("%s: #%d %s", topic, typed.Sequence, colorOf(typed).Sprintf("%s %s", msgs.TypeName(msg), msg.(msgs.SerializableMessage).Serializable().String()))
	}))
	<-(chan struct{})(nil)
}
