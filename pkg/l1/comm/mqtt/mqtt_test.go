package mqtt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/uartled/pkg/l1"
)

func TestMatchTopic(t *testing.T) {
	testCases := []struct {
		topic   string
		pattern string
		match   bool
	}{
		{"uartled/pi/meta", "+/+/meta", true},
		{"uartled/pi/cmd", "+/+/meta", false},
		{"uartled/pi", "+/+/meta", false},
		{"uartled/pi/meta/x", "+/+/meta", false},
		{"uartled/pi/msg", "uartled/#", true},
		{"uartled", "uartled/#", true},
		{"uartled/pi/msg", "#", true},
		{"uartled/pi/msg", "uartled/pi/msg", true},
		{"uartled/pi/msg", "uartled/+", false},
	}
	for _, tc := range testCases {
		t.Run(tc.topic+" "+tc.pattern, func(t *testing.T) {
			require.Equal(t, tc.match, MatchTopic(tc.topic, tc.pattern))
		})
	}
}

func TestClientOptionsFromURL(t *testing.T) {
	testCases := []struct {
		name     string
		url      string
		broker   string
		prefix   string
		user     string
		password string
		clientID string
	}{
		{"plain", "mqtt://broker:1883", "tcp://broker:1883", "", "", "", ""},
		{"no scheme", "//broker:1883", "tcp://broker:1883", "", "", "", ""},
		{"tls", "mqtts://broker:8883", "ssl://broker:8883", "", "", "", ""},
		{"prefix", "mqtt://broker:1883/home/leds", "tcp://broker:1883", "home/leds/", "", "", ""},
		{"prefix slash", "mqtt://broker:1883/home/", "tcp://broker:1883", "home/", "", "", ""},
		{"auth", "mqtt://u:p@broker:1883?client-id=led0", "tcp://broker:1883", "", "u", "p", "led0"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts, prefix, err := ClientOptionsFromURL(tc.url)
			require.NoError(t, err)
			require.Len(t, opts.Servers, 1)
			require.Equal(t, tc.broker, opts.Servers[0].String())
			require.Equal(t, tc.prefix, prefix)
			require.Equal(t, tc.user, opts.Username)
			require.Equal(t, tc.password, opts.Password)
			require.Equal(t, tc.clientID, opts.ClientID)
		})
	}
}

func TestParseMetaTopic(t *testing.T) {
	ref, ok := ParseMetaTopic("uartled/pi0/meta")
	require.True(t, ok)
	require.Equal(t, l1.DeviceRef{Type: "uartled", ID: "pi0"}, ref)

	for _, topic := range []string{"uartled/pi0/msg", "uartled/meta", "a/b/c/meta", "/pi0/meta"} {
		_, ok = ParseMetaTopic(topic)
		require.False(t, ok, topic)
	}
}

func TestReadWriterTopics(t *testing.T) {
	ref := l1.DeviceRef{Type: "uartled", ID: "pi0"}
	rw := NewPacketReadWriter(nil).ForDevice(ref)
	require.Equal(t, "uartled/pi0/cmd", rw.SubTopic)
	require.Equal(t, "uartled/pi0/msg", rw.PubTopic)
	rw = NewPacketReadWriter(nil).ForConnector(ref)
	require.Equal(t, "uartled/pi0/msg", rw.SubTopic)
	require.Equal(t, "uartled/pi0/cmd", rw.PubTopic)
}

func TestReadWriterClose(t *testing.T) {
	rw := NewPacketReadWriter(nil)
	rw.handleMsg("t", []byte("a"))
	pkt, err := rw.ReadPacket()
	require.NoError(t, err)
	require.Equal(t, []byte("a"), pkt)

	require.NoError(t, rw.Close())
	require.NoError(t, rw.Close())
	rw.handleMsg("t", []byte("b"))
	_, err = rw.ReadPacket()
	require.Error(t, err)
}
