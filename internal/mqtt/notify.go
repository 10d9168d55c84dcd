// Package mqtt pushes refresh signals to display devices so they
// re-fetch their playlist ahead of the next poll tick. The HTTP poll
// remains the source of truth; a missed publish only delays an update
// by one interval.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"
)

type Notifier struct {
	client mqtt.Client
}

type refreshMessage struct {
	Event    string `json:"event"`
	DeviceID string `json:"device_id"`
	SentAt   string `json:"sent_at"`
}

// NewNotifier connects to the broker. A nil Notifier is safe to call:
// server wiring passes nil when no broker is configured.
func NewNotifier(brokerURL, clientID string) (*Notifier, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = func(mqtt.Client) {
		log.Info().Str("broker", brokerURL).Msg("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Error().Err(err).Msg("MQTT connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return &Notifier{client: client}, nil
}

// PlaylistUpdated signals one device that its playlist changed.
func (n *Notifier) PlaylistUpdated(deviceID string) {
	if n == nil {
		return
	}
	n.publish(fmt.Sprintf("tv/%s/commands", deviceID), deviceID)
}

// PlaylistUpdatedAll signals every device. Used for mutations against
// the all-devices sentinel, where enumerating targets server-side
// would race with device self-registration.
func (n *Notifier) PlaylistUpdatedAll() {
	if n == nil {
		return
	}
	n.publish("tv/all/commands", "all")
}

func (n *Notifier) publish(topic, deviceID string) {
	payload, _ := json.Marshal(refreshMessage{
		Event:    "playlist_updated",
		DeviceID: deviceID,
		SentAt:   time.Now().Format(time.RFC3339),
	})
	token := n.client.Publish(topic, 1, false, payload)
	token.Wait()
	if token.Error() != nil {
		log.Error().Err(token.Error()).Str("topic", topic).Msg("failed to publish refresh")
	}
}

// Close disconnects from the broker.
func (n *Notifier) Close() {
	if n == nil {
		return
	}
	n.client.Disconnect(250)
}
