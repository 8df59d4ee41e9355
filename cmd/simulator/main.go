package main

import (
	"encoding/json"
	"math/rand"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/mange/backend/internal/config"
)

type reading struct {
	Branch  string `json:"branch"`
	Reading int64  `json:"reading"`
}

func main() {
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	opts := mqtt.NewClientOptions().AddBroker(config.MQTTBroker())
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal().Err(token.Error()).Msg("mqtt connect")
	}
	defer client.Disconnect(250)

	// Meter values only ramp up; the store rejects anything else.
	var meter int64
	for i := 0; i < 100; i++ {
		meter += rand.Int63n(10)
		r := reading{Branch: "central", Reading: meter}
		payload, _ := json.Marshal(r)
		token := client.Publish(config.MQTTTopic(), 0, false, payload)
		token.Wait()
		time.Sleep(500 * time.Millisecond)
	}
	log.Info().Msg("simulation done")
}
