package mqtt

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/Capstone-E2/ecosphere_backend/internal/models"
	"github.com/Capstone-E2/ecosphere_backend/internal/services"
)

// Client wraps the MQTT client with environmental telemetry functionality
type Client struct {
	client            mqtt.Client
	parser            *services.TelemetryParser
	readingHandler    func(*models.EnergyReading)
	weatherHandler    func(models.WeatherSnapshot)
	airQualityHandler func(models.AirQualitySnapshot)
	errorHandler      func(error)
	isConnected       bool
	topicEnergyData   string
	topicZoneUpdates  string
}

// Config holds MQTT connection configuration
type Config struct {
	BrokerURL        string
	ClientID         string
	Username         string
	Password         string
	KeepAlive        time.Duration
	PingTimeout      time.Duration
	ConnectRetry     bool
	TopicEnergyData  string
	TopicZoneUpdates string
}

// DefaultConfig returns default MQTT configuration
func DefaultConfig() *Config {
	return &Config{
		BrokerURL:        "tcp://localhost:1883",
		ClientID:         "ecosphere_backend",
		Username:         "",
		Password:         "",
		KeepAlive:        30 * time.Second,
		PingTimeout:      10 * time.Second,
		ConnectRetry:     true,
		TopicEnergyData:  "ecosphere/energy/+/data",
		TopicZoneUpdates: "ecosphere/zones",
	}
}

// NewClient creates a new MQTT client for environmental telemetry
func NewClient(config *Config) *Client {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(config.BrokerURL)
	opts.SetClientID(config.ClientID)
	opts.SetKeepAlive(config.KeepAlive)
	opts.SetPingTimeout(config.PingTimeout)
	opts.SetCleanSession(true)

	if config.Username != "" {
		opts.SetUsername(config.Username)
	}
	if config.Password != "" {
		opts.SetPassword(config.Password)
	}

	topicEnergyData := config.TopicEnergyData
	if topicEnergyData == "" {
		topicEnergyData = "ecosphere/energy/+/data"
	}
	topicZoneUpdates := config.TopicZoneUpdates
	if topicZoneUpdates == "" {
		topicZoneUpdates = "ecosphere/zones"
	}

	client := &Client{
		parser:           services.NewTelemetryParser(),
		isConnected:      false,
		topicEnergyData:  topicEnergyData,
		topicZoneUpdates: topicZoneUpdates,
	}

	// Set connection handlers
	opts.SetDefaultPublishHandler(client.defaultMessageHandler)
	opts.SetOnConnectHandler(client.onConnect)
	opts.SetConnectionLostHandler(client.onConnectionLost)

	client.client = mqtt.NewClient(opts)

	return client
}

// Connect establishes connection to the MQTT broker
func (c *Client) Connect() error {
	log.Println("Connecting to MQTT broker...")

	if token := c.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	log.Println("Successfully connected to MQTT broker")
	c.isConnected = true
	return nil
}

// Disconnect closes the MQTT connection
func (c *Client) Disconnect() {
	if c.isConnected {
		c.client.Disconnect(250)
		c.isConnected = false
		log.Println("Disconnected from MQTT broker")
	}
}

// IsConnected returns the connection status
func (c *Client) IsConnected() bool {
	return c.isConnected && c.client.IsConnected()
}

// SubscribeToEnergyData subscribes to building meter topics
func (c *Client) SubscribeToEnergyData() error {
	topics := map[string]byte{
		c.topicEnergyData:       1, // + is wildcard for building ID
		"ecosphere/energy/data": 1, // General meter data topic
	}

	for topic, qos := range topics {
		if token := c.client.Subscribe(topic, qos, c.energyDataHandler); token.Wait() && token.Error() != nil {
			return fmt.Errorf("failed to subscribe to topic %s: %w", topic, token.Error())
		}
		log.Printf("Subscribed to topic: %s", topic)
	}

	return nil
}

// SubscribeToEnvironmentData subscribes to weather and air quality feeds
func (c *Client) SubscribeToEnvironmentData() error {
	subscriptions := map[string]mqtt.MessageHandler{
		"ecosphere/weather":    c.weatherDataHandler,
		"ecosphere/airquality": c.airQualityDataHandler,
	}

	for topic, handler := range subscriptions {
		if token := c.client.Subscribe(topic, 1, handler); token.Wait() && token.Error() != nil {
			return fmt.Errorf("failed to subscribe to topic %s: %w", topic, token.Error())
		}
		log.Printf("Subscribed to topic: %s", topic)
	}

	return nil
}

// SetReadingHandler sets the callback function for parsed meter readings
func (c *Client) SetReadingHandler(handler func(*models.EnergyReading)) {
	c.readingHandler = handler
}

// SetWeatherHandler sets the callback function for weather snapshots
func (c *Client) SetWeatherHandler(handler func(models.WeatherSnapshot)) {
	c.weatherHandler = handler
}

// SetAirQualityHandler sets the callback function for air quality snapshots
func (c *Client) SetAirQualityHandler(handler func(models.AirQualitySnapshot)) {
	c.airQualityHandler = handler
}

// SetErrorHandler sets the callback function for errors
func (c *Client) SetErrorHandler(handler func(error)) {
	c.errorHandler = handler
}

// energyDataHandler processes incoming meter messages
func (c *Client) energyDataHandler(client mqtt.Client, msg mqtt.Message) {
	log.Printf("Received energy data on topic %s: %s", msg.Topic(), string(msg.Payload()))

	buildingID := buildingIDFromTopic(msg.Topic())

	// Try parsing as JSON first (preferred format)
	reading, err := c.parser.ParseEnergyJSON(msg.Payload(), buildingID)
	if err != nil {
		// Fallback to comma-separated format
		reading, err = c.parser.ParseEnergyString(string(msg.Payload()), buildingID)
		if err != nil {
			log.Printf("Failed to parse energy data: %v", err)
			if c.errorHandler != nil {
				c.errorHandler(fmt.Errorf("energy data parsing failed: %w", err))
			}
			return
		}
	}

	log.Printf("Parsed energy reading: %s", c.parser.FormatEnergyReading(reading))

	if c.readingHandler != nil {
		c.readingHandler(reading)
	}
}

// weatherDataHandler processes incoming weather snapshots
func (c *Client) weatherDataHandler(client mqtt.Client, msg mqtt.Message) {
	var weather models.WeatherSnapshot
	if err := json.Unmarshal(msg.Payload(), &weather); err != nil {
		log.Printf("Failed to parse weather data: %v", err)
		if c.errorHandler != nil {
			c.errorHandler(fmt.Errorf("weather data parsing failed: %w", err))
		}
		return
	}
	if weather.Timestamp.IsZero() {
		weather.Timestamp = time.Now()
	}

	if c.weatherHandler != nil {
		c.weatherHandler(weather)
	}
}

// airQualityDataHandler processes incoming air quality snapshots
func (c *Client) airQualityDataHandler(client mqtt.Client, msg mqtt.Message) {
	var airQuality models.AirQualitySnapshot
	if err := json.Unmarshal(msg.Payload(), &airQuality); err != nil {
		log.Printf("Failed to parse air quality data: %v", err)
		if c.errorHandler != nil {
			c.errorHandler(fmt.Errorf("air quality data parsing failed: %w", err))
		}
		return
	}
	if airQuality.Timestamp.IsZero() {
		airQuality.Timestamp = time.Now()
	}

	if c.airQualityHandler != nil {
		c.airQualityHandler(airQuality)
	}
}

// defaultMessageHandler handles messages on unsubscribed topics
func (c *Client) defaultMessageHandler(client mqtt.Client, msg mqtt.Message) {
	log.Printf("Received message on unhandled topic %s: %s", msg.Topic(), string(msg.Payload()))
}

// onConnect callback when connection is established
func (c *Client) onConnect(client mqtt.Client) {
	log.Println("MQTT client connected")
	c.isConnected = true
}

// onConnectionLost callback when connection is lost
func (c *Client) onConnectionLost(client mqtt.Client, err error) {
	log.Printf("MQTT connection lost: %v", err)
	c.isConnected = false

	if c.errorHandler != nil {
		c.errorHandler(fmt.Errorf("MQTT connection lost: %w", err))
	}
}

// PublishZoneUpdate publishes a canonical zone record for downstream consumers
func (c *Client) PublishZoneUpdate(zone *models.Zone) error {
	payload, err := json.Marshal(zone)
	if err != nil {
		return fmt.Errorf("failed to marshal zone update: %w", err)
	}

	topic := c.zoneUpdateTopic(zone.ID)

	if token := c.client.Publish(topic, 1, false, payload); token.Wait() && token.Error() != nil {
		return fmt.Errorf("failed to publish zone update: %w", token.Error())
	}

	log.Printf("Published zone update to %s", topic)
	return nil
}

// zoneUpdateTopic builds the per-zone topic under the configured prefix
func (c *Client) zoneUpdateTopic(zoneID string) string {
	return c.topicZoneUpdates + "/" + zoneID
}

// buildingIDFromTopic extracts the building segment from
// "ecosphere/energy/{buildingID}/data"; the general topic yields a
// default ID
func buildingIDFromTopic(topic string) string {
	parts := strings.Split(topic, "/")
	if len(parts) == 4 {
		return parts[2]
	}
	return "unassigned"
}
