package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/Capstone-E2/ecosphere_backend/internal/models"
)

// Client represents a WebSocket client connection
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	buildingID string // Optional: filter for specific building
}

// Hub maintains active WebSocket connections and broadcasts messages
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
}

// Message represents a WebSocket message structure
type Message struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin in development
		// In production, implement proper origin checking
		return true
	},
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the WebSocket hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			log.Printf("Client connected. Total clients: %d", len(h.clients))

			// Send welcome message
			welcome := Message{
				Type:      "connected",
				Timestamp: time.Now(),
				Data:      map[string]string{"status": "connected"},
			}
			if data, err := json.Marshal(welcome); err == nil {
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				log.Printf("Client disconnected. Total clients: %d", len(h.clients))
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// BroadcastEnergyReading broadcasts a new building energy reading to all connected clients
func (h *Hub) BroadcastEnergyReading(reading *models.EnergyReading) {
	message := Message{
		Type:      "energy_reading",
		Timestamp: time.Now(),
		Data:      reading,
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling energy reading: %v", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		log.Println("Broadcast channel is full, dropping message")
	}
}

// BroadcastScoreUpdate broadcasts the latest sustainability score to all clients
func (h *Hub) BroadcastScoreUpdate(score models.SustainabilityScore, trend models.ScoreTrend) {
	scoreData := map[string]interface{}{
		"score":       score,
		"trend":       trend.Direction,
		"change":      trend.Change,
		"status":      score.Status,
		"description": score.Description,
	}

	message := Message{
		Type:      "score_update",
		Timestamp: time.Now(),
		Data:      scoreData,
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling score update: %v", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		log.Println("Broadcast channel is full, dropping score update message")
	}
}

// BroadcastInsights broadcasts freshly generated insights to all clients
func (h *Hub) BroadcastInsights(insights []models.AIInsight) {
	message := Message{
		Type:      "insights",
		Timestamp: time.Now(),
		Data:      insights,
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling insights: %v", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		log.Println("Broadcast channel is full, dropping insights message")
	}
}

// BroadcastAnomaly broadcasts a detected metric anomaly to all clients
func (h *Hub) BroadcastAnomaly(anomaly models.Anomaly) {
	message := Message{
		Type:      "anomaly",
		Timestamp: time.Now(),
		Data:      anomaly,
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling anomaly: %v", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		log.Println("Broadcast channel is full, dropping anomaly message")
	}
}

// BroadcastEnvironment broadcasts the current weather and air quality snapshot
func (h *Hub) BroadcastEnvironment(weather models.WeatherSnapshot, air models.AirQualitySnapshot) {
	envData := map[string]interface{}{
		"weather":     weather,
		"air_quality": air,
	}

	message := Message{
		Type:      "environment",
		Timestamp: time.Now(),
		Data:      envData,
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling environment update: %v", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		log.Println("Broadcast channel is full, dropping environment message")
	}
}

// BroadcastError broadcasts error messages to all clients
func (h *Hub) BroadcastError(errorMsg string) {
	message := Message{
		Type:      "error",
		Timestamp: time.Now(),
		Data:      map[string]string{"error": errorMsg},
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshaling error message: %v", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		log.Println("Broadcast channel is full, dropping message")
	}
}

// GetConnectedClientsCount returns the number of connected clients
func (h *Hub) GetConnectedClientsCount() int {
	return len(h.clients)
}

// HandleWebSocket handles WebSocket connection requests
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	// Get building ID from query parameter if provided
	buildingID := r.URL.Query().Get("building_id")

	client := &Client{
		hub:        h,
		conn:       conn,
		send:       make(chan []byte, 256),
		buildingID: buildingID,
	}

	client.hub.register <- client

	// Start goroutines for handling the client
	go client.writePump()
	go client.readPump()
}

// readPump handles reading messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	// Set read deadline and pong handler
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		// Handle incoming messages from clients (e.g., building filter requests)
		log.Printf("Received message from client: %s", message)
	}
}

// writePump handles writing messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to current message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
