package mqtt

import (
	"testing"
)

func TestZoneUpdateTopic_ConfiguredPrefix(t *testing.T) {
	config := DefaultConfig()
	config.TopicZoneUpdates = "city/zones"
	client := NewClient(config)

	topic := client.zoneUpdateTopic("zone-7")
	if topic != "city/zones/zone-7" {
		t.Errorf("Expected topic 'city/zones/zone-7', got '%s'", topic)
	}
}

func TestZoneUpdateTopic_DefaultPrefix(t *testing.T) {
	client := NewClient(&Config{BrokerURL: "tcp://localhost:1883", ClientID: "test"})

	topic := client.zoneUpdateTopic("zone-1")
	if topic != "ecosphere/zones/zone-1" {
		t.Errorf("Expected topic 'ecosphere/zones/zone-1', got '%s'", topic)
	}
}

func TestBuildingIDFromTopic(t *testing.T) {
	tests := []struct {
		topic    string
		expected string
	}{
		{"ecosphere/energy/city-hall/data", "city-hall"},
		{"ecosphere/energy/data", "unassigned"},
	}

	for _, test := range tests {
		if got := buildingIDFromTopic(test.topic); got != test.expected {
			t.Errorf("Expected building ID '%s' for topic '%s', got '%s'", test.expected, test.topic, got)
		}
	}
}
