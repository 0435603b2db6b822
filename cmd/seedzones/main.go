package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/Capstone-E2/ecosphere_backend/config"
	"github.com/Capstone-E2/ecosphere_backend/internal/database"
	"github.com/Capstone-E2/ecosphere_backend/internal/models"
)

// Demo zones covering every carbon level and zone type
var demoZones = []models.Zone{
	{
		ID:                "riverside-residential",
		Name:              "Riverside Residential Colony",
		CarbonEmission:    42,
		EnergyConsumption: 310,
		AQI:               68,
	},
	{
		ID:                "central-market",
		Name:              "Central Market District",
		CarbonEmission:    95,
		EnergyConsumption: 540,
		AQI:               112,
	},
	{
		ID:                "tech-business-park",
		Name:              "Tech Business Park",
		CarbonEmission:    150,
		EnergyConsumption: 820,
		AQI:               98,
	},
	{
		ID:                "harbor-industrial",
		Name:              "Harbor Industrial Estate",
		CarbonEmission:    260,
		EnergyConsumption: 1450,
		AQI:               165,
	},
	{
		ID:                "old-town",
		Name:              "Old Town Quarter",
		CarbonEmission:    70,
		EnergyConsumption: 280,
		AQI:               90,
	},
}

func main() {
	log.Println("🌱 EcoSphere Zone Seeder")

	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	cfg := config.Load()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("🛑 Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.CreateTables(db.DB); err != nil {
		log.Fatalf("🛑 Failed to ensure tables exist: %v", err)
	}

	dataStore := database.NewDatabaseStore(db.DB)

	now := time.Now()
	for _, zone := range demoZones {
		zone.UpdatedAt = now
		if err := dataStore.UpsertZone(zone); err != nil {
			log.Fatalf("❌ Failed to seed zone %s: %v", zone.ID, err)
		}
		log.Printf("✅ Seeded zone %s (%s, %.0f kg CO2)", zone.ID, zone.Name, zone.CarbonEmission)
	}

	log.Printf("🎉 Seeded %d zones", len(demoZones))
}
