package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/Capstone-E2/ecosphere_backend/config"
	"github.com/Capstone-E2/ecosphere_backend/internal/database"
)

func main() {
	var (
		table = flag.String("table", "energy_readings", "Table to view (energy_readings, zones, anomalies, insights)")
		limit = flag.Int("limit", 10, "Number of records to show")
	)
	flag.Parse()

	log.Println("🔍 EcoSphere Database Viewer")
	log.Println("============================")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Printf("✅ Connected to database: %s@%s:%s/%s",
		cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	switch *table {
	case "energy_readings":
		viewEnergyReadings(db, *limit)
	case "zones":
		viewZones(db, *limit)
	case "anomalies":
		viewAnomalies(db, *limit)
	case "insights":
		viewInsights(db, *limit)
	default:
		log.Printf("Unknown table: %s", *table)
		log.Println("Available tables: energy_readings, zones, anomalies, insights")
	}
}

func viewEnergyReadings(db *database.DB, limit int) {
	query := `
		SELECT id, building_id, timestamp, energy_usage, solar_production, traffic_index
		FROM energy_readings
		ORDER BY timestamp DESC
		LIMIT $1`

	rows, err := db.Query(query, limit)
	if err != nil {
		log.Fatalf("❌ Query failed: %v", err)
	}
	defer rows.Close()

	fmt.Printf("\n📊 Latest %d Energy Readings:\n", limit)
	fmt.Println("=====================================")
	fmt.Printf("%-4s %-22s %-20s %-10s %-10s %-8s\n",
		"ID", "Building", "Timestamp", "Usage", "Solar", "Traffic")
	fmt.Println("--------------------------------------------------------------------------------------------")

	count := 0
	for rows.Next() {
		var id int
		var buildingID, timestamp string
		var usage, solar, traffic float64

		err := rows.Scan(&id, &buildingID, &timestamp, &usage, &solar, &traffic)
		if err != nil {
			log.Printf("❌ Error scanning row: %v", err)
			continue
		}

		fmt.Printf("%-4d %-22s %-20s %-10.1f %-10.1f %-8.0f\n",
			id, buildingID, timestamp[:19], usage, solar, traffic)
		count++
	}

	if count == 0 {
		fmt.Println("No energy readings found.")
	} else {
		fmt.Printf("\nTotal: %d readings\n", count)
	}
}

func viewZones(db *database.DB, limit int) {
	query := `
		SELECT id, name, carbon_emission, energy_consumption, aqi, score, updated_at
		FROM zones
		ORDER BY updated_at DESC
		LIMIT $1`

	rows, err := db.Query(query, limit)
	if err != nil {
		log.Fatalf("❌ Query failed: %v", err)
	}
	defer rows.Close()

	fmt.Printf("\n🏙️  Monitored Zones:\n")
	fmt.Println("====================")
	fmt.Printf("%-14s %-24s %-10s %-10s %-8s %-8s %-20s\n",
		"Zone ID", "Name", "Carbon", "Energy", "AQI", "Score", "Updated")
	fmt.Println("--------------------------------------------------------------------------------------------------")

	count := 0
	for rows.Next() {
		var id, name, updatedAt string
		var carbon, energy, aqi, score float64

		err := rows.Scan(&id, &name, &carbon, &energy, &aqi, &score, &updatedAt)
		if err != nil {
			log.Printf("❌ Error scanning row: %v", err)
			continue
		}

		fmt.Printf("%-14s %-24s %-10.1f %-10.1f %-8.0f %-8.1f %-20s\n",
			id, name, carbon, energy, aqi, score, updatedAt[:19])
		count++
	}

	if count == 0 {
		fmt.Println("No zones found.")
	} else {
		fmt.Printf("\nTotal: %d zones\n", count)
	}
}

func viewAnomalies(db *database.DB, limit int) {
	query := `
		SELECT id, metric, current_value, expected_value, severity, timestamp
		FROM anomalies
		ORDER BY timestamp DESC
		LIMIT $1`

	rows, err := db.Query(query, limit)
	if err != nil {
		log.Fatalf("❌ Query failed: %v", err)
	}
	defer rows.Close()

	fmt.Printf("\n⚠️  Latest %d Anomalies:\n", limit)
	fmt.Println("========================")
	fmt.Printf("%-28s %-14s %-10s %-10s %-8s %-20s\n",
		"ID", "Metric", "Current", "Expected", "Severity", "Timestamp")
	fmt.Println("--------------------------------------------------------------------------------------------------")

	count := 0
	for rows.Next() {
		var id, metric, severity, timestamp string
		var current, expected float64

		err := rows.Scan(&id, &metric, &current, &expected, &severity, &timestamp)
		if err != nil {
			log.Printf("❌ Error scanning row: %v", err)
			continue
		}

		fmt.Printf("%-28s %-14s %-10.1f %-10.1f %-8s %-20s\n",
			id, metric, current, expected, severity, timestamp[:19])
		count++
	}

	if count == 0 {
		fmt.Println("No anomalies found.")
	} else {
		fmt.Printf("\nTotal: %d anomalies\n", count)
	}
}

func viewInsights(db *database.DB, limit int) {
	query := `
		SELECT id, title, category, severity, priority, timestamp
		FROM insights
		ORDER BY position
		LIMIT $1`

	rows, err := db.Query(query, limit)
	if err != nil {
		log.Fatalf("❌ Query failed: %v", err)
	}
	defer rows.Close()

	fmt.Printf("\n💡 Latest Insight Batch:\n")
	fmt.Println("========================")
	fmt.Printf("%-28s %-30s %-14s %-9s %-9s %-20s\n",
		"ID", "Title", "Category", "Severity", "Priority", "Timestamp")
	fmt.Println("----------------------------------------------------------------------------------------------------------")

	count := 0
	for rows.Next() {
		var id, title, category, severity, timestamp string
		var priority int

		err := rows.Scan(&id, &title, &category, &severity, &priority, &timestamp)
		if err != nil {
			log.Printf("❌ Error scanning row: %v", err)
			continue
		}

		fmt.Printf("%-28s %-30s %-14s %-9s %-9d %-20s\n",
			id, title, category, severity, priority, timestamp[:19])
		count++
	}

	if count == 0 {
		fmt.Println("No insights found.")
	} else {
		fmt.Printf("\nTotal: %d insights\n", count)
	}
}
