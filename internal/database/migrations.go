package database

import (
	"database/sql"
	"fmt"
	"log"
)

// CreateTables creates all necessary tables for the EcoSphere system
func CreateTables(db *sql.DB) error {
	log.Println("Creating database tables...")

	// Create energy_readings table - stores metered consumption per building
	energyReadingsTable := `
	CREATE TABLE IF NOT EXISTS energy_readings (
		id SERIAL PRIMARY KEY,
		building_id VARCHAR(100) NOT NULL DEFAULT 'unassigned',
		timestamp TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		energy_usage DECIMAL(12,2) NOT NULL CHECK (energy_usage >= 0),
		solar_production DECIMAL(12,2) NOT NULL CHECK (solar_production >= 0),
		traffic_index DECIMAL(5,2) NOT NULL CHECK (traffic_index >= 0 AND traffic_index <= 100),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		CONSTRAINT unique_building_timestamp UNIQUE(building_id, timestamp)
	);`

	if _, err := db.Exec(energyReadingsTable); err != nil {
		return fmt.Errorf("failed to create energy_readings table: %w", err)
	}

	// Create zones table - canonical per-zone environmental snapshots
	zonesTable := `
	CREATE TABLE IF NOT EXISTS zones (
		id VARCHAR(100) PRIMARY KEY,
		name VARCHAR(200) NOT NULL,
		carbon_emission DECIMAL(12,2) NOT NULL DEFAULT 0 CHECK (carbon_emission >= 0),
		energy_consumption DECIMAL(12,2) NOT NULL DEFAULT 0 CHECK (energy_consumption >= 0),
		aqi DECIMAL(6,2) NOT NULL DEFAULT 0 CHECK (aqi >= 0),
		score DECIMAL(5,2) NOT NULL DEFAULT 0,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

	if _, err := db.Exec(zonesTable); err != nil {
		return fmt.Errorf("failed to create zones table: %w", err)
	}

	// Create sustainability_scores table - scoring history for trend analysis
	scoresTable := `
	CREATE TABLE IF NOT EXISTS sustainability_scores (
		id SERIAL PRIMARY KEY,
		value INTEGER NOT NULL CHECK (value >= 0 AND value <= 100),
		status VARCHAR(20) NOT NULL,
		color VARCHAR(20) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		timestamp TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	);`

	if _, err := db.Exec(scoresTable); err != nil {
		return fmt.Errorf("failed to create sustainability_scores table: %w", err)
	}

	// Create anomalies table - flagged out-of-distribution readings
	anomaliesTable := `
	CREATE TABLE IF NOT EXISTS anomalies (
		id VARCHAR(100) PRIMARY KEY,
		metric VARCHAR(100) NOT NULL,
		current_value DECIMAL(12,2) NOT NULL,
		expected_value DECIMAL(12,2) NOT NULL,
		deviation DECIMAL(12,4) NOT NULL,
		severity VARCHAR(20) NOT NULL CHECK (severity IN ('low', 'medium', 'high')),
		timestamp TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		description TEXT NOT NULL DEFAULT ''
	);`

	if _, err := db.Exec(anomaliesTable); err != nil {
		return fmt.Errorf("failed to create anomalies table: %w", err)
	}

	// Create insights table - latest generated insight batch
	insightsTable := `
	CREATE TABLE IF NOT EXISTS insights (
		id VARCHAR(100) PRIMARY KEY,
		title VARCHAR(200) NOT NULL,
		message TEXT NOT NULL,
		category VARCHAR(50) NOT NULL,
		severity VARCHAR(20) NOT NULL CHECK (severity IN ('info', 'warning', 'success')),
		priority INTEGER NOT NULL DEFAULT 0,
		actionable BOOLEAN NOT NULL DEFAULT false,
		suggestion TEXT NOT NULL DEFAULT '',
		timestamp TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
		position INTEGER NOT NULL DEFAULT 0
	);`

	if _, err := db.Exec(insightsTable); err != nil {
		return fmt.Errorf("failed to create insights table: %w", err)
	}

	// Create indexes for better performance
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_energy_readings_timestamp ON energy_readings(timestamp DESC);",
		"CREATE INDEX IF NOT EXISTS idx_energy_readings_building_id ON energy_readings(building_id);",
		"CREATE INDEX IF NOT EXISTS idx_sustainability_scores_timestamp ON sustainability_scores(timestamp DESC);",
		"CREATE INDEX IF NOT EXISTS idx_anomalies_timestamp ON anomalies(timestamp DESC);",
		"CREATE INDEX IF NOT EXISTS idx_zones_updated_at ON zones(updated_at DESC);",
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			log.Printf("Warning: Failed to create index: %v", err)
		}
	}

	log.Println("✅ Database tables created successfully")
	return nil
}

// DropTables drops all tables (useful for testing)
func DropTables(db *sql.DB) error {
	log.Println("Dropping database tables...")

	tables := []string{
		"energy_readings",
		"zones",
		"sustainability_scores",
		"anomalies",
		"insights",
	}

	for _, table := range tables {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE;", table)
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	log.Println("✅ Database tables dropped successfully")
	return nil
}

// CheckTablesExist checks if all required tables exist
func CheckTablesExist(db *sql.DB) error {
	requiredTables := []string{
		"energy_readings",
		"zones",
		"sustainability_scores",
		"anomalies",
		"insights",
	}

	for _, table := range requiredTables {
		var exists bool
		query := `SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_name = $1
		);`

		err := db.QueryRow(query, table).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check table %s: %w", table, err)
		}

		if !exists {
			return fmt.Errorf("table %s does not exist", table)
		}
	}

	log.Println("✅ All required tables exist")
	return nil
}
