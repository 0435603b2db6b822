package export

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/Capstone-E2/ecosphere_backend/internal/models"
	"github.com/xuri/excelize/v2"
)

// ExportService handles data export functionality
type ExportService struct{}

// NewExportService creates a new export service instance
func NewExportService() *ExportService {
	return &ExportService{}
}

// ExportData represents data to be exported
type ExportData struct {
	EnergyReadings []models.EnergyReading
	Zones          []models.Zone
	Anomalies      []models.Anomaly
	Score          models.SustainabilityScore
	ExportMetadata ExportMetadata
}

// ExportMetadata contains information about the export
type ExportMetadata struct {
	GeneratedAt   time.Time `json:"generated_at"`
	DateRange     string    `json:"date_range"`
	TotalReadings int       `json:"total_readings"`
	Buildings     []string  `json:"buildings"`
}

// GenerateExcel creates an Excel file with the sustainability report
func (es *ExportService) GenerateExcel(data ExportData) (*excelize.File, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			fmt.Println(err)
		}
	}()

	// Set document properties
	f.SetDocProps(&excelize.DocProperties{
		Category:       "EcoSphere Environmental Analytics",
		ContentStatus:  "Draft",
		Created:        data.ExportMetadata.GeneratedAt.Format(time.RFC3339),
		Creator:        "EcoSphere System",
		Description:    "City sustainability, energy and carbon data export",
		LastModifiedBy: "EcoSphere Backend",
		Modified:       data.ExportMetadata.GeneratedAt.Format(time.RFC3339),
		Subject:        "Sustainability & Carbon Report",
		Title:          "EcoSphere Sustainability Report",
		Version:        "1.0",
	})

	// Create Summary sheet
	es.createSummarySheet(f, data)

	// Create Energy Data sheet
	es.createEnergyDataSheet(f, data.EnergyReadings)

	// Create Zones sheet
	es.createZonesSheet(f, data.Zones)

	// Create Anomalies sheet
	es.createAnomaliesSheet(f, data.Anomalies)

	// Set active sheet to Summary
	f.SetActiveSheet(0)

	return f, nil
}

// createSummarySheet creates the summary overview sheet
func (es *ExportService) createSummarySheet(f *excelize.File, data ExportData) error {
	sheetName := "Summary"
	f.SetSheetName("Sheet1", sheetName)

	// Header styling
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// Title
	f.SetCellValue(sheetName, "A1", "EcoSphere City Sustainability Report")
	f.MergeCell(sheetName, "A1", "D1")
	f.SetCellStyle(sheetName, "A1", "D1", headerStyle)
	f.SetRowHeight(sheetName, 1, 25)

	// Export metadata
	f.SetCellValue(sheetName, "A3", "Generated At:")
	f.SetCellValue(sheetName, "B3", data.ExportMetadata.GeneratedAt.Format("2006-01-02 15:04:05"))
	f.SetCellValue(sheetName, "A4", "Date Range:")
	f.SetCellValue(sheetName, "B4", data.ExportMetadata.DateRange)
	f.SetCellValue(sheetName, "A5", "Total Readings:")
	f.SetCellValue(sheetName, "B5", data.ExportMetadata.TotalReadings)

	// Current score
	f.SetCellValue(sheetName, "A7", "Sustainability Score")
	f.SetCellStyle(sheetName, "A7", "A7", headerStyle)

	f.SetCellValue(sheetName, "A8", "Score:")
	f.SetCellValue(sheetName, "B8", data.Score.Value)
	f.SetCellValue(sheetName, "A9", "Status:")
	f.SetCellValue(sheetName, "B9", string(data.Score.Status))
	f.SetCellValue(sheetName, "A10", "Assessment:")
	f.SetCellValue(sheetName, "B10", data.Score.Description)

	// Statistics
	f.SetCellValue(sheetName, "A12", "System Statistics")
	f.SetCellStyle(sheetName, "A12", "A12", headerStyle)

	f.SetCellValue(sheetName, "A13", "Energy Readings:")
	f.SetCellValue(sheetName, "B13", len(data.EnergyReadings))
	f.SetCellValue(sheetName, "A14", "Monitored Zones:")
	f.SetCellValue(sheetName, "B14", len(data.Zones))
	f.SetCellValue(sheetName, "A15", "Detected Anomalies:")
	f.SetCellValue(sheetName, "B15", len(data.Anomalies))

	// Column widths
	f.SetColWidth(sheetName, "A", "A", 20)
	f.SetColWidth(sheetName, "B", "D", 15)

	return nil
}

// createEnergyDataSheet creates the energy readings sheet
func (es *ExportService) createEnergyDataSheet(f *excelize.File, readings []models.EnergyReading) error {
	sheetName := "Energy Data"
	f.NewSheet(sheetName)

	// Headers
	headers := []string{"Timestamp", "Building", "Energy Usage (kWh)", "Solar Production (kWh)", "Traffic Index"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	// Header styling
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"70AD47"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	f.SetCellStyle(sheetName, "A1", "E1", headerStyle)

	// Data rows
	for i, reading := range readings {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), reading.Timestamp.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), reading.BuildingID)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), reading.EnergyUsage)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), reading.SolarProduction)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), reading.TrafficIndex)
	}

	// Format columns
	f.SetColWidth(sheetName, "A", "B", 20)
	f.SetColWidth(sheetName, "C", "E", 18)

	return nil
}

// createZonesSheet creates the zone snapshot sheet
func (es *ExportService) createZonesSheet(f *excelize.File, zones []models.Zone) error {
	sheetName := "Zones"
	f.NewSheet(sheetName)

	// Headers
	headers := []string{"Zone ID", "Name", "Carbon Emission (tons)", "Energy Consumption (kWh)", "AQI", "Score", "Updated At"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	// Header styling
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"C55A11"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	f.SetCellStyle(sheetName, "A1", "G1", headerStyle)

	// Data rows
	for i, zone := range zones {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), zone.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), zone.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), zone.CarbonEmission)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), zone.EnergyConsumption)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), zone.AQI)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), zone.Score)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), zone.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	// Format columns
	f.SetColWidth(sheetName, "A", "B", 20)
	f.SetColWidth(sheetName, "C", "G", 16)

	return nil
}

// createAnomaliesSheet creates the anomaly log sheet
func (es *ExportService) createAnomaliesSheet(f *excelize.File, anomalies []models.Anomaly) error {
	sheetName := "Anomalies"
	f.NewSheet(sheetName)

	// Headers
	headers := []string{"Timestamp", "Metric", "Current Value", "Expected Value", "Deviation", "Severity", "Description"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	// Header styling
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"7030A0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
	f.SetCellStyle(sheetName, "A1", "G1", headerStyle)

	// Data rows
	for i, anomaly := range anomalies {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), anomaly.Timestamp.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), anomaly.Metric)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), anomaly.CurrentValue)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), anomaly.ExpectedValue)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), anomaly.Deviation)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), anomaly.Severity)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), anomaly.Description)
	}

	// Format columns
	f.SetColWidth(sheetName, "A", "A", 20)
	f.SetColWidth(sheetName, "B", "F", 15)
	f.SetColWidth(sheetName, "G", "G", 40)

	return nil
}

// GenerateCSV creates CSV data for energy readings
func (es *ExportService) GenerateCSV(readings []models.EnergyReading) ([][]string, error) {
	// CSV headers
	records := [][]string{
		{"Timestamp", "Building", "Energy Usage (kWh)", "Solar Production (kWh)", "Traffic Index"},
	}

	// Add data rows
	for _, reading := range readings {
		record := []string{
			reading.Timestamp.Format("2006-01-02 15:04:05"),
			reading.BuildingID,
			strconv.FormatFloat(reading.EnergyUsage, 'f', 2, 64),
			strconv.FormatFloat(reading.SolarProduction, 'f', 2, 64),
			strconv.FormatFloat(reading.TrafficIndex, 'f', 1, 64),
		}
		records = append(records, record)
	}

	return records, nil
}

// WriteCSV writes CSV data to a writer
func (es *ExportService) WriteCSV(w *csv.Writer, records [][]string) error {
	return w.WriteAll(records)
}
