package models

// ============================================================
// Geometry primitives
// ============================================================

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type GridPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ============================================================
// Project file (save/load)
// ============================================================

// PanelRecord is a stored panel instance. Type is validated by the parser.
type PanelRecord struct {
	Type     string `json:"type"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Rotation int    `json:"rotation"`
}

type Floor struct {
	FloorNumber int                      `json:"floorNumber"`
	Width       int                      `json:"width"`
	Height      int                      `json:"height"`
	Components  map[string][]PanelRecord `json:"components"`
}

type Project struct {
	Floors            []Floor `json:"floors"`
	CurrentFloorIndex int     `json:"currentFloorIndex"`
}

// ============================================================
// Revit interchange payload
// ============================================================

type Position struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Elevation float64 `json:"elevation"`
}

type RevitComponent struct {
	ID              string   `json:"id"`
	Type            string   `json:"type"`
	Family          string   `json:"family"`
	Story           int      `json:"story"`
	Position        Position `json:"position"`
	RotationDeg     int      `json:"rotationDeg"`
	FootprintCenter Point    `json:"footprintCenter"`
	Notes           string   `json:"notes,omitempty"`
}

type RevitStory struct {
	StoryNumber   int              `json:"storyNumber"`
	ElevationFeet float64          `json:"elevationFeet"`
	Components    []RevitComponent `json:"components"`
}

type RevitMetadata struct {
	GeneratedAt     string         `json:"generatedAt"`
	CellSizeFeet    float64        `json:"cellSizeFeet"`
	StoryHeightFeet float64        `json:"storyHeightFeet"`
	TotalFloors     int            `json:"totalFloors"`
	TotalPanels     int            `json:"totalPanels"`
	ComponentCounts map[string]int `json:"componentCounts"`
}

type RevitPayload struct {
	Metadata RevitMetadata `json:"metadata"`
	Stories  []RevitStory  `json:"stories"`
}

// ============================================================
// Manufacturing export
// ============================================================

type ManufacturingPanel struct {
	Type      string    `json:"type"`
	Position  GridPoint `json:"position"`
	Rotation  int       `json:"rotation"`
	PanelSize string    `json:"panelSize"`
}

type ManufacturingStory struct {
	StoryNumber int                  `json:"storyNumber"`
	Dimensions  Dimensions           `json:"dimensions"`
	Panels      []ManufacturingPanel `json:"panels"`
}

type Manufacturing struct {
	Project         string               `json:"project"`
	Timestamp       string               `json:"timestamp"`
	Stories         []ManufacturingStory `json:"stories"`
	TotalPanels     int                  `json:"totalPanels"`
	EstimatedHeight float64              `json:"estimatedHeight"`
}

// ============================================================
// Quote
// ============================================================

type QuoteLine struct {
	SKU        string  `json:"sku"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
	TotalPrice float64 `json:"totalPrice"`
	Weight     float64 `json:"weight"`
}

type QuoteTotals struct {
	TotalCost   float64 `json:"totalCost"`
	TotalWeight float64 `json:"totalWeight"`
	TotalPanels int     `json:"totalPanels"`
}

type Quote struct {
	Project    string      `json:"project"`
	Timestamp  string      `json:"timestamp"`
	Components []QuoteLine `json:"components"`
	Totals     QuoteTotals `json:"totals"`
}
