package models

import "github.com/openstudio-standards/osstd/standards"

// TemplateInfo describes one registered template.
type TemplateInfo struct {
	Template string            `json:"template"`
	Profile  standards.Profile `json:"profile"`
}

// TableInfo is the name and size of a standards table.
type TableInfo struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
}

// LookupResponse is the result of a table search.
type LookupResponse struct {
	Table    string             `json:"table"`
	Criteria standards.Criteria `json:"criteria"`
	Capacity *float64           `json:"capacity,omitempty"`
	Count    int                `json:"count"`
	Rows     []standards.Row    `json:"rows"`
}

// EfficiencyResponse is the result of a component efficiency rule.
type EfficiencyResponse struct {
	Template string `json:"template"`
	Kind     string `json:"kind"`
	Result   any    `json:"result"`
}

// SystemTypeResponse is the baseline system of one system group.
type SystemTypeResponse struct {
	Template     string               `json:"template"`
	SystemNumber string               `json:"system_number"`
	System       standards.SystemSpec `json:"system"`
}

// BaselineResponse lists the baseline systems selected for a set of zones.
type BaselineResponse struct {
	Template string                     `json:"template"`
	Systems  []standards.BaselineSystem `json:"systems"`
}

// PrototypeInfo is one registered prototype.
type PrototypeInfo struct {
	Template           string `json:"template"`
	BuildingType       string `json:"building_type"`
	LookupBuildingType string `json:"lookup_building_type"`
	GeometryFile       string `json:"geometry_file"`
	HVACMapFile        string `json:"hvac_map_file,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
