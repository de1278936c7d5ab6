package models

import "github.com/openstudio-standards/osstd/standards"

// BaselineRequest is the body of POST /api/v1/baseline/systems.
type BaselineRequest struct {
	Template    string           `json:"template" binding:"required"`
	Custom      string           `json:"custom"`
	ClimateZone string           `json:"climate_zone" binding:"required"`
	Zones       []standards.Zone `json:"zones" binding:"required,min=1"`
}
