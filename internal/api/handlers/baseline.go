package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openstudio-standards/osstd/internal/api/models"
	"github.com/openstudio-standards/osstd/standards"
)

// SystemType handles GET /api/v1/baseline/system-type
func (h *StandardsHandler) SystemType(c *gin.Context) {
	s, ok := h.standard(c)
	if !ok {
		return
	}
	areaType := c.DefaultQuery("area_type", standards.AreaNonresidential)
	fuel := c.DefaultQuery("fuel", standards.FuelFossil)
	areaFt2, err := strconv.ParseFloat(c.DefaultQuery("area_ft2", "0"), 64)
	if err != nil || areaFt2 < 0 {
		badRequest(c, "INVALID_PARAM", fmt.Sprintf("area_ft2 must be a non-negative number, got %q", c.Query("area_ft2")))
		return
	}
	stories, err := strconv.Atoi(c.DefaultQuery("stories", "1"))
	if err != nil || stories < 0 {
		badRequest(c, "INVALID_PARAM", fmt.Sprintf("stories must be a non-negative integer, got %q", c.Query("stories")))
		return
	}
	climateZone := c.Query("climate_zone")

	spec, ok := s.SystemType(climateZone, areaType, fuel, areaFt2, stories)
	if !ok {
		abortWithError(c, fmt.Errorf("%w: %s has no baseline system for area type %q, fuel %q", standards.ErrNotFound, s.Template(), areaType, fuel))
		return
	}
	num, _ := s.SystemNumber(climateZone, areaType, fuel, areaFt2, stories)
	c.JSON(http.StatusOK, models.SystemTypeResponse{Template: s.Template(), SystemNumber: num, System: spec})
}

// BaselineSystems handles POST /api/v1/baseline/systems
func (h *StandardsHandler) BaselineSystems(c *gin.Context) {
	var req models.BaselineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	s, err := h.cache.Get(req.Template, req.Custom)
	if err != nil {
		abortWithError(c, err)
		return
	}
	systems, err := s.SelectBaselineSystems(req.ClimateZone, req.Zones)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.BaselineResponse{Template: s.Template(), Systems: systems})
}
