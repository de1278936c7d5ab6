package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openstudio-standards/osstd/internal/api/models"
	"github.com/openstudio-standards/osstd/standards/prototype"
)

// ListPrototypes handles GET /api/v1/prototypes
//
// The template query parameter narrows the list.
func (h *StandardsHandler) ListPrototypes(c *gin.Context) {
	template := c.Query(paramTemplate)
	var out []models.PrototypeInfo
	for _, t := range prototype.Templates() {
		if template != "" && t != template {
			continue
		}
		for _, bt := range prototype.BuildingTypes() {
			d, err := prototype.Lookup(t, bt)
			if err != nil {
				abortWithError(c, err)
				return
			}
			out = append(out, models.PrototypeInfo{
				Template:           d.Template,
				BuildingType:       d.BuildingType,
				LookupBuildingType: d.LookupBuildingType,
				GeometryFile:       d.GeometryFile,
				HVACMapFile:        d.HVACMapFile,
			})
		}
	}
	if len(out) == 0 {
		abortWithError(c, fmt.Errorf("%w: no prototypes for template %q", prototype.ErrUnknownPrototype, template))
		return
	}
	c.JSON(http.StatusOK, gin.H{"prototypes": out, "count": len(out)})
}

// GetPrototype handles GET /api/v1/prototypes/:building_type
func (h *StandardsHandler) GetPrototype(c *gin.Context) {
	s, ok := h.standard(c)
	if !ok {
		return
	}
	p, err := prototype.Load(s, c.Param("building_type"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	elevators, err := p.Elevators()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"prototype":             p,
		"elevators":             elevators,
		"exterior_lighting":     p.ExteriorLighting(),
		"service_water_heating": p.ServiceWaterHeatingSystems(),
	})
}
