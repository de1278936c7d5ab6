package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openstudio-standards/osstd/internal/api/models"
	"github.com/openstudio-standards/osstd/standards"
)

// Query parameters that select the Standard or shape a lookup rather than
// filter rows.
const (
	paramTemplate = "template"
	paramCustom   = "custom"
	paramCapacity = "capacity"
	paramLimit    = "limit"
)

// StandardsHandler serves the templates, tables and component rules.
type StandardsHandler struct {
	cache *StandardCache
}

// NewStandardsHandler creates a handler over cache.
func NewStandardsHandler(cache *StandardCache) *StandardsHandler {
	return &StandardsHandler{cache: cache}
}

// standard resolves the template and custom query parameters.
func (h *StandardsHandler) standard(c *gin.Context) (*standards.Standard, bool) {
	template := c.Query(paramTemplate)
	if template == "" {
		badRequest(c, "MISSING_PARAM", "template query parameter is required")
		return nil, false
	}
	s, err := h.cache.Get(template, c.Query(paramCustom))
	if err != nil {
		abortWithError(c, err)
		return nil, false
	}
	return s, true
}

// ListTemplates handles GET /api/v1/templates
func (h *StandardsHandler) ListTemplates(c *gin.Context) {
	names := standards.Templates()
	out := make([]models.TemplateInfo, 0, len(names))
	for _, name := range names {
		p, err := standards.LookupProfile(name)
		if err != nil {
			abortWithError(c, err)
			return
		}
		out = append(out, models.TemplateInfo{Template: name, Profile: p})
	}
	c.JSON(http.StatusOK, gin.H{"templates": out, "count": len(out)})
}

// ListTables handles GET /api/v1/tables
func (h *StandardsHandler) ListTables(c *gin.Context) {
	d, err := h.cache.Data()
	if err != nil {
		abortWithError(c, err)
		return
	}
	names := d.Names()
	out := make([]models.TableInfo, 0, len(names))
	for _, name := range names {
		t, _ := d.Table(name)
		out = append(out, models.TableInfo{Name: name, Rows: len(t)})
	}
	c.JSON(http.StatusOK, gin.H{"tables": out, "count": len(out)})
}

// LookupTable handles GET /api/v1/tables/:table
//
// Every query parameter other than template, custom, capacity and limit is
// a column criterion. The template column defaults to the template.
func (h *StandardsHandler) LookupTable(c *gin.Context) {
	s, ok := h.standard(c)
	if !ok {
		return
	}
	var pairs []string
	for k, vs := range c.Request.URL.Query() {
		switch k {
		case paramTemplate, paramCustom, paramCapacity, paramLimit:
			continue
		}
		pairs = append(pairs, k+"="+vs[0])
	}
	sort.Strings(pairs)
	criteria, err := standards.ParseCriteria(pairs)
	if err != nil {
		badRequest(c, "INVALID_PARAM", err.Error())
		return
	}
	if _, set := criteria[paramTemplate]; !set {
		criteria[paramTemplate] = s.Template()
	}

	var capacity *float64
	if v := c.Query(paramCapacity); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			badRequest(c, "INVALID_PARAM", fmt.Sprintf("capacity must be a positive number, got %q", v))
			return
		}
		capacity = standards.Ptr(f)
	}
	limit := 0
	if v := c.Query(paramLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			badRequest(c, "INVALID_PARAM", fmt.Sprintf("limit must be a non-negative integer, got %q", v))
			return
		}
		limit = n
	}

	table := c.Param("table")
	rows, err := s.TableRows(table, criteria, capacity)
	if err != nil {
		abortWithError(c, err)
		return
	}
	count := len(rows)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	if rows == nil {
		rows = []standards.Row{}
	}
	c.JSON(http.StatusOK, models.LookupResponse{
		Table:    table,
		Criteria: criteria,
		Capacity: capacity,
		Count:    count,
		Rows:     rows,
	})
}

// ComponentEfficiency handles POST /api/v1/efficiency/:kind
//
// The body is the component as JSON; unknown fields are rejected.
func (h *StandardsHandler) ComponentEfficiency(c *gin.Context) {
	kind := c.Param("kind")
	if !standards.IsValidComponentKind(kind) {
		c.AbortWithStatusJSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "UNKNOWN_KIND",
				Message: fmt.Sprintf("unknown component kind %q", kind),
				Details: map[string]any{"valid_kinds": standards.ValidComponentKinds()},
			},
		})
		return
	}
	s, ok := h.standard(c)
	if !ok {
		return
	}
	body, err := c.GetRawData()
	if err != nil {
		abortWithError(c, fmt.Errorf("%w: %v", errInvalidBody, err))
		return
	}
	decode := func(v any) error {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("%w: %v", errInvalidBody, err)
		}
		return nil
	}
	res, err := s.ComponentEfficiency(kind, decode)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.EfficiencyResponse{Template: s.Template(), Kind: kind, Result: res})
}
