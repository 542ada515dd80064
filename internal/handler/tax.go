package handler

import (
	"net/http"
	"strconv"

	"github.com/bsujalnaik/GoogleHackathon/internal/domain"
	"github.com/bsujalnaik/GoogleHackathon/internal/report"

	"github.com/gin-gonic/gin"
)

// AssessTax godoc
// @Summary      Assess tax liability
// @Description  Computes slab tax, deduction suggestions and the recommended ITR form for one profile.
// @Tags         tax
// @Accept       json
// @Produce      json
// @Param        profile  body  domain.TaxProfile  true  "Tax profile"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/tax [post]
func (h *Handler) AssessTax(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.assess-tax")
	defer span.End()

	var profile domain.TaxProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	assessment, err := h.taxService.Assess(ctx, profile)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessment)
}

// GetReport godoc
// @Summary      Download the portfolio report
// @Description  Streams the current valuation plus tax-savings suggestions as a CSV attachment. Pass income to price the suggestions at the caller's marginal rate.
// @Tags         portfolio
// @Produce      text/csv
// @Param        format  query  string  false  "Report format"  default(csv)
// @Param        income  query  number  false  "Gross annual income"
// @Success      200  {file}  binary
// @Failure      400  {object}  map[string]string
// @Router       /api/report [get]
func (h *Handler) GetReport(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-report")
	defer span.End()

	if format := c.DefaultQuery("format", "csv"); format != "csv" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported format: " + format})
		return
	}

	// Without an income the suggestions still list section headroom, at a
	// zero marginal rate.
	var profile domain.TaxProfile
	if raw := c.Query("income"); raw != "" {
		income, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid income"})
			return
		}
		profile.GrossIncome = income
	}

	v, err := h.portfolioService.Valuation(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	suggestions, err := h.taxService.Suggestions(ctx, profile)
	if err != nil {
		writeError(c, err)
		return
	}
	r, err := report.CSV(v, suggestions)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+r.Filename+`"`)
	c.Data(http.StatusOK, r.MimeType, r.Bytes)
}

// GetAllocationChart godoc
// @Summary      Get the allocation donut chart
// @Description  Renders the current portfolio allocation as a PNG.
// @Tags         portfolio
// @Produce      png
// @Success      200  {file}  binary
// @Failure      400  {object}  map[string]string
// @Router       /api/charts/allocation [get]
func (h *Handler) GetAllocationChart(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-allocation-chart")
	defer span.End()

	v, err := h.portfolioService.Valuation(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	img, err := h.renderer.RenderAllocation(v)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, img.MimeType, img.Bytes)
}
