package handler

import (
	"net/http"

	"github.com/bsujalnaik/GoogleHackathon/internal/domain"

	"github.com/gin-gonic/gin"
)

// GetPortfolio godoc
// @Summary      Get the current portfolio valuation
// @Description  Prices every holding and returns totals, allocations and unrealized P/L. Unpriced tickers appear as warnings.
// @Tags         portfolio
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /api/portfolio [get]
func (h *Handler) GetPortfolio(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-portfolio")
	defer span.End()

	v, err := h.portfolioService.Valuation(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"portfolio": v})
}

// CreatePortfolio godoc
// @Summary      Replace the portfolio
// @Description  Replaces all holdings with the posted list and returns the refreshed valuation.
// @Tags         portfolio
// @Accept       json
// @Produce      json
// @Param        holdings  body  []domain.Holding  true  "Holdings"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/portfolio [post]
func (h *Handler) CreatePortfolio(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.create-portfolio")
	defer span.End()

	var holdings []domain.Holding
	if err := c.ShouldBindJSON(&holdings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	view, err := h.portfolioService.Create(ctx, holdings)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// UpdatePortfolio godoc
// @Summary      Apply quantity deltas to the portfolio
// @Description  Increases average in at the trade price, decreases book realized P/L. The batch applies atomically.
// @Tags         portfolio
// @Accept       json
// @Produce      json
// @Param        deltas  body  []domain.HoldingDelta  true  "Position deltas"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/portfolio [put]
func (h *Handler) UpdatePortfolio(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.update-portfolio")
	defer span.End()

	var deltas []domain.HoldingDelta
	if err := c.ShouldBindJSON(&deltas); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	view, err := h.portfolioService.Update(ctx, deltas)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DeletePortfolio godoc
// @Summary      Remove holdings
// @Description  Removes the named tickers, or every holding when the list is empty.
// @Tags         portfolio
// @Accept       json
// @Produce      json
// @Param        tickers  body  object  false  "{\"tickers\": [...]}"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /api/portfolio [delete]
func (h *Handler) DeletePortfolio(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.delete-portfolio")
	defer span.End()

	var body struct {
		Tickers []string `json:"tickers"`
	}
	// an empty body means delete everything
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	view, err := h.portfolioService.Delete(ctx, body.Tickers)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetPortfolioHistory godoc
// @Summary      Get valuation history
// @Description  Returns snapshots in chronological order.
// @Tags         portfolio
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/portfolio/history [get]
func (h *Handler) GetPortfolioHistory(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-portfolio-history")
	defer span.End()

	c.JSON(http.StatusOK, gin.H{"history": h.portfolioService.History(ctx)})
}
