package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetStocks godoc
// @Summary      Get quotes and technical indicators
// @Description  Returns the latest quote and indicator set per ticker. Failed tickers land in "unavailable".
// @Tags         stocks
// @Produce      json
// @Param        ticker  query  string  true  "Comma-separated tickers (e.g., TCS.NS,INFY.NS)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/stocks [get]
func (h *Handler) GetStocks(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-stocks")
	defer span.End()

	tickers := parseTickers(c.Query("ticker"))
	span.SetAttributes(attribute.Int("ticker.count", len(tickers)))

	data, err := h.stockService.GetStockData(ctx, tickers)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, data)
}

// GetRecommendations godoc
// @Summary      Get buy/hold/sell recommendations
// @Description  One recommendation per ticker with a one-line rationale, defaulting to the current portfolio's tickers. Tickers without market data hold.
// @Tags         stocks
// @Produce      json
// @Param        ticker  query  string  false  "Comma-separated tickers (defaults to portfolio holdings)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/recommendations [get]
func (h *Handler) GetRecommendations(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-recommendations")
	defer span.End()

	tickers := parseTickers(c.Query("ticker"))
	if len(tickers) == 0 {
		for _, holding := range h.portfolioService.Holdings() {
			tickers = append(tickers, holding.Ticker)
		}
	}

	recs, err := h.stockService.Recommendations(ctx, tickers)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}
