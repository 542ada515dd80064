package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/bsujalnaik/GoogleHackathon/internal/chart"
	"github.com/bsujalnaik/GoogleHackathon/internal/domain"
	"github.com/bsujalnaik/GoogleHackathon/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type Handler struct {
	tracer           trace.Tracer
	stockService     *service.StockService
	portfolioService *service.PortfolioService
	taxService       *service.TaxService
	renderer         *chart.Renderer
}

func New(
	tracer trace.Tracer,
	stockService *service.StockService,
	portfolioService *service.PortfolioService,
	taxService *service.TaxService,
	renderer *chart.Renderer,
) *Handler {
	return &Handler{
		tracer:           tracer,
		stockService:     stockService,
		portfolioService: portfolioService,
		taxService:       taxService,
		renderer:         renderer,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/stocks", h.GetStocks)
	r.GET("/api/portfolio", h.GetPortfolio)
	r.POST("/api/portfolio", h.CreatePortfolio)
	r.PUT("/api/portfolio", h.UpdatePortfolio)
	r.DELETE("/api/portfolio", h.DeletePortfolio)
	r.GET("/api/portfolio/history", h.GetPortfolioHistory)
	r.GET("/api/recommendations", h.GetRecommendations)
	r.POST("/api/tax", h.AssessTax)
	r.GET("/api/report", h.GetReport)
	r.GET("/api/charts/allocation", h.GetAllocationChart)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
}

// Recovery converts a panic into a 500 without leaking detail.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, _ any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}

// Health godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// writeError maps the domain error taxonomy onto HTTP statuses. Market
// data failures never reach here; they degrade inside the services.
// Anything outside the taxonomy is logged and answered with a fixed 500
// body so internal detail never reaches the client.
func writeError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	var nf *domain.NotFoundError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Msg})
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
	default:
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func parseTickers(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
