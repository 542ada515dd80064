package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/bsujalnaik/GoogleHackathon/internal/domain"

	tele "gopkg.in/telebot.v3"
)

type PortfolioQuerier interface {
	Valuation(ctx context.Context) (domain.Valuation, error)
	Holdings() []domain.Holding
}

type Recommender interface {
	Recommendations(ctx context.Context, tickers []string) ([]domain.Recommendation, error)
}

func StartTelegramBot(portfolioService PortfolioQuerier, stockService Recommender) *tele.Bot {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/networth", func(c tele.Context) error {
		if portfolioService == nil {
			return c.Send("Portfolio service unavailable")
		}
		v, err := portfolioService.Valuation(context.Background())
		if err != nil {
			return c.Send(fmt.Sprintf("Error valuing portfolio: %v", err))
		}
		return c.Send(formatValuation(v))
	})

	b.Handle("/holdings", func(c tele.Context) error {
		if portfolioService == nil {
			return c.Send("Portfolio service unavailable")
		}
		holdings := portfolioService.Holdings()
		if len(holdings) == 0 {
			return c.Send("Your portfolio is empty.")
		}
		lines := make([]string, 0, len(holdings))
		for _, h := range holdings {
			lines = append(lines, fmt.Sprintf("%s: %.2f @ ₹%.2f", h.Ticker, h.Quantity, h.AverageCost))
		}
		return c.Send(strings.Join(lines, "\n"))
	})

	b.Handle("/recommend", func(c tele.Context) error {
		if stockService == nil {
			return c.Send("Stock service unavailable")
		}
		args := c.Args()
		if len(args) == 0 {
			return c.Send("Usage: /recommend TCS.NS")
		}
		recs, err := stockService.Recommendations(context.Background(), args)
		if err != nil {
			return c.Send(fmt.Sprintf("Error: %v", err))
		}
		lines := make([]string, 0, len(recs))
		for _, r := range recs {
			lines = append(lines, formatRecommendation(r))
		}
		return c.Send(strings.Join(lines, "\n"))
	})

	b.Handle("/tax", func(c tele.Context) error {
		return c.Send("Tax assessment runs over the API: POST /api/tax with your income profile.")
	})

	log.Println("Telegram bot started")
	go b.Start()
	return b
}

func formatValuation(v domain.Valuation) string {
	msg := fmt.Sprintf(
		"Net worth: ₹%.2f\nInvested: ₹%.2f\nUnrealized P/L: ₹%.2f",
		v.TotalValue, v.TotalCost, v.UnrealizedPL,
	)
	if len(v.Warnings) > 0 {
		msg += "\nUnpriced: " + strings.Join(v.Warnings, ", ")
	}
	return msg
}

func formatRecommendation(r domain.Recommendation) string {
	return fmt.Sprintf("%s: %s (%s)", r.Ticker, r.Signal, r.Rationale)
}
