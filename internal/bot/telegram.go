package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"asteroid-tracker/internal/domain"
	"asteroid-tracker/internal/logger"

	tele "gopkg.in/telebot.v3"
)

const (
	hazardousListSize = 10
	commandTimeout    = 45 * time.Second
)

// AsteroidService is the part of the service layer the bot talks to.
type AsteroidService interface {
	ListAsteroids(ctx context.Context, filter domain.ListFilter) ([]*domain.Asteroid, error)
	GetAsteroid(ctx context.Context, id int64) (*domain.Asteroid, error)
	FetchAndStore(ctx context.Context, startDate, endDate string) ([]*domain.Asteroid, error)
}

// StartTelegramBot starts long polling in the background. It is a no-op
// without a token.
func StartTelegramBot(token string, svc AsteroidService) {
	log := logger.Component("telegram")
	if strings.TrimSpace(token) == "" {
		log.Info("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	b, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		log.Fatal("failed to create Telegram bot", "err", err)
	}

	cmds := &commands{svc: svc}
	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})
	b.Handle("/hazardous", func(c tele.Context) error {
		return c.Send(cmds.hazardous())
	})
	b.Handle("/asteroid", func(c tele.Context) error {
		return c.Send(cmds.asteroid(c.Args()))
	})
	b.Handle("/fetch", func(c tele.Context) error {
		return c.Send(cmds.fetch(c.Args()))
	})

	log.Info("Telegram bot started")
	go b.Start()
}

type commands struct {
	svc AsteroidService
}

func (c *commands) hazardous() string {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	hazardous := true
	asteroids, err := c.svc.ListAsteroids(ctx, domain.ListFilter{Limit: hazardousListSize, Hazardous: &hazardous})
	if err != nil {
		return fmt.Sprintf("Error listing hazardous asteroids (%s): %v", domain.Category(err), err)
	}
	if len(asteroids) == 0 {
		return "No potentially hazardous asteroids stored."
	}

	var b strings.Builder
	b.WriteString("Potentially hazardous asteroids:\n")
	for _, a := range asteroids {
		fmt.Fprintf(&b, "#%d %s, %s, miss %.0f km\n", a.ID, a.Name, a.CloseApproachDate, a.MissDistance)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (c *commands) asteroid(args []string) string {
	if len(args) == 0 {
		return "Usage: /asteroid 42"
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Sprintf("Invalid asteroid id: %s", args[0])
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	a, err := c.svc.GetAsteroid(ctx, id)
	if err != nil {
		return fmt.Sprintf("Error (%s): %v", domain.Category(err), err)
	}
	return formatAsteroid(a)
}

func (c *commands) fetch(args []string) string {
	if len(args) < 2 {
		return "Usage: /fetch 2024-01-01 2024-01-07"
	}

	// No deadline: the upstream transport timeout is the only bound.
	created, err := c.svc.FetchAndStore(context.Background(), args[0], args[1])
	if err != nil {
		return fmt.Sprintf("Fetch failed (%s) after storing %d asteroids: %v", domain.Category(err), len(created), err)
	}
	return fmt.Sprintf("Stored %d asteroids for %s to %s.", len(created), args[0], args[1])
}

func formatAsteroid(a *domain.Asteroid) string {
	hazard := "no"
	if a.IsPotentiallyHazardous {
		hazard = "YES"
	}
	return fmt.Sprintf(
		"#%d %s\nHazardous: %s\nMagnitude (H): %.2f\nDiameter: %.3f-%.3f km\nClose approach: %s (%s)\nVelocity: %.2f km/s\nMiss distance: %.0f km\nOrbiting: %s",
		a.ID, a.Name, hazard, a.AbsoluteMagnitude,
		a.EstimatedDiameterMin, a.EstimatedDiameterMax,
		a.CloseApproachDate, a.CloseApproachDateFull, a.RelativeVelocity, a.MissDistance, a.OrbitingBody,
	)
}
