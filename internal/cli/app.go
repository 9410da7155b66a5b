package cli

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/driverlog/internal/domain"
	"github.com/alexanderramin/driverlog/internal/intelligence"
	"github.com/alexanderramin/driverlog/internal/service"
)

// App holds the services used by CLI commands.
type App struct {
	Ledger service.LedgerService
	Coach  intelligence.CoachService
	Logger *slog.Logger

	// IsInteractive reports whether stdin is a terminal. Forms, pickers
	// and the history table only run when it returns true.
	IsInteractive func() bool

	// Now is the clock used for default dates. nil means time.Now.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) today() string {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	return now().Format(domain.DateLayout)
}

func (a *App) coach() intelligence.CoachService {
	if a.Coach != nil {
		return a.Coach
	}
	return intelligence.NewCoachService(nil)
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}
