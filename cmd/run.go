package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"pokecasino/api"
	"pokecasino/bot"
	"pokecasino/config"
	"pokecasino/database"
	"pokecasino/events"
	"pokecasino/games"
	"pokecasino/pokeapi"
	"pokecasino/repository"
	"pokecasino/repository/memstore"
	"pokecasino/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()
	log.WithField("environment", cfg.Environment).Info("Starting pokecasino")

	eventBus := events.NewBus()
	subscribeEventLogging(eventBus)

	// DATABASE_URL selects the backing store; empty runs in-memory.
	var (
		uowFactory service.UnitOfWorkFactory
		db         *database.DB
		err        error
	)
	if cfg.DatabaseURL != "" {
		db, err = database.NewConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()
		uowFactory = repository.NewUnitOfWorkFactory(db, eventBus)
	} else {
		log.Info("No DATABASE_URL configured, using in-memory store")
		uowFactory = memstore.NewUnitOfWorkFactory(memstore.NewStore(), eventBus)
	}

	pokemonDirectory := pokeapi.NewClient(cfg.PokemonAPIBaseURL)

	userService := service.NewUserService(uowFactory)
	gamblingService := service.NewGamblingService(uowFactory, games.NewEngine())
	pokemonService := service.NewPokemonService(uowFactory, pokemonDirectory)
	tournamentService := service.NewTournamentService(uowFactory)
	statsService := service.NewStatsService(uowFactory)
	gamblingLogService := service.NewGamblingLogService(uowFactory)

	server := api.NewServer(userService, gamblingService, pokemonService, tournamentService, statsService, gamblingLogService)
	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      server.Router(),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// The Discord surface is optional and only comes up with a token.
	var discordBot *bot.Bot
	if cfg.DiscordToken != "" {
		discordBot, err = bot.New(bot.Config{
			Token:   cfg.DiscordToken,
			GuildID: cfg.DiscordGuildID,
		}, userService, pokemonService, tournamentService, statsService, gamblingLogService)
		if err != nil {
			return fmt.Errorf("failed to initialize Discord bot: %w", err)
		}
	}

	select {
	case err := <-serverErr:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down")

	if discordBot != nil {
		if err := discordBot.Close(); err != nil {
			log.WithError(err).Error("Error closing Discord bot")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	log.Info("Shutdown completed")
	return nil
}

// subscribeEventLogging attaches logging consumers so domain events show up
// in the service logs regardless of surface.
func subscribeEventLogging(bus *events.Bus) {
	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.BalanceChangeEvent); ok {
			log.WithFields(log.Fields{
				"userId":          e.UserID,
				"changeAmount":    e.ChangeAmount,
				"newBalance":      e.NewBalance,
				"transactionType": e.TransactionType,
			}).Info("Balance changed")
		}
	})
	bus.Subscribe(events.EventTypeGamePlayed, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.GamePlayedEvent); ok {
			log.WithFields(log.Fields{
				"userId":   e.UserID,
				"gameType": e.GameType,
				"result":   e.Result,
				"payout":   e.Payout,
			}).Info("Game played")
		}
	})
	bus.Subscribe(events.EventTypeTournamentCompleted, func(ctx context.Context, event events.Event) {
		if e, ok := event.(events.TournamentCompletedEvent); ok {
			log.WithFields(log.Fields{
				"tournamentId": e.TournamentID,
				"winnerId":     e.WinnerID,
			}).Info("Tournament completed")
		}
	})
}
