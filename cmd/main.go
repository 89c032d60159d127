package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	discordclient "monkeybot/clients/discord"
	"monkeybot/clients/github"
	"monkeybot/config"
	"monkeybot/handlers"
	"monkeybot/middleware"
	"monkeybot/services/labelstore"
	"monkeybot/services/permissions"
	"monkeybot/usecases/dispatch"
	"monkeybot/usecases/reconcile"
)

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	// Initialize error alert middleware
	alertMiddleware := middleware.NewErrorAlertMiddleware(middleware.AlertConfig{
		WebhookURL:  cfg.AlertWebhookURL,
		Environment: cfg.Environment,
		AppName:     "monkeybot",
	})

	// File-backed state: label cache and unlocked guilds
	labelStore := labelstore.NewLabelStore(cfg.LabelCachePath)
	permissionsService := permissions.NewPermissionsService(cfg.PermissionsPath)

	trackerClient := github.NewGitHubClient(&http.Client{Timeout: 30 * time.Second}, cfg.TrackerConfig.Token)

	// Command dispatch is wired before the gateway opens so that no
	// interaction arrives with an empty registry
	dispatchUseCase := dispatch.NewDispatchUseCase(
		permissionsService,
		nil, // discord client is attached after the session exists
		cfg.DiscordConfig.LogChannelID,
		cfg.DevMode,
	)

	eventsHandler, err := handlers.NewDiscordEventsHandler(cfg.DiscordConfig.BotToken, dispatchUseCase)
	if err != nil {
		return err
	}

	discordClient := discordclient.NewDiscordClient(eventsHandler.Session())
	dispatchUseCase.AttachDiscordClient(discordClient)

	dispatchUseCase.RegisterCommand("ping", dispatch.NewPingHandler())
	dispatchUseCase.RegisterCommand("unlock", dispatch.NewUnlockHandler(permissionsService, cfg.UnlockKey))
	dispatchUseCase.RegisterCommand("issue", dispatch.NewIssueHandler(trackerClient, cfg.TrackerConfig.Repo))

	if err := eventsHandler.StartBot(); err != nil {
		return err
	}
	defer eventsHandler.StopBot()

	reconcileUseCase := reconcile.NewReconcileUseCase(
		trackerClient,
		discordClient,
		labelStore,
		alertMiddleware,
		cfg.TrackerConfig.Repo,
		cfg.DiscordConfig.GuildID,
		cfg.DiscordConfig.UpdatesChannelID,
		cfg.DiscordConfig.UpdateRoleID,
	)

	loopCtx, cancelLoop := context.WithCancel(context.Background())
	defer cancelLoop()
	go reconcileUseCase.StartReconciliationLoop(loopCtx, cfg.ReconcileInterval)

	// Ops HTTP surface: health check and reconciliation status
	router := mux.NewRouter()
	handlers.NewStatusHandler(reconcileUseCase).SetupEndpoints(router)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           alertMiddleware.HTTPMiddleware(c.Handler(router)),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(server)
}

func handleGracefulShutdown(server *http.Server) error {
	// Channel to listen for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		log.Printf("✅ Listening on http://localhost%s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("❌ Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	<-stop
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown server gracefully
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
