package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Donsufia/LACIPD-APP/internal/handlers"
	"github.com/Donsufia/LACIPD-APP/internal/logger"
	"github.com/Donsufia/LACIPD-APP/internal/mailer"
	"github.com/Donsufia/LACIPD-APP/internal/repository"
	"github.com/Donsufia/LACIPD-APP/internal/server"
	"github.com/Donsufia/LACIPD-APP/internal/service"
	"github.com/Donsufia/LACIPD-APP/internal/session"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultPort = "3000"

func main() {
	// .env is optional; real deployments set the variables directly.
	_ = godotenv.Load()

	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("log_level"))

	// open the user store
	repos, err := repository.New(viper.GetString("store.path"))
	if err != nil {
		log.Fatalw("failed to open user store", "path", viper.GetString("store.path"), "err", err)
	}

	// session manager with background expiry sweep
	ttl := viper.GetDuration("session.ttl")
	sessions := session.NewManager(viper.GetString("session.secret"), ttl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sessions.Run(ctx, viper.GetDuration("session.cleanup_interval"))

	// outbound mail channel
	mail, err := mailer.NewSMTP(mailer.Config{
		Host:     viper.GetString("smtp.host"),
		Port:     viper.GetInt("smtp.port"),
		Username: viper.GetString("smtp.username"),
		Password: viper.GetString("smtp.password"),
		From:     viper.GetString("smtp.from"),
		Timeout:  viper.GetDuration("smtp.timeout"),
	})
	if err != nil {
		log.Fatalw("failed to configure mailer", "err", err)
	}

	// wire dependencies
	services := service.NewService(repos, sessions, mail)
	apiHandler := handlers.NewHandler(services, log, handlers.Config{
		PagesDir:   viper.GetString("pages_dir"),
		SessionTTL: ttl,
	})

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.SetDefault("port", defaultPort)
	viper.SetDefault("log_level", logger.InfoLevel)
	viper.SetDefault("pages_dir", "public")
	viper.SetDefault("store.path", "data/users.json")
	viper.SetDefault("session.ttl", 24*time.Hour)
	viper.SetDefault("session.cleanup_interval", 15*time.Minute)
	viper.SetDefault("smtp.host", "smtp.gmail.com")
	viper.SetDefault("smtp.port", 587)
	viper.SetDefault("smtp.timeout", 5*time.Second)

	// Same variable names the original deployment used.
	_ = viper.BindEnv("port", "PORT")
	_ = viper.BindEnv("smtp.username", "EMAIL_USER")
	_ = viper.BindEnv("smtp.password", "EMAIL_PASS")
	_ = viper.BindEnv("session.secret", "SESSION_SECRET")

	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env cover it.
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("server starting", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
