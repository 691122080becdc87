package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pierreiost/quadracerta/internal/config"
	appHTTP "github.com/pierreiost/quadracerta/internal/handler/http"
	"github.com/pierreiost/quadracerta/internal/pkg/cron"
	"github.com/pierreiost/quadracerta/internal/pkg/database"
	"github.com/pierreiost/quadracerta/internal/pkg/jwt"
	"github.com/pierreiost/quadracerta/internal/repository/postgresql"
	authService "github.com/pierreiost/quadracerta/internal/service/auth"
	clientService "github.com/pierreiost/quadracerta/internal/service/client"
	courtService "github.com/pierreiost/quadracerta/internal/service/court"
	notificationService "github.com/pierreiost/quadracerta/internal/service/notification"
	productService "github.com/pierreiost/quadracerta/internal/service/product"
	reservationService "github.com/pierreiost/quadracerta/internal/service/reservation"
	complexService "github.com/pierreiost/quadracerta/internal/service/sportcomplex"
	tabService "github.com/pierreiost/quadracerta/internal/service/tab"
	userService "github.com/pierreiost/quadracerta/internal/service/user"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func serveCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and background jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return serve(cmd.Context(), cfg, migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply the database schema before serving")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, migrate bool) error {
	logger := appHTTP.NewLogger(cfg, version)
	slog.SetDefault(logger)

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if migrate {
		if err := database.Migrate(ctx, db); err != nil {
			return err
		}
	}

	loc := cfg.Location()
	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	tx := postgresql.NewTransactor(db)

	// Repositories
	userRepo := postgresql.NewUserRepository(db)
	tokenRepo := postgresql.NewJWTRepository(db)
	complexRepo := postgresql.NewComplexRepository(db)
	courtRepo := postgresql.NewCourtRepository(db)
	clientRepo := postgresql.NewClientRepository(db)
	productRepo := postgresql.NewProductRepository(db)
	reservationRepo := postgresql.NewReservationRepository(db)
	tabRepo := postgresql.NewTabRepository(db)
	notificationSource := postgresql.NewNotificationSource(db)

	// Services
	authSvc := authService.NewAuthService(tx, userRepo, jwtSvc, tokenRepo)
	userSvc := userService.NewUserService(userRepo, complexRepo)
	complexSvc := complexService.NewComplexService(complexRepo)
	courtSvc := courtService.NewCourtService(courtRepo)
	clientSvc := clientService.NewClientService(clientRepo, tabRepo)
	productSvc := productService.NewProductService(productRepo)
	reservationSvc := reservationService.NewReservationService(tx, reservationRepo, courtRepo, clientRepo, loc)
	tabSvc := tabService.NewTabService(tx, tabRepo, productRepo, clientRepo, reservationRepo)
	notificationSvc := notificationService.NewNotificationService(notificationSource, notificationService.Config{})

	router := appHTTP.NewRouter(cfg, logger, jwtSvc, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(jwtSvc, authSvc),
		Complex:      appHTTP.NewComplexHandler(complexSvc),
		Court:        appHTTP.NewCourtHandler(courtSvc),
		Client:       appHTTP.NewClientHandler(clientSvc),
		Product:      appHTTP.NewProductHandler(productSvc),
		Reservation:  appHTTP.NewReservationHandler(reservationSvc, loc),
		Tab:          appHTTP.NewTabHandler(tabSvc),
		User:         appHTTP.NewUserHandler(userSvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc),
	})

	scheduler := cron.NewScheduler()
	cron.NewMaintenanceJobs(reservationSvc, tokenRepo).RegisterJobs(
		scheduler,
		cfg.Jobs.ReservationSweepInterval,
		cfg.Jobs.TokenCleanupInterval,
	)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "addr", server.Addr, "env", cfg.App.Env, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	slog.Info("Server stopped")
	return nil
}
