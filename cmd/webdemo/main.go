package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mkarlsson/webdemo/internal/api"
	"github.com/mkarlsson/webdemo/internal/config"
	"github.com/mkarlsson/webdemo/internal/db"
	"github.com/mkarlsson/webdemo/internal/handler"
	"github.com/mkarlsson/webdemo/internal/repo"
	"github.com/mkarlsson/webdemo/internal/service"
	"github.com/mkarlsson/webdemo/internal/session"
	"github.com/mkarlsson/webdemo/internal/webres"
)

const (
	jwtAudience = "webdemo"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "webdemo",
		Short: "demo web application, runnable in several deployment variants",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "run the embedded HTML server with cookie sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, conn, logger, err := setup(configPath)
			if err != nil {
				return err
			}
			defer conn.Close()
			return runServe(cfg, conn, logger)
		},
	}

	serveAPICmd := &cobra.Command{
		Use:   "serve-api",
		Short: "run the JSON API secured with JWT bearer tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, conn, logger, err := setup(configPath)
			if err != nil {
				return err
			}
			defer conn.Close()
			return runServeAPI(cfg, conn, logger)
		},
	}

	lambdaCmd := &cobra.Command{
		Use:   "lambda",
		Short: "run the user email search handler as an AWS Lambda",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, conn, _, err := setup(configPath)
			if err != nil {
				return err
			}
			defer conn.Close()
			runLambda(conn)
			return nil
		},
	}

	rootCmd.AddCommand(serveCmd, serveAPICmd, lambdaCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(configPath string) (*config.Config, *sqlx.DB, *zap.Logger, error) {
	if configPath == "" {
		return nil, nil, nil, fmt.Errorf("--config is required")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, err
	}
	// Secrets stay out of the log, only the shape of the config goes in.
	logger.Info("config loaded",
		zap.Int("port", cfg.Port),
		zap.String("dbname", cfg.Database.DBName),
		zap.Bool("secure_cookie", cfg.SecureCookie),
		zap.Bool("use_fs_assets", cfg.UseFSAssets),
	)

	conn, err := db.Open(cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Migrate(conn); err != nil {
		conn.Close()
		return nil, nil, nil, err
	}
	return cfg, conn, logger, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	return zapCfg.Build()
}

func runServe(cfg *config.Config, conn *sqlx.DB, logger *zap.Logger) error {
	signingKey, encryptionKey := cfg.CookieKeys()
	sessions := session.NewCookieAuthenticator(signingKey, encryptionKey, cfg.SecureCookie)
	auth := service.NewAuthService(repo.NewUserRepo(conn))

	router := handler.NewRouter(handler.RouterDeps{
		Demo:          handler.NewDemoHandler(),
		Auth:          handler.NewAuthHandler(auth, sessions, logger),
		DB:            conn,
		Sessions:      sessions,
		Logger:        logger,
		Registry:      prometheus.NewRegistry(),
		CORSAllowlist: []string{fmt.Sprintf("http://localhost:%d", cfg.Port)},
		UseFSAssets:   cfg.UseFSAssets,
		AssetsDir:     cfg.AssetsDir,
	})

	logger.Info("starting server", zap.Int("port", cfg.Port), zap.String("variant", "cookie"))
	return serveHTTP(cfg.Port, router, logger)
}

func runServeAPI(cfg *config.Config, conn *sqlx.DB, logger *zap.Logger) error {
	issuer := fmt.Sprintf("http://0.0.0.0:%d", cfg.Port)
	sessions := session.NewTokenAuthenticator([]byte(cfg.JWTSecret), jwtAudience, issuer)
	auth := service.NewAuthService(repo.NewUserRepo(conn))

	router := api.NewRouter(api.Deps{
		Auth:     auth,
		Sessions: sessions,
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
	})

	logger.Info("starting server", zap.Int("port", cfg.Port), zap.String("variant", "jwt"))
	return serveHTTP(cfg.Port, router, logger)
}

func runLambda(conn *sqlx.DB) {
	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		var resp *webres.Response
		err := db.WithConn(ctx, conn, func(c *sqlx.Conn) error {
			users := repo.NewUserRepo(c)
			count, err := users.CountEmailLike(ctx, req.QueryStringParameters["email"])
			if err != nil {
				return err
			}
			resp = webres.JSON(map[string]int64{"c": count})
			return nil
		})
		if err != nil {
			resp = webres.Text(fmt.Sprintf("500: %v", err)).WithStatus(http.StatusInternalServerError)
		}
		return webres.ToLambda(resp)
	})
}

func serveHTTP(port int, router http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
