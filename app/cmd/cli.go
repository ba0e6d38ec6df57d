package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rakhulsr/ace-genuine-parts/app/auth"
	"github.com/Rakhulsr/ace-genuine-parts/app/configs"
	"github.com/Rakhulsr/ace-genuine-parts/app/db/seeders"
	"github.com/Rakhulsr/ace-genuine-parts/app/models/migrations"
	"github.com/Rakhulsr/ace-genuine-parts/app/routes"
	"github.com/Rakhulsr/ace-genuine-parts/app/services"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 15 * time.Second

func RunCli(env configs.ENV) {
	serveAction := func(ctx context.Context, c *cli.Command) error {
		return serve(ctx, env)
	}

	cmd := &cli.Command{
		Name:   "ace-genuine-parts",
		Usage:  "ACE Genuine Parts storefront API",
		Action: serveAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start the HTTP API",
				Action: serveAction,
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Println("✅ Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Seed the demo parts catalog and, optionally, a dealer",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dealer-user",
						Usage: "user id to register as the demo dealer",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					if err := seeders.DBSeed(ctx, db, c.String("dealer-user")); err != nil {
						return err
					}
					log.Println("✅ Seeding complete")
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate a new JWT secret for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := configs.GenerateAndPrintKeys(); err != nil {
						return err
					}
					log.Println("✅ Key generation complete. Please copy the secret to your .env file.")
					return nil
				},
			},
			{
				Name:  "issue-token",
				Usage: "Sign a bearer token with JWT_SECRET for local testing",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user", Usage: "subject (uuid)", Required: true},
					&cli.StringFlag{Name: "email", Usage: "email claim"},
					&cli.StringFlag{Name: "role", Usage: "role claim", Value: "customer"},
					&cli.DurationFlag{Name: "ttl", Usage: "token lifetime", Value: 24 * time.Hour},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					verifier, err := auth.NewJWTVerifier(env.JWTSecret)
					if err != nil {
						return err
					}
					token, err := verifier.Issue(auth.Identity{
						UserID: c.String("user"),
						Email:  c.String("email"),
						Role:   c.String("role"),
					}, c.Duration("ttl"))
					if err != nil {
						return err
					}
					fmt.Println(token)
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newPublisher(env configs.ENV) services.EventPublisher {
	if env.AMQPURL == "" {
		log.Println("AMQP_URL not set, order events are not published")
		return services.NoopPublisher{}
	}

	publisher, err := services.NewAMQPPublisher(env.AMQPURL, env.AMQPExchange)
	if err != nil {
		log.Warnf("broker unavailable, order events are not published: %v", err)
		return services.NoopPublisher{}
	}
	log.Printf("✅ Publishing order events to exchange %s", env.AMQPExchange)
	return publisher
}

func serve(parent context.Context, env configs.ENV) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := configs.OpenConnection(env)
	if err != nil {
		return fmt.Errorf("DB connection failed: %w", err)
	}
	log.Println("✅ Database connected.")

	verifier, err := auth.NewVerifier(ctx, env.OIDCIssuerURL, env.OIDCClientID, env.JWTSecret)
	if err != nil {
		return fmt.Errorf("auth setup failed: %w", err)
	}
	log.Println("✅ Token verifier initialized.")

	publisher := newPublisher(env)
	defer publisher.Close()

	server := &http.Server{
		Addr:              env.Port,
		Handler:           routes.NewRouter(ctx, db, verifier, publisher, env),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("🚀 Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
