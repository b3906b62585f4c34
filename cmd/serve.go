package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"ocr-service/internal/api/httpapi"
	"ocr-service/internal/api/telegram"
	"ocr-service/internal/container"
	"ocr-service/internal/logger"
	"ocr-service/web"
)

func newServeCmd(c *cli) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web page and /ocr-service, plus the Telegram bot when TELEGRAM_TOKEN is set",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.cfg.HTTPAddr = addr
			}
			return runServe(cmd.Context(), c)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	return cmd
}

func runServe(parent context.Context, c *cli) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.WithComponent("serve")

	appContainer, err := container.FromConfig(ctx, c.cfg)
	if err != nil {
		return fmt.Errorf("build services: %w", err)
	}
	defer appContainer.Close()

	page, err := web.StaticFS()
	if err != nil {
		return fmt.Errorf("load page: %w", err)
	}

	server := httpapi.NewServer(appContainer.RecognitionService, httpapi.Options{
		Addr:       c.cfg.HTTPAddr,
		CORSOrigin: c.cfg.CORSOrigin,
		Page:       page,
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx)
	})

	if c.cfg.TelegramToken != "" {
		bot, err := telegram.NewBot(c.cfg.TelegramToken, appContainer.SessionService)
		if err != nil {
			stop()
			_ = g.Wait()
			return fmt.Errorf("create bot: %w", err)
		}
		g.Go(func() error {
			return bot.Run(ctx)
		})
	} else {
		log.Info().Msg("TELEGRAM_TOKEN is not set, bot disabled")
	}

	log.Info().
		Str("engine", appContainer.RecognitionService.EngineName()).
		Str("addr", server.Addr()).
		Msg("service is running")

	return g.Wait()
}
