package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ocr-service/config"
	"ocr-service/internal/logger"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cli хранит общие для подкоманд настройки
type cli struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "ocr-service",
		Short:         "OCR service: recognize words on images and draw their bounding boxes",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			c.cfg = cfg

			logCfg := logger.DefaultConfig()
			logCfg.Level = cfg.LogLevel
			logCfg.Format = cfg.LogFormat
			logCfg.Output = os.Stderr
			return logger.Setup(logCfg)
		},
	}

	root.AddCommand(newServeCmd(c), newRecognizeCmd(c))
	return root
}
