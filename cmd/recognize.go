package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ocr-service/internal/container"
)

func newRecognizeCmd(c *cli) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "recognize <image>",
		Short: "Recognize one image, write the annotated PNG and print the text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}

			appContainer, err := container.FromConfig(cmd.Context(), c.cfg)
			if err != nil {
				return fmt.Errorf("build services: %w", err)
			}
			defer appContainer.Close()

			out, err := appContainer.RecognitionService.Process(cmd.Context(), data)
			if err != nil {
				return err
			}

			if err := os.WriteFile(output, out.Annotated, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), out.Result.Text)
			fmt.Fprintf(cmd.ErrOrStderr(), "%d words, annotated image written to %s\n", out.Result.WordCount(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "processed_image.png", "annotated image path")
	return cmd
}
