package main

import (
	"bufio"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/surf-session-bot/internal/adapter/openmeteo"
	"github.com/couchcryptid/surf-session-bot/internal/adjust"
	"github.com/couchcryptid/surf-session-bot/internal/catalog"
	"github.com/couchcryptid/surf-session-bot/internal/dialogue"
	"github.com/couchcryptid/surf-session-bot/internal/forecast"
	"github.com/couchcryptid/surf-session-bot/internal/observability"
)

func newChatCmd() *cobra.Command {
	var (
		spotsPath       string
		adjustmentsPath string
		timezone        string
		bestDayRange    int
		logLevel        string
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the bot on stdin/stdout",
		Long: "Runs the dialogue engine locally against the live Open-Meteo APIs.\n" +
			"Same conversation the Kafka bridge serves, without any broker.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := observability.NewLogger(logLevel, "text")
			metrics := observability.NewMetricsForTesting()

			cat, err := catalog.Load(spotsPath)
			if err != nil {
				return fmt.Errorf("load spot catalog: %w", err)
			}

			client, err := openmeteo.NewClient(openmeteo.DefaultMarineBaseURL,
				openmeteo.DefaultForecastBaseURL, timezone, 10*time.Second, logger, metrics)
			if err != nil {
				return fmt.Errorf("create open-meteo client: %w", err)
			}

			store := adjust.NewFileStore(adjustmentsPath)
			reports := forecast.NewService(client, store, cat, client.Location(), bestDayRange, logger, metrics)
			engine := dialogue.NewEngine(cat, reports, store, client.Location(), logger, metrics)

			out := cmd.OutOrStdout()
			state := dialogue.NewState()

			reply, state := engine.Respond(cmd.Context(), "/start", state)
			fmt.Fprintln(out, reply)

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					fmt.Fprintln(out)
					return scanner.Err()
				}
				reply, state = engine.Respond(cmd.Context(), scanner.Text(), state)
				fmt.Fprintln(out, reply)
			}
		},
	}

	cmd.Flags().StringVar(&spotsPath, "spots", "", "spot catalog YAML (built-in catalog when empty)")
	cmd.Flags().StringVar(&adjustmentsPath, "adjustments", "ajustes_spots.json", "adjustment store JSON file")
	cmd.Flags().StringVar(&timezone, "timezone", "America/Argentina/Buenos_Aires", "IANA timezone for dates")
	cmd.Flags().IntVar(&bestDayRange, "best-day-range", 7, "days the best-day report scans")
	cmd.Flags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	return cmd
}
