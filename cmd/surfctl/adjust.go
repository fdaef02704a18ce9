package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/surf-session-bot/internal/adjust"
)

func newAdjustCmd() *cobra.Command {
	var adjustmentsPath string

	cmd := &cobra.Command{
		Use:   "adjust <spot> <playa> <param> <valor>",
		Short: "Set a per-beach calibration parameter",
		Long: "Writes one adjustment parameter (delta_altura or factor_periodo) to the\n" +
			"adjustment store file, the same edit the in-chat /ajuste command makes.",
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			spotKey, beachKey, param := args[0], args[1], args[2]
			value, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return fmt.Errorf("el valor debe ser numérico: %q", args[3])
			}

			store := adjust.NewFileStore(adjustmentsPath)
			if err := store.Set(spotKey, beachKey, param, value); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Ajuste aplicado: %s/%s %s = %s\n",
				spotKey, beachKey, param, strconv.FormatFloat(value, 'g', -1, 64))
			return nil
		},
	}

	cmd.Flags().StringVar(&adjustmentsPath, "adjustments", "ajustes_spots.json", "adjustment store JSON file")

	return cmd
}
