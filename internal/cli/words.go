package cli

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"gstbill/internal/numwords"
)

func newWordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "words <amount>",
		Short: "Spell an amount in words on the Indian scale",
		Example: `  gstbill words 1234567
  # TWELVE LAKH THIRTY FOUR THOUSAND FIVE HUNDRED SIXTY SEVEN ONLY`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
				return fmt.Errorf("invalid amount %q", args[0])
			}
			rounded := math.Round(amount)
			if rounded > float64(numwords.MaxAmount) {
				rounded = float64(numwords.MaxAmount) + 1
			}
			words, err := numwords.Convert(int64(rounded))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), words)
			return err
		},
	}
}
