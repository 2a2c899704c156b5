package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"gstbill/internal/domain"
	"gstbill/internal/gst"
)

func (r *runner) newTotalsCmd() *cobra.Command {
	var (
		state string
		items []string
	)
	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Compute the GST split for a set of items",
		Long: `Compute taxable value, CGST/SGST or IGST, grand total and amount in words.
The supply is intra-state when --state matches the configured home state.`,
		Example: `  gstbill totals --state "TAMIL NADU" --item 10:100 --item 2:50
  gstbill totals --state KARNATAKA --item 1:1000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := r.loadConfig()
			if err != nil {
				return err
			}
			lines, err := parseItems(items)
			if err != nil {
				return err
			}
			engine := gst.NewEngine(gst.Config{
				HomeState: cfg.Tax.HomeState,
				Rates:     gst.Rates{CGST: cfg.Tax.CGST, SGST: cfg.Tax.SGST, IGST: cfg.Tax.IGST},
			})
			totals, err := engine.Compute(lines, state)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), totals)
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "customer state (required)")
	cmd.Flags().StringArrayVar(&items, "item", nil, "item as quantity:rate, repeatable")
	_ = cmd.MarkFlagRequired("state")
	return cmd
}

// parseItems turns "qty:rate" pairs into priced lines.
func parseItems(pairs []string) ([]domain.InvoiceItem, error) {
	out := make([]domain.InvoiceItem, 0, len(pairs))
	for i, raw := range pairs {
		qtyStr, rateStr, ok := strings.Cut(raw, ":")
		if !ok {
			return nil, fmt.Errorf("item %d: want quantity:rate, got %q", i+1, raw)
		}
		qty, err := strconv.ParseFloat(strings.TrimSpace(qtyStr), 64)
		if err != nil {
			return nil, fmt.Errorf("item %d: bad quantity %q", i+1, qtyStr)
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(rateStr), 64)
		if err != nil {
			return nil, fmt.Errorf("item %d: bad rate %q", i+1, rateStr)
		}
		it := domain.InvoiceItem{
			ID:       strconv.Itoa(i + 1),
			Quantity: qty,
			Rate:     rate,
			Unit:     domain.UnitPieces,
		}
		it.Recalculate()
		out = append(out, it)
	}
	return out, nil
}
