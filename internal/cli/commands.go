package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/meenmo/rateslib/rates"
	"github.com/meenmo/rateslib/utils"
	"github.com/meenmo/rateslib/visitors"
)

func newNPVCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "npv",
		Short: "Present value of each position in the snapshot's local currency",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, portfolio, err := app.loadInputs()
			if err != nil {
				return err
			}
			results, err := app.newEngine(store).Price(cmd.Context(), portfolio)
			if err != nil {
				return err
			}

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(results)
			}
			ccy := store.LocalCurrency()
			total := 0.0
			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %18s  duration %6.3f\n",
					r.Name, ccy.Format(r.NPV), r.Duration)
				total += r.NPV
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-24s %18s\n", "TOTAL", ccy.Format(total))
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "output JSON")
	return cmd
}

func newParRateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "par-rate",
		Short: "Coupon rate (or spread) that prices each position at zero",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, portfolio, err := app.loadInputs()
			if err != nil {
				return err
			}
			values, err := app.newEngine(store).ParRates(portfolio)
			if err != nil {
				return err
			}
			for i, v := range values {
				name := fmt.Sprintf("value %d", i)
				if i < len(portfolio) {
					name = portfolio[i].Name
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %9.6f  %v%%\n", name, v, utils.RoundTo(v*100, 4))
			}
			return nil
		},
	}
}

func newZSpreadCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zspread",
		Short: "Constant zero-curve spread matching a target value",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, portfolio, err := app.loadInputs()
			if err != nil {
				return err
			}
			target, _ := cmd.Flags().GetFloat64("target")
			dayCount, _ := cmd.Flags().GetString("day-count")
			freq, _ := cmd.Flags().GetInt("frequency")

			def := rates.DefaultDefinition()
			if dayCount != "" {
				def.DayCounter = utils.NewDayCounter(utils.DayCountConvention(dayCount))
			}
			if freq != 0 {
				def.Frequency = utils.Frequency(freq)
			}

			engine := app.newEngine(store)
			for _, pos := range portfolio {
				data, err := engine.Prepare(pos)
				if err != nil {
					return err
				}
				z := visitors.NewZSpreadConstVisitor(data, target, def)
				if err := z.Visit(pos.Instrument); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s %9.6f  %vbp\n", pos.Name, z.Values()[0], utils.RoundTo(z.Values()[0]*1e4, 2))
			}
			return nil
		},
	}
	cmd.Flags().Float64("target", 0, "target present value")
	cmd.Flags().String("day-count", "", "quoting day count (default ACT/360)")
	cmd.Flags().Int("frequency", 0, "quoting compounding frequency per year")
	return cmd
}

func newCashflowsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cashflows",
		Short: "Undiscounted interest, redemptions and disbursements by date",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, portfolio, err := app.loadInputs()
			if err != nil {
				return err
			}
			engine := app.newEngine(store)
			agg := visitors.NewCashflowsAggregatorConstVisitor()
			for _, pos := range portfolio {
				// Fix floating coupons so their amounts are defined.
				if _, err := engine.Prepare(pos); err != nil {
					return err
				}
				if err := agg.Visit(pos.Instrument); err != nil {
					return err
				}
			}

			type row struct {
				date                               string
				interest, redemption, disbursement float64
			}
			byDate := map[string]*row{}
			for d, a := range agg.Interest() {
				key := d.Format("2006-01-02")
				if byDate[key] == nil {
					byDate[key] = &row{date: key}
				}
				byDate[key].interest += a
			}
			for d, a := range agg.Redemptions() {
				key := d.Format("2006-01-02")
				if byDate[key] == nil {
					byDate[key] = &row{date: key}
				}
				byDate[key].redemption += a
			}
			for d, a := range agg.Disbursements() {
				key := d.Format("2006-01-02")
				if byDate[key] == nil {
					byDate[key] = &row{date: key}
				}
				byDate[key].disbursement += a
			}
			keys := make([]string, 0, len(byDate))
			for k := range byDate {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %16s %16s %16s\n", "date", "interest", "redemption", "disbursement")
			for _, k := range keys {
				r := byDate[k]
				fmt.Fprintf(cmd.OutOrStdout(), "%-12s %16.2f %16.2f %16.2f\n",
					r.date, r.interest, r.redemption, r.disbursement)
			}
			return nil
		},
	}
}
