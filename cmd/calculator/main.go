package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/radieske/arb-calc-poc/internal/arbitrage"
)

// Calculadora de linha de comando sobre o mesmo núcleo do serviço.
// Exemplo: calculator -odds 2.0,2.2 -stake 100.00
func main() {
	oddsFlag := flag.String("odds", "", "decimal odds separated by comma, e.g. 2.0,2.2")
	stakeFlag := flag.String("stake", "100.00", "total stake in currency units")
	flag.Parse()

	odds, err := parseOdds(*oddsFlag)
	if err != nil {
		fail(err)
	}
	stakeCents, err := parseStakeCents(*stakeFlag)
	if err != nil {
		fail(err)
	}

	plan, err := arbitrage.Split(odds, stakeCents)
	if err != nil {
		fail(err)
	}
	rounded := arbitrage.RoundPlan(plan)

	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tODDS\tSTAKE\tPAYOUT\tPROFIT")
	for i, a := range rounded.Allocations {
		fmt.Fprintf(tw, "%d\t%.2f\t%s\t%s\t%s\n",
			i+1, a.Odd, money(a.StakeCents), money(a.PayoutCents), money(a.ProfitCents))
	}
	tw.Flush()

	fmt.Printf("\nimplied sum: %.4f  margin: %+.4f\n", plan.ImpliedSum, plan.Margin)
	if plan.Arbitrage {
		fmt.Printf("arbitrage: yes  guaranteed profit: %s (%.2f%%)\n", money(rounded.ProfitCents), plan.ROI)
	} else {
		fmt.Printf("arbitrage: no  worst case: %s (%.2f%%)\n", money(rounded.ProfitCents), plan.ROI)
	}
}

func parseOdds(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("-odds is required (e.g. -odds 2.0,2.2)")
	}
	parts := strings.Split(s, ",")
	odds := make([]float64, 0, len(parts))
	for _, p := range parts {
		o, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid odd %q", p)
		}
		odds = append(odds, o)
	}
	return odds, nil
}

func parseStakeCents(s string) (int64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid stake %q", s)
	}
	return int64(math.Round(v * 100)), nil
}

func money(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
