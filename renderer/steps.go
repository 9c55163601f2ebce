package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/capgains"
)

// StepsMarkdown renders the resolution of a transaction list as a markdown
// report: one row per transaction with the state after it and the tax owed.
// Amounts are displayed in currency, or as plain decimals when empty.
func StepsMarkdown(steps []capgains.Step, policy capgains.Policy, currency string) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Capital Gains Tax Report\n\n")
	fmt.Fprintf(&b, "Rate: %s%% on sales above %s\n\n",
		policy.Rate().Shift(2).String(),
		policy.Exemption.Display(currency),
	)

	fmt.Fprintln(&b, "| # | Operation | Quantity | Unit Cost | Position | Average Cost | Carried Profit | Tax |")
	fmt.Fprintln(&b, "|---:|:---|---:|---:|---:|---:|---:|---:|")

	taxes := make([]capgains.Tax, 0, len(steps))
	for i, step := range steps {
		tx, s := step.Transaction, step.State
		fmt.Fprintf(&b, "| %d | %s | %d | %s | %d | %s | %s | %s |\n",
			i+1,
			tx.Operation,
			tx.Quantity,
			tx.UnitCost.Display(currency),
			s.Position,
			s.WeightedAverage.Display(currency),
			s.Profit.SignedString(currency),
			step.Tax.Amount.Display(currency),
		)
		taxes = append(taxes, step.Tax)
	}
	fmt.Fprintf(&b, "| | **%s** | | | | | | **%s** |\n", "Total", capgains.TotalTax(taxes).Display(currency))

	if len(steps) == 0 {
		return b.String()
	}
	last := steps[len(steps)-1].State
	conditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintf(w, "\nCarried loss: %s\n", last.Profit.Neg().Display(currency))
		return last.Profit.IsNegative()
	})
	conditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintf(w, "\nOpen position: %d shares at %s\n", last.Position, last.WeightedAverage.Display(currency))
		return last.Position != 0
	})
	return b.String()
}

// conditionalBlock writes block to w only when it returns true.
func conditionalBlock(w io.Writer, block func(io.Writer) bool) {
	var bw bytes.Buffer
	if block(&bw) {
		bw.WriteTo(w)
	}
}
