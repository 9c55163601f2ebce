package capgains

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// amounts returns the tax amounts as fixed strings, easier to compare and diff.
func amounts(taxes []Tax) []string {
	list := make([]string, len(taxes))
	for i, t := range taxes {
		list[i] = t.Amount.String()
	}
	return list
}

func buy(cost string, quantity int64) Transaction  { return NewBuy(M(cost), quantity) }
func sell(cost string, quantity int64) Transaction { return NewSell(M(cost), quantity) }

func TestCapitalGains_Taxes(t *testing.T) {
	tests := []struct {
		name string
		txs  []Transaction
		want []string
	}{
		{
			name: "empty list",
			txs:  nil,
			want: []string{},
		},
		{
			name: "sales below the exemption",
			txs:  []Transaction{buy("10.00", 100), sell("15.00", 50), sell("15.00", 50)},
			want: []string{"0.00", "0.00", "0.00"},
		},
		{
			name: "loss after a taxed gain",
			txs:  []Transaction{buy("10.00", 10000), sell("20.00", 5000), sell("5.00", 5000)},
			want: []string{"0.00", "10000.00", "0.00"},
		},
		{
			name: "loss offsets a later gain",
			txs:  []Transaction{buy("10.00", 10000), sell("5.00", 5000), sell("20.00", 3000)},
			want: []string{"0.00", "0.00", "1000.00"},
		},
		{
			name: "sale at the weighted average",
			txs:  []Transaction{buy("10.00", 10000), buy("25.00", 5000), sell("15.00", 10000)},
			want: []string{"0.00", "0.00", "0.00"},
		},
		{
			name: "gain above the weighted average",
			txs:  []Transaction{buy("10.00", 10000), buy("25.00", 5000), sell("15.00", 10000), sell("25.00", 5000)},
			want: []string{"0.00", "0.00", "0.00", "10000.00"},
		},
		{
			name: "small sales do not consume a carried loss",
			txs: []Transaction{
				buy("10.00", 10000), sell("2.00", 5000), sell("20.00", 2000), sell("20.00", 2000), sell("25.00", 1000),
			},
			want: []string{"0.00", "0.00", "0.00", "0.00", "3000.00"},
		},
		{
			name: "new buy cycle after a closed position",
			txs: []Transaction{
				buy("10.00", 10000), sell("2.00", 5000), sell("20.00", 2000), sell("20.00", 2000), sell("25.00", 1000),
				buy("20.00", 10000), sell("15.00", 5000), sell("30.00", 4350), sell("30.00", 650),
			},
			want: []string{"0.00", "0.00", "0.00", "0.00", "3000.00", "0.00", "0.00", "3700.00", "0.00"},
		},
		{
			name: "positive carry is dropped on a closed position",
			txs:  []Transaction{buy("10.00", 10000), sell("50.00", 10000), buy("20.00", 10000), sell("50.00", 10000)},
			want: []string{"0.00", "80000.00", "0.00", "60000.00"},
		},
		{
			name: "interleaved buys and sells",
			txs: []Transaction{
				buy("5000.00", 10), sell("4000.00", 5), buy("15000.00", 5), buy("4000.00", 2),
				buy("23000.00", 2), sell("20000.00", 1), sell("12000.00", 10), sell("15000.00", 3),
			},
			want: []string{"0.00", "0.00", "0.00", "0.00", "0.00", "0.00", "1000.00", "3200.00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			taxes := NewCapitalGains().Taxes(tt.txs)
			if len(taxes) != len(tt.txs) {
				t.Fatalf("Taxes() returned %d taxes for %d transactions", len(taxes), len(tt.txs))
			}
			if diff := cmp.Diff(tt.want, amounts(taxes)); diff != "" {
				t.Errorf("Taxes() mismatch (-want +got):\n%s", diff)
			}
			for i, tax := range taxes {
				if tax.Amount.IsNegative() {
					t.Errorf("tax[%d] = %s, want a non negative amount", i, tax.Amount)
				}
			}
		})
	}
}

func TestState_WeightedAverage(t *testing.T) {
	t.Run("empty position takes the unit cost", func(t *testing.T) {
		s := State{WeightedAverage: M("42.00")}
		s.Apply(buy("89.99", 3), Policy{Rate: FlatRate(DefaultRate), Exemption: DefaultExemption})
		if want := M("89.99"); !s.WeightedAverage.Equal(want) {
			t.Errorf("WeightedAverage = %s, want %s", s.WeightedAverage, want)
		}
	})

	t.Run("blended average is rounded", func(t *testing.T) {
		s := State{Position: 10, WeightedAverage: M("20.00")}
		if got, want := s.weightedAverage(buy("10.00", 5)), M("16.67"); !got.Equal(want) {
			t.Errorf("weightedAverage() = %s, want %s", got, want)
		}
	})

	t.Run("huge positions round once", func(t *testing.T) {
		s := State{Position: 1, WeightedAverage: M("5000000000000.00")}
		// 5000000000000 / 1000000000000001 = 0.004999999999999995...
		if got, want := s.weightedAverage(buy("0.00", 1_000_000_000_000_000)), M("0.00"); !got.Equal(want) {
			t.Errorf("weightedAverage() = %s, want %s", got, want)
		}
	})

	t.Run("sells leave the average untouched", func(t *testing.T) {
		s := State{Position: 10, WeightedAverage: M("20.00")}
		s.Apply(sell("35.00", 4), Policy{Rate: FlatRate(DefaultRate), Exemption: DefaultExemption})
		if want := M("20.00"); !s.WeightedAverage.Equal(want) {
			t.Errorf("WeightedAverage = %s, want %s", s.WeightedAverage, want)
		}
		if s.Position != 6 {
			t.Errorf("Position = %d, want 6", s.Position)
		}
	})
}

func TestState_Taxable(t *testing.T) {
	p := Policy{Rate: FlatRate(DefaultRate), Exemption: DefaultExemption}
	tests := []struct {
		name  string
		tx    Transaction
		state State
		want  bool
	}{
		{"buy", buy("10.00", 5), State{}, false},
		{"carried loss", sell("10.00", 5), State{Profit: M("-100.00")}, false},
		{"below exemption", sell("10.00", 5), State{Profit: M("100.00")}, false},
		{"below the average", sell("200000.00", 100), State{Profit: M("100.00"), WeightedAverage: M("200000.01")}, false},
		{"taxable", sell("200000.00", 100), State{Profit: M("100.00"), WeightedAverage: M("20000.00")}, true},
		{"exactly the exemption", sell("20000.00", 1), State{Profit: M("100.00"), WeightedAverage: M("1.00")}, false},
		{"one cent above", sell("20000.01", 1), State{Profit: M("100.00"), WeightedAverage: M("1.00")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.taxable(tt.tx, p); got != tt.want {
				t.Errorf("taxable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCapitalGains_ExemptionBoundary(t *testing.T) {
	t.Run("notional equal to the threshold", func(t *testing.T) {
		taxes := NewCapitalGains().Taxes([]Transaction{buy("10.00", 2000), sell("20.00", 1000)})
		if diff := cmp.Diff([]string{"0.00", "0.00"}, amounts(taxes)); diff != "" {
			t.Errorf("Taxes() mismatch (-want +got):\n%s", diff)
		}
	})
	t.Run("one cent above the threshold", func(t *testing.T) {
		// the first sale is exempt but its profit is carried, and taxed with the second one.
		taxes := NewCapitalGains().Taxes([]Transaction{buy("10.00", 2000), sell("20.00", 1000), sell("20.01", 1000)})
		if diff := cmp.Diff([]string{"0.00", "0.00", "4002.00"}, amounts(taxes)); diff != "" {
			t.Errorf("Taxes() mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestCapitalGains_CarryOver(t *testing.T) {
	p := NewCapitalGains().Policy()

	t.Run("positive profit is dropped on an empty position", func(t *testing.T) {
		s := State{Profit: M("500.00")}
		s.Apply(buy("10.00", 1), p)
		if !s.Profit.IsZero() {
			t.Errorf("Profit = %s, want 0.00", s.Profit)
		}
	})
	t.Run("losses are kept on an empty position", func(t *testing.T) {
		s := State{Profit: M("-500.00")}
		s.Apply(buy("10.00", 1), p)
		if want := M("-500.00"); !s.Profit.Equal(want) {
			t.Errorf("Profit = %s, want %s", s.Profit, want)
		}
	})
	t.Run("positive profit is kept on an open position", func(t *testing.T) {
		s := State{Position: 1, WeightedAverage: M("10.00"), Profit: M("500.00")}
		s.Apply(buy("10.00", 1), p)
		if want := M("500.00"); !s.Profit.Equal(want) {
			t.Errorf("Profit = %s, want %s", s.Profit, want)
		}
	})
}

func TestCapitalGains_NegativePosition(t *testing.T) {
	c := NewCapitalGains()
	var steps []Step
	for _, step := range c.Steps([]Transaction{sell("10.00", 5), buy("8.00", 5), buy("9.00", 5)}) {
		steps = append(steps, step)
	}
	if len(steps) != 3 {
		t.Fatalf("got %d steps, want 3", len(steps))
	}
	if got := steps[0].State.Position; got != -5 {
		t.Errorf("Position after oversell = %d, want -5", got)
	}
	if got, want := steps[0].State.Profit, M("50.00"); !got.Equal(want) {
		t.Errorf("Profit after oversell = %s, want %s", got, want)
	}
	if got, want := steps[1].State.WeightedAverage, M("8.00"); !got.Equal(want) {
		t.Errorf("WeightedAverage closing the short = %s, want %s", got, want)
	}
	if got := steps[2].State; got.Position != 5 || !got.Profit.IsZero() || !got.WeightedAverage.Equal(M("9.00")) {
		t.Errorf("final state = %+v, want 5 shares at 9.00 and no profit", got)
	}
}

func TestCapitalGains_WithRate(t *testing.T) {
	c := NewCapitalGains(WithRate(FlatRate(decimal.RequireFromString("0.15"))))
	taxes := c.Taxes([]Transaction{buy("10.00", 10000), sell("50.00", 10000)})
	if diff := cmp.Diff([]string{"0.00", "60000.00"}, amounts(taxes)); diff != "" {
		t.Errorf("Taxes() mismatch (-want +got):\n%s", diff)
	}
	if got := c.Rate(); !got.Equal(decimal.RequireFromString("0.15")) {
		t.Errorf("Rate() = %s, want 0.15", got)
	}
}

func TestCapitalGains_WithExemption(t *testing.T) {
	c := NewCapitalGains(WithExemption(M("100000.00")))
	taxes := c.Taxes([]Transaction{buy("10.00", 10000), sell("20.00", 5000)})
	if diff := cmp.Diff([]string{"0.00", "0.00"}, amounts(taxes)); diff != "" {
		t.Errorf("Taxes() mismatch (-want +got):\n%s", diff)
	}
}

func TestCapitalGains_Steps(t *testing.T) {
	c := NewCapitalGains()
	txs := []Transaction{buy("10.00", 10000), sell("50.00", 10000), buy("20.00", 10000), sell("50.00", 10000)}

	t.Run("states", func(t *testing.T) {
		var got []string
		for _, step := range c.Steps(txs) {
			s := step.State
			got = append(got, s.WeightedAverage.String()+" "+s.Profit.String()+" "+step.Tax.Amount.String())
		}
		want := []string{
			"10.00 0.00 0.00",
			"10.00 320000.00 80000.00",
			"20.00 0.00 0.00",
			"20.00 240000.00 60000.00",
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Steps() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("early stop", func(t *testing.T) {
		n := 0
		for i := range c.Steps(txs) {
			n++
			if i == 1 {
				break
			}
		}
		if n != 2 {
			t.Errorf("iterated %d steps, want 2", n)
		}
	})
}
