package core_test

import (
	"testing"

	"commission-tracker/internal/core"

	"github.com/shopspring/decimal"
)

func TestResolveRate_StandardTable(t *testing.T) {
	tests := []struct {
		name     string
		line     core.ProductLine
		discount string
		want     string
	}{
		{"full list price earns top rate", core.LinePet, "0", "0.1"},
		{"tiny discount", core.LineAqua, "0.01", "0.09"},
		{"bracket upper bound inclusive", core.LinePoultry, "2", "0.09"},
		{"just past bracket bound", core.LinePoultry, "2.01", "0.08"},
		{"mid bracket", core.LinePet, "5", "0.07"},
		{"worked example from aqua line", core.LineAqua, "13", "0.03"},
		{"last bracket bound", core.LineRuminant, "14", "0.03"},
		{"beyond last bracket floors", core.LineSwine, "14.01", "0.02"},
		{"deep discount still floors", core.LineResale, "99", "0.02"},
		{"above 100 percent accepted", core.LineAdditive, "150", "0.02"},
		{"negative discount earns nothing", core.LinePet, "-1", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := decimal.RequireFromString(tt.discount)
			got := core.ResolveRate(tt.line, d)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("ResolveRate(%s, %s) = %s, want %s", tt.line, tt.discount, got, tt.want)
			}
		})
	}
}

func TestResolveRate_FeedTable(t *testing.T) {
	tests := []struct {
		name     string
		discount string
		want     string
	}{
		{"full list price", "0", "0.03"},
		{"small discount", "0.5", "0.02"},
		{"bracket bound inclusive", "10", "0.02"},
		{"past the feed bracket earns nothing", "10.01", "0"},
		{"deep discount earns nothing", "50", "0"},
		{"negative discount earns nothing", "-3", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := decimal.RequireFromString(tt.discount)
			got := core.ResolveRate(core.LineFeed, d)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("ResolveRate(feed, %s) = %s, want %s", tt.discount, got, tt.want)
			}
		})
	}
}

func TestResolveRate_UnrecognizedLineUsesStandardTable(t *testing.T) {
	got := core.ResolveRate(core.ProductLine("equine"), decimal.Zero)
	if !got.Equal(decimal.RequireFromString("0.1")) {
		t.Errorf("unknown line at zero discount = %s, want 0.1", got)
	}
}

// The rate must never increase as the discount deepens, except for the jump
// down from the flat-price rate.
func TestResolveRate_NonIncreasingStepFunction(t *testing.T) {
	prev := core.ResolveRate(core.LinePet, decimal.RequireFromString("0.01"))
	for d := decimal.RequireFromString("0.5"); d.LessThanOrEqual(decimal.NewFromInt(20)); d = d.Add(decimal.RequireFromString("0.5")) {
		rate := core.ResolveRate(core.LinePet, d)
		if rate.GreaterThan(prev) {
			t.Fatalf("rate increased from %s to %s at discount %s", prev, rate, d)
		}
		prev = rate
	}
}
