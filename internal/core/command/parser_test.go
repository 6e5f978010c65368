package command_test

import (
	"testing"

	"github.com/SscSPs/chatledger/internal/core/command"
	"github.com/SscSPs/chatledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Record(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want domain.RecordCommand
	}{
		{
			name: "value currency label description",
			in:   `record 42.50 USD "Coffee" team meeting`,
			want: domain.RecordCommand{Value: decimal.RequireFromString("42.50"), Currency: "USD", Label: "Coffee", Description: "team meeting"},
		},
		{
			name: "no description",
			in:   `record 10 eur "Lunch"`,
			want: domain.RecordCommand{Value: decimal.RequireFromString("10"), Currency: "EUR", Label: "Lunch"},
		},
		{
			name: "mixed case keyword and extra whitespace",
			in:   "  ReCoRd   7,25\tcop   \"Taxi ride\"   to   the airport  ",
			want: domain.RecordCommand{Value: decimal.RequireFromString("7.25"), Currency: "COP", Label: "Taxi ride", Description: "to the airport"},
		},
		{
			name: "typographic quotes",
			in:   "record 3 USD “Snacks” vending machine",
			want: domain.RecordCommand{Value: decimal.RequireFromString("3"), Currency: "USD", Label: "Snacks", Description: "vending machine"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := command.Parse(tt.in)
			require.Equal(t, domain.CommandRecord, cmd.Kind())
			got, ok := cmd.(domain.RecordCommand)
			require.True(t, ok)
			assert.True(t, tt.want.Value.Equal(got.Value), "value %s != %s", tt.want.Value, got.Value)
			assert.Equal(t, tt.want.Currency, got.Currency)
			assert.Equal(t, tt.want.Label, got.Label)
			assert.Equal(t, tt.want.Description, got.Description)
		})
	}
}

func TestParse_Report(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want domain.ReportCommand
	}{
		{name: "defaults", in: "report", want: domain.ReportCommand{Scope: domain.ScopeMine, WindowDays: 30}},
		{name: "org scope", in: "REPORT org", want: domain.ReportCommand{Scope: domain.ScopeOrg, WindowDays: 30}},
		{name: "all options any order", in: "report currency=usd days=7 mine", want: domain.ReportCommand{Scope: domain.ScopeMine, WindowDays: 7, Currency: "USD"}},
		{name: "org with window", in: "report org days=365", want: domain.ReportCommand{Scope: domain.ScopeOrg, WindowDays: 365}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := command.Parse(tt.in)
			assert.Equal(t, tt.want, cmd)
		})
	}
}

func TestParse_Help(t *testing.T) {
	assert.Equal(t, domain.HelpCommand{}, command.Parse("help"))
	assert.Equal(t, domain.HelpCommand{}, command.Parse("  HELP  "))
}

func TestParse_Unknown(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"hello there",
		"records 1 USD \"x\"",
		"record",
		"record abc USD \"Coffee\"",
		"record -5 USD \"Coffee\"",
		"record 0 USD \"Coffee\"",
		"record 1e3 USD \"Coffee\"",
		"record 1.2.3 USD \"Coffee\"",
		"record 5. USD \"Coffee\"",
		"record 5 US \"Coffee\"",
		"record 5 U5D \"Coffee\"",
		"record 5 USD Coffee",
		"record 5 USD \"Coffee",
		"record 5 USD \"  \"",
		"report everyone",
		"report days=0",
		"report days=abc",
		"report days=99999",
		"report currency=EURO",
		"please record 5 USD \"Coffee\"",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			cmd := command.Parse(in)
			assert.Equal(t, domain.CommandUnknown, cmd.Kind())
			assert.Equal(t, domain.UnknownCommand{RawText: in}, cmd)
		})
	}
}

func TestParse_IsPure(t *testing.T) {
	inputs := []string{
		`record 42.50 USD "Coffee" team meeting`,
		"report org days=7 currency=EUR",
		"help",
		"gibberish",
	}
	p := command.NewParser()
	for _, in := range inputs {
		assert.Equal(t, p.Parse(in), p.Parse(in))
		assert.Equal(t, command.Parse(in), p.Parse(in))
	}
}
