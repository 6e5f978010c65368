// Package command turns free-form chat text into a typed domain.Command.
//
// Grammar (keywords are case-insensitive, whitespace is free-form):
//
//	record <value> <currency> "<label>" [description...]
//	report [mine|org] [days=<N>] [currency=<CCC>]
//	help
//
// Anything else, including a known keyword with malformed arguments, parses
// to domain.UnknownCommand. Parsing never fails and has no side effects.
package command

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/SscSPs/chatledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MaxReportWindowDays bounds the days=<N> report argument.
const MaxReportWindowDays = 3660

const (
	keywordRecord = "record"
	keywordReport = "report"
	keywordHelp   = "help"
)

// Parser is the stateless command parser. The zero value is ready to use.
type Parser struct{}

// NewParser returns a Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse implements the command grammar.
func (p *Parser) Parse(rawText string) domain.Command {
	return Parse(rawText)
}

// Parse implements the command grammar. The first token alone decides the
// command kind.
func Parse(rawText string) domain.Command {
	keyword, rest := nextToken(rawText)
	unknown := domain.UnknownCommand{RawText: rawText}

	switch strings.ToLower(keyword) {
	case keywordRecord:
		if cmd, ok := parseRecord(rest); ok {
			return cmd
		}
	case keywordReport:
		if cmd, ok := parseReport(rest); ok {
			return cmd
		}
	case keywordHelp:
		return domain.HelpCommand{}
	}
	return unknown
}

func parseRecord(args string) (domain.RecordCommand, bool) {
	valueTok, rest := nextToken(args)
	currencyTok, rest := nextToken(rest)

	value, ok := parseAmount(valueTok)
	if !ok {
		return domain.RecordCommand{}, false
	}
	if !domain.IsWellFormedCurrency(currencyTok) {
		return domain.RecordCommand{}, false
	}
	label, rest, ok := quoted(rest)
	if !ok {
		return domain.RecordCommand{}, false
	}

	return domain.RecordCommand{
		Value:       value,
		Currency:    domain.NormalizeCurrencyCode(currencyTok),
		Label:       label,
		Description: strings.Join(strings.Fields(rest), " "),
	}, true
}

func parseReport(args string) (domain.ReportCommand, bool) {
	cmd := domain.ReportCommand{
		Scope:      domain.ScopeMine,
		WindowDays: domain.DefaultReportWindowDays,
	}

	for _, tok := range strings.Fields(args) {
		lower := strings.ToLower(tok)
		switch {
		case lower == string(domain.ScopeMine):
			cmd.Scope = domain.ScopeMine
		case lower == string(domain.ScopeOrg):
			cmd.Scope = domain.ScopeOrg
		case strings.HasPrefix(lower, "days="):
			days, err := strconv.Atoi(strings.TrimPrefix(lower, "days="))
			if err != nil || days < 1 || days > MaxReportWindowDays {
				return domain.ReportCommand{}, false
			}
			cmd.WindowDays = days
		case strings.HasPrefix(lower, "currency="):
			code := strings.TrimPrefix(lower, "currency=")
			if !domain.IsWellFormedCurrency(code) {
				return domain.ReportCommand{}, false
			}
			cmd.Currency = domain.NormalizeCurrencyCode(code)
		default:
			return domain.ReportCommand{}, false
		}
	}
	return cmd, true
}

// parseAmount accepts digits with at most one '.' or ',' decimal separator.
// Signs, exponents and thousands separators are rejected.
func parseAmount(tok string) (decimal.Decimal, bool) {
	if tok == "" {
		return decimal.Decimal{}, false
	}
	seenSep := false
	digitsAfterSep := 0
	for i, r := range tok {
		switch {
		case r >= '0' && r <= '9':
			if seenSep {
				digitsAfterSep++
			}
		case (r == '.' || r == ',') && !seenSep && i > 0:
			seenSep = true
		default:
			return decimal.Decimal{}, false
		}
	}
	if seenSep && digitsAfterSep == 0 {
		return decimal.Decimal{}, false
	}
	value, err := decimal.NewFromString(strings.Replace(tok, ",", ".", 1))
	if err != nil || !value.IsPositive() {
		return decimal.Decimal{}, false
	}
	return value, true
}

// quoted reads a double-quoted label at the start of s. Typographic quotes, as
// inserted by phone keyboards, are accepted on either side.
func quoted(s string) (label, rest string, ok bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	open, size := firstRune(s)
	if !isQuote(open) {
		return "", "", false
	}
	body := s[size:]
	end := strings.IndexFunc(body, isQuote)
	if end < 0 {
		return "", "", false
	}
	label = strings.TrimSpace(body[:end])
	if label == "" {
		return "", "", false
	}
	_, closeSize := firstRune(body[end:])
	return label, body[end+closeSize:], true
}

func isQuote(r rune) bool {
	return r == '"' || r == '“' || r == '”'
}

func firstRune(s string) (rune, int) {
	return utf8.DecodeRuneInString(s)
}

// nextToken splits off the first whitespace-delimited token.
func nextToken(s string) (tok, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := strings.IndexFunc(s, unicode.IsSpace)
	if end < 0 {
		return s, ""
	}
	return s[:end], s[end:]
}
