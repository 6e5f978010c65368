package domain

import "github.com/shopspring/decimal"

// CommandKind identifies the variant of a parsed Command.
type CommandKind int

const (
	CommandUnknown CommandKind = iota
	CommandRecord
	CommandReport
	CommandHelp
)

func (k CommandKind) String() string {
	switch k {
	case CommandRecord:
		return "record"
	case CommandReport:
		return "report"
	case CommandHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Command is the closed set of things a chat message can ask for. Only the
// variants in this file implement it.
type Command interface {
	Kind() CommandKind
	command()
}

// RecordCommand asks to append a transaction.
type RecordCommand struct {
	Value       decimal.Decimal
	Currency    string
	Label       string
	Description string
}

// ReportScope selects whose transactions a report covers.
type ReportScope string

const (
	ScopeMine ReportScope = "mine"
	ScopeOrg  ReportScope = "org"
)

// DefaultReportWindowDays is used when a report command names no window.
const DefaultReportWindowDays = 30

// ReportCommand asks for an aggregated view. Currency is empty when the
// organization's base currency should be used.
type ReportCommand struct {
	Scope      ReportScope
	WindowDays int
	Currency   string
}

// HelpCommand asks for usage text.
type HelpCommand struct{}

// UnknownCommand carries text that matched no grammar rule.
type UnknownCommand struct {
	RawText string
}

func (RecordCommand) Kind() CommandKind  { return CommandRecord }
func (ReportCommand) Kind() CommandKind  { return CommandReport }
func (HelpCommand) Kind() CommandKind    { return CommandHelp }
func (UnknownCommand) Kind() CommandKind { return CommandUnknown }

func (RecordCommand) command()  {}
func (ReportCommand) command()  {}
func (HelpCommand) command()    {}
func (UnknownCommand) command() {}
