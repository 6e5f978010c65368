package services

import (
	"strconv"
	"strings"

	"github.com/SscSPs/chatledger/internal/core/domain"
	"github.com/SscSPs/chatledger/internal/utils"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys of the reply catalog.
const (
	msgDenied          = "denied"
	msgHelp            = "help"
	msgUnknown         = "unknown"
	msgRecorded        = "recorded"
	msgRecordedSame    = "recorded.same"
	msgReportHeader    = "report.header"
	msgReportEmpty     = "report.empty"
	msgReportTotal     = "report.total"
	msgReportByCur     = "report.by_currency"
	msgReportCurLine   = "report.currency_line"
	msgReportByDay     = "report.by_day"
	msgReportDayLine   = "report.day_line"
	msgReportLiveRate  = "report.live_rate"
	msgScopeMine       = "scope.mine"
	msgScopeOrg        = "scope.org"
	msgErrCurrency     = "error.currency"
	msgErrRate         = "error.rate"
	msgErrForbidden    = "error.forbidden"
	msgErrInvalidInput = "error.validation"
	msgErrTimeout      = "error.timeout"
	msgErrInternal     = "error.internal"
)

var replyStrings = map[language.Tag]map[string]string{
	language.English: {
		msgDenied: "Sorry, this number is not authorized to use the ledger.",
		msgHelp: "Commands:\n" +
			"record <value> <currency> \"<label>\" [description]\n" +
			"  e.g. record 42.50 USD \"Coffee\" team meeting\n" +
			"report [mine|org] [days=<N>] [currency=<CCC>]\n" +
			"  e.g. report org days=7 currency=USD\n" +
			"help",
		msgUnknown:         "Sorry, I did not understand that.",
		msgRecorded:        "Recorded %s \"%s\" (%s). Ref #%s",
		msgRecordedSame:    "Recorded %s \"%s\". Ref #%s",
		msgReportHeader:    "Report for %s, last %d days (%s to %s)",
		msgReportEmpty:     "No transactions in this period.",
		msgReportTotal:     "Total: %s (%d transactions)",
		msgReportByCur:     "By currency:",
		msgReportCurLine:   "- %s: %s = %s (%d)",
		msgReportByDay:     "By day:",
		msgReportDayLine:   "- %s: %s (%d)",
		msgReportLiveRate:  "Converted at today's rate: 1 %s = %s %s",
		msgScopeMine:       "you",
		msgScopeOrg:        "the organization",
		msgErrCurrency:     "%s is not a currency I know. Use a 3-letter ISO code such as USD.",
		msgErrRate:         "Could not fetch the exchange rate, please try again later.",
		msgErrForbidden:    "Only organization admins can run organization-wide reports.",
		msgErrInvalidInput: "That transaction is not valid, please check the value and try again.",
		msgErrTimeout:      "That took too long, please try again.",
		msgErrInternal:     "Something went wrong on our side, please try again later.",
	},
	language.Spanish: {
		msgDenied: "Lo sentimos, este número no está autorizado para usar el registro.",
		msgHelp: "Comandos:\n" +
			"record <valor> <moneda> \"<etiqueta>\" [descripción]\n" +
			"  ej. record 42.50 USD \"Café\" reunión de equipo\n" +
			"report [mine|org] [days=<N>] [currency=<CCC>]\n" +
			"  ej. report org days=7 currency=USD\n" +
			"help",
		msgUnknown:         "Lo siento, no entendí el mensaje.",
		msgRecorded:        "Registrado %s \"%s\" (%s). Ref #%s",
		msgRecordedSame:    "Registrado %s \"%s\". Ref #%s",
		msgReportHeader:    "Reporte de %s, últimos %d días (%s a %s)",
		msgReportEmpty:     "No hay transacciones en este periodo.",
		msgReportTotal:     "Total: %s (%d transacciones)",
		msgReportByCur:     "Por moneda:",
		msgReportCurLine:   "- %s: %s = %s (%d)",
		msgReportByDay:     "Por día:",
		msgReportDayLine:   "- %s: %s (%d)",
		msgReportLiveRate:  "Convertido con la tasa de hoy: 1 %s = %s %s",
		msgScopeMine:       "ti",
		msgScopeOrg:        "la organización",
		msgErrCurrency:     "%s no es una moneda conocida. Usa un código ISO de 3 letras como USD.",
		msgErrRate:         "No se pudo obtener la tasa de cambio, intenta de nuevo más tarde.",
		msgErrForbidden:    "Solo los administradores pueden ver reportes de toda la organización.",
		msgErrInvalidInput: "La transacción no es válida, revisa el valor e intenta de nuevo.",
		msgErrTimeout:      "La operación tardó demasiado, intenta de nuevo.",
		msgErrInternal:     "Algo salió mal de nuestro lado, intenta de nuevo más tarde.",
	},
}

// replyCatalog renders user-facing chat text in an organization's language.
type replyCatalog struct {
	cat *catalog.Builder
}

func newReplyCatalog() *replyCatalog {
	cat := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range replyStrings {
		for key, msg := range msgs {
			// Keys and messages are constants above; SetString only fails on
			// malformed selectors, which plain strings cannot contain.
			_ = cat.SetString(tag, key, msg)
		}
	}
	return &replyCatalog{cat: cat}
}

func (r *replyCatalog) printer(lang domain.Language) *message.Printer {
	return message.NewPrinter(lang.Tag(), message.Catalog(r.cat))
}

func (r *replyCatalog) denied(lang domain.Language) string {
	return r.printer(lang).Sprintf(msgDenied)
}

func (r *replyCatalog) help(lang domain.Language) string {
	return r.printer(lang).Sprintf(msgHelp)
}

func (r *replyCatalog) unknown(lang domain.Language) string {
	p := r.printer(lang)
	return p.Sprintf(msgUnknown) + "\n\n" + p.Sprintf(msgHelp)
}

func (r *replyCatalog) recorded(lang domain.Language, txn domain.Transaction, base string) string {
	p := r.printer(lang)
	original := utils.FormatExactMoney(txn.Value, txn.Currency)
	if txn.Currency == domain.NormalizeCurrencyCode(base) {
		return p.Sprintf(msgRecordedSame, original, txn.Label, strconv.FormatInt(txn.TransactionID, 10))
	}
	return p.Sprintf(msgRecorded, original, txn.Label, utils.FormatMoney(txn.ValueConverted, base), strconv.FormatInt(txn.TransactionID, 10))
}

func (r *replyCatalog) report(lang domain.Language, res domain.ReportResult) string {
	p := r.printer(lang)
	scope := p.Sprintf(msgScopeMine)
	if res.Scope == domain.ScopeOrg {
		scope = p.Sprintf(msgScopeOrg)
	}

	var b strings.Builder
	b.WriteString(p.Sprintf(msgReportHeader, scope, res.WindowDays,
		res.From.Format("2006-01-02"), res.To.Format("2006-01-02")))
	b.WriteString("\n")
	if res.IsEmpty() {
		b.WriteString(p.Sprintf(msgReportEmpty))
		b.WriteString("\n")
		b.WriteString(p.Sprintf(msgReportTotal, utils.FormatMoney(res.Total, res.Currency), 0))
		return b.String()
	}

	b.WriteString(p.Sprintf(msgReportTotal, utils.FormatMoney(res.Total, res.Currency), res.TransactionCount))
	b.WriteString("\n\n")
	b.WriteString(p.Sprintf(msgReportByCur))
	for _, cb := range res.ByCurrency {
		b.WriteString("\n")
		b.WriteString(p.Sprintf(msgReportCurLine, cb.Currency,
			utils.FormatMoney(cb.Original, cb.Currency),
			utils.FormatMoney(cb.Converted, res.Currency), cb.Count))
	}
	b.WriteString("\n\n")
	b.WriteString(p.Sprintf(msgReportByDay))
	for _, db := range res.ByDay {
		b.WriteString("\n")
		b.WriteString(p.Sprintf(msgReportDayLine, db.Day.Format("2006-01-02"),
			utils.FormatMoney(db.Converted, res.Currency), db.Count))
	}
	if res.UsedLiveRate {
		b.WriteString("\n\n")
		b.WriteString(p.Sprintf(msgReportLiveRate, res.BaseCurrency, res.LiveRate.String(), res.Currency))
	}
	return b.String()
}
