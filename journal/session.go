package journal

import (
	"bytes"
	"fmt"
	"os"
	"text/template"
	"time"

	"github.com/shopspring/decimal"
)

// Session is the record of one simulator run, written when the run ends.
type Session struct {
	SessionID   string
	Created     time.Time
	Symbol      string
	Recommender string
	Feed        string
	RiskPct     decimal.Decimal // percent, e.g. 2 for 2%

	Start time.Time
	End   time.Time

	// Results
	Trades int
	Wins   int
	Losses int

	StartBalance decimal.Decimal
	EndBalance   decimal.Decimal

	NetPL     decimal.Decimal
	ReturnPct decimal.Decimal
	WinRate   decimal.Decimal // percent
	AvgWin    decimal.NullDecimal
	MaxDDPct  decimal.Decimal

	OrgPath string
	Notes   []string
}

var sessionOrgFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"nullMoney": func(d decimal.NullDecimal) string {
		if !d.Valid {
			return "-"
		}
		return d.Decimal.StringFixed(2)
	},
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
}

var sessionOrg = template.Must(template.New("session").Funcs(sessionOrgFuncs).Parse(SessionOrgTemplate))

// FormatSessionOrg renders the session as an org-mode heading.
func FormatSessionOrg(s Session) (string, error) {
	var buf bytes.Buffer
	if err := sessionOrg.Execute(&buf, s); err != nil {
		return "", fmt.Errorf("render session %s: %w", s.SessionID, err)
	}
	return buf.String(), nil
}

// WriteSessionOrg writes the org report to s.OrgPath.
func WriteSessionOrg(s Session) error {
	if s.OrgPath == "" {
		return fmt.Errorf("session %s: no org path", s.SessionID)
	}
	out, err := FormatSessionOrg(s)
	if err != nil {
		return err
	}
	return os.WriteFile(s.OrgPath, []byte(out), 0644)
}

const SessionOrgTemplate = `* SESSION: {{.Symbol}} {{if .Recommender}}{{.Recommender}}{{else}}(recommender?){{end}}
:PROPERTIES:
:SESSION_ID:  {{if .SessionID}}{{.SessionID}}{{else}}(session-id?){{end}}
:SYMBOL:      {{.Symbol}}
:RECOMMENDER: {{.Recommender}}
:FEED:        {{if .Feed}}{{.Feed}}{{else}}(feed?){{end}}
:START_DATE:  {{.Start.Format "2006-01-02 15:04"}}
:END_DATE:    {{.End.Format "2006-01-02 15:04"}}
:START_BAL:   {{money .StartBalance}}
:END_BAL:     {{money .EndBalance}}
:NET_PL:      {{money .NetPL}}
:RETURN_PCT:  {{money .ReturnPct}}
:MAX_DD_PCT:  {{money .MaxDDPct}}
:TRADES:      {{.Trades}}
:WINS:        {{.Wins}}
:LOSSES:      {{.Losses}}
:WIN_RATE:    {{money .WinRate}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Parameters
| Parameter        | Value |
|------------------+-------|
| Risk per Trade % | {{money .RiskPct}} |

** Performance Summary
- Net P/L:          *{{money .NetPL}}*
- Return:           *{{money .ReturnPct}}%*
- Max Drawdown:     *{{money .MaxDDPct}}%*
- Win Rate:         *{{money .WinRate}}%*
- Average Win:      *{{nullMoney .AvgWin}}*

** Trade Distribution
| Outcome | Count |
|---------+-------|
| Wins    | {{.Wins}} |
| Losses  | {{.Losses}} |
| Total   | {{.Trades}} |
{{- if .Notes }}

** Observations
{{- range .Notes }}
- {{.}}
{{- end }}
{{- end }}
`
