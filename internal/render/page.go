package render

import (
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"

	"github.com/yourorg/agent-gdp/internal/aggregate"
	"github.com/yourorg/agent-gdp/internal/leaderboard"
	"github.com/yourorg/agent-gdp/internal/model"
	"github.com/yourorg/agent-gdp/internal/protocol"
	"github.com/yourorg/agent-gdp/internal/timeframe"
	"github.com/yourorg/agent-gdp/internal/view"
)

// TimeframeLink is one button of the timeframe selector.
type TimeframeLink struct {
	Label  string
	Href   string
	Active bool
}

// ProtocolRow is a legend entry of the protocol share chart.
type ProtocolRow struct {
	Name    string
	Share   string
	Color   string
	Opacity float64
	Href    string
}

// AgentRow is a formatted leaderboard row.
type AgentRow struct {
	Rank    int
	Name    string
	Address string
	Revenue string
	Txs     string
	Change  string
}

// Page is everything the dashboard template needs.
type Page struct {
	Seed        uint64
	State       view.State
	Timeframes  []TimeframeLink
	Cards       []model.StatCard
	Summary     model.WindowStats
	Protocols   []ProtocolRow
	Agents      []AgentRow
	Charts      ChartURLs
	ClearHover  string
	SnapshotURL string
}

// ChartURLs point at the chart images for the current view.
type ChartURLs struct {
	GDP          string
	Protocols    string
	Transactions string
}

// Query builds the query string that reproduces a view of a seeded series.
func Query(seed uint64, state view.State) string {
	v := url.Values{}
	v.Set("seed", strconv.FormatUint(seed, 10))
	v.Set("tf", state.Timeframe.String())
	if state.Hovering() {
		v.Set("hover", state.HoveredProtocol)
	}
	return v.Encode()
}

// NewPage derives the page contents from a generated series and the view state.
func NewPage(seed uint64, points []model.MetricPoint, state view.State) (Page, error) {
	window, err := state.Window(points)
	if err != nil {
		return Page{}, err
	}
	cards, err := view.StatCards(points)
	if err != nil {
		return Page{}, err
	}

	q := Query(seed, state)
	plain := Query(seed, state.ClearHover())
	page := Page{
		Seed:    seed,
		State:   state,
		Cards:   cards,
		Summary: aggregate.Summarize(window),
		Charts: ChartURLs{
			GDP:          "/charts/gdp.svg?" + q,
			Protocols:    "/charts/protocols.svg?" + q,
			Transactions: "/charts/transactions.svg?" + q,
		},
		ClearHover:  "/?" + plain,
		SnapshotURL: "/api/snapshot?" + plain,
	}

	for _, tf := range timeframe.All() {
		next, _ := state.WithTimeframe(tf)
		page.Timeframes = append(page.Timeframes, TimeframeLink{
			Label:  tf.String(),
			Href:   "/?" + Query(seed, next),
			Active: tf == state.Timeframe,
		})
	}

	for _, s := range protocol.Shares() {
		page.Protocols = append(page.Protocols, ProtocolRow{
			Name:    s.Name,
			Share:   fmt.Sprintf("%.1f%%", s.Share),
			Color:   s.Color,
			Opacity: state.Opacity(s.Name),
			Href:    "/?" + Query(seed, state.WithHover(s.Name)),
		})
	}

	for i, a := range leaderboard.Top(0) {
		page.Agents = append(page.Agents, AgentRow{
			Rank:    i + 1,
			Name:    a.Name,
			Address: a.Address,
			Revenue: view.Millions(a.RevenueMillions) + "M",
			Txs:     view.Thousands(a.Transactions),
			Change:  view.Percent(a.Change24h),
		})
	}

	return page, nil
}

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"css": func(s string) template.CSS { return template.CSS(s) },
}).Parse(tmplPage))

// WritePage renders the dashboard HTML.
func WritePage(w io.Writer, page Page) error {
	return pageTemplate.ExecuteTemplate(w, "page", page)
}
