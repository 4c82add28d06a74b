package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/dapnet/internal/storage/history"
	"github.com/dmitrijs2005/dapnet/pkg/dapnet"
)

const timeLayout = "2006-01-02 15:04:05"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func row(w io.Writer, cols ...any) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(w, strings.Join(parts, "\t"))
}

func list(s []string) string {
	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s, ",")
}

func strOr(p *string) string {
	if p == nil || *p == "" {
		return "-"
	}
	return *p
}

func timeOr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

func addr(c *dapnet.Connection) string {
	if c == nil {
		return "-"
	}
	return fmt.Sprintf("%s:%d", c.IP, c.Port)
}

func printStatistics(w io.Writer, s dapnet.Statistics) error {
	tw := newTable(w)
	row(tw, "users", s.Users)
	row(tw, "callsigns", s.Callsigns)
	row(tw, "calls", fmt.Sprintf("%d (total %d)", s.Calls, s.CallsTotal))
	row(tw, "nodes", fmt.Sprintf("%d/%d online", s.NodesOnline, s.NodesTotal))
	row(tw, "transmitters", fmt.Sprintf("%d/%d online", s.TransmittersOnline, s.TransmittersTotal))
	row(tw, "rubrics", s.Rubrics)
	row(tw, "news", fmt.Sprintf("%d (total %d)", s.News, s.NewsTotal))
	return tw.Flush()
}

func printNodes(w io.Writer, nodes []dapnet.Node) error {
	tw := newTable(w)
	row(tw, "NAME", "STATUS", "VERSION", "ADDRESS", "OWNERS")
	for _, n := range nodes {
		row(tw, n.Name, n.Status, n.Version, addr(n.Connection), list(n.Owners))
	}
	return tw.Flush()
}

func printNode(w io.Writer, n dapnet.Node) error {
	tw := newTable(w)
	row(tw, "name", n.Name)
	row(tw, "status", n.Status)
	row(tw, "version", n.Version)
	row(tw, "position", n.Latitude+", "+n.Longitude)
	row(tw, "address", addr(n.Connection))
	row(tw, "owners", list(n.Owners))
	return tw.Flush()
}

func printTransmitters(w io.Writer, txs []dapnet.Transmitter) error {
	tw := newTable(w)
	row(tw, "NAME", "STATUS", "USAGE", "NODE", "CALLS", "OWNERS")
	for _, t := range txs {
		row(tw, t.Name, t.Status, t.Usage, strOr(t.NodeName), t.CallCount, list(t.Owners))
	}
	return tw.Flush()
}

func printTransmitter(w io.Writer, t dapnet.Transmitter) error {
	tw := newTable(w)
	row(tw, "name", t.Name)
	row(tw, "status", t.Status)
	row(tw, "usage", t.Usage)
	row(tw, "position", t.Latitude+", "+t.Longitude)
	row(tw, "timeslots", t.Timeslots)
	row(tw, "node", strOr(t.NodeName))
	row(tw, "address", addr(t.Connection))
	row(tw, "device", strings.TrimSpace(strOr(t.DeviceType)+" "+strOr(t.DeviceVersion)))
	row(tw, "power", t.Power+" W")
	antenna := fmt.Sprintf("%s, %d m AGL, %.1f dBi", t.AntennaType, t.AntennaAboveGroundLevel, t.AntennaGainDbi)
	if t.IsDirectional() {
		antenna += fmt.Sprintf(", %.0f°", t.AntennaDirection)
	}
	row(tw, "antenna", antenna)
	row(tw, "calls", t.CallCount)
	row(tw, "owners", list(t.Owners))
	row(tw, "last update", t.LastUpdate.Local().Format(timeLayout))
	row(tw, "last connected", timeOr(t.LastConnected))
	row(tw, "connected since", timeOr(t.ConnectedSince))
	if t.AuthKey != nil {
		row(tw, "auth key", *t.AuthKey)
	}
	return tw.Flush()
}

func printGroups(w io.Writer, groups []dapnet.TransmitterGroup) error {
	tw := newTable(w)
	row(tw, "NAME", "DESCRIPTION", "TRANSMITTERS", "OWNERS")
	for _, g := range groups {
		row(tw, g.Name, g.Description, list(g.Transmitters), list(g.Owners))
	}
	return tw.Flush()
}

func printCallsigns(w io.Writer, callsigns []dapnet.Callsign) error {
	tw := newTable(w)
	row(tw, "NAME", "DESCRIPTION", "NUMERIC", "OWNERS")
	for _, c := range callsigns {
		row(tw, c.Name, c.Description, c.Numeric, list(c.Owners))
	}
	return tw.Flush()
}

func printRubrics(w io.Writer, rubrics []dapnet.Rubric) error {
	tw := newTable(w)
	row(tw, "NAME", "NUMBER", "LABEL", "GROUPS", "OWNERS")
	for _, r := range rubrics {
		row(tw, r.Name, r.Number, r.Label, list(r.TransmitterGroups), list(r.Owners))
	}
	return tw.Flush()
}

func printCalls(w io.Writer, calls []dapnet.Call) error {
	tw := newTable(w)
	row(tw, "TIME", "FROM", "TO", "GROUPS", "EMERGENCY", "TEXT")
	for _, c := range calls {
		row(tw, c.Timestamp.Local().Format(timeLayout), c.Sender, list(c.Recipients), list(c.TransmitterGroups), c.Emergency, c.Text)
	}
	return tw.Flush()
}

func printNews(w io.Writer, news []dapnet.News) error {
	tw := newTable(w)
	row(tw, "#", "TIME", "FROM", "TEXT")
	for _, n := range news {
		num := "-"
		if n.Number != nil {
			num = fmt.Sprint(*n.Number)
		}
		row(tw, num, n.Timestamp.Local().Format(timeLayout), n.Sender, n.Text)
	}
	return tw.Flush()
}

func printHistory(w io.Writer, recs []history.Record) error {
	tw := newTable(w)
	row(tw, "ID", "TIME", "KIND", "TARGET", "TEXT")
	for _, r := range recs {
		target := list(r.Recipients) + " @ " + list(r.Groups)
		kind := string(r.Kind)
		switch {
		case r.Kind == history.KindNews:
			target = fmt.Sprintf("%s #%d", r.Rubric, r.Number)
		case r.Emergency:
			kind += "!"
		}
		row(tw, r.ID, r.SentAt.Local().Format(timeLayout), kind, target, r.Text)
	}
	return tw.Flush()
}
