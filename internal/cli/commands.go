package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/dapnet/internal/flagx"
	"github.com/dmitrijs2005/dapnet/internal/services"
	"github.com/dmitrijs2005/dapnet/pkg/dapnet"
)

const defaultHistoryLimit = 20

// Exec runs a single command. args[0] is the command name.
func (a *App) Exec(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUnknownCommand
	}
	cmd, rest := args[0], args[1:]

	err := a.dispatch(ctx, cmd, rest)
	if err != nil {
		a.logger.Debug(ctx, "command failed", "command", cmd, "error", err)
	}
	return err
}

func (a *App) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "stats":
		return a.stats(ctx)
	case "nodes":
		return a.nodes(ctx, optional(args))
	case "transmitters":
		return a.transmitters(ctx, optional(args))
	case "groups":
		return a.groups(ctx, optional(args))
	case "callsigns":
		return a.callsigns(ctx, optional(args))
	case "rubrics":
		return a.rubrics(ctx, optional(args))
	case "calls":
		return a.calls(ctx, args)
	case "news":
		return a.news(ctx, args)
	case "page":
		return a.page(ctx, args, false)
	case "emergency":
		return a.page(ctx, args, true)
	case "postnews":
		return a.postNews(ctx, args)
	case "history":
		return a.history(ctx, args)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}

func optional(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func (a *App) notFound(kind, name string) error {
	_, err := fmt.Fprintf(a.out, "%s %q not found\n", kind, name)
	return err
}

func (a *App) stats(ctx context.Context) error {
	s, found, err := a.api.GetStatistics(ctx)
	if err != nil {
		return err
	}
	if !found {
		_, err := fmt.Fprintln(a.out, "statistics not available")
		return err
	}
	return printStatistics(a.out, s)
}

func (a *App) nodes(ctx context.Context, name string) error {
	if name != "" {
		n, found, err := a.api.GetNode(ctx, name)
		if err != nil {
			return err
		}
		if !found {
			return a.notFound("node", name)
		}
		return printNode(a.out, n)
	}
	list, _, err := a.api.GetAllNodes(ctx)
	if err != nil {
		return err
	}
	return printNodes(a.out, list)
}

func (a *App) transmitters(ctx context.Context, name string) error {
	if name != "" {
		t, found, err := a.api.GetTransmitter(ctx, name)
		if err != nil {
			return err
		}
		if !found {
			return a.notFound("transmitter", name)
		}
		return printTransmitter(a.out, t)
	}
	list, _, err := a.api.GetAllTransmitters(ctx)
	if err != nil {
		return err
	}
	return printTransmitters(a.out, list)
}

func (a *App) groups(ctx context.Context, name string) error {
	if name != "" {
		g, found, err := a.api.GetTransmitterGroup(ctx, name)
		if err != nil {
			return err
		}
		if !found {
			return a.notFound("transmitter group", name)
		}
		return printGroups(a.out, []dapnet.TransmitterGroup{g})
	}
	list, _, err := a.api.GetAllTransmitterGroups(ctx)
	if err != nil {
		return err
	}
	return printGroups(a.out, list)
}

func (a *App) callsigns(ctx context.Context, name string) error {
	if name != "" {
		c, found, err := a.api.GetCallsign(ctx, name)
		if err != nil {
			return err
		}
		if !found {
			return a.notFound("callsign", name)
		}
		return printCallsigns(a.out, []dapnet.Callsign{c})
	}
	list, _, err := a.api.GetAllCallsigns(ctx)
	if err != nil {
		return err
	}
	return printCallsigns(a.out, list)
}

func (a *App) rubrics(ctx context.Context, name string) error {
	if name != "" {
		r, found, err := a.api.GetRubric(ctx, name)
		if err != nil {
			return err
		}
		if !found {
			return a.notFound("rubric", name)
		}
		return printRubrics(a.out, []dapnet.Rubric{r})
	}
	list, _, err := a.api.GetAllRubrics(ctx)
	if err != nil {
		return err
	}
	return printRubrics(a.out, list)
}

func (a *App) calls(ctx context.Context, args []string) error {
	owner := optional(args)
	if owner == "" {
		owner = a.username
	}
	if owner == "" {
		return usage("calls <owner>")
	}

	list, found, err := a.api.GetCallsBy(ctx, owner)
	if err != nil {
		return err
	}
	if !found {
		return a.notFound("user", owner)
	}
	return printCalls(a.out, list)
}

func (a *App) news(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("news <rubric>")
	}

	list, found, err := a.api.GetNews(ctx, args[0])
	if err != nil {
		return err
	}
	if !found {
		return a.notFound("rubric", args[0])
	}
	return printNews(a.out, list)
}

func (a *App) page(ctx context.Context, args []string, emergency bool) error {
	if len(args) < 3 {
		if emergency {
			return usage("emergency <callsigns> <groups> <text...>")
		}
		return usage("page <callsigns> <groups> <text...>")
	}

	rec, err := a.messages.SendCall(ctx, services.CallRequest{
		Recipients: flagx.SplitList(args[0]),
		Groups:     flagx.SplitList(args[1]),
		Text:       strings.Join(args[2:], " "),
		Emergency:  emergency,
	})
	if err != nil {
		return err
	}

	a.logger.Info(ctx, "call sent", "recipients", rec.Recipients, "groups", rec.Groups, "emergency", rec.Emergency)
	_, err = fmt.Fprintf(a.out, "sent: %s\n", rec.Text)
	return err
}

// postNews accepts "postnews <rubric> [#n] <text...>".
func (a *App) postNews(ctx context.Context, args []string) error {
	const u = "postnews <rubric> [#n] <text...>"
	if len(args) < 2 {
		return usage(u)
	}

	req := services.NewsRequest{Rubric: args[0]}
	text := args[1:]
	if n, ok := slotNumber(text[0]); ok {
		if len(text) < 2 {
			return usage(u)
		}
		req.Number = n
		text = text[1:]
	}
	req.Text = strings.Join(text, " ")

	rec, err := a.messages.PostNews(ctx, req)
	if err != nil {
		return err
	}

	a.logger.Info(ctx, "news posted", "rubric", rec.Rubric, "number", rec.Number)
	_, err = fmt.Fprintf(a.out, "posted to %s #%d: %s\n", rec.Rubric, rec.Number, rec.Text)
	return err
}

func slotNumber(s string) (int, bool) {
	if !strings.HasPrefix(s, "#") {
		return 0, false
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil {
		return 0, false
	}
	return n, true
}

func (a *App) history(ctx context.Context, args []string) error {
	limit := defaultHistoryLimit
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return usage("history [limit]")
		}
		limit = n
	}

	recs, err := a.messages.History(ctx, limit)
	if err != nil {
		return err
	}
	return printHistory(a.out, recs)
}
