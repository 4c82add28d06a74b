package cli

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/dmitrijs2005/dapnet/internal/logging"
	"github.com/dmitrijs2005/dapnet/internal/services"
	"github.com/dmitrijs2005/dapnet/internal/storage/history"
	"github.com/dmitrijs2005/dapnet/pkg/dapnet"
)

// fakeAPI serves fixed data; a name that is not in the maps is "not found".
type fakeAPI struct {
	err error

	stats        dapnet.Statistics
	nodes        map[string]dapnet.Node
	transmitters map[string]dapnet.Transmitter
	groups       map[string]dapnet.TransmitterGroup
	callsigns    map[string]dapnet.Callsign
	rubrics      map[string]dapnet.Rubric
	calls        map[string][]dapnet.Call
	news         map[string][]dapnet.News

	queried []string
}

func values[T any](m map[string]T) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

func lookup[T any](f *fakeAPI, what string, m map[string]T, name string) (T, bool, error) {
	f.queried = append(f.queried, what+":"+name)
	var zero T
	if f.err != nil {
		return zero, false, f.err
	}
	v, ok := m[name]
	return v, ok, nil
}

func all[T any](f *fakeAPI, what string, m map[string]T) ([]T, bool, error) {
	f.queried = append(f.queried, what)
	if f.err != nil {
		return nil, false, f.err
	}
	return values(m), true, nil
}

func (f *fakeAPI) GetStatistics(context.Context) (dapnet.Statistics, bool, error) {
	f.queried = append(f.queried, "stats")
	return f.stats, f.err == nil, f.err
}

func (f *fakeAPI) GetCallsBy(_ context.Context, owner string) ([]dapnet.Call, bool, error) {
	return lookup(f, "calls", f.calls, owner)
}

func (f *fakeAPI) NewCall(context.Context, dapnet.OutgoingCall) error { return f.err }

func (f *fakeAPI) GetAllNodes(context.Context) ([]dapnet.Node, bool, error) {
	return all(f, "nodes", f.nodes)
}

func (f *fakeAPI) GetNode(_ context.Context, name string) (dapnet.Node, bool, error) {
	return lookup(f, "node", f.nodes, name)
}

func (f *fakeAPI) GetAllCallsigns(context.Context) ([]dapnet.Callsign, bool, error) {
	return all(f, "callsigns", f.callsigns)
}

func (f *fakeAPI) GetCallsign(_ context.Context, name string) (dapnet.Callsign, bool, error) {
	return lookup(f, "callsign", f.callsigns, name)
}

func (f *fakeAPI) GetAllTransmitters(context.Context) ([]dapnet.Transmitter, bool, error) {
	return all(f, "transmitters", f.transmitters)
}

func (f *fakeAPI) GetTransmitter(_ context.Context, name string) (dapnet.Transmitter, bool, error) {
	return lookup(f, "transmitter", f.transmitters, name)
}

func (f *fakeAPI) GetAllTransmitterGroups(context.Context) ([]dapnet.TransmitterGroup, bool, error) {
	return all(f, "groups", f.groups)
}

func (f *fakeAPI) GetTransmitterGroup(_ context.Context, name string) (dapnet.TransmitterGroup, bool, error) {
	return lookup(f, "group", f.groups, name)
}

func (f *fakeAPI) GetAllRubrics(context.Context) ([]dapnet.Rubric, bool, error) {
	return all(f, "rubrics", f.rubrics)
}

func (f *fakeAPI) GetRubric(_ context.Context, name string) (dapnet.Rubric, bool, error) {
	return lookup(f, "rubric", f.rubrics, name)
}

func (f *fakeAPI) GetNews(_ context.Context, rubric string) ([]dapnet.News, bool, error) {
	return lookup(f, "news", f.news, rubric)
}

func (f *fakeAPI) NewNews(context.Context, dapnet.OutgoingNews) error { return f.err }

type fakeMessages struct {
	calls   []services.CallRequest
	news    []services.NewsRequest
	records []history.Record
	err     error
	limit   int
}

func (f *fakeMessages) SendCall(_ context.Context, req services.CallRequest) (history.Record, error) {
	if f.err != nil {
		return history.Record{}, f.err
	}
	f.calls = append(f.calls, req)
	return history.Record{Kind: history.KindCall, Text: req.Text, Recipients: req.Recipients, Groups: req.Groups, Emergency: req.Emergency}, nil
}

func (f *fakeMessages) PostNews(_ context.Context, req services.NewsRequest) (history.Record, error) {
	if f.err != nil {
		return history.Record{}, f.err
	}
	f.news = append(f.news, req)
	n := req.Number
	if n == 0 {
		n = dapnet.DefaultNewsNumber
	}
	return history.Record{Kind: history.KindNews, Text: req.Text, Rubric: req.Rubric, Number: n}, nil
}

func (f *fakeMessages) History(_ context.Context, limit int) ([]history.Record, error) {
	f.limit = limit
	return f.records, f.err
}

func newTestApp(api dapnet.API, msgs services.MessageService, username string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	return newApp(api, msgs, username, &out, logger), &out
}
