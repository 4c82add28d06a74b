package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/dapnet/internal/logging"
	"github.com/dmitrijs2005/dapnet/internal/storage/history"
	"github.com/dmitrijs2005/dapnet/pkg/dapnet"
	"github.com/dmitrijs2005/dapnet/pkg/sanitize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	calls   []dapnet.OutgoingCall
	news    []dapnet.OutgoingNews
	sendErr error
}

func (f *fakeSender) NewCall(_ context.Context, call dapnet.OutgoingCall) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.calls = append(f.calls, call)
	return nil
}

func (f *fakeSender) NewNews(_ context.Context, news dapnet.OutgoingNews) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.news = append(f.news, news)
	return nil
}

type fakeRepo struct {
	added   []history.Record
	addErr  error
	listErr error
}

func (f *fakeRepo) Add(_ context.Context, r *history.Record) error {
	if f.addErr != nil {
		return f.addErr
	}
	r.ID = int64(len(f.added) + 1)
	f.added = append(f.added, *r)
	return nil
}

func (f *fakeRepo) List(_ context.Context, limit int) ([]history.Record, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]history.Record, 0, len(f.added))
	for i := len(f.added) - 1; i >= 0; i-- {
		out = append(out, f.added[i])
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.DiscardHandler))
}

func newService(sender Sender, repo history.Repository) *messageService {
	svc := NewMessageService(sender, repo, sanitize.DefaultOptions(), discardLogger()).(*messageService)
	svc.nowFunc = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestSendCall_SanitizesSubmitsAndRecords(t *testing.T) {
	sender := &fakeSender{}
	repo := &fakeRepo{}
	svc := newService(sender, repo)

	rec, err := svc.SendCall(context.Background(), CallRequest{
		Text:       "Grüße",
		Recipients: []string{"m0nxn"},
		Groups:     []string{"uk-all"},
		Emergency:  true,
	})
	require.NoError(t, err)

	require.Len(t, sender.calls, 1)
	assert.Equal(t, "Gr??e", sender.calls[0].Text())
	assert.True(t, sender.calls[0].Emergency())

	require.Len(t, repo.added, 1)
	assert.Equal(t, rec, repo.added[0])
	assert.Equal(t, history.KindCall, rec.Kind)
	assert.Equal(t, "Gr??e", rec.Text)
	assert.Equal(t, "Grüße", rec.Original)
	assert.Equal(t, []string{"m0nxn"}, rec.Recipients)
	assert.Equal(t, []string{"uk-all"}, rec.Groups)
	assert.EqualValues(t, 1, rec.ID)
}

func TestSendCall_TruncatesLongText(t *testing.T) {
	sender := &fakeSender{}
	svc := newService(sender, &fakeRepo{})

	_, err := svc.SendCall(context.Background(), CallRequest{Text: strings.Repeat("a", 100), Recipients: []string{"x"}})
	require.NoError(t, err)

	require.Len(t, sender.calls, 1)
	got := sender.calls[0].Text()
	assert.Len(t, got, dapnet.MaxTextLength)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestSendCall_ValidationNeverReachesAPI(t *testing.T) {
	sender := &fakeSender{}
	repo := &fakeRepo{}
	svc := newService(sender, repo)

	_, err := svc.SendCall(context.Background(), CallRequest{Text: "", Recipients: []string{"m0nxn"}})
	require.ErrorIs(t, err, dapnet.ErrTextRequired)
	assert.Empty(t, sender.calls)
	assert.Empty(t, repo.added)
}

func TestSendCall_ValidationWithoutTruncation(t *testing.T) {
	sender := &fakeSender{}
	opts := sanitize.NewOptions(sanitize.WithMaxLength(200))
	svc := NewMessageService(sender, &fakeRepo{}, opts, discardLogger())

	_, err := svc.SendCall(context.Background(), CallRequest{Text: strings.Repeat("b", 81)})
	require.ErrorIs(t, err, dapnet.ErrTextTooLong)
	assert.Empty(t, sender.calls)
}

func TestSendCall_FailedSubmitRecordsNothing(t *testing.T) {
	apiErr := &dapnet.APIError{StatusCode: 401, Status: "401 Unauthorized"}
	sender := &fakeSender{sendErr: apiErr}
	repo := &fakeRepo{}
	svc := newService(sender, repo)

	_, err := svc.SendCall(context.Background(), CallRequest{Text: "hi", Recipients: []string{"m0nxn"}})
	require.Error(t, err)
	assert.True(t, dapnet.IsStatus(err, 401))
	assert.Empty(t, repo.added)
}

func TestSendCall_RecordFailureIsNotAnError(t *testing.T) {
	sender := &fakeSender{}
	svc := newService(sender, &fakeRepo{addErr: errors.New("disk full")})

	rec, err := svc.SendCall(context.Background(), CallRequest{Text: "hi", Recipients: []string{"m0nxn"}})
	require.NoError(t, err)
	assert.Len(t, sender.calls, 1)
	assert.Zero(t, rec.ID)
}

func TestPostNews_DefaultAndExplicitNumber(t *testing.T) {
	sender := &fakeSender{}
	repo := &fakeRepo{}
	svc := newService(sender, repo)
	ctx := context.Background()

	rec, err := svc.PostNews(ctx, NewsRequest{Rubric: "dx", Text: "contest"})
	require.NoError(t, err)
	assert.Equal(t, dapnet.DefaultNewsNumber, rec.Number)

	rec, err = svc.PostNews(ctx, NewsRequest{Rubric: "dx", Text: "contest", Number: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, rec.Number)
	assert.Equal(t, history.KindNews, rec.Kind)
	assert.Equal(t, "dx", rec.Rubric)

	require.Len(t, sender.news, 2)
	assert.Equal(t, 4, sender.news[1].Number())
	assert.Len(t, repo.added, 2)
}

func TestPostNews_Errors(t *testing.T) {
	sender := &fakeSender{}
	svc := newService(sender, &fakeRepo{})

	_, err := svc.PostNews(context.Background(), NewsRequest{Rubric: "dx", Text: ""})
	require.ErrorIs(t, err, dapnet.ErrValidation)
	assert.Empty(t, sender.news)

	sender.sendErr = errors.New("connection refused")
	_, err = svc.PostNews(context.Background(), NewsRequest{Rubric: "dx", Text: "x"})
	require.ErrorContains(t, err, "post news")
}

func TestHistory(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(&fakeSender{}, repo)
	ctx := context.Background()

	for _, text := range []string{"a", "b", "c"} {
		_, err := svc.SendCall(ctx, CallRequest{Text: text, Recipients: []string{"m0nxn"}})
		require.NoError(t, err)
	}

	recs, err := svc.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "c", recs[0].Text)

	repo.listErr = errors.New("locked")
	_, err = svc.History(ctx, 0)
	require.Error(t, err)
}

func TestHistory_WithoutRepository(t *testing.T) {
	svc := NewMessageService(&fakeSender{}, nil, sanitize.DefaultOptions(), discardLogger())

	_, err := svc.SendCall(context.Background(), CallRequest{Text: "hi"})
	require.NoError(t, err)

	_, err = svc.History(context.Background(), 1)
	require.ErrorIs(t, err, ErrNoHistory)
}
