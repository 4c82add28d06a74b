// Package services holds the CLI's application services on top of the
// dapnet client and the local history.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dapnet/internal/logging"
	"github.com/dmitrijs2005/dapnet/internal/storage/history"
	"github.com/dmitrijs2005/dapnet/pkg/dapnet"
	"github.com/dmitrijs2005/dapnet/pkg/sanitize"
)

// Sender is the part of dapnet.API that submits messages.
type Sender interface {
	NewCall(ctx context.Context, call dapnet.OutgoingCall) error
	NewNews(ctx context.Context, news dapnet.OutgoingNews) error
}

// CallRequest is a page as entered by the user.
type CallRequest struct {
	Text       string
	Recipients []string
	Groups     []string
	Emergency  bool
}

// NewsRequest is a news item as entered by the user. Number 0 means the
// default slot.
type NewsRequest struct {
	Rubric string
	Text   string
	Number int
}

type MessageService interface {
	SendCall(ctx context.Context, req CallRequest) (history.Record, error)
	PostNews(ctx context.Context, req NewsRequest) (history.Record, error)
	History(ctx context.Context, limit int) ([]history.Record, error)
}

type messageService struct {
	sender  Sender
	repo    history.Repository
	opts    sanitize.Options
	logger  logging.Logger
	nowFunc func() time.Time
}

// NewMessageService returns a MessageService that sanitizes with opts before
// validating and submitting, and records accepted messages in repo.
func NewMessageService(sender Sender, repo history.Repository, opts sanitize.Options, logger logging.Logger) MessageService {
	return &messageService{sender: sender, repo: repo, opts: opts, logger: logger, nowFunc: time.Now}
}

func (s *messageService) SendCall(ctx context.Context, req CallRequest) (history.Record, error) {
	text := sanitize.Sanitize(req.Text, s.opts)

	call, err := dapnet.NewOutgoingCall(text, req.Recipients, req.Groups, dapnet.WithEmergency(req.Emergency))
	if err != nil {
		return history.Record{}, err
	}

	if err := s.sender.NewCall(ctx, call); err != nil {
		return history.Record{}, fmt.Errorf("send call: %w", err)
	}

	rec := history.Record{
		Kind:       history.KindCall,
		Text:       call.Text(),
		Original:   req.Text,
		Emergency:  call.Emergency(),
		Recipients: call.Recipients(),
		Groups:     call.TransmitterGroups(),
		SentAt:     s.nowFunc(),
	}
	s.record(ctx, &rec)
	return rec, nil
}

func (s *messageService) PostNews(ctx context.Context, req NewsRequest) (history.Record, error) {
	text := sanitize.Sanitize(req.Text, s.opts)

	var opts []dapnet.NewsOption
	if req.Number != 0 {
		opts = append(opts, dapnet.WithNumber(req.Number))
	}

	news, err := dapnet.NewOutgoingNews(req.Rubric, text, opts...)
	if err != nil {
		return history.Record{}, err
	}

	if err := s.sender.NewNews(ctx, news); err != nil {
		return history.Record{}, fmt.Errorf("post news: %w", err)
	}

	rec := history.Record{
		Kind:     history.KindNews,
		Text:     news.Text(),
		Original: req.Text,
		Rubric:   news.Rubric(),
		Number:   news.Number(),
		SentAt:   s.nowFunc(),
	}
	s.record(ctx, &rec)
	return rec, nil
}

// record stores rec. The message already left, so a storage failure is
// logged rather than returned.
func (s *messageService) record(ctx context.Context, rec *history.Record) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Add(ctx, rec); err != nil {
		s.logger.Warn(ctx, "failed to record sent message", "kind", rec.Kind, "error", err)
	}
}

func (s *messageService) History(ctx context.Context, limit int) ([]history.Record, error) {
	if s.repo == nil {
		return nil, ErrNoHistory
	}
	recs, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return recs, nil
}
