package dapnet

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/dapnet/internal/logging"
)

// DefaultBaseURL is the public DAPNET API endpoint.
const DefaultBaseURL = "https://hampager.de/api/"

const defaultUserAgent = "dapnet-go/1.0"

// API is the set of operations exposed by DAPNET. *Client implements it.
//
// Read operations return found == false when the API answers 404; that is
// not an error. Any other non-2xx answer is an *APIError.
type API interface {
	GetStatistics(ctx context.Context) (Statistics, bool, error)

	GetCallsBy(ctx context.Context, owner string) ([]Call, bool, error)
	NewCall(ctx context.Context, call OutgoingCall) error

	GetAllNodes(ctx context.Context) ([]Node, bool, error)
	GetNode(ctx context.Context, name string) (Node, bool, error)

	GetAllCallsigns(ctx context.Context) ([]Callsign, bool, error)
	GetCallsign(ctx context.Context, name string) (Callsign, bool, error)

	GetAllTransmitters(ctx context.Context) ([]Transmitter, bool, error)
	GetTransmitter(ctx context.Context, name string) (Transmitter, bool, error)

	GetAllTransmitterGroups(ctx context.Context) ([]TransmitterGroup, bool, error)
	GetTransmitterGroup(ctx context.Context, name string) (TransmitterGroup, bool, error)

	GetAllRubrics(ctx context.Context) ([]Rubric, bool, error)
	GetRubric(ctx context.Context, name string) (Rubric, bool, error)

	GetNews(ctx context.Context, rubric string) ([]News, bool, error)
	NewNews(ctx context.Context, news OutgoingNews) error
}

// Client talks to the DAPNET REST API with basic authentication.
//
// A Client holds only read-only configuration and may be used from multiple
// goroutines.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	username   string
	password   string
	userAgent  string
	logger     logging.Logger
}

var _ API = (*Client)(nil)

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	userAgent  string
}

// WithBaseURL points the client at another API root.
func WithBaseURL(u string) Option {
	return func(o *clientOptions) { o.baseURL = u }
}

// WithHTTPClient replaces the transport. Timeouts are the caller's choice.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = c }
}

// WithLogger enables debug request traces. Errors are returned, never logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *clientOptions) { o.userAgent = ua }
}

// New creates a client for the given credentials.
//
//	c, err := dapnet.New("m0nxn", "my_super_secret_password")
func New(username, password string, opts ...Option) (*Client, error) {
	o := clientOptions{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
		logger:     slog.New(slog.DiscardHandler),
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(&o)
	}

	base, err := parseBaseURL(o.baseURL)
	if err != nil {
		return nil, err
	}

	return &Client{
		httpClient: o.httpClient,
		baseURL:    base,
		username:   username,
		password:   password,
		userAgent:  o.userAgent,
		logger:     logging.NewSlogLogger(o.logger).With("component", "dapnet"),
	}, nil
}

// BaseURL returns the API root requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("build url: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("build url: base url %q must be absolute", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
		if u.RawPath != "" {
			u.RawPath += "/"
		}
	}
	return u, nil
}

// resourcePath joins a collection with a path-escaped name. Dots are escaped
// too, so "." and ".." stay names instead of dot segments.
func resourcePath(collection, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("build url: empty %s name", collection)
	}
	return collection + "/" + strings.ReplaceAll(url.PathEscape(name), ".", "%2E"), nil
}

// queryPath attaches a single query-encoded parameter.
func queryPath(collection, key, value string) string {
	return collection + "?" + url.Values{key: {value}}.Encode()
}

func (c *Client) GetStatistics(ctx context.Context) (Statistics, bool, error) {
	return fetchOne[Statistics](ctx, c, "stats")
}

func (c *Client) GetCallsBy(ctx context.Context, owner string) ([]Call, bool, error) {
	return fetchMany[Call](ctx, c, queryPath("calls", "ownerName", owner))
}

// NewCall sends a page.
//
//	call, err := dapnet.NewOutgoingCall("M0NXN: this is a test", []string{"m0nxn"}, []string{"uk-all"})
//	if err != nil {
//		return err
//	}
//	err = client.NewCall(ctx, call)
func (c *Client) NewCall(ctx context.Context, call OutgoingCall) error {
	return c.submit(ctx, "calls", call)
}

func (c *Client) GetAllNodes(ctx context.Context) ([]Node, bool, error) {
	return fetchMany[Node](ctx, c, "nodes")
}

func (c *Client) GetNode(ctx context.Context, name string) (Node, bool, error) {
	return fetchNamed[Node](ctx, c, "nodes", name)
}

func (c *Client) GetAllCallsigns(ctx context.Context) ([]Callsign, bool, error) {
	return fetchMany[Callsign](ctx, c, "callsigns")
}

func (c *Client) GetCallsign(ctx context.Context, name string) (Callsign, bool, error) {
	return fetchNamed[Callsign](ctx, c, "callsigns", name)
}

func (c *Client) GetAllTransmitters(ctx context.Context) ([]Transmitter, bool, error) {
	return fetchMany[Transmitter](ctx, c, "transmitters")
}

func (c *Client) GetTransmitter(ctx context.Context, name string) (Transmitter, bool, error) {
	return fetchNamed[Transmitter](ctx, c, "transmitters", name)
}

func (c *Client) GetAllTransmitterGroups(ctx context.Context) ([]TransmitterGroup, bool, error) {
	return fetchMany[TransmitterGroup](ctx, c, "transmitterGroups")
}

func (c *Client) GetTransmitterGroup(ctx context.Context, name string) (TransmitterGroup, bool, error) {
	return fetchNamed[TransmitterGroup](ctx, c, "transmitterGroups", name)
}

func (c *Client) GetAllRubrics(ctx context.Context) ([]Rubric, bool, error) {
	return fetchMany[Rubric](ctx, c, "rubrics")
}

func (c *Client) GetRubric(ctx context.Context, name string) (Rubric, bool, error) {
	return fetchNamed[Rubric](ctx, c, "rubrics", name)
}

// GetNews lists the news of a rubric. The API may return null entries; they
// are dropped.
func (c *Client) GetNews(ctx context.Context, rubric string) ([]News, bool, error) {
	raw, found, err := fetchMany[*News](ctx, c, queryPath("news", "rubricName", rubric))
	if err != nil || !found {
		return nil, found, err
	}

	news := make([]News, 0, len(raw))
	for _, n := range raw {
		if n != nil {
			news = append(news, *n)
		}
	}
	return news, true, nil
}

// NewNews posts a news item to a rubric.
func (c *Client) NewNews(ctx context.Context, news OutgoingNews) error {
	return c.submit(ctx, "news", news)
}
