package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/dapnet/internal/config"
	"github.com/dmitrijs2005/dapnet/internal/filex"
	"github.com/dmitrijs2005/dapnet/internal/flagx"
	"github.com/dmitrijs2005/dapnet/internal/logging"
	"github.com/dmitrijs2005/dapnet/internal/services"
	"github.com/dmitrijs2005/dapnet/internal/storage"
	"github.com/dmitrijs2005/dapnet/internal/storage/history"
	"github.com/dmitrijs2005/dapnet/pkg/dapnet"
)

// App holds everything a command needs.
type App struct {
	api      dapnet.API
	messages services.MessageService
	logger   logging.Logger
	username string
	out      io.Writer
	db       *sql.DB
}

// NewApp builds the API client, opens the history database and returns a
// ready App. A history database that cannot be opened is logged and the App
// runs without history. args are the command line arguments later passed to
// Run; the password is only prompted for when they start the REPL.
func NewApp(ctx context.Context, c *config.Config, args []string) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	sl := logging.NewTextSlog(os.Stderr, level)
	logger := logging.NewSlogLogger(sl)

	opts, err := c.SanitizeOptions()
	if err != nil {
		return nil, err
	}

	password := c.Password
	if needsPassword(c, args) {
		pw, err := GetPassword(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("read password: %w", err)
		}
		password = string(pw)
	}

	api, err := dapnet.New(c.Username, password,
		dapnet.WithBaseURL(c.APIURL),
		dapnet.WithHTTPClient(&http.Client{Timeout: c.Timeout}),
		dapnet.WithLogger(sl),
	)
	if err != nil {
		return nil, err
	}

	var repo history.Repository
	db, err := openHistory(ctx, c.HistoryDSN)
	if err != nil {
		logger.Warn(ctx, "history disabled", "dsn", c.HistoryDSN, "error", err)
	} else {
		repo = history.NewSQLiteRepository(db)
	}

	app := newApp(api, services.NewMessageService(api, repo, opts, logger), c.Username, os.Stdout, logger)
	app.db = db
	return app, nil
}

// needsPassword reports whether to prompt: REPL sessions on a terminal with
// a username but no password. One-shot commands never block on stdin.
func needsPassword(c *config.Config, args []string) bool {
	if c.Username == "" || c.Password != "" {
		return false
	}
	if len(flagx.Positional(args, config.ValueFlags)) > 0 {
		return false
	}
	return isTerminal(int(os.Stdin.Fd()))
}

func openHistory(ctx context.Context, dsn string) (*sql.DB, error) {
	path, err := filex.EnsureParentDir(dsn)
	if err != nil {
		return nil, err
	}
	return storage.InitDatabase(ctx, path)
}

func newApp(api dapnet.API, messages services.MessageService, username string, out io.Writer, logger logging.Logger) *App {
	return &App{api: api, messages: messages, username: username, out: out, logger: logger}
}

// Close releases the history database.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Run executes the command found in args, or starts the REPL on stdin when
// there is none.
func (a *App) Run(ctx context.Context, args []string) error {
	cmd := flagx.Positional(args, config.ValueFlags)
	if len(cmd) > 0 {
		return a.Exec(ctx, cmd)
	}

	printlnFn("DAPNET CLI (type 'help' for commands)")
	runREPL(ctx, a, a.prompt(), bufio.NewScanner(os.Stdin))
	return nil
}

func (a *App) prompt() string {
	if a.username == "" {
		return "dapnet> "
	}
	return fmt.Sprintf("dapnet (%s)> ", a.username)
}
