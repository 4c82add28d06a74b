package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/dapnet/internal/flagx"
)

// ValueFlags lists every flag that takes a separate value, including the
// config file flags. The CLI uses it to find the positional command.
var ValueFlags = []string{"-c", "-config", "-a", "-u", "-p", "-t", "-d", "-l", "-m", "-n"}

// parseFlags populates Config fields from command-line flags.
//
// Only the flags listed in the package documentation are looked at; the
// arguments are pre-filtered with flagx.FilterArgs so the command and its
// arguments do not trip the parser. Invalid values panic.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-u", "-p", "-t", "-d", "-l", "-m", "-n"})

	fs := flag.NewFlagSet("dapnet", flag.ContinueOnError)

	fs.StringVar(&cfg.APIURL, "a", cfg.APIURL, "DAPNET API base URL")
	fs.StringVar(&cfg.Username, "u", cfg.Username, "DAPNET username")
	fs.StringVar(&cfg.Password, "p", cfg.Password, "DAPNET password")
	timeout := fs.Int("t", int(cfg.Timeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.HistoryDSN, "d", cfg.HistoryDSN, "history database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.IntVar(&cfg.MaxLength, "m", cfg.MaxLength, "maximum message length")
	fs.StringVar(&cfg.NonASCII, "n", cfg.NonASCII, "non-ASCII policy: keep, remove, replace")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t only counts when given; the default shown is rounded to whole seconds.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.Timeout = time.Duration(*timeout) * time.Second
		}
	})
}
