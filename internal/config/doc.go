// Package config loads runtime configuration for the dapnet CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Environment: DAPNET_URL, DAPNET_USERNAME, DAPNET_PASSWORD.
//  4. Command-line flags, which override everything above.
//
// Supported flags
//
//	-a string   API base URL
//	-u string   DAPNET username
//	-p string   DAPNET password
//	-t int      request timeout (seconds)
//	-d string   path of the local history database
//	-l string   log level (debug, info, warn, error)
//	-m int      maximum message length after sanitizing
//	-n string   non-ASCII policy: keep, remove or replace
//
// # File schema
//
// Durations are timex.Duration, so "10s" and integer nanoseconds both work:
//
//	api_url: https://hampager.de/api/
//	username: m0nxn
//	password: my_super_secret_password
//	timeout: 10s
//	history_dsn: dapnet-history.db
//	log_level: info
//	max_length: 80
//	ellipsis: "..."
//	non_ascii: replace
//	replacement: "?"
package config
