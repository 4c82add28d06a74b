// Package cli is the dapnet command-line front end.
//
// It wires configuration, the DAPNET API client, the local send history and
// an interactive REPL. A command given on the command line runs once; with
// no command the REPL reads commands from stdin until "exit", "quit" or EOF.
//
// Commands
//
//	stats                                   network statistics
//	nodes | transmitters | groups | callsigns | rubrics [name]
//	calls [owner]                           calls by owner (default: you)
//	news <rubric>                           news of a rubric
//	page <callsigns> <groups> <text...>     send a call
//	emergency <callsigns> <groups> <text...>
//	postnews <rubric> [#n] <text...>        post news in slot n
//	history [limit]                         locally recorded messages
//
// Lists of callsigns and groups are comma-separated. Message text is
// sanitized before it is validated and sent.
package cli
