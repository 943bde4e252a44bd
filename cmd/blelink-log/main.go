// Command blelink-log views and analyzes BLE link protocol capture files.
//
// Capture files are written by blelink-node when started with the
// -protocol-log flag.
//
// Usage:
//
//	blelink-log <command> [flags] <file.blog>
//
// Commands:
//
//	view     Print events one per line
//	export   Export events as JSON lines or CSV
//	filter   Copy selected events into a new capture file
//	stats    Show per-session traffic statistics
//
// All commands share the selection flags -session, -iface, -peer, -layer,
// -direction, -category, -packet, -time-start and -time-end.
//
// Examples:
//
//	# Follow every fragment of one packet
//	blelink-log view -packet 0x2a node.blog
//
//	# Inbound payloads from one peer as CSV
//	blelink-log export -format csv -category payload -direction in -peer F9:7F:43:01:0A:D4 node.blog
//
//	# Extract one interface into a new file
//	blelink-log filter -iface "BLE Test Interface" -o ble0.blog node.blog
//
//	# Show statistics
//	blelink-log stats node.blog
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/blelink/blelink-go/cmd/blelink-log/commands"
)

type command struct {
	name    string
	summary string
	run     func(args []string) error
}

var cmds = []command{
	{"view", "Print events one per line", runView},
	{"export", "Export events as JSON lines or CSV", runExport},
	{"filter", "Copy selected events into a new capture file", runFilter},
	{"stats", "Show per-session traffic statistics", runStats},
}

// errUsage reports a usage problem already explained on stderr.
var errUsage = errors.New("usage")

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	name := os.Args[1]
	if name == "help" || name == "-h" || name == "-help" || name == "--help" {
		printUsage(os.Stdout)
		return
	}
	for _, c := range cmds {
		if c.name != name {
			continue
		}
		if err := c.run(os.Args[2:]); err != nil {
			if !errors.Is(err, errUsage) {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			os.Exit(1)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
	printUsage(os.Stderr)
	os.Exit(1)
}

func printUsage(w *os.File) {
	fmt.Fprint(w, "blelink-log - BLE link capture analyzer\n\nUsage:\n  blelink-log <command> [flags] <file.blog>\n\nCommands:\n")
	for _, c := range cmds {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.summary)
	}
	fmt.Fprint(w, "\nUse \"blelink-log <command> -help\" for the flags of a command.\n")
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n  blelink-log %s [flags] <file.blog>\n\nFlags:\n", name)
		fs.PrintDefaults()
	}
	return fs
}

// selectionFlags registers the event selection flags on fs.
func selectionFlags(fs *flag.FlagSet) *commands.FilterSpec {
	s := &commands.FilterSpec{}
	fs.StringVar(&s.Session, "session", "", "Session ID")
	fs.StringVar(&s.Interface, "iface", "", "Interface name")
	fs.StringVar(&s.Peer, "peer", "", "Peer address")
	fs.StringVar(&s.Layer, "layer", "", "Layer: radio, fragment, interface")
	fs.StringVar(&s.Direction, "direction", "", "Direction: in, out (excludes state and error events)")
	fs.StringVar(&s.Category, "category", "", "Category: frame, payload, state, error")
	fs.StringVar(&s.Packet, "packet", "", "Packet ID, decimal or 0x hex")
	fs.StringVar(&s.TimeStart, "time-start", "", "Events at or after this time (RFC3339)")
	fs.StringVar(&s.TimeEnd, "time-end", "", "Events before this time (RFC3339)")
	return s
}

// parse parses args and returns the single capture file argument.
func parse(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", errUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one capture file required")
		fs.Usage()
		return "", errUsage
	}
	return fs.Arg(0), nil
}

func runView(args []string) error {
	fs := newFlagSet("view")
	sel := selectionFlags(fs)
	path, err := parse(fs, args)
	if err != nil {
		return err
	}
	filter, err := sel.Build()
	if err != nil {
		return err
	}
	return commands.RunView(path, filter, os.Stdout)
}

func runExport(args []string) error {
	fs := newFlagSet("export")
	sel := selectionFlags(fs)
	format := fs.String("format", "jsonl", "Output format: jsonl, csv")
	output := fs.String("o", "", "Output file (default stdout)")
	path, err := parse(fs, args)
	if err != nil {
		return err
	}
	filter, err := sel.Build()
	if err != nil {
		return err
	}
	return commands.RunExport(path, *format, *output, filter)
}

func runFilter(args []string) error {
	fs := newFlagSet("filter")
	sel := selectionFlags(fs)
	output := fs.String("o", "", "Output capture file (required)")
	path, err := parse(fs, args)
	if err != nil {
		return err
	}
	if *output == "" {
		fmt.Fprintln(os.Stderr, "Error: -o is required")
		fs.Usage()
		return errUsage
	}
	filter, err := sel.Build()
	if err != nil {
		return err
	}

	n, err := commands.RunFilter(path, *output, filter)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %d events to %s\n", n, *output)
	return nil
}

func runStats(args []string) error {
	fs := newFlagSet("stats")
	sel := selectionFlags(fs)
	path, err := parse(fs, args)
	if err != nil {
		return err
	}
	filter, err := sel.Build()
	if err != nil {
		return err
	}
	return commands.RunStats(path, filter, os.Stdout)
}
