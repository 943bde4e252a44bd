package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/blelink/blelink-go/pkg/log"
)

// csvColumns is the CSV export header.
var csvColumns = []string{"timestamp", "session_id", "interface", "peer", "direction", "layer", "category", "type", "packet_id", "size"}

// RunExport writes the events of path that filter selects as JSON lines or
// CSV to output, or to stdout when output is empty.
func RunExport(path, format, output string, filter log.Filter) error {
	var encode func(io.Writer) (func(log.Event) error, func() error)
	switch format {
	case "jsonl":
		encode = jsonLines
	case "csv":
		encode = csvRows
	default:
		return fmt.Errorf("unknown format %q (supported: jsonl, csv)", format)
	}

	reader, err := log.Open(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	write, flush := encode(w)
	if err := reader.Each(write); err != nil {
		return err
	}
	return flush()
}

func jsonLines(w io.Writer) (func(log.Event) error, func() error) {
	enc := json.NewEncoder(w)
	return func(e log.Event) error { return enc.Encode(e) }, func() error { return nil }
}

func csvRows(w io.Writer) (func(log.Event) error, func() error) {
	cw := csv.NewWriter(w)
	header := true

	write := func(e log.Event) error {
		if header {
			header = false
			if err := cw.Write(csvColumns); err != nil {
				return err
			}
		}
		return cw.Write(csvRecord(e))
	}
	flush := func() error {
		if header {
			cw.Write(csvColumns)
		}
		cw.Flush()
		return cw.Error()
	}
	return write, flush
}

func csvRecord(e log.Event) []string {
	var packet, size string
	if id, ok := e.PacketID(); ok {
		packet = strconv.Itoa(int(id))
	}
	switch {
	case e.Frame != nil:
		size = strconv.Itoa(e.Frame.Size)
	case e.Payload != nil:
		size = strconv.Itoa(e.Payload.Size)
	}
	return []string{
		e.Timestamp.UTC().Format(timeLayout),
		e.SessionID,
		e.Interface,
		e.PeerAddress,
		e.Direction.String(),
		e.Layer.String(),
		e.Category.String(),
		e.Kind(),
		packet,
		size,
	}
}
