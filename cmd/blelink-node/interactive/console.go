// Package interactive provides the interactive command-line interface
// for blelink-node.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/blelink/blelink-go/pkg/iface"
)

// Node is what the console drives.
type Node interface {
	Interfaces() []*iface.Interface
	Send(payload []byte) int
	Detach()
	Received() uint64
}

// Console handles interactive mode for blelink-node.
type Console struct {
	node Node
	rl   *readline.Instance
	out  io.Writer
}

// New creates a new console.
func New(node Node) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "blelink> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("send"),
			readline.PcItem("stats"),
			readline.PcItem("detach"),
			readline.PcItem("help"),
			readline.PcItem("quit"),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Console{node: node, rl: rl, out: rl.Stdout()}, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (c *Console) Stdout() io.Writer {
	return c.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline input.
func (c *Console) Stderr() io.Writer {
	return c.rl.Stderr()
}

// ShowInbound prints a received payload above the prompt.
func (c *Console) ShowInbound(payload []byte, from *iface.Interface) {
	fmt.Fprintf(c.out, "[%s] %d bytes: %s\n", from.Name(), len(payload), printable(payload))
}

// Run starts the interactive command loop. It calls cancel when the user
// quits or closes the input.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}

		if quit := c.Execute(line); quit {
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}
	}
}

// Execute runs one command line and reports whether the user asked to quit.
func (c *Console) Execute(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	cmd, rest, _ := strings.Cut(input, " ")
	switch strings.ToLower(cmd) {
	case "help", "?":
		c.printHelp()
	case "send", "s":
		c.cmdSend(strings.TrimSpace(rest))
	case "stats":
		c.cmdStats()
	case "detach":
		c.node.Detach()
		fmt.Fprintln(c.out, "All interfaces detached; workers stop at their next iteration")
	case "quit", "exit", "q":
		return true
	default:
		fmt.Fprintf(c.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `
BLE Link Commands:
    send <text>   - Queue text as one payload on every online interface
    stats         - Show interface counters
    detach        - Take every interface offline
    help          - Show this help
    quit          - Exit`)
}

func (c *Console) cmdSend(text string) {
	if text == "" {
		fmt.Fprintln(c.out, "Usage: send <text>")
		return
	}
	n := c.node.Send([]byte(text))
	if n == 0 {
		fmt.Fprintln(c.out, "No interface online; payload dropped")
		return
	}
	fmt.Fprintf(c.out, "Queued %d bytes on %d interface(s)\n", len(text), n)
}

func (c *Console) cmdStats() {
	data := pterm.TableData{{"Interface", "State", "Online", "Tx", "Rx", "Queued", "Dup", "Dropped", "Connect fails"}}
	for _, ifc := range c.node.Interfaces() {
		s := ifc.Stats()
		data = append(data, []string{
			ifc.String(),
			s.State.String(),
			strconv.FormatBool(ifc.Online()),
			fmt.Sprintf("%d B / %d", s.TxBytes, s.TxPayloads),
			fmt.Sprintf("%d B / %d", s.RxBytes, s.RxPayloads),
			strconv.Itoa(s.Queued),
			strconv.FormatUint(s.Duplicates, 10),
			strconv.FormatUint(s.Dropped, 10),
			strconv.FormatUint(s.ConnectFailures, 10),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(c.out).Render(); err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
	fmt.Fprintf(c.out, "Payloads delivered to this node: %d\n", c.node.Received())
}

// printable renders payload as text when it is, hex otherwise.
func printable(payload []byte) string {
	for _, b := range payload {
		if b < 0x20 || b > 0x7e {
			return fmt.Sprintf("%x", payload)
		}
	}
	return string(payload)
}
