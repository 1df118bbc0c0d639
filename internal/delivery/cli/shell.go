package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/smartkart/kiosk/internal/domain"
	"github.com/smartkart/kiosk/internal/usecase"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shellHelp = `Commands:
  screen                    redraw the screen
  reload                    reload the catalog
  search [TEXT]             filter products by name or ID
  category [NAME]           filter products by category (empty for all)
  location PRODUCT_ID       show where a product is
  take                      put the located product into the scan form
  close                     close the location panel
  lookup PRODUCT_ID         preview a product
  add PRODUCT_ID WEIGHT     add a weighed item (grams)
  remove INDEX              remove a cart line
  clear                     empty the cart
  budget AMOUNT             set a budget
  checkout                  finalize the order
  invoice                   show the last invoice
  help                      show this help
  quit                      leave the shell`

// Shell is an interactive kiosk session on a terminal
type Shell struct {
	session *usecase.Session
	in      *bufio.Reader
	out     io.Writer
}

// NewShell creates a shell reading commands from in
func NewShell(session *usecase.Session, in io.Reader, out io.Writer) *Shell {
	return &Shell{session: session, in: bufio.NewReader(in), out: out}
}

func newShellCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run the interactive kiosk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewShell(o.app.Session, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
		},
	}
}

// Run loads the initial screen and executes commands until quit, end of
// input or cancellation
func (sh *Shell) Run(ctx context.Context) error {
	if err := sh.session.Start(ctx); err != nil {
		zap.L().Warn("initial load incomplete", zap.Error(err))
	}
	fmt.Fprintln(sh.out, "SmartKart kiosk. Type 'help' for commands.")
	sh.draw(ctx)

	for ctx.Err() == nil {
		fmt.Fprint(sh.out, "\nsmartkart> ")
		line, err := sh.in.ReadString('\n')
		if strings.TrimSpace(line) != "" {
			if quit := sh.Exec(ctx, line); quit {
				return nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(sh.out)
				return nil
			}
			return err
		}
	}
	return nil
}

// Exec runs a single shell command and redraws the screen. It reports
// whether the shell should exit.
func (sh *Shell) Exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	s := sh.session

	var err error
	switch name {
	case "quit", "exit":
		return true
	case "help", "?":
		fmt.Fprintln(sh.out, shellHelp)
		return false
	case "screen":
	case "reload":
		err = s.ReloadCatalog(ctx)
	case "search":
		s.SetFilter(strings.Join(args, " "), s.Catalog().ActiveFilter().Category)
	case "category":
		s.SetFilter(s.Catalog().ActiveFilter().Search, strings.Join(args, " "))
	case "location":
		if !sh.wantArgs(name, args, 1, "PRODUCT_ID") {
			return false
		}
		err = s.ShowLocation(domain.NormalizeProductID(args[0]))
	case "take":
		err = s.AddFromLocation(ctx)
	case "close":
		s.CloseLocation()
	case "lookup":
		err = s.Lookup(ctx, strings.Join(args, " "))
	case "add":
		if !sh.wantArgs(name, args, 2, "PRODUCT_ID WEIGHT") {
			return false
		}
		err = s.Add(ctx, args[0], args[1])
	case "remove":
		if !sh.wantArgs(name, args, 1, "INDEX") {
			return false
		}
		var index int
		if index, err = usecase.ParseCartIndex(args[0]); err == nil {
			err = s.Remove(ctx, index)
		}
	case "clear":
		err = s.Clear(ctx, promptConfirmer{in: sh.in, out: sh.out})
	case "budget":
		err = s.SetBudget(ctx, strings.Join(args, ""))
	case "checkout":
		err = s.Checkout(ctx)
	case "invoice":
		err = s.ShowLastInvoice(ctx)
	default:
		fmt.Fprintf(sh.out, "Unknown command %q. Type 'help' for commands.\n", name)
		return false
	}

	sh.report(name, err)
	sh.draw(ctx)
	return false
}

func (sh *Shell) wantArgs(name string, args []string, n int, usage string) bool {
	if len(args) != n {
		fmt.Fprintf(sh.out, "usage: %s %s\n", name, usage)
		return false
	}
	return true
}

// report prints errors the screen does not already show as a notice or dialog
func (sh *Shell) report(command string, err error) {
	if err == nil || errors.Is(err, domain.ErrSuperseded) {
		return
	}

	switch command {
	case "lookup", "add":
		return
	case "checkout":
		if _, ok := domain.ServerMessage(err); ok {
			return
		}
	case "clear":
		if errors.Is(err, domain.ErrNotConfirmed) {
			fmt.Fprintln(sh.out, "Cart not cleared.")
			return
		}
	}

	if msg, ok := domain.ServerMessage(err); ok {
		fmt.Fprintf(sh.out, "Error: %s\n", msg)
		return
	}
	fmt.Fprintf(sh.out, "Error: %v\n", err)
}

// draw renders the screen and blocks on a dialog until it is acknowledged
func (sh *Shell) draw(ctx context.Context) {
	screen := sh.session.Screen(ctx)
	RenderScreen(sh.out, screen)

	if screen.Dialog != nil {
		fmt.Fprint(sh.out, "Press Enter to continue...")
		sh.in.ReadString('\n') //nolint:errcheck
		sh.session.AcknowledgeDialog()
	}
}
