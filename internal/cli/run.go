// Package cli implements the hourbook command-line shell.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/mmynk/hourbook/internal/auth"
	"github.com/mmynk/hourbook/internal/calculator"
	"github.com/mmynk/hourbook/internal/config"
	"github.com/mmynk/hourbook/internal/models"
	"github.com/mmynk/hourbook/pkg/logging"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

const usage = `usage: hourbook <command> [flags] [args]

commands:
  people                      list everyone, alphabetically
  add-person NAME             register a new person
  add [flags] NAME            record activity (-location, -event, -hours, -date YYYY-MM-DD)
  show NAME                   show a person's history
  summary                     total hours per person
  entries                     show every row of the table
  add-entry [flags]           append a row verbatim (-name, -location, -event, -hours, -timestamp)
  delete [flags]              delete matching rows (-name, -location, -event, -hours, -timestamp)
  clean                       delete rows without location, event and hours
  import PATH                 merge a .csv, .xlsx or .xls file into the table
  export PATH                 export to .csv or .xlsx (by extension)
  mirror PATH                 keep PATH (.xlsx) updated after every change
  passwd -current C -new N    change the admin password
  serve                       run the Connect RPC server
`

// usageError is returned for malformed command lines.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// Run loads configuration from the environment and executes args.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitFailure
	}
	return RunWithConfig(ctx, cfg, args, stdout, stderr)
}

// RunWithConfig executes args against the store described by cfg.
func RunWithConfig(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprint(stdout, usage)
		if len(args) == 0 {
			return ExitUsage
		}
		return ExitOK
	}

	level := cfg.LogLevel
	if args[0] != "serve" && level == "info" {
		// Keep command output readable; the server logs at the configured level.
		level = "warn"
	}
	logger := logging.SetupWriter(stderr, level)

	a, err := newApp(cfg, logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitFailure
	}
	defer a.Close()

	if err := a.dispatch(ctx, args[0], args[1:], stdout); err != nil {
		fmt.Fprintln(stderr, err)
		var uerr *usageError
		if errors.As(err, &uerr) {
			return ExitUsage
		}
		return ExitFailure
	}
	return ExitOK
}

func (a *app) dispatch(ctx context.Context, cmd string, args []string, out io.Writer) error {
	switch cmd {
	case "people":
		return a.cmdPeople(ctx, out)
	case "add-person":
		return a.cmdAddPerson(ctx, args, out)
	case "add":
		return a.cmdAdd(ctx, args, out)
	case "show":
		return a.cmdShow(ctx, args, out)
	case "summary":
		return a.cmdSummary(ctx, out)
	case "entries":
		return a.cmdEntries(ctx, out)
	case "add-entry":
		return a.cmdAddEntry(ctx, args, out)
	case "delete":
		return a.cmdDelete(ctx, args, out)
	case "clean":
		return a.cmdClean(ctx, out)
	case "import":
		return a.cmdImport(ctx, args, out)
	case "export":
		return a.cmdExport(ctx, args, out)
	case "mirror":
		return a.cmdMirror(ctx, args, out)
	case "passwd":
		return a.cmdPasswd(ctx, args, out)
	case "serve":
		return a.serve(ctx)
	default:
		return usagef("unknown command %q\n\n%s", cmd, usage)
	}
}

func (a *app) cmdPeople(ctx context.Context, out io.Writer) error {
	people, err := a.store.ListPeople(ctx)
	if err != nil {
		return err
	}
	for _, p := range people {
		fmt.Fprintln(out, p)
	}
	return nil
}

func (a *app) cmdAddPerson(ctx context.Context, args []string, out io.Writer) error {
	name, err := joinedName(args)
	if err != nil {
		return err
	}
	if err := a.store.AddPerson(ctx, name); err != nil {
		return err
	}
	fmt.Fprintln(out, "Person added successfully!")
	return nil
}

func (a *app) cmdAdd(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("add")
	location := fs.String("location", "", "where the activity happened")
	event := fs.String("event", "", "what the activity was")
	hours := fs.String("hours", "", "hours spent")
	date := fs.String("date", "", "activity date, YYYY-MM-DD (default today)")
	rest, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	name, err := joinedName(rest)
	if err != nil {
		return err
	}

	if err := a.store.AddInformation(ctx, name, *location, *event, *hours, *date); err != nil {
		return err
	}
	fmt.Fprintln(out, "Information added successfully!")
	return nil
}

func (a *app) cmdShow(ctx context.Context, args []string, out io.Writer) error {
	name, err := joinedName(args)
	if err != nil {
		return err
	}
	entries, err := a.store.GetPersonInfo(ctx, name)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(out, "[%s]\nLocation: %s\nEvent: %s\nHours: %s\n\n", e.Timestamp, e.Location, e.Event, e.Hours)
	}
	return nil
}

func (a *app) cmdSummary(ctx context.Context, out io.Writer) error {
	totals, err := a.store.Summary(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tHOURS\tENTRIES\tFIRST\tLAST")
	for _, t := range totals {
		fmt.Fprintf(tw, "%s\t%g\t%d\t%s\t%s\n", t.Name, t.Hours, t.Entries, t.FirstDate, t.LastDate)
	}
	fmt.Fprintf(tw, "TOTAL\t%g\t\t\t\n", calculator.GrandTotal(totals))
	return tw.Flush()
}

func (a *app) cmdEntries(ctx context.Context, out io.Writer) error {
	entries, err := a.store.GetAllEntries(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(models.Columns, "\t")))
	for _, e := range entries {
		fmt.Fprintln(tw, strings.Join(e.Values(), "\t"))
	}
	return tw.Flush()
}

// entryFlags registers the five column flags on fs.
func entryFlags(fs *flag.FlagSet) *models.Entry {
	e := &models.Entry{}
	fs.StringVar(&e.Name, "name", "", "volunteer name")
	fs.StringVar(&e.Location, "location", "", "location")
	fs.StringVar(&e.Event, "event", "", "event")
	fs.StringVar(&e.Hours, "hours", "", "hours")
	fs.StringVar(&e.Timestamp, "timestamp", "", "date, YYYY-MM-DD")
	return e
}

func (a *app) cmdAddEntry(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("add-entry")
	entry := entryFlags(fs)
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}
	if err := a.store.AddEntry(ctx, *entry); err != nil {
		return err
	}
	fmt.Fprintln(out, "Entry added.")
	return nil
}

func (a *app) cmdDelete(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("delete")
	entry := entryFlags(fs)
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}
	if strings.TrimSpace(entry.Name) == "" {
		return usagef("delete: -name is required")
	}
	removed, err := a.store.DeleteEntry(ctx, *entry)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Deleted %d entries.\n", removed)
	return nil
}

func (a *app) cmdClean(ctx context.Context, out io.Writer) error {
	removed, err := a.store.CleanEmptyEntries(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Deleted %d entries because not all required fields were filled.\n", removed)
	return nil
}

func (a *app) cmdImport(ctx context.Context, args []string, out io.Writer) error {
	path, err := singlePath("import", args)
	if err != nil {
		return err
	}
	result, err := a.store.ImportAndMerge(ctx, path)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, result)
	return nil
}

func (a *app) cmdExport(ctx context.Context, args []string, out io.Writer) error {
	path, err := singlePath("export", args)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		err = a.store.ExportExcel(ctx, path)
	default:
		err = a.store.ExportCSV(ctx, path)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Data exported to %s\n", path)
	return nil
}

func (a *app) cmdMirror(ctx context.Context, args []string, out io.Writer) error {
	path, err := singlePath("mirror", args)
	if err != nil {
		return err
	}
	if err := a.store.SetupMirror(ctx, path); err != nil {
		return err
	}
	fmt.Fprintln(out, "Auto Excel update configured successfully!")
	return nil
}

func (a *app) cmdPasswd(ctx context.Context, args []string, out io.Writer) error {
	fs := newFlagSet("passwd")
	current := fs.String("current", "", "current admin password")
	next := fs.String("new", "", "new admin password")
	if err := fs.Parse(args); err != nil {
		return usagef("%v", err)
	}
	if *next == "" {
		return usagef("passwd: -new is required")
	}
	err := a.store.ChangePassword(ctx, *current, *next)
	if errors.Is(err, auth.ErrNotConfigured) && *current == "" {
		if _, err := a.credentials.Bootstrap(*next); err != nil {
			return err
		}
		fmt.Fprintln(out, "Admin password set")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Password changed successfully")
	return nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseInterspersed parses flags that may appear before or after positional
// arguments and returns the positionals in order.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, usagef("%s: %v", fs.Name(), err)
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// joinedName treats all positional arguments as one name, so that
// `hourbook show Ada Lovelace` works without quoting.
func joinedName(args []string) (string, error) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return "", usagef("a name is required")
	}
	return name, nil
}

func singlePath(cmd string, args []string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", usagef("%s: exactly one PATH is required", cmd)
	}
	return args[0], nil
}
