package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"points/internal/cli"
	"points/internal/core"
	applog "points/internal/log"
	"points/internal/output"
	"points/internal/records"
	"points/internal/roster"
	"points/internal/services"
)

var (
	errUsage      = errors.New("usage")
	errUnknownKid = errors.New("unknown kid")
)

// app holds what every command needs. main builds it from the environment;
// tests build it over a memory backend.
type app struct {
	records *records.Store
	roster  *roster.Roster
	logger  *applog.Logger
	now     func() time.Time
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "kids":
		return a.kids(ctx, args)
	case "add-kid":
		return a.addKid(ctx, args)
	case "remove-kid":
		return a.removeKid(ctx, args)
	case "show":
		return a.show(ctx, args)
	case "add":
		return a.add(ctx, args)
	case "delete":
		return a.deleteItem(ctx, args)
	case "delete-day":
		return a.deleteDay(ctx, args)
	case "orphans":
		return a.orphans(ctx, args)
	default:
		return fmt.Errorf("unknown command %q (see points help)", command)
	}
}

func (a *app) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func (a *app) openLedger(ctx context.Context, name string) (*services.Ledger, error) {
	names, err := a.roster.List(ctx)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(names, name) {
		return nil, fmt.Errorf("%w: %s", errUnknownKid, name)
	}
	return services.OpenLedger(ctx, a.records, name, a.now, a.logger)
}

func (a *app) kids(ctx context.Context, args []string) error {
	fs := a.flagSet("kids")
	jsonOut := fs.Bool("json", false, "Output as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	totals, err := a.roster.Overview(ctx)
	if err != nil {
		return err
	}
	if *jsonOut {
		return output.PrintJSON(a.stdout, output.RosterJSON(totals))
	}
	output.PrintRoster(a.stdout, totals)
	return nil
}

func (a *app) addKid(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: points add-kid <name>", errUsage)
	}
	name, err := a.roster.Add(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Added %s\n", name)
	return nil
}

func (a *app) removeKid(ctx context.Context, args []string) error {
	fs := a.flagSet("remove-kid")
	yes := fs.Bool("yes", false, "Skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: points remove-kid [--yes] <name>", errUsage)
	}
	name := fs.Arg(0)

	if !*yes && !cli.Confirm(a.stdin, a.stdout, fmt.Sprintf("Remove %s from the roster?", name)) {
		fmt.Fprintln(a.stdout, "Cancelled")
		return nil
	}
	removed, err := a.roster.Remove(ctx, name)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Fprintf(a.stdout, "%s is not on the roster\n", name)
		return nil
	}
	fmt.Fprintf(a.stdout, "Removed %s\n", name)
	return nil
}

func (a *app) show(ctx context.Context, args []string) error {
	fs := a.flagSet("show")
	jsonOut := fs.Bool("json", false, "Output as JSON")
	all := fs.Bool("all", false, "List the items of every day")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: points show [--json] [--all] <name>", errUsage)
	}

	ledger, err := a.openLedger(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	summary := ledger.Summary()
	if *jsonOut {
		return output.PrintJSON(a.stdout, output.SummaryJSON(summary))
	}
	output.PrintSummary(a.stdout, summary, output.SummaryOptions{
		ShowAll:    *all,
		IsExpanded: ledger.Expanded().IsExpanded,
	})
	return nil
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := a.flagSet("add")
	label := fs.String("label", "", "What the points are for")
	price := fs.String("price", "", "Price per unit, dot or comma decimal")
	qty := fs.String("qty", "1", "Quantity")
	date := fs.String("date", "", "Day in YYYY-MM-DD (default today)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: points add --label L --price P [--qty N] [--date YYYY-MM-DD] <name>", errUsage)
	}

	ledger, err := a.openLedger(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	flow := services.NewEntryFlow(ledger)
	if err := flow.OpenForm(); err != nil {
		return err
	}

	form := flow.Form()
	form.Label = *label
	form.Price = *price
	form.Quantity = *qty
	if *date != "" {
		d, err := core.ParseDateKey(*date)
		if err != nil {
			return fmt.Errorf("date %q: %w", *date, err)
		}
		form.Date = d
	}

	rec, err := flow.Submit(ctx, form)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Added %s on %s: %d × %s = %s (id %s)\n",
		rec.Label, rec.Date, rec.Quantity, core.FormatAmount(rec.Price), core.FormatAmount(rec.Total()), rec.ID)
	return nil
}

func (a *app) deleteItem(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: points delete <name> <record-id>", errUsage)
	}
	ledger, err := a.openLedger(ctx, args[0])
	if err != nil {
		return err
	}
	id, err := resolveID(ledger.Records(), args[1])
	if err != nil {
		return err
	}
	deleted, err := ledger.DeleteItem(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Fprintf(a.stdout, "No item %s\n", args[1])
		return nil
	}
	fmt.Fprintf(a.stdout, "Deleted %s\n", id)
	return nil
}

func (a *app) deleteDay(ctx context.Context, args []string) error {
	fs := a.flagSet("delete-day")
	yes := fs.Bool("yes", false, "Skip confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("%w: points delete-day [--yes] <name> <YYYY-MM-DD>", errUsage)
	}
	date := fs.Arg(1)
	if _, err := core.ParseDateKey(date); err != nil {
		return fmt.Errorf("date %q: %w", date, err)
	}

	ledger, err := a.openLedger(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	flow := services.NewEntryFlow(ledger)
	if err := flow.RequestDayDelete(date); err != nil {
		return err
	}

	prompt := fmt.Sprintf("Delete every item of %s for %s?", core.FormatDateHeader(date), ledger.Child())
	if !*yes && !cli.Confirm(a.stdin, a.stdout, prompt) {
		fmt.Fprintln(a.stdout, "Cancelled")
		return flow.Cancel()
	}
	n, err := flow.ConfirmDayDelete(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Deleted %d item(s) from %s\n", n, date)
	return nil
}

func (a *app) orphans(ctx context.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: points orphans", errUsage)
	}
	names, err := a.roster.Orphans(ctx)
	if err != nil {
		return err
	}
	output.PrintOrphans(a.stdout, names)
	return nil
}

// resolveID accepts a full record id or a prefix matching exactly one
// record. An unmatched but well-formed id is returned as is so the delete
// becomes a no-op.
func resolveID(recs []core.Record, s string) (uuid.UUID, error) {
	if id, err := uuid.Parse(s); err == nil {
		return id, nil
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return uuid.Nil, fmt.Errorf("empty item id")
	}
	var match []uuid.UUID
	for _, r := range recs {
		if strings.HasPrefix(r.ID.String(), s) {
			match = append(match, r.ID)
		}
	}
	switch len(match) {
	case 1:
		return match[0], nil
	case 0:
		return uuid.Nil, fmt.Errorf("no item matches id %q", s)
	default:
		return uuid.Nil, fmt.Errorf("id prefix %q matches %d items", s, len(match))
	}
}
