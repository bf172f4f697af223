package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/cognicore/concierge/internal/htmltext"
	"github.com/cognicore/concierge/internal/logger"
	"github.com/cognicore/concierge/internal/transcript"
	"github.com/cognicore/concierge/pkg/concierge"
	"github.com/cognicore/concierge/pkg/concierge/config"
	"github.com/cognicore/concierge/pkg/concierge/normalize"
	"github.com/cognicore/concierge/pkg/concierge/order"
	"github.com/cognicore/concierge/pkg/concierge/synth"
)

type cliOptions struct {
	configPath string
	envPath    string
	dictPath   string
	pricing    string
	dbPath     string
}

func main() {
	var (
		opts    cliOptions
		summary = flag.String("summary", "", "One-shot summary text (non-interactive mode)")
		file    = flag.String("file", "", "Read one summary from this file ('-' for stdin)")
		batch   = flag.String("batch", "", "Process a JSONL file of call transcripts and exit")
		asHTML  = flag.Bool("html", false, "Treat input as HTML (detected automatically otherwise)")
		asJSON  = flag.Bool("json", false, "Print orders as JSON")
		history = flag.String("history", "", "List archived orders for this room and exit")
		limit   = flag.Int("limit", 10, "Maximum orders listed by -history")
		archive = flag.Bool("archive", true, "Archive orders when a store is configured")
	)
	flag.StringVar(&opts.configPath, "config", "", "YAML config file (optional)")
	flag.StringVar(&opts.envPath, "env", ".env", "dotenv file with CONCIERGE_* overrides")
	flag.StringVar(&opts.dictPath, "dict", "", "Dictionary asset, overrides config")
	flag.StringVar(&opts.pricing, "pricing", "", "Pricing mode: category | item")
	flag.StringVar(&opts.dbPath, "db", "", "SQLite archive path, overrides config store")
	flag.Parse()

	cfg, err := resolveConfig(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer log.Sync()

	ctx := context.Background()
	engine, cleanup, err := buildEngine(ctx, cfg, log)
	if err != nil {
		log.Fatal("build engine", zap.Error(err))
	}
	defer cleanup()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if *history != "" {
		if err := printHistory(ctx, out, engine, *history, *limit, *asJSON); err != nil {
			log.Fatal("history", zap.Error(err))
		}
		return
	}

	run := func(text string) error {
		return processSummary(ctx, out, engine, prepare(text, *asHTML), *archive && cfg.Store.Enabled(), *asJSON)
	}

	if *batch != "" {
		items, err := transcript.LoadFromJSONL(*batch, log)
		if err != nil {
			log.Fatal("load batch", zap.Error(err))
		}
		failed := processBatch(ctx, out, engine, items, *asHTML, *archive && cfg.Store.Enabled(), *asJSON, log)
		log.Info("batch done", zap.Int("transcripts", len(items)), zap.Int("failed", failed))
		return
	}

	// One-shot modes
	if *summary != "" || *file != "" {
		text := *summary
		if *file != "" {
			data, err := readInput(*file)
			if err != nil {
				log.Fatal("read summary", zap.String("file", *file), zap.Error(err))
			}
			text = data
		}
		if err := run(text); err != nil {
			log.Fatal("process summary", zap.Error(err))
		}
		return
	}

	// Interactive mode
	fmt.Fprintln(out, "===========================================")
	fmt.Fprintln(out, "  Concierge Order CLI")
	fmt.Fprintln(out, "  One call summary per line")
	fmt.Fprintln(out, "===========================================")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Paste a summary (Ctrl+D to exit):")
	out.Flush()

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for {
		fmt.Fprint(out, "> ")
		out.Flush()
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := run(line); err != nil {
			fmt.Fprintln(out, "Error:", err)
		}
	}
	fmt.Fprintln(out, "\nGoodbye!")
}

// resolveConfig layers the config file, the dotenv file and the flags, in
// increasing precedence.
func resolveConfig(opts cliOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.envPath != "" {
		lookup, err := config.EnvFile(opts.envPath)
		if err != nil {
			return nil, err
		}
		if err := cfg.ApplyEnv(lookup); err != nil {
			return nil, err
		}
	}
	if opts.dictPath != "" {
		cfg.Dictionary = opts.dictPath
	}
	if opts.pricing != "" {
		cfg.Pricing = opts.pricing
	}
	if opts.dbPath != "" {
		cfg.Store = config.Store{Driver: config.DriverSQLite, Path: opts.dbPath}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildEngine(ctx context.Context, cfg *config.Config, log *zap.Logger) (*concierge.Engine, func(), error) {
	loader := config.Loader{DictPath: cfg.Dictionary}
	components, err := loader.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	pricing, err := synth.ParsePricing(cfg.Pricing)
	if err != nil {
		return nil, nil, err
	}

	st, err := config.OpenStore(ctx, cfg.Store)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	engine := concierge.New(concierge.Options{
		Index:   components.Index,
		Pricing: pricing,
		Store:   st,
		Logger:  log,
	})
	log.Debug("engine ready",
		zap.String("dictionary", cfg.Dictionary),
		zap.String("dictVersion", components.DictVersion),
		zap.Int("entries", components.Index.Len()),
		zap.String("pricing", string(pricing)),
		zap.String("store", cfg.Store.Driver))

	cleanup := func() {
		engine.Close()
	}
	return engine, cleanup, nil
}

// prepare flattens HTML input to text.
func prepare(text string, forceHTML bool) string {
	if forceHTML || htmltext.LooksLikeHTML(text) {
		return htmltext.ToText(text)
	}
	return text
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func processSummary(ctx context.Context, w io.Writer, engine *concierge.Engine, text string, archive, asJSON bool) error {
	var (
		sum order.Summary
		id  string
	)
	if archive {
		rec, err := engine.Submit(ctx, text)
		if err != nil {
			return fmt.Errorf("submit: %w", err)
		}
		sum, id = rec.Order, rec.ID
	} else {
		sum = engine.Summarize(text, nil)
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	}
	printSummary(w, sum, id)
	return nil
}

// processBatch runs every transcript and returns how many were rejected.
// A bad transcript is logged and does not stop the batch.
func processBatch(ctx context.Context, w io.Writer, engine *concierge.Engine, items []transcript.Transcript, forceHTML, archive, asJSON bool, log *zap.Logger) int {
	failed := 0
	for _, item := range items {
		text, err := concierge.DecodeSummary(item.Summary)
		if err == nil {
			err = processSummary(ctx, w, engine, prepare(text, forceHTML), archive, asJSON)
		}
		if err != nil {
			failed++
			log.Warn("transcript rejected", zap.String("call", item.CallID), zap.Error(err))
			continue
		}
		if !asJSON {
			fmt.Fprintf(w, "(call %s)\n", item.CallID)
		}
	}
	return failed
}

func printSummary(w io.Writer, sum order.Summary, id string) {
	fmt.Fprintln(w)
	if id != "" {
		fmt.Fprintf(w, "--- Order %s ---\n", id)
	} else {
		fmt.Fprintln(w, "--- Order ---")
	}
	fmt.Fprintf(w, "Room:      %s\n", sum.RoomNumber)
	fmt.Fprintf(w, "Type:      %s\n", sum.OrderType)
	fmt.Fprintf(w, "Delivery:  %s\n", sum.DeliveryTime)
	for _, field := range []struct{ label, value string }{
		{"Guest", sum.GuestName},
		{"Email", sum.GuestEmail},
		{"Phone", sum.GuestPhone},
		{"Notes", sum.SpecialInstructions},
	} {
		if field.value != "" {
			fmt.Fprintf(w, "%-10s %s\n", field.label+":", field.value)
		}
	}

	if len(sum.Items) == 0 {
		fmt.Fprintln(w, "\nNo items found.")
	} else {
		fmt.Fprintln(w, "\nItems:")
		for _, it := range sum.Items {
			fmt.Fprintf(w, "  %s. %s x%d @ $%.2f = $%.2f\n",
				it.ID, normalize.DisplayName(it.Name), it.Quantity, it.Price, it.Subtotal())
			for _, line := range strings.Split(it.Description, "\n") {
				fmt.Fprintf(w, "       %s\n", line)
			}
		}
	}
	fmt.Fprintf(w, "\nTotal: $%.2f\n", sum.TotalAmount)
}

func printHistory(ctx context.Context, w io.Writer, engine *concierge.Engine, room string, limit int, asJSON bool) error {
	recs, err := engine.History(ctx, room, limit)
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}
	if len(recs) == 0 {
		fmt.Fprintf(w, "No orders archived for room %s.\n", room)
		return nil
	}
	for _, rec := range recs {
		fmt.Fprintf(w, "%s  %s  %-30s $%.2f\n",
			rec.ID, rec.CreatedAt.Format("2006-01-02 15:04"), rec.Order.OrderType, rec.Order.TotalAmount)
	}
	return nil
}
