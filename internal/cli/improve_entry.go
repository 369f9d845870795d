// internal/cli/improve_entry.go
package cardsmith

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"cardsmith/internal/appconfig"
	"cardsmith/internal/dataset"
	"cardsmith/internal/logging"
	"cardsmith/internal/pipeline"
	"cardsmith/internal/providers"
	"cardsmith/internal/providers/ollama"
	"cardsmith/internal/tui"
)

var summaryStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(0, 1)

func runImprove(cmd *cobra.Command) error {
	cfg := *GetConfig()
	applyImproveFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	inPath, _ := cmd.Flags().GetString("in")
	outPath, _ := cmd.Flags().GetString("out")

	systemPrompt, err := loadSystemPrompt(cmd, cfg)
	if err != nil {
		return err
	}

	records, err := dataset.ReadCSVFile(inPath)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no input rows found in %q", inPath)
	}

	if cfg.Debug {
		pp.Println(cfg)
	}

	provider := ollama.New(&cfg, systemPrompt)
	defer provider.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pipeCfg := pipeline.Config{
		BatchSize:      cfg.EffectiveBatchSize(),
		RetryBatchSize: cfg.EffectiveRetryBatchSize(),
		RetryAttempts:  cfg.RetryAttempts(),
		Concurrency:    cfg.EffectiveConcurrency(),
		SleepBetween:   cfg.SleepBetween(),
		CleanupEnabled: !cfg.NoClean,
	}

	logging.LogEvent("improving %d words with %s in batches of %d", len(records), cfg.EffectiveModel(), pipeCfg.BatchSize)

	var out []dataset.Record
	var summary pipeline.Summary
	if cfg.Progress {
		out, summary, err = runWithProgressDisplay(ctx, provider, pipeCfg, records, tea.WithOutput(os.Stderr))
	} else {
		runner := pipeline.NewRunner(provider, pipeCfg, plainProgress)
		out, summary, err = runner.Run(ctx, records)
	}
	if err != nil {
		return err
	}

	if err := dataset.WriteCSVFile(outPath, out); err != nil {
		return err
	}

	printSummary(outPath, summary)
	return nil
}

// applyImproveFlags overlays explicitly set command flags onto the config
// snapshot. Flags win over config file values.
func applyImproveFlags(cmd *cobra.Command, cfg *appconfig.Config) {
	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.Model, _ = flags.GetString("model")
	}
	if flags.Changed("url") {
		cfg.HostURL, _ = flags.GetString("url")
	}
	if flags.Changed("batch") {
		v, _ := flags.GetInt("batch")
		cfg.BatchSize = &v
	}
	if flags.Changed("retry-batch") {
		v, _ := flags.GetInt("retry-batch")
		cfg.RetryBatchSize = &v
	}
	if flags.Changed("retries") {
		// Explicit zero disables retry rounds; it must not fall back to the
		// default.
		v, _ := flags.GetInt("retries")
		cfg.RetryCount = &v
	}
	if flags.Changed("timeout") {
		cfg.TimeoutSeconds, _ = flags.GetInt("timeout")
	}
	if flags.Changed("concurrency") {
		v, _ := flags.GetInt("concurrency")
		cfg.Concurrency = &v
	}
	if flags.Changed("temperature") {
		v, _ := flags.GetFloat64("temperature")
		cfg.Sampling.Temperature = &v
	}
	if flags.Changed("top-p") {
		v, _ := flags.GetFloat64("top-p")
		cfg.Sampling.TopP = &v
	}
	if flags.Changed("sleep") {
		cfg.SleepSeconds, _ = flags.GetFloat64("sleep")
	}
}

// loadSystemPrompt resolves the system instructions from the --system file or
// the config. A run without instructions cannot start.
func loadSystemPrompt(cmd *cobra.Command, cfg appconfig.Config) (string, error) {
	if path, _ := cmd.Flags().GetString("system"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read system prompt %q: %w", path, err)
		}
		return string(data), nil
	}
	if prompt := strings.TrimSpace(cfg.SystemPrompt); prompt != "" {
		return prompt, nil
	}
	return "", fmt.Errorf("no system prompt: pass --system or set systemPrompt in the config")
}

// plainProgress prints one line per completed batch to stderr.
func plainProgress(batch, total, resolved, size int) {
	line := fmt.Sprintf("[batch %d/%d] got %d/%d", batch, total, resolved, size)
	if resolved < size {
		color.New(color.FgYellow).Fprintln(os.Stderr, line)
		return
	}
	fmt.Fprintln(os.Stderr, line)
}

// runWithProgressDisplay drives the pipeline behind a live bubbletea display.
// The display owns the terminal, so quitting it (Ctrl-C arrives as a key
// message in raw mode, not a signal) must cancel the run context; otherwise
// the pipeline goroutine would keep issuing backend requests with nobody
// watching.
func runWithProgressDisplay(ctx context.Context, provider providers.DefinitionProvider, cfg pipeline.Config, records []dataset.Record, opts ...tea.ProgramOption) ([]dataset.Record, pipeline.Summary, error) {
	batches := (len(records) + cfg.BatchSize - 1) / cfg.BatchSize
	program := tea.NewProgram(tui.NewModel("improving definitions", batches), opts...)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		records []dataset.Record
		summary pipeline.Summary
		err     error
	}
	done := make(chan result, 1)

	go func() {
		runner := pipeline.NewRunner(provider, cfg, func(batch, total, resolved, size int) {
			program.Send(tui.BatchMsg{Batch: batch, Total: total, Resolved: resolved, Size: size})
		})
		out, summary, err := runner.Run(ctx, records)
		program.Send(tui.DoneMsg{Summary: summary})
		done <- result{records: out, summary: summary, err: err}
	}()

	_, runErr := program.Run()
	// Display gone: abort any in-flight batches so the goroutine finishes.
	cancel()
	res := <-done
	if runErr != nil {
		return nil, pipeline.Summary{}, fmt.Errorf("progress display: %w", runErr)
	}
	return res.records, res.summary, res.err
}

// printSummary reports the final counts on stdout.
func printSummary(outPath string, summary pipeline.Summary) {
	body := fmt.Sprintf("Records:    %d\nResolved:   %d\nUnresolved: %d\nBatches:    %d",
		summary.Total, summary.Resolved, summary.Unresolved, summary.Batches)
	fmt.Println(summaryStyle.Render(body))
	fmt.Printf("Wrote %d rows to %s\n", summary.Total, outPath)
	if summary.Unresolved > 0 {
		color.New(color.FgYellow).Printf("%d words kept their original definition only; re-run to retry them.\n", summary.Unresolved)
	}
}
