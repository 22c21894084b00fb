package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"freight-matching-service/internal/adapters/repositories"
	"freight-matching-service/internal/app"
	"freight-matching-service/internal/config"
	"freight-matching-service/internal/domain"
	"freight-matching-service/internal/ports"
	"freight-matching-service/internal/services"
)

type options struct {
	cfgPath      string
	snapshotPath string
	baseline     float64
	apply        bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "fleetcheck",
		Short:        "Audit fleet snapshots and match orders offline",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.cfgPath, "config", "c", config.Get("DFM_CONFIG", ""), "configuration file (yaml or json)")
	root.PersistentFlags().StringVarP(&opts.snapshotPath, "snapshot", "s", "", "snapshot JSON file")
	_ = root.MarkPersistentFlagRequired("snapshot")

	audit := &cobra.Command{
		Use:   "audit",
		Short: "Check a snapshot against every business requirement",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(cmd, opts)
		},
	}
	audit.Flags().Float64Var(&opts.baseline, "baseline", -1, "baseline daily loss (default from config)")

	match := &cobra.Command{
		Use:   "match",
		Short: "Pick the best route and truck for every unassigned order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, opts)
		},
	}
	match.Flags().BoolVar(&opts.apply, "apply", false, "apply valid matches and audit the result")

	root.AddCommand(audit, match)
	return root
}

func setup(cmd *cobra.Command, opts *options) (*config.Config, app.Engine, domain.FleetSnapshot, error) {
	cfg, err := config.Load(opts.cfgPath)
	if err != nil {
		return nil, app.Engine{}, domain.FleetSnapshot{}, fmt.Errorf("load config: %w", err)
	}
	app.ConfigureLogging(cfg.Logging)

	engine, err := app.NewEngine(cfg, ports.NopRecorder{})
	if err != nil {
		return nil, app.Engine{}, domain.FleetSnapshot{}, err
	}

	snap, err := repositories.NewJSONSnapshotSource(opts.snapshotPath).LoadSnapshot(cmd.Context())
	if err != nil {
		return nil, app.Engine{}, domain.FleetSnapshot{}, err
	}
	return cfg, engine, snap, nil
}

type auditOutput struct {
	Reports []services.ValidationReport `json:"reports"`
	Summary services.SummaryReport      `json:"summary"`
}

func runAudit(cmd *cobra.Command, opts *options) error {
	cfg, engine, snap, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	baseline := cfg.Compliance.BaselineDailyLoss
	if opts.baseline >= 0 {
		baseline = opts.baseline
	}

	reports := engine.Auditor.ValidateAllRequirements(snap, baseline)
	summary := engine.Auditor.GenerateSummaryReport(reports)
	if err := writeJSON(cmd.OutOrStdout(), auditOutput{Reports: reports, Summary: summary}); err != nil {
		return err
	}

	if summary.OverallStatus == services.OverallFailed {
		return fmt.Errorf("audit failed: %d of %d requirements failed", summary.FailedCount, summary.TotalRequirements)
	}
	return nil
}

type matchOutput struct {
	Results services.BatchResult    `json:"results"`
	Applied []services.AppliedMatch `json:"applied,omitempty"`
	Skipped []services.SkippedMatch `json:"skipped,omitempty"`
	Summary *services.SummaryReport `json:"summary,omitempty"`
}

func runMatch(cmd *cobra.Command, opts *options) error {
	cfg, engine, snap, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	pending := make([]domain.Order, 0, len(snap.Orders))
	for _, o := range snap.Orders {
		if !o.IsMatched() {
			pending = append(pending, o)
		}
	}

	results, err := engine.Processor.ProcessOrderBatch(cmd.Context(), pending, snap.Routes, snap.Trucks)
	if err != nil {
		return err
	}

	out := matchOutput{Results: results}
	if opts.apply {
		// Only pending orders were matched, so apply against them with the full fleet.
		applied := domain.FleetSnapshot{Orders: pending, Routes: snap.Routes, Trucks: snap.Trucks}
		next, ok, skipped := engine.Processor.ApplyMatches(applied, results)
		out.Applied, out.Skipped = ok, skipped

		next.Orders = append(assigned(snap.Orders), next.Orders...)
		summary := engine.Auditor.GenerateSummaryReport(
			engine.Auditor.ValidateAllRequirements(next, cfg.Compliance.BaselineDailyLoss))
		out.Summary = &summary
	}

	return writeJSON(cmd.OutOrStdout(), out)
}

func assigned(orders []domain.Order) []domain.Order {
	var out []domain.Order
	for _, o := range orders {
		if o.IsMatched() {
			out = append(out, o)
		}
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
