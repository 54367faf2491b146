package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/greenops/carbon-scheduler/pkg/catalog"
	"github.com/greenops/carbon-scheduler/pkg/config"
	"github.com/greenops/carbon-scheduler/pkg/engine"
	"github.com/greenops/carbon-scheduler/pkg/generator"
	"github.com/greenops/carbon-scheduler/pkg/intensity"
	"github.com/greenops/carbon-scheduler/pkg/loader"
	"github.com/greenops/carbon-scheduler/pkg/metrics"
	"github.com/greenops/carbon-scheduler/pkg/models"
	"github.com/greenops/carbon-scheduler/pkg/reporter"
	"github.com/greenops/carbon-scheduler/pkg/scanner"
	"github.com/greenops/carbon-scheduler/pkg/scorer"
	"github.com/greenops/carbon-scheduler/pkg/storage"
)

var (
	// Allocate flags
	jobsFile      string
	generateCount int
	generateSeed  int64
	hardwareName  string
	defaultBudget float64
	strategyName  string
	dampeningK    float64
	intensityFile string
	outputFormat  string
	saveResults   bool
	hold          bool
	verbose       bool

	// Scan flags
	namespace       string
	allNamespaces   bool
	defaultDuration float64

	// History flags
	historyLimit int

	// Generate flags
	outFile string

	// Global config
	cfg   *config.Config
	store storage.Store
)

func logVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Printf("[DEBUG] "+format+"\n", args...)
	}
}

func main() {
	cfg = config.NewConfig()

	var rootCmd = &cobra.Command{
		Use:   "carbon-sched",
		Short: "Carbon-aware job scheduler",
		Long:  `Pack compute jobs into the lowest-carbon hours of the day using a grid intensity forecast.`,
		Run:   runAllocate,
	}

	// Allocate flags
	rootCmd.Flags().StringVarP(&jobsFile, "jobs", "j", "", "CSV file of jobs to allocate")
	rootCmd.Flags().IntVar(&generateCount, "generate", 0, "Generate N synthetic jobs instead of reading a file")
	rootCmd.Flags().Int64Var(&generateSeed, "seed", 1, "Seed for synthetic job generation")
	rootCmd.Flags().StringVar(&hardwareName, "hardware", "amd_epyc_7571", "Hardware profile for synthetic jobs")
	rootCmd.Flags().Float64Var(&defaultBudget, "budget", 100, "Carbon budget per synthetic job (kgCO2)")
	rootCmd.Flags().StringVar(&strategyName, "strategy", "", "Scoring strategy: plain, dampened, headroom")
	rootCmd.Flags().Float64Var(&dampeningK, "dampening", 0, "Congestion constant K for the dampened strategy")
	rootCmd.Flags().StringVar(&intensityFile, "intensity", "", "CSV file with the day's intensity forecast")
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, csv")
	rootCmd.Flags().BoolVar(&saveResults, "save", false, "Save the run to the database")
	rootCmd.Flags().BoolVar(&hold, "hold", false, "Keep serving /metrics after the run completes")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	// Scan command
	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "Allocate jobs derived from live cluster workloads",
		Run:   runScan,
	}
	scanCmd.Flags().StringVarP(&namespace, "namespace", "n", "default", "Namespace to scan")
	scanCmd.Flags().BoolVarP(&allNamespaces, "all-namespaces", "A", false, "Scan all namespaces")
	scanCmd.Flags().StringVar(&hardwareName, "hardware", "amd_epyc_7571", "Hardware profile to price workloads against")
	scanCmd.Flags().Float64Var(&defaultDuration, "duration", 1.0, "Default job duration in hours")
	scanCmd.Flags().Float64Var(&defaultBudget, "budget", 100, "Default carbon budget per job (kgCO2)")
	scanCmd.Flags().StringVar(&strategyName, "strategy", "", "Scoring strategy: plain, dampened, headroom")
	scanCmd.Flags().StringVar(&intensityFile, "intensity", "", "CSV file with the day's intensity forecast")
	scanCmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, csv")
	scanCmd.Flags().BoolVar(&saveResults, "save", false, "Save the run to the database")
	scanCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	// History command
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "View past scheduling runs",
		Run:   runHistory,
	}
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of runs to show")

	// Generate command
	generateCmd := &cobra.Command{
		Use:   "generate <count>",
		Short: "Write a synthetic job batch to a CSV file",
		Args:  cobra.ExactArgs(1),
		Run:   runGenerate,
	}
	generateCmd.Flags().StringVarP(&outFile, "out", "f", "jobs.csv", "Output file")
	generateCmd.Flags().Int64Var(&generateSeed, "seed", 1, "Generation seed")
	generateCmd.Flags().StringVar(&hardwareName, "hardware", "amd_epyc_7571", "Hardware profile")
	generateCmd.Flags().Float64Var(&defaultBudget, "budget", 100, "Carbon budget per job (kgCO2)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(generateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func applyFlags() {
	if strategyName != "" {
		cfg.Strategy = strategyName
	}
	if dampeningK != 0 {
		cfg.DampeningK = dampeningK
	}
	if intensityFile != "" {
		cfg.IntensityFile = intensityFile
	}
	if outputFormat != "" {
		cfg.OutputFormat = outputFormat
	}
	cfg.Verbose = verbose
}

func initStorage() error {
	if !saveResults {
		return nil
	}

	var err error
	store, err = storage.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	return nil
}

func fetchProfile(ctx context.Context) (*intensity.Profile, error) {
	var source intensity.Source
	if cfg.PrometheusURL != "" {
		promSource, err := intensity.NewPrometheusSource(cfg.PrometheusURL, cfg.IntensityQuery, time.Now())
		if err != nil {
			return nil, err
		}
		source = promSource
	} else {
		source = intensity.NewFileSource(cfg.IntensityFile)
	}
	logVerbose("Fetching intensity forecast from %s source", source.Name())

	ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()
	return source.Fetch(ctx)
}

func buildEngine(ctx context.Context) (*engine.Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	strategy, err := scorer.New(cfg.Strategy, cfg.DampeningK)
	if err != nil {
		return nil, err
	}

	profile, err := fetchProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load intensity forecast: %w", err)
	}

	return engine.New(catalog.NewDefault(), profile, strategy)
}

// allocateBatch submits every job and renders the outcome.
func allocateBatch(eng *engine.Engine, jobs []models.Job) error {
	var failures []reporter.Failure

	for _, job := range jobs {
		rec, err := eng.SubmitJob(job)
		if err != nil {
			outcome := "invalid"
			if errors.Is(err, engine.ErrInfeasible) {
				outcome = "infeasible"
			}
			metrics.RecordRejection(outcome)
			failures = append(failures, reporter.Failure{JobID: job.ID, Reason: err.Error()})
			logVerbose("Job %s rejected: %v", job.ID, err)
			continue
		}
		metrics.RecordAllocation(rec)
		logVerbose("Job %s allocated across %d slot(s), %.6f kgCO2", job.ID, len(rec.Slots), rec.TotalCarbon)
	}

	slots := eng.Snapshot()
	metrics.UpdateSlots(slots)

	report := reporter.Build(eng.Strategy(), eng.Records(), failures, slots)
	switch reporter.ReportFormat(cfg.OutputFormat) {
	case reporter.FormatCSV:
		if err := reporter.GenerateCSV(report, os.Stdout); err != nil {
			return err
		}
	default:
		if err := reporter.GenerateText(report, os.Stdout); err != nil {
			return err
		}
	}

	if store != nil {
		run := &models.Run{
			Strategy:      cfg.Strategy,
			DampeningK:    cfg.DampeningK,
			JobsSubmitted: len(jobs),
			JobsAllocated: report.JobsAllocated,
			JobsRejected:  report.JobsRejected,
			TotalCarbon:   report.TotalCarbon,
		}
		ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
		defer cancel()
		if err := store.SaveRun(ctx, run, eng.Records(), slots); err != nil {
			return fmt.Errorf("failed to save run: %w", err)
		}
		fmt.Printf("\n[INFO] Run saved as %s\n", run.ID)
	}

	return nil
}

func runAllocate(cmd *cobra.Command, args []string) {
	applyFlags()
	ctx := context.Background()

	if cfg.MetricsAddr != "" {
		metrics.StartServer(cfg.MetricsAddr)
	}

	eng, err := buildEngine(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var jobs []models.Job
	switch {
	case generateCount > 0:
		jobs = generator.Generate(generator.Options{
			Count:    generateCount,
			Hardware: hardwareName,
			Budget:   defaultBudget,
			Seed:     generateSeed,
		})
		logVerbose("Generated %d synthetic jobs (seed %d)", len(jobs), generateSeed)
	case jobsFile != "":
		jobs, err = loader.LoadJobsFromCSV(jobsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logVerbose("Loaded %d jobs from %s", len(jobs), jobsFile)
	default:
		fmt.Fprintln(os.Stderr, "Error: either --jobs or --generate is required")
		os.Exit(1)
	}

	if err := initStorage(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := allocateBatch(eng, jobs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if hold && cfg.MetricsAddr != "" {
		fmt.Printf("[INFO] Holding for scrapes on %s, Ctrl-C to exit\n", cfg.MetricsAddr)
		select {}
	}
}

func runScan(cmd *cobra.Command, args []string) {
	applyFlags()
	ctx := context.Background()

	eng, err := buildEngine(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	hw, err := catalog.NewDefault().Get(hardwareName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sc, err := scanner.New(scanner.Options{
		Hardware:             hw,
		DefaultDurationHours: defaultDuration,
		DefaultBudget:        defaultBudget,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	jobs, err := sc.ListJobs(ctx, namespace, allNamespaces)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(jobs) == 0 {
		fmt.Println("[INFO] No schedulable workloads found")
		return
	}
	logVerbose("Converted %d workloads to jobs", len(jobs))

	if err := initStorage(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := allocateBatch(eng, jobs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runHistory(cmd *cobra.Command, args []string) {
	st, err := storage.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout)
	defer cancel()

	runs, err := st.ListRuns(ctx, historyLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded")
		return
	}

	fmt.Printf("%-38s %-10s %-10s %-10s %-14s %s\n",
		"RUN", "STRATEGY", "ALLOCATED", "REJECTED", "CARBON (kg)", "WHEN")
	for _, run := range runs {
		fmt.Printf("%-38s %-10s %-10d %-10d %-14.4f %s\n",
			run.ID, run.Strategy, run.JobsAllocated, run.JobsRejected,
			run.TotalCarbon, run.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func runGenerate(cmd *cobra.Command, args []string) {
	count := 0
	if _, err := fmt.Sscanf(args[0], "%d", &count); err != nil || count <= 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid count %q\n", args[0])
		os.Exit(1)
	}

	jobs := generator.Generate(generator.Options{
		Count:    count,
		Hardware: hardwareName,
		Budget:   defaultBudget,
		Seed:     generateSeed,
	})
	if err := generator.WriteCSV(outFile, jobs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d jobs to %s\n", len(jobs), outFile)
}
