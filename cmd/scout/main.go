package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobscout/internal/bootstrap"
	"go-jobscout/internal/config"
	"go-jobscout/internal/pipeline"
	"go-jobscout/internal/profile"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cvPath  string
	outDir  string
	timeout time.Duration
	export  bool
	fetch   string
	params  pipeline.Params
)

var rootCmd = &cobra.Command{
	Use:   "scout",
	Short: "Find and score jobs on employer career pages",
	Long: `Search Google Jobs through SerpApi, keep postings that link to the
employer's own career page, fetch each page (honoring robots.txt) and score
it against your CV.

Examples:
  # Search the high tier companies with the CV in my_cv.txt
  scout --tier high --title "Backend Engineer" --location Bangalore

  # Search by the skills found in the CV instead of by company
  scout --mode skills --min-score 80`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&cfgFile, "config", config.DefaultPath, "config file")
	flags.StringVar(&cvPath, "cv", "", "CV text file (default from config)")
	flags.StringVarP(&outDir, "out", "o", "", "directory for reports (default logs_dir)")
	flags.DurationVar(&timeout, "timeout", 30*time.Minute, "give up after this long")
	flags.BoolVar(&export, "pdf", false, "also export a PDF report")
	flags.StringVar(&fetch, "fetch", "", "page fetcher: browser or http (default from config)")

	flags.StringVarP((*string)(&params.Mode), "mode", "m", "", "companies or skills")
	flags.StringVarP(&params.JobTitle, "title", "t", "", "job title to search for")
	flags.StringVarP(&params.Location, "location", "l", "", "job location")
	flags.IntVar(&params.YearsExperience, "years", 0, "years of experience")
	flags.StringVar(&params.CompanyTier, "tier", "", "company tier: high, mid, startup or all")
	flags.IntVar(&params.MaxCompanies, "max-companies", 0, "companies to search in companies mode")
	flags.IntVar(&params.JobsPerCompany, "jobs-per-company", 0, "postings kept per company")
	flags.IntVar(&params.MaxResults, "max-results", 0, "postings kept in skills mode")
	flags.IntVar(&params.MinScore, "min-score", 0, "minimum match score (0-100)")
	flags.BoolVar(&params.SkipSeen, "skip-seen", false, "skip postings scored in earlier runs")
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadFile(cfgFile)
	if err != nil {
		return err
	}
	if fetch != "" {
		cfg.Fetch.Mode = fetch
	}
	if export {
		cfg.ExportPDF = true
	}
	if cvPath != "" {
		cfg.CVPath = cvPath
	}
	if outDir == "" {
		outDir = cfg.LogsDir
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	runParams := mergeParams(pipeline.ParamsFromConfig(cfg.Run), params, cmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	prof, err := profile.Load(cfg.CVPath)
	if err != nil {
		return err
	}
	log.Printf("📋 Profile from %s, skills: %v", prof.Source, prof.Skills)

	gate := bootstrap.NewGate(cfg)
	p, err := bootstrap.NewPipeline(ctx, cfg, gate)
	if err != nil {
		return err
	}
	defer func() {
		if err := p.Close(); err != nil {
			log.Printf("⚠️ Failed to close pipeline: %v", err)
		}
	}()

	repo, err := bootstrap.ConnectDatabase(ctx, cfg)
	if err != nil {
		log.Printf("⚠️ Database disabled: %v", err)
	}
	if repo != nil {
		defer repo.Close()
	}
	reporters := bootstrap.NewReporters(cfg, outDir, repo)

	log.Println("🚀 Starting job search...")
	report, err := p.Runner.Run(ctx, runParams, prof)
	if errors.Is(err, pipeline.ErrNoResults) {
		log.Println("⚠️ No jobs found. Try a different title, location or tier.")
		return nil
	}
	if report != nil {
		// partial results are still worth keeping after a timeout
		if repErr := reporters.Report(context.WithoutCancel(ctx), report); repErr != nil {
			log.Printf("⚠️ Some reports failed: %v", repErr)
		}
		log.Printf("✅ Analyzed %d jobs, %d matches (score >= %d) in %s",
			report.Analyzed, len(report.Matches), runParams.MinScore, report.Duration().Round(time.Second))
	}
	return err
}

// mergeParams applies only the flags the user actually set
func mergeParams(base, flagged pipeline.Params, cmd *cobra.Command) pipeline.Params {
	changed := cmd.Flags().Changed
	if changed("mode") {
		base.Mode = flagged.Mode
	}
	if changed("title") {
		base.JobTitle = flagged.JobTitle
	}
	if changed("location") {
		base.Location = flagged.Location
	}
	if changed("years") {
		base.YearsExperience = flagged.YearsExperience
	}
	if changed("tier") {
		base.CompanyTier = flagged.CompanyTier
	}
	if changed("max-companies") {
		base.MaxCompanies = flagged.MaxCompanies
	}
	if changed("jobs-per-company") {
		base.JobsPerCompany = flagged.JobsPerCompany
	}
	if changed("max-results") {
		base.MaxResults = flagged.MaxResults
	}
	if changed("min-score") {
		base.MinScore = flagged.MinScore
	}
	if changed("skip-seen") {
		base.SkipSeen = flagged.SkipSeen
	}
	return base
}
