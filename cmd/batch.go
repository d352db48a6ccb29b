package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/KaramelBytes/tempstat-cli/internal/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Plan is a batch file: one dataset and the queries to run against it.
type Plan struct {
	// Data is resolved relative to the plan file; --data overrides it.
	Data    string  `yaml:"data"`
	Queries []Query `yaml:"queries"`
}

var (
	bKeepGoing bool
	bQuiet     bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <plan.yaml>",
	Short: "Run a list of queries from a YAML plan against one dataset",
	Long: `Run a list of queries from a YAML plan against one dataset. Each query has a
kind (info, streak, period, season, range, histogram, frequency, freeze, heatmap,
records) and the same fields as the matching subcommand's flags:

  data: station.csv
  queries:
    - kind: streak
      metric: TMAX
      threshold: 90
    - kind: season
      season: winter
      extreme: coldest
      top: 5
    - kind: histogram
      range: 1/1-1/31
      metric: TMIN
      threshold: 32
      direction: below

With --format json every result is one element of an array; with yaml each is a
separate document.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := loadPlan(args[0])
		if err != nil {
			return err
		}
		data := ""
		if flagData == "" {
			data = plan.Data
		}
		s, err := openSession(data)
		if err != nil {
			return err
		}

		total := len(plan.Queries)
		var outs []*outcome
		failed := 0
		for i, q := range plan.Queries {
			q = q.withDefaults(s.cfg)
			if !bQuiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "[%d/%d] Running %s...\n", i+1, total, q.Kind)
			}
			out, err := runQuery(s.analyzer, q)
			if err != nil {
				if !bKeepGoing {
					return fmt.Errorf("query %d (%s): %w", i+1, q.Kind, err)
				}
				failed++
				log.Warnw("query failed", "index", i+1, "kind", q.Kind, "error", err)
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠ query %d (%s) failed: %v\n", i+1, q.Kind, err)
				continue
			}
			outs = append(outs, out)
		}
		if err := s.emit(cmd, outs); err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d queries failed", failed, total)
		}
		return nil
	},
}

func loadPlan(path string) (*Plan, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	var p Plan
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("parse plan %s: %w", filepath.Base(path), err)
	}
	if len(p.Queries) == 0 {
		return nil, fmt.Errorf("plan %s has no queries", filepath.Base(path))
	}
	if p.Data != "" && !filepath.IsAbs(p.Data) {
		p.Data = filepath.Join(filepath.Dir(path), p.Data)
	}
	return &p, nil
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().BoolVar(&bKeepGoing, "keep-going", false, "continue after a failing query and report failures at the end")
	batchCmd.Flags().BoolVar(&bQuiet, "quiet", false, "suppress progress output")
}
