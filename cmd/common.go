package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/KaramelBytes/tempstat-cli/internal/climate"
	cfgpkg "github.com/KaramelBytes/tempstat-cli/internal/config"
	"github.com/KaramelBytes/tempstat-cli/internal/log"
	"github.com/KaramelBytes/tempstat-cli/internal/parser"
	"github.com/KaramelBytes/tempstat-cli/internal/report"
	"github.com/KaramelBytes/tempstat-cli/internal/utils"
	"github.com/spf13/cobra"
)

// session is a loaded dataset plus the resolved output settings.
type session struct {
	cfg      *cfgpkg.Global
	dataset  string
	analyzer *climate.Analyzer
	format   report.Format
}

// openSession loads the dataset named by --data (or data_file) using the
// mapping, delimiter and sheet from flags and config. dataOverride, when set,
// wins over both.
func openSession(dataOverride string) (*session, error) {
	c := currentConfig()
	format, err := resolveFormat(c)
	if err != nil {
		return nil, err
	}

	path := c.DataFile
	if flagData != "" {
		path = flagData
	}
	if dataOverride != "" {
		path = dataOverride
	}
	if path == "" {
		return nil, fmt.Errorf("no data file: pass --data <file> or set data_file (tempstat config set data_file <file>)")
	}

	colMap, err := resolveColumnMap(c)
	if err != nil {
		return nil, err
	}
	delimSrc := c.Delimiter
	if flagDelimiter != "" {
		delimSrc = flagDelimiter
	}
	delim, err := utils.ParseDelimiter(delimSrc)
	if err != nil {
		return nil, err
	}
	sheet := c.SheetName
	if flagSheet != "" {
		sheet = flagSheet
	}

	series, err := parser.LoadSeries(path, parser.Options{Delimiter: delim, SheetName: sheet}, colMap)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	log.Infow("dataset loaded", "path", path, "records", series.Len())
	a := climate.NewAnalyzer(series,
		climate.WithLogger(log.GetZapLogger()),
		climate.WithTrendEpsilon(c.TrendEpsilon),
	)
	return &session{cfg: c, dataset: series.Name(), analyzer: a, format: format}, nil
}

func resolveFormat(c *cfgpkg.Global) (report.Format, error) {
	if flagFormat != "" {
		return report.ParseFormat(flagFormat)
	}
	return report.ParseFormat(c.OutputFormat)
}

// resolveColumnMap merges column_map from config with --map flags; flags win.
func resolveColumnMap(c *cfgpkg.Global) (map[string]climate.Column, error) {
	var pairs []string
	for src, dst := range c.ColumnMap {
		pairs = append(pairs, src+"="+dst)
	}
	pairs = append(pairs, flagMap...)
	if len(pairs) == 0 {
		return nil, nil
	}
	return climate.ParseColumnMap(pairs)
}

// runAndEmit runs q and writes its report.
func (s *session) runAndEmit(cmd *cobra.Command, q Query) error {
	q = q.withDefaults(s.cfg)
	log.Debugw("running query", "kind", q.Kind, "metric", q.Metric)
	out, err := runQuery(s.analyzer, q)
	if err != nil {
		return err
	}
	return s.emit(cmd, []*outcome{out})
}

// emit renders outcomes in the session format to --output or stdout.
func (s *session) emit(cmd *cobra.Command, outs []*outcome) error {
	var buf bytes.Buffer
	if err := s.render(&buf, outs); err != nil {
		return err
	}
	if flagOutput == "" {
		_, err := io.Copy(cmd.OutOrStdout(), &buf)
		return err
	}
	if err := utils.SafeWriteFile(flagOutput, buf.Bytes()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s report to %s\n", s.format, flagOutput)
	return nil
}

func (s *session) render(w io.Writer, outs []*outcome) error {
	if s.format == report.FormatText {
		t := report.NewText(w, s.cfg.Units)
		if s.cfg.DateLayout != "" {
			t.DateLayout = s.cfg.DateLayout
		}
		for _, o := range outs {
			if err := o.render(t); err != nil {
				return err
			}
		}
		return nil
	}
	runID := report.NewRunID()
	envs := make([]report.Envelope, len(outs))
	for i, o := range outs {
		envs[i] = report.NewEnvelope(runID, o.Query.Kind, s.dataset, o.Query, o.Result)
	}
	if len(envs) == 1 {
		return report.Export(w, s.format, envs[0])
	}
	return report.ExportAll(w, s.format, envs)
}

// analysisFlags binds the common query flags of a subcommand.
type analysisFlags struct {
	metric    string
	threshold float64
	direction string
	extreme   string
	top       int
	days      int
	mode      string
	year      int
}

func (f *analysisFlags) addMetric(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.metric, "metric", "m", "", "temperature metric: TMAX | TMIN | TAVG (default from config, TMAX)")
}

func (f *analysisFlags) addThreshold(cmd *cobra.Command, usage string) {
	cmd.Flags().Float64VarP(&f.threshold, "threshold", "t", 0, usage)
}

func (f *analysisFlags) addDirection(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.direction, "direction", "above", "threshold direction: above (>=) | below (<=)")
}

func (f *analysisFlags) addExtreme(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.extreme, "extreme", "coldest", "ranking: coldest | warmest")
}

func (f *analysisFlags) addTop(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.top, "top", "n", 0, "number of results (default from config, 10)")
}

// query converts the flags into a Query; unset flags stay empty so config
// defaults apply.
func (f *analysisFlags) query(cmd *cobra.Command, kind string) Query {
	q := Query{
		Kind:      kind,
		Metric:    f.metric,
		Direction: f.direction,
		Extreme:   f.extreme,
		Top:       f.top,
		Days:      f.days,
		Mode:      f.mode,
		Year:      f.year,
	}
	if fl := cmd.Flags().Lookup("threshold"); fl != nil && fl.Changed {
		thr := f.threshold
		q.Threshold = &thr
	}
	return q
}

// runAnalysis is the RunE body shared by the single-query subcommands.
func runAnalysis(cmd *cobra.Command, q Query) error {
	s, err := openSession("")
	if err != nil {
		return err
	}
	return s.runAndEmit(cmd, q)
}
