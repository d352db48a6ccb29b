package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/KaramelBytes/tempstat-cli/internal/climate"
	cfgpkg "github.com/KaramelBytes/tempstat-cli/internal/config"
	"github.com/KaramelBytes/tempstat-cli/internal/report"
	"github.com/KaramelBytes/tempstat-cli/internal/utils"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set tempstat configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		w := cmd.OutOrStdout()
		if c.DataFile != "" {
			fmt.Fprintf(w, "data_file: %s\n", c.DataFile)
		}
		if len(c.ColumnMap) > 0 {
			keys := make([]string, 0, len(c.ColumnMap))
			for k := range c.ColumnMap {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintln(w, "column_map:")
			for _, k := range keys {
				fmt.Fprintf(w, "  %s: %s\n", k, c.ColumnMap[k])
			}
		}
		if c.Delimiter != "" {
			fmt.Fprintf(w, "delimiter: %q\n", c.Delimiter)
		}
		if c.SheetName != "" {
			fmt.Fprintf(w, "sheet_name: %s\n", c.SheetName)
		}
		fmt.Fprintf(w, "date_layout: %s\n", c.DateLayout)
		fmt.Fprintf(w, "default_metric: %s\n", c.DefaultMetric)
		fmt.Fprintf(w, "top_n: %d\n", c.TopN)
		fmt.Fprintf(w, "period_days: %d\n", c.PeriodDays)
		fmt.Fprintf(w, "freeze_threshold: %g\n", c.FreezeThreshold)
		fmt.Fprintf(w, "trend_epsilon: %g\n", c.TrendEpsilon)
		fmt.Fprintf(w, "units: %s\n", c.Units)
		fmt.Fprintf(w, "output_format: %s\n", c.OutputFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Long: `Set a config value and save to disk. For column_map the value is SRC=DST, which
adds or replaces one mapping; use SRC= to remove it.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		next := *cfg
		switch key {
		case "data_file":
			next.DataFile = val
		case "column_map":
			src, dst, ok := strings.Cut(val, "=")
			if !ok || strings.TrimSpace(src) == "" {
				return fmt.Errorf("invalid column_map value: %s (use SRC=DST)", val)
			}
			m := make(map[string]string, len(cfg.ColumnMap)+1)
			for k, v := range cfg.ColumnMap {
				m[k] = v
			}
			if strings.TrimSpace(dst) == "" {
				delete(m, strings.ToLower(strings.TrimSpace(src)))
				delete(m, strings.TrimSpace(src))
			} else {
				pm, err := climate.ParseColumnMap([]string{val})
				if err != nil {
					return err
				}
				for k, v := range pm {
					m[k] = string(v)
				}
			}
			next.ColumnMap = m
		case "delimiter":
			if _, err := utils.ParseDelimiter(val); err != nil {
				return err
			}
			next.Delimiter = val
		case "sheet_name":
			next.SheetName = val
		case "date_layout":
			next.DateLayout = val
		case "default_metric":
			m, err := climate.ParseMetric(val)
			if err != nil {
				return err
			}
			next.DefaultMetric = string(m)
		case "top_n", "period_days":
			i, err := strconv.Atoi(val)
			if err != nil || i < 1 {
				return fmt.Errorf("invalid int for %s: %v (must be >= 1)", key, val)
			}
			if key == "top_n" {
				next.TopN = i
			} else {
				next.PeriodDays = i
			}
		case "freeze_threshold":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("invalid float for freeze_threshold: %w", err)
			}
			next.FreezeThreshold = f
		case "trend_epsilon":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f < 0 {
				return fmt.Errorf("invalid float for trend_epsilon: %v", val)
			}
			next.TrendEpsilon = f
		case "units":
			next.Units = val
		case "output_format":
			f, err := report.ParseFormat(val)
			if err != nil {
				return err
			}
			next.OutputFormat = string(f)
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := next.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(&next, cfgFile); err != nil {
			return err
		}
		cfg = &next
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
