package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DefaultMetric != "TMAX" || c.TopN != 10 || c.PeriodDays != 7 || c.FreezeThreshold != 32 {
		t.Fatalf("defaults = %+v", c)
	}
	if c.TrendEpsilon != 0.01 || c.Units != "°F" || c.OutputFormat != "text" || c.DateLayout != "2006-01-02" {
		t.Fatalf("defaults = %+v", c)
	}
}

func TestSaveLoad_RoundTripAndEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "tempstat.yaml")
	in := &Global{
		DataFile:        "/data/station.csv",
		ColumnMap:       map[string]string{"MaxTemp": "TMAX", "MinTemp": "TMIN"},
		DefaultMetric:   "TMIN",
		TopN:            3,
		PeriodDays:      14,
		FreezeThreshold: 28,
		TrendEpsilon:    0.05,
		Units:           "°C",
		OutputFormat:    "json",
	}
	if err := Save(in, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	b, _ := os.ReadFile(path)
	if !strings.Contains(string(b), "data_file: /data/station.csv") {
		t.Fatalf("saved yaml:\n%s", b)
	}

	t.Setenv("TEMPSTAT_TOP_N", "5")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DataFile != in.DataFile || c.DefaultMetric != "TMIN" || c.PeriodDays != 14 || c.Units != "°C" {
		t.Fatalf("loaded = %+v", c)
	}
	if c.TopN != 5 {
		t.Fatalf("env must override the file: top_n = %d", c.TopN)
	}
	// viper folds map keys to lower case; column lookups are case-insensitive
	if c.ColumnMap["maxtemp"] != "TMAX" {
		t.Fatalf("column_map = %v", c.ColumnMap)
	}
}

func TestLoad_MissingExplicitFileIsNotAnError(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cases := map[string]string{
		"top_n":         "top_n: 0\n",
		"output_format": "output_format: xml\n",
		"delimiter":     "delimiter: ';;'\n",
	}
	for key, body := range cases {
		t.Run(key, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), key) {
				t.Fatalf("err = %v, want mention of %s", err, key)
			}
		})
	}
}
