package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/tempstat-cli/internal/utils"
)

// Format is an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts text, json, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("invalid format: %s (use text, json or yaml)", s)
}

// Envelope wraps an exported result. RunID ties together every result
// written by the same invocation.
type Envelope struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	Kind        string    `json:"kind" yaml:"kind"`
	Dataset     string    `json:"dataset,omitempty" yaml:"dataset,omitempty"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Params      any       `json:"params,omitempty" yaml:"params,omitempty"`
	Result      any       `json:"result" yaml:"result"`
}

// NewRunID returns a fresh id for one invocation's results.
func NewRunID() string { return uuid.NewString() }

// NewEnvelope stamps a result with runID; an empty runID gets a fresh one.
func NewEnvelope(runID, kind, dataset string, params, result any) Envelope {
	if runID == "" {
		runID = NewRunID()
	}
	return Envelope{
		RunID:       runID,
		Kind:        kind,
		Dataset:     dataset,
		GeneratedAt: time.Now().UTC(),
		Params:      params,
		Result:      result,
	}
}

// Export encodes env as JSON or YAML.
func Export(w io.Writer, f Format, env Envelope) error {
	var b []byte
	var err error
	switch f {
	case FormatJSON:
		b, err = utils.PrettyJSON(env)
		if err == nil {
			b = append(b, '\n')
		}
	case FormatYAML:
		b, err = yaml.Marshal(env)
		if err != nil {
			err = fmt.Errorf("marshal yaml: %w", err)
		}
	default:
		return fmt.Errorf("export: unsupported format %q", f)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// ExportAll encodes several envelopes as one JSON array or a multi-document YAML stream.
func ExportAll(w io.Writer, f Format, envs []Envelope) error {
	switch f {
	case FormatJSON:
		b, err := utils.PrettyJSON(envs)
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		for _, e := range envs {
			if err := enc.Encode(e); err != nil {
				return fmt.Errorf("marshal yaml: %w", err)
			}
		}
		return enc.Close()
	}
	return fmt.Errorf("export: unsupported format %q", f)
}
