package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/blueprint"
	"github.com/dmitrymomot/blueprint/pkg/logger"
)

const (
	formatText = "text"
	formatJSON = "json"

	exitInvalid   = 1
	exitViolation = 2
)

type validateFlags struct {
	format string
	lang   string
}

// validateReport is the JSON form of a validation result.
type validateReport struct {
	Blueprint string              `json:"blueprint"`
	Outcome   string              `json:"outcome"`
	Messages  map[string][]string `json:"messages,omitempty"`
	Violation *violationReport    `json:"violation,omitempty"`
	Error     string              `json:"error,omitempty"`
}

type violationReport struct {
	Key  string `json:"key"`
	Path string `json:"path"`
}

func newValidateCmd(a *app) *cobra.Command {
	flags := &validateFlags{}

	cmd := &cobra.Command{
		Use:   "validate <blueprint> <payload.json|payload.yaml|->",
		Short: "Validate a payload against a blueprint",
		Long: `Validate a JSON or YAML payload against a blueprint.

Exit codes:
  0  payload is valid
  1  some fields are invalid
  2  the payload has a key a strict blueprint does not declare

Examples:
  blueprint validate contact payload.json
  cat payload.json | blueprint validate user/register - --format json --lang de`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validate(cmd, args[0], args[1], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", formatText, "output format: text, json")
	cmd.Flags().StringVarP(&flags.lang, "lang", "l", "", "language of labels and messages (default BLUEPRINT_DEFAULT_LANGUAGE)")
	return cmd
}

func (a *app) validate(cmd *cobra.Command, name, path string, flags *validateFlags) error {
	if flags.format != formatText && flags.format != formatJSON {
		return fmt.Errorf("unsupported format %q", flags.format)
	}
	lang := flags.lang
	if lang == "" {
		lang = a.cfg.DefaultLanguage
	}

	schema, err := a.schema(name, lang)
	if err != nil {
		return err
	}
	payload, err := readPayload(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	start := time.Now()
	res := schema.Check(payload)
	a.metrics.ObserveValidation(name, res, time.Since(start))
	a.logger.DebugContext(cmd.Context(), "payload checked",
		logger.Blueprint(name),
		logger.Outcome(res.Outcome.String()),
		logger.Language(lang),
	)

	report := newValidateReport(name, res)
	out := cmd.OutOrStdout()
	if flags.format == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printReport(out, report, res)
	}

	switch res.Outcome {
	case blueprint.OutcomeValid:
		return nil
	case blueprint.OutcomeInvalid:
		return &exitError{code: exitInvalid}
	case blueprint.OutcomeSchemaViolation:
		return &exitError{code: exitViolation}
	default:
		if flags.format == formatJSON {
			return &exitError{code: exitInvalid}
		}
		return res.Err()
	}
}

func newValidateReport(name string, res blueprint.Result) validateReport {
	report := validateReport{Blueprint: name, Outcome: res.Outcome.String()}
	switch res.Outcome {
	case blueprint.OutcomeInvalid:
		report.Messages = res.Messages
	case blueprint.OutcomeSchemaViolation:
		report.Violation = &violationReport{Key: res.Violation.Key, Path: res.Violation.Path}
	case blueprint.OutcomeMalformed:
		report.Error = res.Err().Error()
	}
	return report
}

func printReport(w io.Writer, report validateReport, res blueprint.Result) {
	switch res.Outcome {
	case blueprint.OutcomeValid:
		fmt.Fprintf(w, "✓ %s: payload is valid\n", report.Blueprint)
	case blueprint.OutcomeInvalid:
		fmt.Fprintf(w, "✗ %s: %d invalid field(s)\n", report.Blueprint, len(res.Messages.Fields()))
		for _, field := range res.Messages.Fields() {
			for _, msg := range res.Messages.Messages(field) {
				fmt.Fprintf(w, "  %s: %s\n", field, msg)
			}
		}
	case blueprint.OutcomeSchemaViolation:
		fmt.Fprintf(w, "✗ %s: %s\n", report.Blueprint, res.Violation.Error())
	}
}
