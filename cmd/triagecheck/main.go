package main

// Score a questionnaire submission and optionally ask the model for
// recommendations:
//   go run ./cmd/triagecheck -file submission.json -mode triage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"triage-backend/internal/assessments"
	"triage-backend/internal/bootstrap"
	"triage-backend/internal/questionnaires"
	"triage-backend/internal/shared/config"
	"triage-backend/internal/shared/telemetry"
	"triage-backend/internal/usage"
)

func main() {
	cfg := config.Load()

	path := flag.String("file", "", "Path to a submission JSON file")
	mode := flag.String("mode", "assessment", "assessment or triage")
	scoreOnly := flag.Bool("score-only", false, "Score locally without calling the model")
	outPath := flag.String("out", "", "Path to write JSON output (optional)")
	model := flag.String("model", cfg.LLMModel, "LLM model")
	flag.Parse()

	telemetry.Init(cfg.Env, "warn")
	defer telemetry.Sync()

	if strings.TrimSpace(*path) == "" {
		exitErr("file path is required")
	}
	body, err := os.ReadFile(*path)
	if err != nil {
		exitErr(fmt.Sprintf("read submission: %v", err))
	}

	var raw questionnaires.RawSubmission
	if err := json.Unmarshal(body, &raw); err != nil {
		exitErr(fmt.Sprintf("invalid json: %v", err))
	}
	sub, err := questionnaires.Validate(raw)
	if err != nil {
		var vErr *questionnaires.ValidationError
		if errors.As(err, &vErr) {
			exitErr(fmt.Sprintf("invalid submission: %s", strings.Join(vErr.Fields(), ", ")))
		}
		exitErr(err.Error())
	}

	var out any
	if *scoreOnly {
		out = assessments.NewScoreView(sub.Type(), questionnaires.Score(sub))
	} else {
		cfg.LLMModel = *model
		if err := cfg.Validate(); err != nil {
			exitErr(err.Error())
		}
		client, err := bootstrap.BuildLLM(cfg)
		if err != nil {
			exitErr(err.Error())
		}
		svc := &assessments.Service{
			LLM:     client,
			Usage:   usage.NewService(usage.DefaultPolicy(cfg.DailyLLMLimit)),
			Model:   cfg.LLMModel,
			Timeout: cfg.LLMTimeout,
		}
		ctx := context.Background()
		switch strings.ToLower(strings.TrimSpace(*mode)) {
		case "assessment":
			out, err = svc.Recommend(ctx, "cli", sub)
		case "triage":
			out, err = svc.Triage(ctx, "cli", sub)
		default:
			exitErr(fmt.Sprintf("unsupported mode: %s", *mode))
		}
		if err != nil {
			exitErr(fmt.Sprintf("%s: %v", *mode, err))
		}
	}

	pretty, err := prettyJSON(out)
	if err != nil {
		exitErr(fmt.Sprintf("format json: %v", err))
	}
	if *outPath != "" {
		if err := os.WriteFile(*outPath, pretty, 0o644); err != nil {
			exitErr(fmt.Sprintf("write output: %v", err))
		}
	}
	if _, err := os.Stdout.Write(pretty); err != nil {
		exitErr(fmt.Sprintf("write stdout: %v", err))
	}
}

func prettyJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
