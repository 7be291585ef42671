// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

// Command xs128recover reconstructs the Xorshift128+ state behind a V8 or
// SpiderMonkey Math.random() stream and, optionally, predicts the outcomes
// of coin-flip sites that consume it.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	xs128 "github.com/coldbrewsec/xs128recover"
	"github.com/coldbrewsec/xs128recover/internal/config"
	"github.com/coldbrewsec/xs128recover/internal/xlog"
	"github.com/coldbrewsec/xs128recover/xorshift"
)

var log = xlog.Get()

func main() {
	os.Exit(doMain(os.Args[1:], os.Stdout, os.Stderr))
}

// doMain is separated out for the purpose of unit testing.
func doMain(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("xs128recover", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		engineName string
		inputPath  string
		configPath string
		exportPath string
		predict    string
		amount     int
		workers    int
		strict     bool
	)
	flags.StringVar(&engineName, "engine", "", "JavaScript engine that produced the observations (v8, spidermonkey); defaults to the config file's [engine] default")
	flags.StringVar(&inputPath, "input", "observations.json", "path to a JSON array of Math.random() observations")
	flags.StringVar(&configPath, "config", "", "optional path to a TOML config file")
	flags.StringVar(&exportPath, "export", "", "optional path to write recovered candidates as YAML")
	flags.StringVar(&predict, "predict", "none", "coin-flip site to predict against recovered candidates (none, probable, google)")
	flags.IntVar(&amount, "amount", 15, "number of coin flips to predict")
	flags.IntVar(&workers, "workers", 0, "parallel nullspace search workers (0 uses the config default)")
	flags.BoolVar(&strict, "strict", false, "reject malformed observations before attempting recovery")

	if err := flags.Parse(args); err != nil {
		return 1
	}

	cfg := config.Load(configPath)
	cfg.Apply()

	if engineName == "" {
		engineName = cfg.Engine.Default
	}
	engine, err := parseEngine(engineName)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	log.Infof("using engine %s", engine)

	observations, err := loadObservations(inputPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	log.Infof("loaded %d observations from %s", len(observations), inputPath)

	if workers <= 0 {
		workers = cfg.Recovery.Workers
	}
	opts := []xs128.Option{xs128.WithWorkers(workers)}
	if strict {
		opts = append(opts, xs128.WithStrictValidation())
	}

	seq, err := xs128.Recover(engine, observations, opts...)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	predictor, err := parsePredictor(predict)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	var reports []candidateReport
	found := 0
	seq(func(cand xs128.Candidate) bool {
		found++
		fmt.Fprintf(stdout, "state0=%#016x state1=%#016x offset=%d\n", cand.State0, cand.State1, cand.Offset)

		var flips []flip
		if predictor != nil {
			flips = predictor(cand.PRNG, amount)
			for _, f := range flips {
				fmt.Fprintln(stdout, string(f))
			}
		}
		reports = append(reports, newCandidateReport(cand, flips))
		return true
	})

	log.Infof("search complete: %d candidate(s) found", found)
	if found == 0 {
		fmt.Fprintln(stdout, "no candidate state reproduces the supplied observations")
	}

	if exportPath != "" {
		if err := exportReports(exportPath, reports); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}

	return 0
}

func parseEngine(name string) (xs128.Engine, error) {
	switch strings.ToLower(name) {
	case "v8":
		return xs128.V8, nil
	case "spidermonkey":
		return xs128.SpiderMonkey, nil
	default:
		return xs128.Engine(-1), fmt.Errorf("xs128recover: unknown engine %q (want v8 or spidermonkey)", name)
	}
}

type predictorFunc func(rng xorshift.PRNG, amount int) []flip

func parsePredictor(name string) (predictorFunc, error) {
	switch strings.ToLower(name) {
	case "none", "":
		return nil, nil
	case "probable":
		return predictProbableCoin, nil
	case "google":
		return predictGoogleCoin, nil
	default:
		return nil, fmt.Errorf("xs128recover: unknown predictor %q (want none, probable, or google)", name)
	}
}

func loadObservations(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("xs128recover: reading %s: %w", path, err)
	}
	var observations []float64
	if err := json.Unmarshal(data, &observations); err != nil {
		return nil, fmt.Errorf("xs128recover: parsing %s: %w", path, err)
	}
	return observations, nil
}

type candidateReport struct {
	Engine string   `yaml:"engine"`
	State0 string   `yaml:"state0"`
	State1 string   `yaml:"state1"`
	Offset int      `yaml:"offset,omitempty"`
	Flips  []string `yaml:"flips,omitempty"`
}

func newCandidateReport(cand xs128.Candidate, flips []flip) candidateReport {
	strs := make([]string, len(flips))
	for i, f := range flips {
		strs[i] = string(f)
	}
	return candidateReport{
		Engine: cand.Engine.String(),
		State0: fmt.Sprintf("%#016x", cand.State0),
		State1: fmt.Sprintf("%#016x", cand.State1),
		Offset: cand.Offset,
		Flips:  strs,
	}
}

func exportReports(path string, reports []candidateReport) error {
	data, err := yaml.Marshal(reports)
	if err != nil {
		return fmt.Errorf("xs128recover: encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("xs128recover: writing %s: %w", path, err)
	}
	return nil
}
