// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/someonegg/stbmatch/metrics"
	"github.com/someonegg/stbmatch/roster"
)

func newLogger(verbose bool) (logr.Logger, func(), error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
		// logr V(2) maps to zap level -2
		cfg.Level = zap.NewAtomicLevelAt(zapcore.Level(-2))
	}

	zapLog, err := cfg.Build()
	if err != nil {
		return logr.Discard(), func() {}, err
	}
	return zapr.NewLogger(zapLog), func() { _ = zapLog.Sync() }, nil
}

func doMatch(verbose bool, inputFile, outputFile, metricsFile string, seed *uint64, multi bool) error {
	logger, flush, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("create logger failed: %w", err)
	}
	defer flush()

	inst, err := roster.LoadInstance(inputFile)
	if err != nil {
		return fmt.Errorf("load instance file failed: %w", err)
	}

	metrics.Register()
	if multi {
		metrics.RecordRun(metrics.ModeMulti)
	} else {
		metrics.RecordRun(metrics.ModeSingle)
	}

	matcher := &roster.Matcher{
		Multi:    multi,
		Seed:     seed,
		Logger:   logger,
		Recorder: metrics.Recorder(),
	}

	report, err := matcher.Match(inst)
	if err != nil {
		return err
	}
	fmt.Printf("%+v\n", report.Summary)

	err = roster.WriteReport(outputFile, report)
	if err != nil {
		return fmt.Errorf("write report file failed: %w", err)
	}

	if metricsFile != "" {
		err = writeMetrics(metricsFile)
		if err != nil {
			return fmt.Errorf("write metrics file failed: %w", err)
		}
	}

	return nil
}

func writeMetrics(file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := metrics.WriteText(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func doSample(outputFile string) error {
	err := roster.WriteInstance(outputFile, roster.SampleInstance())
	if err != nil {
		return fmt.Errorf("write instance file failed: %w", err)
	}
	return nil
}

func doVerify(verbose bool, inputFile, reportFile string, multi bool) error {
	logger, flush, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("create logger failed: %w", err)
	}
	defer flush()

	inst, err := roster.LoadInstance(inputFile)
	if err != nil {
		return fmt.Errorf("load instance file failed: %w", err)
	}

	report, err := roster.LoadReport(reportFile)
	if err != nil {
		return fmt.Errorf("load report file failed: %w", err)
	}

	if err := roster.VerifyReport(inst, report, multi); err != nil {
		return fmt.Errorf("report %s does not hold: %w", report.RunID, err)
	}

	logger.Info("report holds", "run", report.RunID, "seed", report.Seed, "multi", report.Multi)
	return nil
}
