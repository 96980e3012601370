package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/loader"
	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/report"
	"github.com/bluescreenjay/autoscheduler-prototype-2/internal/scheduler"
	"github.com/bluescreenjay/autoscheduler-prototype-2/pkg/config"
	"github.com/bluescreenjay/autoscheduler-prototype-2/pkg/logger"
)

func main() {
	inputsFlag := flag.String("inputs", "", "inputs directory (overrides INPUTS_DIR)")
	resultsFlag := flag.String("results", "", "results directory (overrides RESULTS_DIR)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *inputsFlag != "" {
		cfg.Inputs.Dir = *inputsFlag
	}
	if *resultsFlag != "" {
		cfg.Results.Dir = *resultsFlag
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Error("scheduling run failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	inputs, err := loader.New(logr).LoadAll(cfg.Inputs.Dir)
	if err != nil {
		return err
	}

	engineCfg, err := scheduler.FromSettings(cfg.Scheduler)
	if err != nil {
		return err
	}
	engine, err := scheduler.New(engineCfg, inputs.Applicants, inputs.Recruiters, inputs.Rooms, logr)
	if err != nil {
		return err
	}
	result, err := engine.Run()
	if err != nil {
		return err
	}

	dir, err := report.NewWriter(logr, cfg.Results.PDFSummary).Write(cfg.Results.Dir, &report.Run{
		Result:      result,
		Applicants:  inputs.Applicants,
		Recruiters:  inputs.Recruiters,
		Rooms:       inputs.Rooms,
		Warnings:    inputs.Warnings,
		GeneratedAt: time.Now(),
	})
	if err != nil {
		return err
	}

	fmt.Printf("schedule generated by %s: %d/%d applicants fully scheduled, reports in %s\n",
		result.Winner.Strategy, result.Winner.Score.FullyScheduled, len(inputs.Applicants), dir)
	return nil
}
