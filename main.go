package main

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/alecthomas/kingpin"
	"github.com/estafette/estafette-build-time-analyzer/clients/buildlog"
	"github.com/estafette/estafette-build-time-analyzer/config"
	"github.com/estafette/estafette-build-time-analyzer/services/analysis"
	"github.com/estafette/estafette-build-time-analyzer/services/evaluation"
	"github.com/estafette/estafette-build-time-analyzer/services/recorder"
	"github.com/estafette/estafette-build-time-analyzer/services/reporting"
	foundation "github.com/estafette/estafette-foundation"
	"github.com/rs/zerolog/log"
)

var (
	appgroup  string
	app       string
	version   string
	branch    string
	revision  string
	buildDate string
	goVersion = runtime.Version()
)

var (
	// flags
	configPath = kingpin.Flag("config", "Path to the yaml config file.").Default(".buildtimes.yaml").String()
	logFile    = kingpin.Flag("log-file", "Path to the build log with START and FINISH lines.").String()
	timeFormat = kingpin.Flag("time-format", "Go time layout of the timestamps in the build log.").String()
	filter     = kingpin.Flag("filter", "Expression selecting the builds to include, for example \"duration > 60 && weekday == 'Monday'\".").String()
	today      = kingpin.Flag("today", "Date (YYYY-MM-DD) to report as today.").String()
	days       = kingpin.Flag("days", "Render a breakdown per day.").Bool()
	noColor    = kingpin.Flag("no-color", "Disable colored output.").Bool()
	logFormat  = kingpin.Flag("log-format", "Format of the log output: plaintext, console, json, stackdriver or v3.").Default(foundation.LogFormatConsole).String()

	// args
	entryType = kingpin.Arg("type", "START or FINISH to record a build time instead of analyzing the build log.").String()
	entryTime = kingpin.Arg("time", "Timestamp to record in the configured time format; defaults to now.").String()
)

func main() {

	// parse command line parameters
	kingpin.Version(version)
	kingpin.Parse()

	// init log format from command line parameter
	applicationInfo := foundation.NewApplicationInfo(appgroup, app, version, branch, revision, buildDate)
	foundation.InitLoggingByFormatSilent(applicationInfo, *logFormat)

	log.Debug().Msgf("Starting %v version %v with go version %v", app, version, goVersion)

	ctx := context.Background()
	fatalHandler := NewFatalHandler()

	analyzerConfig, err := config.ReadConfigFromFile(*configPath)
	if err != nil {
		fatalHandler.HandleFatal(err, "Reading configuration failed")
	}
	analyzerConfig.Override(*logFile, *timeFormat, *filter)

	buildlogClient, err := buildlog.NewClient(ctx, analyzerConfig.LogFile)
	if err != nil {
		fatalHandler.HandleFatal(err, "Creating build log client failed")
	}

	if *entryType != "" {
		recorderService, err := recorder.NewService(ctx, buildlogClient, analyzerConfig.TimeFormat)
		if err != nil {
			fatalHandler.HandleFatal(err, "Creating recorder service failed")
		}

		_, err = recorderService.Record(ctx, *entryType, *entryTime)
		if err != nil {
			fatalHandler.HandleFatal(err, "Logging time failed")
		}

		os.Exit(0)
	}

	evaluationService, err := evaluation.NewService(ctx)
	if err != nil {
		fatalHandler.HandleFatal(err, "Creating evaluation service failed")
	}

	analysisService, err := analysis.NewService(ctx, buildlogClient, evaluationService, analyzerConfig.TimeFormat, analyzerConfig.Filter)
	if err != nil {
		fatalHandler.HandleFatal(err, "Creating analysis service failed")
	}

	reportingService, err := reporting.NewService(ctx, !*noColor)
	if err != nil {
		fatalHandler.HandleFatal(err, "Creating reporting service failed")
	}

	reportDay := analysis.DayOf(time.Now())
	if *today != "" {
		reportDay, err = analysis.ParseDay(*today)
		if err != nil {
			fatalHandler.HandleFatal(err, "Parsing --today failed")
		}
	}

	aggregate, err := analysisService.Analyze(ctx)
	if err != nil {
		fatalHandler.HandleFatal(err, "Analyzing build times failed")
	}

	reportingService.RenderOverall(os.Stdout, aggregate)
	if *days {
		reportingService.RenderDays(os.Stdout, aggregate)
		os.Stdout.WriteString("\n")
	}
	reportingService.RenderToday(os.Stdout, aggregate, reportDay)
}
