package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/logrusorgru/aurora"

	"httpstat/config"
	"httpstat/curl"
	"httpstat/log"
	"httpstat/output"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		output.PrintHelp(os.Stdout)
		return
	}
	if args[0] == "--version" {
		output.PrintVersion(os.Stdout, appVersion)
		return
	}

	cfg := config.FromEnv()
	if cfg.Debug {
		log.EnableDebug()
	}

	if err := run(cfg, args[0], args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red(err.Error()))
		os.Exit(exitCode(err))
	}
}

// exitCode propagates curl's own exit code when the run got as far as
// executing it; everything else is a generic failure.
func exitCode(err error) int {
	var exitErr *curl.ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}

func run(cfg config.Config, url string, extraArgs []string) error {
	if err := curl.ValidateExtraArgs(extraArgs); err != nil {
		return err
	}

	result, err := curl.Run(cfg, url, extraArgs)
	if err != nil {
		return err
	}
	defer os.Remove(result.HeaderFile)
	if !cfg.SaveBody {
		defer os.Remove(result.BodyFile)
	}

	out := os.Stdout

	if cfg.MetricsOnly {
		pretty, err := result.Metrics.PrettyJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, pretty)
		return nil
	}

	if cfg.ShowIP {
		output.PrintConnectionInfo(out, result.Metrics)
	}

	if err := output.PrintHeaders(out, result.HeaderFile); err != nil {
		return err
	}

	// The resource listing reads the body file, so it runs before
	// HandleBody may delete it.
	if cfg.ShowResources {
		if err := output.PrintResourceRefs(out, result.BodyFile); err != nil {
			return err
		}
	}

	if err := output.HandleBody(out, result.BodyFile, cfg.ShowBody, cfg.SaveBody); err != nil {
		return err
	}

	https := output.IsHTTPS(url)
	output.PrintTimingChart(out, result.Metrics, https)

	if cfg.Graph {
		output.PrintPhaseGraph(out, output.ComputePhases(result.Metrics, https), https)
	}

	if cfg.ShowSpeed {
		output.PrintSpeed(out, result.Metrics)
	}

	return nil
}
