// Package curl builds and runs the external curl invocation that does all
// network work for a run, and parses the metrics it reports back.
package curl

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"httpstat/config"
	"httpstat/log"
)

// writeOutFormat is expanded by curl after the request completes. The token
// names match curl's --write-out variables exactly; the result is one line
// of JSON on stdout.
const writeOutFormat = `{` +
	`"time_namelookup":%{time_namelookup},` +
	`"time_connect":%{time_connect},` +
	`"time_appconnect":%{time_appconnect},` +
	`"time_pretransfer":%{time_pretransfer},` +
	`"time_redirect":%{time_redirect},` +
	`"time_starttransfer":%{time_starttransfer},` +
	`"time_total":%{time_total},` +
	`"speed_download":%{speed_download},` +
	`"speed_upload":%{speed_upload},` +
	`"remote_ip":"%{remote_ip}",` +
	`"remote_port":%{remote_port},` +
	`"local_ip":"%{local_ip}",` +
	`"local_port":%{local_port}` +
	`}`

// ExitError reports a curl run that started but exited non-zero. Code is
// curl's own exit code so the caller can propagate it.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("curl error (exit %d): %s", e.Code, strings.TrimSpace(e.Stderr))
}

// Result holds the artifacts of one curl run. HeaderFile and BodyFile are
// temp files owned by the run; the caller decides their cleanup.
type Result struct {
	Metrics    *Metrics
	HeaderFile string
	BodyFile   string
}

// BuildArgs assembles the curl argument list: the write-out format, the two
// capture files, silent+show-error, the total time bound, then the user's
// passthrough arguments and the URL.
func BuildArgs(cfg config.Config, url, headerFile, bodyFile string, extraArgs []string) []string {
	args := []string{
		"-w", writeOutFormat,
		"-D", headerFile,
		"-o", bodyFile,
		"-sS",
		"--max-time", strconv.FormatUint(uint64(cfg.TimeoutSecs), 10),
	}
	args = append(args, extraArgs...)
	return append(args, url)
}

// Run creates the header and body temp files, invokes curl once, and parses
// the metrics from its stdout. On any failure both temp files are removed
// before returning.
func Run(cfg config.Config, url string, extraArgs []string) (*Result, error) {
	headerFile, err := os.CreateTemp("", "httpstat-headers-*")
	if err != nil {
		return nil, fmt.Errorf("creating header temp file: %w", err)
	}
	headerFile.Close()

	bodyFile, err := os.CreateTemp("", "httpstat-body-*")
	if err != nil {
		os.Remove(headerFile.Name())
		return nil, fmt.Errorf("creating body temp file: %w", err)
	}
	bodyFile.Close()

	metrics, err := invoke(cfg, url, headerFile.Name(), bodyFile.Name(), extraArgs)
	if err != nil {
		os.Remove(headerFile.Name())
		os.Remove(bodyFile.Name())
		return nil, err
	}

	return &Result{
		Metrics:    metrics,
		HeaderFile: headerFile.Name(),
		BodyFile:   bodyFile.Name(),
	}, nil
}

func invoke(cfg config.Config, url, headerFile, bodyFile string, extraArgs []string) (*Metrics, error) {
	args := BuildArgs(cfg, url, headerFile, bodyFile, extraArgs)
	cmd := exec.Command(cfg.CurlBin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Log.Debugf("executing: %s %s", cfg.CurlBin, strings.Join(args, " "))

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &ExitError{Code: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		return nil, fmt.Errorf("starting %s: %w", cfg.CurlBin, err)
	}

	return ParseMetrics(stdout.Bytes())
}
