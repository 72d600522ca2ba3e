package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/logrusorgru/aurora"

	"httpstat/curl"
)

// Phases holds the per-stage durations in milliseconds, derived from curl's
// cumulative offsets by successive subtraction.
type Phases struct {
	DNS      int64
	TCP      int64
	TLS      int64
	Server   int64
	Transfer int64
}

// IsHTTPS reports whether the URL argument names an HTTPS target. This is a
// literal prefix check on the raw argument, matching how curl was invoked.
func IsHTTPS(url string) bool {
	return strings.HasPrefix(url, "https://")
}

// ComputePhases derives the phase durations from the cumulative offsets.
// Offsets are expected to be non-decreasing; a redirect can break that, so
// each subtraction clamps at zero instead of reporting a negative phase.
func ComputePhases(m *curl.Metrics, https bool) Phases {
	dns := clampMillis(int64(m.TimeNameLookup * 1000))
	tcp := clampMillis(int64(m.TimeConnect*1000) - dns)
	var tls int64
	if https {
		tls = clampMillis(int64(m.TimePretransfer*1000) - dns - tcp)
	}
	server := clampMillis(int64(m.TimeStartTransfer*1000) - dns - tcp - tls)
	transfer := clampMillis(int64(m.TimeTotal*1000) - dns - tcp - tls - server)

	return Phases{
		DNS:      dns,
		TCP:      tcp,
		TLS:      tls,
		Server:   server,
		Transfer: transfer,
	}
}

func clampMillis(ms int64) int64 {
	if ms < 0 {
		return 0
	}
	return ms
}

// PrintTimingChart renders the fixed-width phase breakdown. HTTPS targets
// get the 5-phase layout including the TLS handshake, everything else the
// 4-phase layout.
func PrintTimingChart(w io.Writer, m *curl.Metrics, https bool) {
	p := ComputePhases(m, https)

	if https {
		fmt.Fprint(w, "\n  DNS Lookup   TCP Connection   TLS Handshake   Server Processing   Content Transfer\n")
		fmt.Fprintf(w, "[%s|%s|%s|%s|%s]\n",
			phaseCell(p.DNS, 12),
			phaseCell(p.TCP, 16),
			phaseCell(p.TLS, 15),
			phaseCell(p.Server, 19),
			phaseCell(p.Transfer, 18))
		fmt.Fprint(w, "             |                |               |                   |                  |\n")
		fmt.Fprintf(w, "   namelookup:%s        |               |                   |                  |\n", offsetLabel(m.TimeNameLookup))
		fmt.Fprintf(w, "                       connect:%s       |                   |                  |\n", offsetLabel(m.TimeConnect))
		fmt.Fprintf(w, "                                   pretransfer:%s           |                  |\n", offsetLabel(m.TimePretransfer))
		fmt.Fprintf(w, "                                                     starttransfer:%s          |\n", offsetLabel(m.TimeStartTransfer))
		fmt.Fprintf(w, "                                                                                total:%s\n", offsetLabel(m.TimeTotal))
		return
	}

	fmt.Fprint(w, "\n   DNS Lookup   TCP Connection   Server Processing   Content Transfer\n")
	fmt.Fprintf(w, "[%s|%s|%s|%s]\n",
		phaseCell(p.DNS, 13),
		phaseCell(p.TCP, 16),
		phaseCell(p.Server, 19),
		phaseCell(p.Transfer, 18))
	fmt.Fprint(w, "              |                |                   |                  |\n")
	fmt.Fprintf(w, "    namelookup:%s        |                   |                  |\n", offsetLabel(m.TimeNameLookup))
	fmt.Fprintf(w, "                        connect:%s           |                  |\n", offsetLabel(m.TimeConnect))
	fmt.Fprintf(w, "                                      starttransfer:%s          |\n", offsetLabel(m.TimeStartTransfer))
	fmt.Fprintf(w, "                                                                 total:%s\n", offsetLabel(m.TimeTotal))
}

// phaseCell centers a millisecond value in a chart cell, colored cyan.
func phaseCell(ms int64, width int) string {
	return aurora.Cyan(center(fmt.Sprintf("%dms", ms), width)).String()
}

// offsetLabel formats a cumulative offset in milliseconds, left-aligned the
// way the chart's connector lines expect.
func offsetLabel(seconds float64) string {
	return aurora.Cyan(padRight(fmt.Sprintf("%.2fms", seconds*1000), 8)).String()
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	right := width - len(s) - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// PrintPhaseGraph plots the phase durations. TLS is included only for HTTPS
// targets, mirroring the chart layouts.
func PrintPhaseGraph(w io.Writer, p Phases, https bool) {
	data := []float64{float64(p.DNS), float64(p.TCP)}
	if https {
		data = append(data, float64(p.TLS))
	}
	data = append(data, float64(p.Server), float64(p.Transfer))

	fmt.Fprintln(w, aurora.Green("Phase durations (ms)"))
	fmt.Fprintln(w, asciigraph.Plot(data))
}
