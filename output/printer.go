// Package output renders the captured run: connection info, headers, body,
// resource references, the timing chart and transfer speed.
package output

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/logrusorgru/aurora"

	"httpstat/curl"
)

// bodyPreviewLimit is the byte boundary for the inline body preview. The cut
// is byte-based and may split a multi-byte character.
const bodyPreviewLimit = 1024

const helpText = `
Usage: httpstat URL [CURL_OPTIONS]

Options:
  -h, --help      Show this help
  --version       Show version

Env Options:
  HTTPSTAT_SHOW_BODY=true       Show response body
  HTTPSTAT_SHOW_IP=false        Disable IP info
  HTTPSTAT_SHOW_SPEED=true      Show download/upload speed
  HTTPSTAT_SAVE_BODY=false      Don't save response body
  HTTPSTAT_SHOW_RESOURCES=true  List resources referenced by an HTML body
  HTTPSTAT_GRAPH=true           Plot phase durations as a graph
  HTTPSTAT_METRICS_ONLY=true    Print the metrics record as JSON
  HTTPSTAT_CURL_BIN=/my/curl    Use custom curl
  HTTPSTAT_DEBUG=true           Enable debug log
  HTTPSTAT_TIMEOUT=30           Max request time in seconds
`

// PrintHelp prints usage information.
func PrintHelp(w io.Writer) {
	fmt.Fprintln(w, aurora.BrightBlue(helpText))
}

// PrintVersion prints the version information.
func PrintVersion(w io.Writer, version string) {
	fmt.Fprintln(w, aurora.Sprintf(aurora.Green("httpstat v%s"), aurora.Yellow(version)))
}

// PrintConnectionInfo prints the local and remote endpoints of the request.
func PrintConnectionInfo(w io.Writer, m *curl.Metrics) {
	fmt.Fprintf(w, "%s %s:%d  ⇄  %s:%d\n",
		aurora.Blue("IP Info:"),
		m.LocalIP, m.LocalPort,
		m.RemoteIP, m.RemotePort)
}

// PrintHeaders prints the dumped response headers line by line: header names
// in bright black, values in cyan, colonless lines (the status line) in green.
func PrintHeaders(w io.Writer, headerFile string) error {
	f, err := os.Open(headerFile)
	if err != nil {
		return fmt.Errorf("reading headers: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if idx := strings.Index(line, ":"); idx >= 0 {
			fmt.Fprintf(w, "%s%s\n", aurora.BrightBlack(line[:idx+1]), aurora.Cyan(line[idx+1:]))
		} else {
			fmt.Fprintln(w, aurora.Green(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading headers: %w", err)
	}
	return nil
}

// HandleBody prints the body preview or the saved file's path. When saving
// is off the body file is deleted here, once nothing more can need it.
func HandleBody(w io.Writer, bodyFile string, showBody, saveBody bool) error {
	data, err := os.ReadFile(bodyFile)
	if err != nil {
		return fmt.Errorf("reading body: %w", err)
	}

	if showBody {
		fmt.Fprintln(w, truncateBody(data))
	} else if saveBody {
		fmt.Fprintf(w, "%s stored in: %s\n", aurora.Green("Body"), bodyFile)
	}

	if !saveBody {
		_ = os.Remove(bodyFile)
	}
	return nil
}

func truncateBody(data []byte) string {
	if len(data) > bodyPreviewLimit {
		return string(data[:bodyPreviewLimit]) + aurora.Cyan("...").String()
	}
	return string(data)
}

// PrintSpeed prints the download and upload throughput reported by curl.
func PrintSpeed(w io.Writer, m *curl.Metrics) {
	fmt.Fprintf(w, "%s %.1f KiB/s, %s %.1f KiB/s\n",
		aurora.BrightGreen("Download:"), m.SpeedDownload/1024,
		aurora.BrightGreen("Upload:"), m.SpeedUpload/1024)
}

// PrintResourceRefs parses the body as HTML and lists the resources it
// references, grouped by tag. Nothing is fetched; the URLs are reported as
// written in the document.
func PrintResourceRefs(w io.Writer, bodyFile string) error {
	data, err := os.ReadFile(bodyFile)
	if err != nil {
		return fmt.Errorf("reading body: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parsing HTML: %w", err)
	}

	refs := make(map[string][]string)
	doc.Find("link[href], script[src], img[src]").Each(func(_ int, s *goquery.Selection) {
		link, exists := s.Attr("href")
		if !exists {
			link, exists = s.Attr("src")
		}
		if exists {
			tag := goquery.NodeName(s)
			refs[tag] = append(refs[tag], link)
		}
	})

	fmt.Fprintf(w, "%s %s\n", aurora.Green("Document size:"), aurora.Blue(FormatSize(int64(len(data)))))

	if len(refs) == 0 {
		fmt.Fprintln(w, aurora.Yellow("No resource references found"))
		return nil
	}

	tags := make([]string, 0, len(refs))
	for tag := range refs {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	total := 0
	for _, tag := range tags {
		fmt.Fprintf(w, "%s %s (%d)\n", aurora.Green("Tag:"), aurora.Blue(tag), len(refs[tag]))
		for _, link := range refs[tag] {
			fmt.Fprintf(w, "  %s\n", aurora.Cyan(link))
		}
		total += len(refs[tag])
	}
	fmt.Fprintf(w, "%s %s\n", aurora.Green("Total references:"), aurora.Blue(total))
	return nil
}

// FormatSize formats a byte size in a human-readable way.
func FormatSize(size int64) string {
	if size < 1024 {
		return fmt.Sprintf("%d B", size)
	} else if size < 1024*1024 {
		return fmt.Sprintf("%.2f KB", float64(size)/1024)
	} else if size < 1024*1024*1024 {
		return fmt.Sprintf("%.2f MB", float64(size)/(1024*1024))
	}
	return fmt.Sprintf("%.2f GB", float64(size)/(1024*1024*1024))
}
