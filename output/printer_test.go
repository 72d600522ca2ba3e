package output

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-repo/assert"

	"httpstat/curl"
)

func writeBodyFile(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "body")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTruncateBody__ExactLimit(t *testing.T) {
	body := bytes.Repeat([]byte("a"), 1024)

	got := truncateBody(body)
	assert.Equal(t, got, string(body))
	assert.Equal(t, strings.Contains(got, "..."), false)
}

func TestTruncateBody__OverLimit(t *testing.T) {
	body := bytes.Repeat([]byte("a"), 1025)

	got := truncateBody(body)
	assert.Equal(t, strings.HasPrefix(got, strings.Repeat("a", 1024)), true)
	assert.Equal(t, strings.Contains(got, "a"+strings.Repeat("a", 1024)), false)
	assert.Equal(t, strings.Contains(got, "..."), true)
}

func TestHandleBody__ShowBody(t *testing.T) {
	path := writeBodyFile(t, []byte("hello body"))

	var buf bytes.Buffer
	assert.NoError(t, HandleBody(&buf, path, true, true))
	assert.Equal(t, strings.Contains(buf.String(), "hello body"), true)
}

func TestHandleBody__SaveReportsPath(t *testing.T) {
	path := writeBodyFile(t, []byte("hello body"))

	var buf bytes.Buffer
	assert.NoError(t, HandleBody(&buf, path, false, true))
	assert.Equal(t, strings.Contains(buf.String(), path), true)

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestHandleBody__NeitherShownNorSavedDeletes(t *testing.T) {
	path := writeBodyFile(t, []byte("hello body"))

	var buf bytes.Buffer
	assert.NoError(t, HandleBody(&buf, path, false, false))
	assert.Equal(t, buf.String(), "")

	_, err := os.Stat(path)
	assert.Equal(t, os.IsNotExist(err), true)
}

func TestHandleBody__ShownButNotSavedDeletes(t *testing.T) {
	path := writeBodyFile(t, []byte("hello body"))

	var buf bytes.Buffer
	assert.NoError(t, HandleBody(&buf, path, true, false))
	assert.Equal(t, strings.Contains(buf.String(), "hello body"), true)

	_, err := os.Stat(path)
	assert.Equal(t, os.IsNotExist(err), true)
}

func TestPrintHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "headers")
	content := "HTTP/1.1 200 OK\r\nContent-Type: text/html\r\nServer: nginx\r\n\r\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	var buf bytes.Buffer
	assert.NoError(t, PrintHeaders(&buf, path))

	out := buf.String()
	assert.Equal(t, strings.Contains(out, "HTTP/1.1 200 OK"), true)
	assert.Equal(t, strings.Contains(out, "Content-Type:"), true)
	assert.Equal(t, strings.Contains(out, " text/html"), true)
	// CR from the CRLF line endings must not leak into the output.
	assert.Equal(t, strings.Contains(out, "\r"), false)
}

func TestPrintConnectionInfo(t *testing.T) {
	m := &curl.Metrics{
		RemoteIP:   "93.184.216.34",
		RemotePort: 443,
		LocalIP:    "192.168.1.10",
		LocalPort:  54321,
	}

	var buf bytes.Buffer
	PrintConnectionInfo(&buf, m)

	out := buf.String()
	assert.Equal(t, strings.Contains(out, "192.168.1.10:54321"), true)
	assert.Equal(t, strings.Contains(out, "93.184.216.34:443"), true)
}

func TestPrintSpeed(t *testing.T) {
	m := &curl.Metrics{SpeedDownload: 2048, SpeedUpload: 512}

	var buf bytes.Buffer
	PrintSpeed(&buf, m)

	out := buf.String()
	assert.Equal(t, strings.Contains(out, "2.0 KiB/s"), true)
	assert.Equal(t, strings.Contains(out, "0.5 KiB/s"), true)
}

func TestPrintResourceRefs(t *testing.T) {
	html := `<html><head>
<link rel="stylesheet" href="/style.css">
<script src="/app.js"></script>
</head><body>
<img src="/logo.png">
<img src="https://cdn.example.com/banner.jpg">
</body></html>`
	path := writeBodyFile(t, []byte(html))

	var buf bytes.Buffer
	assert.NoError(t, PrintResourceRefs(&buf, path))

	out := buf.String()
	assert.Equal(t, strings.Contains(out, "/style.css"), true)
	assert.Equal(t, strings.Contains(out, "/app.js"), true)
	assert.Equal(t, strings.Contains(out, "/logo.png"), true)
	assert.Equal(t, strings.Contains(out, "https://cdn.example.com/banner.jpg"), true)
	assert.Equal(t, strings.Contains(out, "(2)"), true)
}

func TestPrintResourceRefs__NonHTMLBody(t *testing.T) {
	path := writeBodyFile(t, []byte(`{"not":"html"}`))

	var buf bytes.Buffer
	assert.NoError(t, PrintResourceRefs(&buf, path))
	assert.Equal(t, strings.Contains(buf.String(), "No resource references"), true)
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, FormatSize(512), "512 B")
	assert.Equal(t, FormatSize(2048), "2.00 KB")
	assert.Equal(t, FormatSize(3*1024*1024), "3.00 MB")
}
