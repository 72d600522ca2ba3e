package curl

import (
	"encoding/json"
	"fmt"
)

// Metrics is the record curl emits through the write-out format string.
// All time_* fields are cumulative offsets in seconds from request start.
type Metrics struct {
	TimeNameLookup    float64 `json:"time_namelookup"`
	TimeConnect       float64 `json:"time_connect"`
	TimeAppConnect    float64 `json:"time_appconnect"`
	TimePretransfer   float64 `json:"time_pretransfer"`
	TimeRedirect      float64 `json:"time_redirect"`
	TimeStartTransfer float64 `json:"time_starttransfer"`
	TimeTotal         float64 `json:"time_total"`
	SpeedDownload     float64 `json:"speed_download"`
	SpeedUpload       float64 `json:"speed_upload"`
	RemoteIP          string  `json:"remote_ip"`
	RemotePort        uint16  `json:"remote_port"`
	LocalIP           string  `json:"local_ip"`
	LocalPort         uint16  `json:"local_port"`
}

var metricsFields = []string{
	"time_namelookup",
	"time_connect",
	"time_appconnect",
	"time_pretransfer",
	"time_redirect",
	"time_starttransfer",
	"time_total",
	"speed_download",
	"speed_upload",
	"remote_ip",
	"remote_port",
	"local_ip",
	"local_port",
}

// ParseMetrics deserializes curl's write-out JSON. The schema is fixed:
// a missing field or a wrong type is a fatal parse error, never a partial
// record.
func ParseMetrics(data []byte) (*Metrics, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing curl metrics: %w", err)
	}

	for _, field := range metricsFields {
		if _, ok := raw[field]; !ok {
			return nil, fmt.Errorf("parsing curl metrics: missing field %q", field)
		}
	}

	var m Metrics
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing curl metrics: %w", err)
	}
	return &m, nil
}

// PrettyJSON renders the record for the metrics-only output mode.
func (m *Metrics) PrettyJSON() (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding metrics: %w", err)
	}
	return string(data), nil
}
