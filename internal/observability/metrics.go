package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	framesEncoded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jjyctl",
			Subsystem: "transmit",
			Name:      "frames_total",
			Help:      "Minute frames encoded for transmission.",
		},
		[]string{"variant"},
	)
	symbolsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jjyctl",
			Subsystem: "transmit",
			Name:      "symbols_total",
			Help:      "Timecode symbols transmitted.",
		},
		[]string{"kind"},
	)
	scheduleSlack = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "jjyctl",
			Subsystem: "transmit",
			Name:      "schedule_slack_seconds",
			Help:      "Idle time left in the second slot after the last pulse.",
		},
	)
	timeFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jjyctl",
			Subsystem: "timesync",
			Name:      "fetches_total",
			Help:      "Network time fetch outcomes.",
		},
		[]string{"success"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jjyctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests against the status listener.",
		},
		[]string{"method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(framesEncoded, symbolsSent, scheduleSlack, timeFetches, httpRequests)
	})
}

func RecordFrameEncoded(variant string) {
	RegisterMetrics()
	framesEncoded.WithLabelValues(variant).Inc()
}

func RecordSymbolSent(kind string) {
	RegisterMetrics()
	symbolsSent.WithLabelValues(kind).Inc()
}

func RecordScheduleSlack(slack time.Duration) {
	RegisterMetrics()
	scheduleSlack.Set(slack.Seconds())
}

func RecordTimeFetch(success bool) {
	RegisterMetrics()
	timeFetches.WithLabelValues(strconv.FormatBool(success)).Inc()
}

func RecordHTTPRequest(method, path string, status int, _ time.Duration) {
	RegisterMetrics()
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}
