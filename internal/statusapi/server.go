// Package statusapi exposes the optional HTTP status listener.
//
// It is read-only and never touches the control line; the transmitter's
// dynamic counters are exported through the prometheus registry.
package statusapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/mkondo/jjyctl/internal/observability"
)

// Info is the static device description reported by /status.
type Info struct {
	App           string `json:"app"`
	CarrierFreqHz int    `json:"carrier_freq_hz"`
	NTPHost       string `json:"ntp_host"`
	UTCOffset     string `json:"utc_offset"`
}

type Server struct {
	info    Info
	started time.Time
	router  *gin.Engine
}

func New(info Info) *Server {
	observability.RegisterMetrics()
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger))
	r.Use(observability.RequestMetricsMiddleware())

	s := &Server{
		info:    info,
		started: time.Now(),
		router:  r,
	}
	r.GET("/healthz", s.handleHealthz)
	r.GET("/status", s.handleStatus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return s
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"app":             s.info.App,
		"carrier_freq_hz": s.info.CarrierFreqHz,
		"ntp_host":        s.info.NTPHost,
		"utc_offset":      s.info.UTCOffset,
		"uptime":          time.Since(s.started).Truncate(time.Second).String(),
	})
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Serve blocks on the listener; run it on its own goroutine.
func (s *Server) Serve(addr string) error {
	return s.router.Run(addr)
}
