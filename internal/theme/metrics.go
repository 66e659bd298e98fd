package theme

import "github.com/prometheus/client_golang/prometheus"

var (
	loadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schooldesk_theme_loads_total",
			Help: "Theme loads by the source that supplied the theme.",
		},
		[]string{"source"},
	)
	savesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schooldesk_theme_saves_total",
			Help: "Theme saves and resets by outcome.",
		},
		[]string{"kind", "result"},
	)
	remoteErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schooldesk_theme_remote_errors_total",
			Help: "Failed calls to the upstream theme API.",
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(loadsTotal, savesTotal, remoteErrors)
}
