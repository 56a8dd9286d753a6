package api

import "github.com/prometheus/client_golang/prometheus"

// checkinsTotal tallies successful check-ins by entry method: "manual"
// for the console form, "rfid" for the scanner endpoint.
var checkinsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "eventtrack_checkins_total",
	Help: "Successful attendance check-ins by entry method.",
}, []string{"method"})

func init() {
	prometheus.MustRegister(checkinsTotal)
}
