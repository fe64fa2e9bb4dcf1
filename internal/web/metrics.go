package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checkinsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minikadimlar_checkins_total",
		Help: "Students toggled to present.",
	})
	checkoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minikadimlar_checkouts_total",
		Help: "Students toggled to absent.",
	})
	loginFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "minikadimlar_login_failures_total",
		Help: "Rejected operator logins.",
	})
)
