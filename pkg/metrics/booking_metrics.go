package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookingd_reservations_created_total",
		Help: "Reservations accepted into the ledger as pending.",
	})
	BookingConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookingd_reservation_conflicts_total",
		Help: "Create attempts rejected because the room was already booked.",
	})
	AdmissionRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookingd_admission_rejected_total",
		Help: "Create attempts turned away by the admission limiter.",
	})
	AdmissionInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bookingd_admission_in_flight",
		Help: "Create attempts currently holding an admission slot.",
	})
	DecisionsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookingd_decisions_recorded_total",
		Help: "Approve/reject decisions recorded, by outcome.",
	}, []string{"outcome"})
	TxRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookingd_store_tx_retries_total",
		Help: "Transparent retries of the reservation transaction on transient store contention.",
	})
)
