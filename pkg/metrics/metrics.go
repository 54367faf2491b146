// Package metrics exposes allocation activity to Prometheus: per-hour
// committed energy, submission outcomes, and cumulative carbon.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/greenops/carbon-scheduler/pkg/models"
)

var (
	slotEnergyGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "carbon_sched_slot_energy_mwh",
			Help: "Committed energy per hourly slot in MWh.",
		},
		[]string{"hour"},
	)
	submissionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carbon_sched_submissions_total",
			Help: "Job submissions by outcome (allocated, infeasible, invalid).",
		},
		[]string{"outcome"},
	)
	carbonCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "carbon_sched_carbon_kg_total",
			Help: "Total carbon committed across all allocated jobs in kgCO2.",
		},
	)
)

func init() {
	prometheus.MustRegister(slotEnergyGauge)
	prometheus.MustRegister(submissionCounter)
	prometheus.MustRegister(carbonCounter)
}

// RecordAllocation counts a successful submission and its carbon.
func RecordAllocation(rec *models.AllocationRecord) {
	submissionCounter.WithLabelValues("allocated").Inc()
	carbonCounter.Add(rec.TotalCarbon)
}

// RecordRejection counts a failed submission by outcome.
func RecordRejection(outcome string) {
	submissionCounter.WithLabelValues(outcome).Inc()
}

// UpdateSlots refreshes the per-hour energy gauges from a snapshot.
func UpdateSlots(slots []models.SlotSnapshot) {
	for _, s := range slots {
		slotEnergyGauge.WithLabelValues(strconv.Itoa(s.Hour)).Set(s.Energy)
	}
}

// StartServer serves /metrics on the given address in the background.
func StartServer(addr string) {
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		fmt.Printf("[Prometheus] Starting metrics server on %s\n", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			fmt.Println("Error starting Prometheus server:", err)
		}
	}()
}
