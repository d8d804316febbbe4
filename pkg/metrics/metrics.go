// Package metrics slot rezervasyon akışı için Prometheus sayaçlarını tutar.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	// SlotReservations rezervasyon denemelerini sonuca göre sayar.
	// result: success, capacity_full, not_bookable, error
	SlotReservations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartbite_slot_reservations_total",
			Help: "Slot rezervasyon denemeleri (sonuca göre).",
		},
		[]string{"result"},
	)

	// SlotReleases kapasite iade işlemlerini sayar.
	// result: released, noop
	SlotReleases = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartbite_slot_releases_total",
			Help: "Slot kapasite iadeleri (sonuca göre).",
		},
		[]string{"result"},
	)

	// ScheduledOrders planlı sipariş yaşam döngüsü olaylarını sayar.
	// event: created, rescheduled, cancelled
	ScheduledOrders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartbite_scheduled_orders_total",
			Help: "Planlı sipariş olayları (olay türüne göre).",
		},
		[]string{"event"},
	)
)

// Register sayaçları varsayılan kayda ekler. Birden çok çağrı güvenlidir.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(SlotReservations, SlotReleases, ScheduledOrders)
	})
}
