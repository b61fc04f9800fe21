package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// RechargeMetrics records recharge outcomes and revenue.
type RechargeMetrics struct {
	recharges *prometheus.CounterVec
	revenue   *prometheus.CounterVec
}

// NewRechargeMetrics registers the recharge metrics on the provided registerer.
func NewRechargeMetrics(reg prometheus.Registerer) *RechargeMetrics {
	if reg == nil {
		return &RechargeMetrics{}
	}
	recharges := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recharges_total",
		Help: "Recharge transactions, labelled by operator and status.",
	}, []string{"operator", "status"})
	revenue := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recharge_revenue_total",
		Help: "Revenue from completed recharges, labelled by operator.",
	}, []string{"operator"})
	reg.MustRegister(recharges, revenue)
	return &RechargeMetrics{
		recharges: recharges,
		revenue:   revenue,
	}
}

// ObserveRecharge records a recharge outcome.
func (r *RechargeMetrics) ObserveRecharge(operator, status string, amount int) {
	if r == nil || r.recharges == nil {
		return
	}
	r.recharges.WithLabelValues(labelOrUnknown(operator), labelOrUnknown(status)).Inc()
	if status == "completed" {
		r.revenue.WithLabelValues(labelOrUnknown(operator)).Add(float64(amount))
	}
}

func labelOrUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
