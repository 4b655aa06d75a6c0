package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// GaugeValue retrieves the current float64 value of a Prometheus GaugeVec
// metric for the given set of labels. Returns an error if the metric cannot
// be parsed. Test helper shared by package tests across the module.
func GaugeValue(metric *prometheus.GaugeVec, labels map[string]string) (float64, error) {
	c := make(chan prometheus.Metric, 1)
	metric.With(labels).Collect(c)

	m := <-c

	var out dto.Metric
	if err := m.Write(&out); err != nil {
		return 0, fmt.Errorf("failed to write metric: %w", err)
	}
	if out.Gauge == nil {
		return 0, fmt.Errorf("metric is not a gauge")
	}
	return out.Gauge.GetValue(), nil
}

// PlainGaugeValue reads a label-less gauge.
func PlainGaugeValue(metric prometheus.Gauge) (float64, error) {
	c := make(chan prometheus.Metric, 1)
	metric.Collect(c)

	m := <-c

	var out dto.Metric
	if err := m.Write(&out); err != nil {
		return 0, fmt.Errorf("failed to write metric: %w", err)
	}
	if out.Gauge == nil {
		return 0, fmt.Errorf("metric is not a gauge")
	}
	return out.Gauge.GetValue(), nil
}
