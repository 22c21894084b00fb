package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PromRecorder records matching outcomes as Prometheus metrics.
type PromRecorder struct {
	validations *prometheus.CounterVec
	errors      *prometheus.CounterVec
	batch       prometheus.Histogram
	batchOrders prometheus.Counter
	compliance  *prometheus.GaugeVec
}

// statusValue encodes audit statuses for the compliance gauge.
var statusValue = map[string]float64{
	"passed":  0,
	"warning": 1,
	"failed":  2,
}

// NewPromRecorder registers matching metrics on the default Prometheus registerer.
func NewPromRecorder() (*PromRecorder, error) {
	return NewPromRecorderWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromRecorderWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromRecorderWithRegistry(reg prometheus.Registerer) (*PromRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	validations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dfm_order_validations_total",
		Help: "Order/route/truck validations by outcome",
	}, []string{"valid"})
	errs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dfm_validation_errors_total",
		Help: "Validation errors by kind",
	}, []string{"kind"})
	batch := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dfm_batch_duration_seconds",
		Help:    "Duration of order batch processing",
		Buckets: prometheus.DefBuckets,
	})
	batchOrders := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dfm_batch_orders_total",
		Help: "Orders processed through batch matching",
	})
	compliance := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dfm_compliance_status",
		Help: "Latest audit status per requirement (0 passed, 1 warning, 2 failed)",
	}, []string{"requirement"})

	var err error
	if validations, err = register(reg, validations); err != nil {
		return nil, err
	}
	if errs, err = register(reg, errs); err != nil {
		return nil, err
	}
	if batch, err = register(reg, batch); err != nil {
		return nil, err
	}
	if batchOrders, err = register(reg, batchOrders); err != nil {
		return nil, err
	}
	if compliance, err = register(reg, compliance); err != nil {
		return nil, err
	}

	return &PromRecorder{
		validations: validations,
		errors:      errs,
		batch:       batch,
		batchOrders: batchOrders,
		compliance:  compliance,
	}, nil
}

// register reuses an already registered collector of the same shape.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (r *PromRecorder) RecordValidation(valid bool, kinds []string) {
	r.validations.WithLabelValues(strconv.FormatBool(valid)).Inc()
	for _, k := range kinds {
		r.errors.WithLabelValues(k).Inc()
	}
}

func (r *PromRecorder) RecordBatch(orders int, d time.Duration) {
	r.batch.Observe(d.Seconds())
	r.batchOrders.Add(float64(orders))
}

func (r *PromRecorder) RecordCompliance(requirementID string, status string) {
	v, ok := statusValue[status]
	if !ok {
		return
	}
	r.compliance.WithLabelValues(requirementID).Set(v)
}
