package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds every application metric of the record service.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec

	// Codec layer
	DecodeTotal         CounterVec
	DecodeDuration      HistogramVec
	DecodeWarningsTotal CounterVec
	EncodeTotal         CounterVec
	EncodeDuration      HistogramVec
	ValidateTotal       CounterVec

	// Record data shape
	RecordDataPoints HistogramVec
	RecordDataGroups HistogramVec

	// Infrastructure
	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec
	DBQueryDuration  HistogramVec
	StorageOpsTotal  CounterVec

	ErrorsTotal CounterVec
}

var (
	DefaultHTTPDurationBuckets  = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultCodecDurationBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 5}
	DefaultDataPointBuckets     = []float64{1, 10, 50, 100, 500, 1000, 5000, 10000}
)

// NewAppMetrics registers all service metrics against the collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")

	m.DecodeTotal = collector.RegisterCounter("record_decode_total", "Record decode attempts", "status")
	m.DecodeDuration = collector.RegisterHistogram("record_decode_duration_seconds", "Record decode duration", DefaultCodecDurationBuckets)
	m.DecodeWarningsTotal = collector.RegisterCounter("record_decode_warnings_total", "Advisory warnings produced while decoding")
	m.EncodeTotal = collector.RegisterCounter("record_encode_total", "Record encode attempts", "status")
	m.EncodeDuration = collector.RegisterHistogram("record_encode_duration_seconds", "Record encode duration", DefaultCodecDurationBuckets)
	m.ValidateTotal = collector.RegisterCounter("record_validate_total", "Structural validations", "result")

	m.RecordDataPoints = collector.RegisterHistogram("record_data_points", "Data points per decoded record", DefaultDataPointBuckets)
	m.RecordDataGroups = collector.RegisterHistogram("record_data_groups", "Data groups per decoded record", []float64{1, 2, 3, 5, 10, 20})

	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Cache misses", "cache")
	m.DBQueryDuration = collector.RegisterHistogram("db_query_duration_seconds", "Database query duration", DefaultCodecDurationBuckets, "operation")
	m.StorageOpsTotal = collector.RegisterCounter("storage_ops_total", "Object storage operations", "operation", "status")

	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Total errors", "component", "code")

	return m
}

// RecordHTTPRequest observes a completed HTTP request.
func RecordHTTPRequest(m *AppMetrics, method, path string, statusCode int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordDecode observes one decode attempt and its outcome.
func RecordDecode(m *AppMetrics, success bool, warnings int, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	m.DecodeTotal.WithLabelValues(status).Inc()
	m.DecodeDuration.WithLabelValues().Observe(duration.Seconds())
	if warnings > 0 {
		m.DecodeWarningsTotal.WithLabelValues().Add(float64(warnings))
	}
}

// RecordEncode observes one encode attempt and its outcome.
func RecordEncode(m *AppMetrics, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	m.EncodeTotal.WithLabelValues(status).Inc()
	m.EncodeDuration.WithLabelValues().Observe(duration.Seconds())
}

// RecordValidation observes one structural validation.
func RecordValidation(m *AppMetrics, valid bool) {
	result := "valid"
	if !valid {
		result = "invalid"
	}
	m.ValidateTotal.WithLabelValues(result).Inc()
}

// RecordCacheAccess observes a cache lookup.
func RecordCacheAccess(m *AppMetrics, cache string, hit bool) {
	if hit {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		m.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}

// RecordError counts an error by component and code.
func RecordError(m *AppMetrics, component, code string) {
	m.ErrorsTotal.WithLabelValues(component, code).Inc()
}
