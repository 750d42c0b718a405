package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa las métricas Prometheus de la API: tráfico HTTP y duración de las
// operaciones contra el almacén.
type Metrics struct {
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	DBQueryDuration *prometheus.HistogramVec
	DBErrors        *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registra las métricas en reg. Si reg es nil se crea un registro propio con los
// collectors de proceso y runtime de Go.
func New(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m := &Metrics{
		HTTPRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "employee_api_http_requests_total",
			Help: "Total de peticiones HTTP atendidas.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "employee_api_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "employee_api_db_query_duration_seconds",
			Help:    "Duración de las operaciones contra la base de datos.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}), // operation: 'insert', 'find_one', 'find', 'update', 'delete'
		DBErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "employee_api_db_errors_total",
			Help: "Operaciones contra la base de datos que fallaron.",
		}, []string{"operation"}),
		gatherer: reg,
	}
	return m
}

// Handler expone las métricas en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
