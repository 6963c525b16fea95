package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RemoteReads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ae", Name: "remote_reads_total", Help: "Collection reads against the document store",
	}, []string{"collection"})
	RemoteWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ae", Name: "remote_writes_total", Help: "Writes against the document store",
	}, []string{"collection", "op"})
	RemoteErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ae", Name: "remote_errors_total", Help: "Failed document store operations",
	}, []string{"collection"})
	ImportRows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ae", Name: "import_rows_total", Help: "Spreadsheet import rows by outcome",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(RemoteReads, RemoteWrites, RemoteErrors, ImportRows)
}

func Handler() http.Handler { return promhttp.Handler() }
