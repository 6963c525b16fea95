package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/watsonshih/nsysu-isi-ae/internal/metrics"
)

type HTTPServer struct {
	srv *http.Server
}

// StartHTTP serves /healthz and /metrics for the mirror daemon and shuts
// down when ctx is cancelled.
func StartHTTP(ctx context.Context, addr string, a *App) *HTTPServer {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "ok students=%d activities=%d years=%d",
			len(a.cache.Students()), len(a.cache.Activities()), len(a.cache.AdmissionYears()))
	})

	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		_ = srv.ListenAndServe()
	}()

	go func() {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
	}()

	return &HTTPServer{srv: srv}
}
