package ui

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// StartProfiler serves pprof on its own port so profiling traffic never
// mixes with dashboard traffic. Runs until the process exits.
func StartProfiler(port string) {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Mount("/debug", middleware.Profiler())

	log.Printf("[Profiler] pprof listening on :%s/debug", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Printf("[Profiler] server stopped: %v", err)
	}
}
