package health

import (
	"encoding/json"
	"net/http"
	"runtime"
)

// VersionInfo is the build metadata served at /version.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// statusEndpoint adapts a status function into a GET/HEAD JSON endpoint.
type statusEndpoint func(r *http.Request) (int, any)

func (p statusEndpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code, body := p(r)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	if r.Method == http.MethodGet {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// LivenessHandler serves /health. It always answers 200 while the process
// can serve HTTP:
//
//	{"status":"ok","timestamp":"2026-10-19T10:30:00Z"}
func (c *Checker) LivenessHandler() http.HandlerFunc {
	return statusEndpoint(func(r *http.Request) (int, any) {
		return http.StatusOK, c.CheckLiveness(r.Context())
	}).ServeHTTP
}

// ReadinessHandler serves /ready: 200 when every check passes, 503 otherwise.
//
//	{
//	    "status": "not_ready",
//	    "reason": "provider credential is not configured",
//	    "checks": {
//	        "credential": {"status": "unhealthy", "message": "provider credential is not configured"}
//	    },
//	    "timestamp": "2026-10-19T10:30:00Z"
//	}
func (c *Checker) ReadinessHandler() http.HandlerFunc {
	return statusEndpoint(func(r *http.Request) (int, any) {
		status := c.CheckReadiness(r.Context())
		if status.Status != StatusReady {
			return http.StatusServiceUnavailable, status
		}
		return http.StatusOK, status
	}).ServeHTTP
}

// VersionHandler serves info with GoVersion filled from the running binary.
func VersionHandler(info VersionInfo) http.HandlerFunc {
	info.GoVersion = runtime.Version()
	return statusEndpoint(func(*http.Request) (int, any) {
		return http.StatusOK, info
	}).ServeHTTP
}

// Register mounts /health, /ready and /version on mux.
func Register(mux *http.ServeMux, checker *Checker, info VersionInfo) {
	mux.Handle("/health", checker.LivenessHandler())
	mux.Handle("/ready", checker.ReadinessHandler())
	mux.Handle("/version", VersionHandler(info))
}
