package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/fulmenhq/gofulmen/crucible"

	apperrors "github.com/paceline/paceline/internal/errors"
)

// Version info is injected from main via SetVersionInfo.
var (
	appVersion   = "dev"
	appCommit    = "unknown"
	appBuildDate = "unknown"
)

// SetVersionInfo sets the build metadata reported by /version.
func SetVersionInfo(version, commit, buildDate string) {
	appVersion = version
	appCommit = commit
	appBuildDate = buildDate
}

// HealthResponse is the /health payload.
type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	status := "healthy"

	if s.store != nil && s.store.DB != nil {
		if err := s.store.DB.PingContext(r.Context()); err != nil {
			checks["store"] = "unhealthy"
			status = "degraded"
		} else {
			checks["store"] = "healthy"
		}
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    status,
		Version:   appVersion,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}

// VersionResponse is the /version payload.
type VersionResponse struct {
	App          AppInfo     `json:"app"`
	Dependencies DepInfo     `json:"dependencies"`
	Runtime      RuntimeInfo `json:"runtime"`
}

type AppInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Commit    string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}

type DepInfo struct {
	Gofulmen string `json:"gofulmen"`
	Crucible string `json:"crucible"`
}

type RuntimeInfo struct {
	Platform      string `json:"platform"`
	NumCPU        int    `json:"num_cpu"`
	NumGoroutines int    `json:"num_goroutines"`
}

func versionHandler(w http.ResponseWriter, r *http.Request) {
	version := crucible.GetVersion()

	writeJSON(w, http.StatusOK, VersionResponse{
		App: AppInfo{
			Name:      "paceline",
			Version:   appVersion,
			Commit:    appCommit,
			BuildDate: appBuildDate,
			GoVersion: runtime.Version(),
		},
		Dependencies: DepInfo{
			Gofulmen: version.Gofulmen,
			Crucible: version.Crucible,
		},
		Runtime: RuntimeInfo{
			Platform:      runtime.GOOS + "/" + runtime.GOARCH,
			NumCPU:        runtime.NumCPU(),
			NumGoroutines: runtime.NumGoroutine(),
		},
	})
}

// UsageResponse is the /usage payload.
type UsageResponse struct {
	ShortUsage int       `json:"short_usage"`
	ShortLimit int       `json:"short_limit"`
	LongUsage  int       `json:"long_usage"`
	LongLimit  int       `json:"long_limit"`
	ReadOnly   bool      `json:"read_only"`
	ObservedAt time.Time `json:"observed_at"`
}

func (s *Server) usageHandler(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		apperrors.RespondWithEnvelope(w, r, apperrors.NewInternalError("usage store is not configured"))
		return
	}

	entry, err := s.store.LatestUsage(r.Context())
	if err != nil {
		apperrors.RespondWithEnvelope(w, r, apperrors.NewInternalError(err.Error()))
		return
	}
	if entry == nil {
		apperrors.RespondWithEnvelope(w, r, apperrors.NewNotFoundError("no usage has been recorded yet"))
		return
	}

	writeJSON(w, http.StatusOK, UsageResponse{
		ShortUsage: entry.Rate.ShortUsage,
		ShortLimit: entry.Rate.ShortLimit,
		LongUsage:  entry.Rate.LongUsage,
		LongLimit:  entry.Rate.LongLimit,
		ReadOnly:   entry.ReadOnly,
		ObservedAt: entry.ObservedAt,
	})
}

func (s *Server) athleteHandler(w http.ResponseWriter, r *http.Request) {
	if s.engine == nil {
		apperrors.RespondWithEnvelope(w, r, apperrors.NewInternalError("api client is not configured"))
		return
	}

	athlete, err := s.engine.Athlete(r.Context())
	if err != nil {
		apperrors.RespondWithEnvelope(w, r, apperrors.FromAPIError(r.Context(), err))
		return
	}

	writeJSON(w, http.StatusOK, athlete)
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
