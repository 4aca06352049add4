package relay

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"autistnet/internal/domain"
	"autistnet/internal/metrics"
)

// maxNoticeBytes bounds a single request body.
const maxNoticeBytes = 64 << 10

// Server keeps moderation notices in memory. State is lost on exit.
type Server struct {
	mu      sync.RWMutex
	notices map[domain.ModerationKind][]domain.ModerationNotice

	now     func() time.Time
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewServer returns an empty Server. m may be nil.
func NewServer(logger *slog.Logger, m *metrics.Metrics) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		notices: make(map[domain.ModerationKind][]domain.ModerationNotice),
		now:     time.Now,
		logger:  logger,
		metrics: m,
	}
}

// Handler returns the relay routes wrapped in the access log.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /reports", s.enqueue(domain.ModerationReport))
	mux.HandleFunc("POST /blocks", s.enqueue(domain.ModerationBlock))
	mux.HandleFunc("POST /verifications", s.enqueue(domain.ModerationVerification))
	mux.HandleFunc("GET /reports", s.listReports)
	return s.accessLog(mux)
}

// Count returns how many notices of kind are held.
func (s *Server) Count(kind domain.ModerationKind) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notices[kind])
}

func (s *Server) enqueue(kind domain.ModerationKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var n domain.ModerationNotice
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxNoticeBytes)).Decode(&n); err != nil {
			http.Error(w, "bad notice: "+err.Error(), http.StatusBadRequest)
			return
		}
		if n.Kind != "" && n.Kind != kind {
			http.Error(w, "notice kind does not match endpoint", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(n.Target.String()) == "" {
			http.Error(w, "target is required", http.StatusBadRequest)
			return
		}
		n.Kind = kind
		if n.At.IsZero() {
			n.At = s.now()
		}

		s.mu.Lock()
		s.notices[kind] = append(s.notices[kind], n)
		s.mu.Unlock()

		s.logger.Info("Notice received", slog.String("kind", string(kind)),
			slog.String("actor", n.Actor.String()), slog.String("target", n.Target.String()))
		w.WriteHeader(http.StatusAccepted)
	}
}

func (s *Server) listReports(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	s.mu.RLock()
	reports := s.notices[domain.ModerationReport]
	if limit > 0 && limit < len(reports) {
		reports = reports[len(reports)-limit:]
	}
	out := make([]domain.ModerationNotice, len(reports))
	copy(out, reports)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// accessLog records method, path, remote, status, bytes and duration.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		endpoint := r.Pattern
		if endpoint == "" {
			endpoint = "unmatched"
		}
		s.metrics.ObserveRelayRequest(endpoint, rec.status)
		s.logger.Info("HTTP request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
			slog.Int("status", rec.status),
			slog.Int("bytes", rec.bytes),
			slog.Duration("duration", time.Since(start)))
	})
}
