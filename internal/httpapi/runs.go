package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/tui-flight/internal/registry"
	"github.com/vovakirdan/tui-flight/internal/replay"
	"github.com/vovakirdan/tui-flight/internal/storage"
)

type runView struct {
	ID        int64     `json:"id"`
	Player    string    `json:"player"`
	Seed      int64     `json:"seed"`
	Theme     string    `json:"theme"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Ticks     int       `json:"ticks"`
	Score     int       `json:"score"`
	Outcome   string    `json:"outcome"`
	Jumps     []int     `json:"jumps,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type runDetail struct {
	Run        runView  `json:"run"`
	Match      bool     `json:"match"`
	Mismatches []string `json:"mismatches,omitempty"`
	Rows       []string `json:"rows"`
}

func toRunView(r storage.RunRecord) runView {
	return runView{
		ID:        r.ID,
		Player:    r.Player,
		Seed:      r.Seed,
		Theme:     r.Theme,
		Width:     r.Width,
		Height:    r.Height,
		Ticks:     r.Ticks,
		Score:     r.Score,
		Outcome:   r.Outcome,
		Jumps:     r.Jumps,
		CreatedAt: r.CreatedAt,
	}
}

// handleRuns lists recent runs, newest first.
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit := storage.DefaultRecentLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 500 {
			badRequest(w, "limit must be an integer in 1..500")
			return
		}
		limit = n
	}

	runs, err := s.store.RecentRuns(limit)
	if err != nil {
		s.logger.Error("list runs", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query_failed"})
		return
	}

	out := make([]runView, 0, len(runs))
	for _, run := range runs {
		out = append(out, toRunView(run))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleRun returns one run with its replay verification.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		badRequest(w, "id must be an integer")
		return
	}

	rec, err := s.store.GetRun(id)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "run_not_found"})
		return
	}
	if err != nil {
		s.logger.Error("get run", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query_failed"})
		return
	}

	theme, err := registry.Get(rec.Theme)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "unknown_theme"})
		return
	}

	rep, err := replay.Run(rec, theme.Glyphs)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, runDetail{
		Run:        toRunView(rec),
		Match:      rep.Match,
		Mismatches: rep.Mismatches,
		Rows:       rep.Frame.Rows(),
	})
}
