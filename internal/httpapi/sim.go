package httpapi

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-flight/internal/registry"
	"github.com/vovakirdan/tui-flight/internal/replay"
	"github.com/vovakirdan/tui-flight/internal/snapshot"
)

type themeView struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Actor     string `json:"actor"`
	Ground    string `json:"ground"`
	Obstacles string `json:"obstacles"`
}

type simResponse struct {
	Seed  int64    `json:"seed"`
	Theme string   `json:"theme"`
	Score int      `json:"score"`
	Ticks int      `json:"ticks"`
	Phase string   `json:"phase"`
	Jumps []int    `json:"jumps"`
	Rows  []string `json:"rows"`
}

// simRequest is the parsed query of /sim and /sim.png.
type simRequest struct {
	seed  int64
	ticks int
	jumps []int
	theme registry.Theme
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	themes := registry.List()
	out := make([]themeView, 0, len(themes))
	for _, t := range themes {
		out = append(out, themeView{
			ID:        t.ID,
			Title:     t.Title,
			Actor:     string(t.Glyphs.Actor),
			Ground:    string(t.Glyphs.Ground),
			Obstacles: string(t.Glyphs.Obstacles),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) parseSim(q url.Values) (simRequest, error) {
	req := simRequest{ticks: DefaultTicks}

	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return req, fmt.Errorf("seed must be an integer")
		}
		req.seed = seed
	}

	if v := q.Get("ticks"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > MaxSimTicks {
			return req, fmt.Errorf("ticks must be an integer in 0..%d", MaxSimTicks)
		}
		req.ticks = n
	}

	jumps, err := parseTicks(q.Get("jumps"))
	if err != nil {
		return req, err
	}
	req.jumps = jumps

	themeID := q.Get("theme")
	if themeID == "" {
		themeID = s.theme
	}
	if themeID == "" {
		themeID = s.cfg.Get().Theme
	}
	theme, err := registry.Get(themeID)
	if err != nil {
		return req, fmt.Errorf("unknown theme %q", themeID)
	}
	req.theme = theme

	return req, nil
}

// parseTicks reads a comma-separated list of positive tick numbers.
func parseTicks(v string) ([]int, error) {
	if v == "" {
		return nil, nil
	}
	parts := strings.Split(v, ",")
	ticks := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("jumps must be a comma-separated list of positive integers")
		}
		ticks = append(ticks, n)
	}
	return ticks, nil
}

func (s *Server) simulate(req simRequest) replay.Report {
	p := s.cfg.Get().Params(req.theme.Glyphs)
	return replay.Simulate(p, req.seed, req.ticks, req.jumps)
}

func (s *Server) handleSim(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseSim(r.URL.Query())
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	rep := s.simulate(req)
	resp := simResponse{
		Seed:  req.seed,
		Theme: req.theme.ID,
		Score: rep.Score,
		Ticks: rep.Ticks,
		Phase: rep.Phase.String(),
		Jumps: rep.Jumps,
		Rows:  rep.Frame.Rows(),
	}
	if resp.Jumps == nil {
		resp.Jumps = []int{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSimPNG(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req, err := s.parseSim(q)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	scale := 1
	if v := q.Get("scale"); v != "" {
		scale, err = strconv.Atoi(v)
		if err != nil {
			badRequest(w, "scale must be an integer")
			return
		}
	}

	rep := s.simulate(req)
	img, err := snapshot.Scale(snapshot.Render(rep.Frame, snapshot.DefaultCellSize), scale)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := snapshot.EncodePNG(&buf, img); err != nil {
		s.logger.Error("png encode failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "encode_failed"})
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Flight-Score", strconv.Itoa(rep.Score))
	w.Header().Set("X-Flight-Phase", rep.Phase.String())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
