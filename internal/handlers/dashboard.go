package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"agilegame/internal/game"
	"agilegame/internal/scoring"
	"agilegame/internal/viewmodel"
	"agilegame/views/pages"
)

type DashboardHandler struct {
	store *game.Store
}

func NewDashboardHandler(store *game.Store) *DashboardHandler {
	return &DashboardHandler{store: store}
}

func (h *DashboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.dashboard)
}

func (h *DashboardHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	st := h.store.Snapshot()
	render(w, r, pages.Dashboard(viewmodel.Dashboard{
		Title:   "Agile Game",
		Status:  toStatusFragment(st),
		Results: toResultsFragment(st.IterationsData),
	}))
}

func toStatusFragment(st game.State) viewmodel.StatusFragment {
	return viewmodel.StatusFragment{
		CurrentIteration: st.CurrentIteration,
		MaxIterations:    game.MaxIterations,
		PlanNumber:       st.PlanNumber,
		NumberOfPlayers:  st.NumberOfPlayers,
		IsCounting:       st.IsCounting,
		BallCount:        st.BallCount,
		Finished:         len(st.IterationsData) >= game.MaxIterations,
	}
}

func toResultsFragment(results []game.IterationResult) viewmodel.ResultsFragment {
	rows := make([]viewmodel.ResultRow, 0, len(results))
	total := 0.0
	for _, res := range results {
		total += res.IPoints
		rows = append(rows, viewmodel.ResultRow{
			Iteration:   res.Iteration,
			Plan:        res.Plan,
			Actual:      res.Actual,
			Defects:     res.Defects,
			InProgress:  res.InProgress,
			Total:       res.Total,
			Delta:       res.Delta,
			IPoints:     formatPoints(res.IPoints),
			TeamPlayers: res.TeamPlayers,
		})
	}
	return viewmodel.ResultsFragment{
		Rows:        rows,
		TotalPoints: formatPoints(scoring.Round(total)),
	}
}

func formatPoints(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
