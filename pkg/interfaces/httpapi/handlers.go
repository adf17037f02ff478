package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/rentalops/rentcore/pkg/application/dto"
	"github.com/rentalops/rentcore/pkg/domain/entities"
)

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// eventDiffHandler compares two revisions of an event.
// GET /eventi/{id}/diff?from=<ref>&to=<ref>
// Without from/to the two most recent revisions are compared.
func (s *Server) eventDiffHandler(w http.ResponseWriter, r *http.Request) {
	eventID, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)

	snaps, err := s.client.ListRevisions(r.Context(), eventID)
	if err != nil {
		s.log.Error("revision fetch failed", zap.Int64("event", eventID), zap.Error(err))
		http.Error(w, "revision store unavailable", http.StatusBadGateway)
		return
	}
	if len(snaps) < 2 {
		http.Error(w, "not enough revisions to compare", http.StatusNotFound)
		return
	}

	before := &snaps[len(snaps)-2]
	after := &snaps[len(snaps)-1]
	if fromStr, toStr := r.URL.Query().Get("from"), r.URL.Query().Get("to"); fromStr != "" && toStr != "" {
		from, err1 := strconv.ParseInt(fromStr, 10, 64)
		to, err2 := strconv.ParseInt(toStr, 10, 64)
		if err1 != nil || err2 != nil {
			http.Error(w, "from and to must be numeric refs", http.StatusBadRequest)
			return
		}
		before, after = findRef(snaps, from), findRef(snaps, to)
		if before == nil || after == nil {
			http.Error(w, "ref not found", http.StatusNotFound)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"evento": eventID,
		"from":   before.Ref,
		"to":     after.Ref,
		"diff":   s.diff.Compare(before, after),
	})
}

func findRef(snaps []entities.Snapshot, ref int64) *entities.Snapshot {
	for i := range snaps {
		if snaps[i].Ref == ref {
			return &snaps[i]
		}
	}
	return nil
}

// monthCoverageHandler builds the coverage index for a month.
// GET /calendario/mese?year=2024&month=3
func (s *Server) monthCoverageHandler(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		year = now.Year()
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		month = int(now.Month())
	}

	events, err := s.client.MonthEvents(r.Context(), year, month)
	if err != nil {
		s.log.Error("month fetch failed", zap.Int("year", year), zap.Int("month", month), zap.Error(err))
		http.Error(w, "event listing unavailable", http.StatusBadGateway)
		return
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	window := dto.Window{
		From: first.Format("2006-01-02"),
		To:   first.AddDate(0, 1, -1).Format("2006-01-02"),
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"slots": s.cfg.LocationSlots,
		"index": s.coverage.Index(events, window),
	})
}

// stockHandler returns the availability of a material plus its level bucket.
// GET /magazzino/{materialID}/stock?date=2024-03-10
func (s *Server) stockHandler(w http.ResponseWriter, r *http.Request) {
	materialID, _ := strconv.ParseInt(mux.Vars(r)["materialID"], 10, 64)

	av, err := s.client.Stock(r.Context(), materialID, r.URL.Query().Get("date"))
	if err != nil {
		s.log.Error("stock fetch failed", zap.Int64("material", materialID), zap.Error(err))
		http.Error(w, "stock service unavailable", http.StatusBadGateway)
		return
	}

	level := entities.ClassifyStock(av.Scorta, av.Disponibile, entities.StockThresholds{
		LowAbs:   s.cfg.StockLowAbs,
		LowRatio: s.cfg.StockLowRatio,
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"materiale":   materialID,
		"scorta":      av.Scorta,
		"prenotato":   av.Prenotato,
		"disponibile": av.Disponibile,
		"level":       level.String(),
	})
}
