package reports

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/WardLink/WL-Backend/internal/cache"
)

type dataResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

type listResponse struct {
	Status        string         `json:"status"`
	Data          any            `json:"data"`
	Total         int64          `json:"total"`
	Page          int            `json:"page"`
	Limit         int            `json:"limit"`
	TotalPages    int64          `json:"totalPages"`
	FilterOptions *FilterOptions `json:"filterOptions,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[reports] Failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"status": "error", "message": message})
}

func bypassCache(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Cache-Control"), "no-cache")
}

// respondCached serves the cached body when present, otherwise builds the
// payload, stores it, and serves it. X-Cache tells clients which path ran. A
// Cache-Control: no-cache request skips the lookup but still refreshes the
// stored entry.
func (s *Service) respondCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, build func() (any, error)) {
	ctx := r.Context()

	if !bypassCache(r) {
		if raw, ok := s.Cache.Get(ctx, key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.Write(raw)
			return
		}
	}

	payload, err := build()
	if err != nil {
		log.Printf("[reports] %s: %v", key, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.Cache.Set(ctx, key, raw, ttl)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.Write(raw)
}

func parsePaging(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func parseUintParam(r *http.Request, name string) (uint, bool) {
	v, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

func totalPages(total int64, limit int) int64 {
	return (total + int64(limit) - 1) / int64(limit)
}

func (s *Service) WardLeadersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := LeaderFilters{
		Municipality: q.Get("municipality"),
		Barangay:     q.Get("barangay"),
		Name:         q.Get("name"),
	}
	page, limit := parsePaging(r)

	key := cacheKey("ward-leaders", map[string]string{
		"municipality": f.Municipality,
		"barangay":     f.Barangay,
		"name":         f.Name,
		"page":         strconv.Itoa(page),
		"limit":        strconv.Itoa(limit),
	})
	s.respondCached(w, r, key, cache.TTLMedium, func() (any, error) {
		rows, total, err := s.ListWardLeaders(r.Context(), f, page, limit)
		if err != nil {
			return nil, err
		}
		opts, err := s.filterOptions(r.Context(), true)
		if err != nil {
			return nil, err
		}
		return listResponse{
			Status: "success", Data: rows,
			Total: total, Page: page, Limit: limit, TotalPages: totalPages(total, limit),
			FilterOptions: &opts,
		}, nil
	})
}

func (s *Service) WardLeaderHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUintParam(r, "leaderId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Valid leader ID is required")
		return
	}

	detail, err := s.GetWardLeader(r.Context(), id)
	if err != nil {
		log.Printf("[reports] Fetch ward leader %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if detail == nil {
		writeError(w, http.StatusNotFound, "Ward leader not found")
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Status: "success", Data: detail})
}

func (s *Service) UpdateWardLeaderPrintStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUintParam(r, "leaderId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Valid leader ID is required")
		return
	}

	var body struct {
		IsPrinted *int `json:"is_printed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.IsPrinted == nil {
		writeError(w, http.StatusBadRequest, "is_printed is required")
		return
	}
	if *body.IsPrinted != 0 && *body.IsPrinted != 1 {
		writeError(w, http.StatusBadRequest, "is_printed must be 0 or 1")
		return
	}

	count, err := s.UpdateWardLeaderPrintStatus(r.Context(), id, *body.IsPrinted)
	if err != nil {
		log.Printf("[reports] Update print status for leader %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Failed to update print status")
		return
	}
	if count == 0 {
		writeError(w, http.StatusNotFound, "Ward leader not found")
		return
	}

	s.invalidate(r.Context(), wardLeaderCachePatterns...)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Print status updated successfully",
		"data":    map[string]any{"v_id": id, "is_printed": *body.IsPrinted},
	})
}

func (s *Service) HouseholdsForLeaderHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUintParam(r, "leaderId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Valid leader ID is required")
		return
	}

	key := cacheKey("leader:households", map[string]string{"id": strconv.FormatUint(uint64(id), 10)})
	s.respondCached(w, r, key, cache.TTLMedium, func() (any, error) {
		rows, err := s.ListHouseholdsForLeader(r.Context(), id)
		if err != nil {
			return nil, err
		}
		return dataResponse{Status: "success", Data: rows}, nil
	})
}

func (s *Service) HouseholdsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := HouseholdReportFilters{
		Municipality: q.Get("municipality"),
		Barangay:     q.Get("barangay"),
		Name:         q.Get("name"),
		SortBy:       q.Get("sortBy"),
		SortOrder:    q.Get("sortOrder"),
	}
	page, limit := parsePaging(r)

	key := cacheKey("households", map[string]string{
		"municipality": f.Municipality,
		"barangay":     f.Barangay,
		"name":         f.Name,
		"sortBy":       f.SortBy,
		"sortOrder":    f.SortOrder,
		"page":         strconv.Itoa(page),
		"limit":        strconv.Itoa(limit),
	})
	s.respondCached(w, r, key, cache.TTLMedium, func() (any, error) {
		rows, total, err := s.ListHouseholds(r.Context(), f, page, limit)
		if err != nil {
			return nil, err
		}
		opts, err := s.filterOptions(r.Context(), true)
		if err != nil {
			return nil, err
		}
		return listResponse{
			Status: "success", Data: rows,
			Total: total, Page: page, Limit: limit, TotalPages: totalPages(total, limit),
			FilterOptions: &opts,
		}, nil
	})
}

func (s *Service) HouseholdMembersHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUintParam(r, "householdId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Valid household ID is required")
		return
	}

	key := cacheKey("household:members", map[string]string{"id": strconv.FormatUint(uint64(id), 10)})
	s.respondCached(w, r, key, cache.TTLLong, func() (any, error) {
		rows, found, err := s.ListHouseholdMembers(r.Context(), id)
		if err != nil {
			return nil, err
		}
		if !found {
			return dataResponse{Status: "success", Data: []HouseholdMemberRow{}}, nil
		}
		return dataResponse{Status: "success", Data: rows}, nil
	})
}

func (s *Service) CoordinatorsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := LeaderFilters{
		Municipality: q.Get("municipality"),
		Barangay:     q.Get("barangay"),
		Name:         q.Get("name"),
	}
	page, limit := parsePaging(r)

	key := cacheKey("barangay-coordinators", map[string]string{
		"municipality": f.Municipality,
		"barangay":     f.Barangay,
		"name":         f.Name,
		"page":         strconv.Itoa(page),
		"limit":        strconv.Itoa(limit),
	})
	s.respondCached(w, r, key, cache.TTLMedium, func() (any, error) {
		rows, total, err := s.ListCoordinators(r.Context(), f, page, limit)
		if err != nil {
			return nil, err
		}
		opts, err := s.filterOptions(r.Context(), false)
		if err != nil {
			return nil, err
		}
		return listResponse{
			Status: "success", Data: rows,
			Total: total, Page: page, Limit: limit, TotalPages: totalPages(total, limit),
			FilterOptions: &opts,
		}, nil
	})
}

func (s *Service) CoordinatorWardLeadersHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUintParam(r, "coordinatorId")
	if !ok {
		writeError(w, http.StatusBadRequest, "Valid coordinator ID is required")
		return
	}

	rows, found, err := s.ListWardLeadersForCoordinator(r.Context(), id)
	if err != nil {
		log.Printf("[reports] Ward leaders for coordinator %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Barangay coordinator not found")
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Status: "success", Data: rows})
}

func parsePrintFilters(r *http.Request) PrintFilters {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	return PrintFilters{
		Municipality: q.Get("municipality"),
		Barangay:     q.Get("barangay"),
		PurokSt:      q.Get("purok_st"),
		Limit:        limit,
	}
}

func printCacheKey(endpoint string, f PrintFilters) string {
	return cacheKey(endpoint, map[string]string{
		"municipality": f.Municipality,
		"barangay":     f.Barangay,
		"purok_st":     f.PurokSt,
		"limit":        strconv.Itoa(clampPrintLimit(f.Limit)),
	})
}

func (s *Service) PrintingHouseholdsHandler(w http.ResponseWriter, r *http.Request) {
	f := parsePrintFilters(r)
	s.respondCached(w, r, printCacheKey("printing:households", f), cache.TTLShort, func() (any, error) {
		data, err := s.FetchHouseholdsForPrint(r.Context(), f)
		if err != nil {
			return nil, err
		}
		return dataResponse{Status: "success", Data: data}, nil
	})
}

func (s *Service) PrintingWardLeadersHandler(w http.ResponseWriter, r *http.Request) {
	f := parsePrintFilters(r)
	s.respondCached(w, r, printCacheKey("printing:ward-leaders", f), cache.TTLShort, func() (any, error) {
		data, err := s.FetchWardLeadersForPrint(r.Context(), f)
		if err != nil {
			return nil, err
		}
		return dataResponse{Status: "success", Data: data}, nil
	})
}

func (s *Service) PrintingCoordinatorsHandler(w http.ResponseWriter, r *http.Request) {
	f := parsePrintFilters(r)
	s.respondCached(w, r, printCacheKey("printing:barangay-coordinators", f), cache.TTLShort, func() (any, error) {
		data, err := s.FetchCoordinatorsForPrint(r.Context(), f)
		if err != nil {
			return nil, err
		}
		return dataResponse{Status: "success", Data: data}, nil
	})
}

func (s *Service) markPrintedHandler(w http.ResponseWriter, r *http.Request, field, noun, message string, mark func([]int64) (int64, error), patterns []string) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var ids []int64
	if raw, ok := body[field]; ok {
		if err := json.Unmarshal(raw, &ids); err != nil {
			writeError(w, http.StatusBadRequest, "Valid "+noun+" IDs array is required")
			return
		}
	}
	if len(ids) == 0 {
		writeError(w, http.StatusBadRequest, "Valid "+noun+" IDs array is required")
		return
	}

	count, err := mark(ids)
	if err != nil {
		log.Printf("[reports] Mark %s printed: %v", noun, err)
		writeError(w, http.StatusInternalServerError, "Failed to mark "+noun+"s as printed")
		return
	}

	s.invalidate(r.Context(), patterns...)
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": message,
		"data":    map[string]any{"updatedCount": count},
	})
}

func (s *Service) MarkHouseholdsPrintedHandler(w http.ResponseWriter, r *http.Request) {
	s.markPrintedHandler(w, r, "householdIds", "household", "Households marked as printed successfully",
		func(ids []int64) (int64, error) { return s.MarkHouseholdsPrinted(r.Context(), ids) },
		householdCachePatterns)
}

func (s *Service) MarkWardLeadersPrintedHandler(w http.ResponseWriter, r *http.Request) {
	s.markPrintedHandler(w, r, "leaderIds", "ward leader", "Ward leaders marked as printed successfully",
		func(ids []int64) (int64, error) { return s.MarkWardLeadersPrinted(r.Context(), ids) },
		wardLeaderCachePatterns)
}

func (s *Service) MarkCoordinatorsPrintedHandler(w http.ResponseWriter, r *http.Request) {
	s.markPrintedHandler(w, r, "leaderIds", "coordinator", "Barangay coordinators marked as printed successfully",
		func(ids []int64) (int64, error) { return s.MarkCoordinatorsPrinted(r.Context(), ids) },
		coordinatorCachePatterns)
}

func (s *Service) PrintStatisticsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	municipality := q.Get("municipality")
	barangay := q.Get("barangay")

	key := cacheKey("print-statistics", map[string]string{
		"municipality": municipality,
		"barangay":     barangay,
	})
	s.respondCached(w, r, key, cache.TTLShort, func() (any, error) {
		stats, err := s.PrintStatistics(r.Context(), municipality, barangay)
		if err != nil {
			return nil, err
		}
		return dataResponse{Status: "success", Data: stats}, nil
	})
}

func (s *Service) PrintStatisticsByBarangayHandler(w http.ResponseWriter, r *http.Request) {
	municipality := r.URL.Query().Get("municipality")

	key := cacheKey("print-statistics-by-barangay", map[string]string{"municipality": municipality})
	s.respondCached(w, r, key, cache.TTLMedium, func() (any, error) {
		stats, err := s.PrintStatisticsByBarangay(r.Context(), municipality)
		if err != nil {
			return nil, err
		}
		return dataResponse{Status: "success", Data: stats}, nil
	})
}

func (s *Service) WardLeadersStatisticsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	municipality := q.Get("municipality")
	barangay := q.Get("barangay")

	key := cacheKey("ward-leaders-statistics", map[string]string{
		"municipality": municipality,
		"barangay":     barangay,
	})
	s.respondCached(w, r, key, cache.TTLShort, func() (any, error) {
		counts, err := s.WardLeaderStatistics(r.Context(), municipality, barangay)
		if err != nil {
			return nil, err
		}
		return dataResponse{Status: "success", Data: counts}, nil
	})
}
