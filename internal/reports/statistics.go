package reports

import (
	"context"
	"math"
	"sort"

	"github.com/WardLink/WL-Backend/internal/registry"
)

type PrintCounts struct {
	Printed    int64 `gorm:"column:printed" json:"printed"`
	NotPrinted int64 `gorm:"column:not_printed" json:"not_printed"`
	Total      int64 `gorm:"column:total" json:"total"`
}

type PrintStatistics struct {
	Households   PrintCounts `json:"households"`
	WardLeaders  PrintCounts `json:"wardLeaders"`
	Coordinators PrintCounts `json:"barangayCoordinators"`
}

func statFilterClauses(municipality, barangay string) []Clause {
	var clauses []Clause
	if municipality != "" && municipality != "all" {
		clauses = append(clauses, equals("b.municipality", municipality))
	}
	if barangay != "" && barangay != "all" {
		clauses = append(clauses, equals("b.barangay", barangay))
	}
	return clauses
}

// PrintStatistics counts printed and unprinted records per entity class.
// Leader counts are per voter, not per historical leader row.
func (s *Service) PrintStatistics(ctx context.Context, municipality, barangay string) (PrintStatistics, error) {
	var stats PrintStatistics
	filterSQL, filterArgs := compileWhere(statFilterClauses(municipality, barangay))

	err := s.DB.WithContext(ctx).Raw(`
		SELECT COUNT(*) FILTER (WHERE hh.is_printed = 1) AS printed,
		       COUNT(*) FILTER (WHERE hh.is_printed = 0) AS not_printed,
		       COUNT(*) AS total
		FROM registry.head_household hh
		INNER JOIN registry.v_info head ON hh.fh_v_id = head.v_id
		LEFT JOIN registry.barangays b ON head.barangay_id = b.id
		WHERE 1 = 1`+filterSQL, filterArgs...).Scan(&stats.Households).Error
	if err != nil {
		return stats, err
	}

	stats.WardLeaders, err = s.leaderPrintCounts(ctx, registry.LeaderTypeWard, filterSQL, filterArgs)
	if err != nil {
		return stats, err
	}

	stats.Coordinators, err = s.leaderPrintCounts(ctx, registry.LeaderTypeCoordinator, filterSQL, filterArgs)
	if err != nil {
		return stats, err
	}
	return stats, nil
}

// WardLeaderStatistics is the ward-leader slice of the print statistics,
// exposed on its own for the ward-leader report header.
func (s *Service) WardLeaderStatistics(ctx context.Context, municipality, barangay string) (PrintCounts, error) {
	filterSQL, filterArgs := compileWhere(statFilterClauses(municipality, barangay))
	return s.leaderPrintCounts(ctx, registry.LeaderTypeWard, filterSQL, filterArgs)
}

func (s *Service) leaderPrintCounts(ctx context.Context, leaderType int, filterSQL string, filterArgs []any) (PrintCounts, error) {
	var counts PrintCounts

	extra := `
		  AND EXISTS (SELECT 1 FROM registry.head_household hh WHERE hh.leader_v_id = l.v_id)`
	if leaderType == registry.LeaderTypeCoordinator {
		extra = `
		  AND v.record_type = 1 AND l.status IS NULL`
	}

	sql := `
		SELECT COUNT(DISTINCT l.v_id) FILTER (WHERE l.is_printed = 1) AS printed,
		       COUNT(DISTINCT l.v_id) FILTER (WHERE l.is_printed = 0) AS not_printed,
		       COUNT(DISTINCT l.v_id) AS total
		FROM registry.leaders l
		INNER JOIN registry.v_info v ON l.v_id = v.v_id
		LEFT JOIN registry.barangays b ON v.barangay_id = b.id` +
		latestLeaderJoin + `
		WHERE l.type = ? AND l.electionyear = ?` + extra + filterSQL

	args := []any{leaderType, leaderType, leaderType, s.Sentinels.ElectionYear}
	args = append(args, filterArgs...)

	err := s.DB.WithContext(ctx).Raw(sql, args...).Scan(&counts).Error
	return counts, err
}

type ClassStat struct {
	Printed    int64   `json:"printed"`
	NotPrinted int64   `json:"not_printed"`
	Total      int64   `json:"total"`
	Percentage float64 `json:"percentage"`
}

type BarangayPrintStat struct {
	Barangay     string    `json:"barangay"`
	Households   ClassStat `json:"households"`
	WardLeaders  ClassStat `json:"wardLeaders"`
	Coordinators ClassStat `json:"barangayCoordinators"`
}

type barangayCountRow struct {
	Barangay   string `gorm:"column:barangay"`
	Printed    int64  `gorm:"column:printed"`
	NotPrinted int64  `gorm:"column:not_printed"`
	Total      int64  `gorm:"column:total"`
}

// PrintStatisticsByBarangay runs one grouped query per entity class and
// merges the three result sets by barangay in memory.
func (s *Service) PrintStatisticsByBarangay(ctx context.Context, municipality string) ([]BarangayPrintStat, error) {
	filterSQL, filterArgs := compileWhere(statFilterClauses(municipality, ""))

	var hhRows []barangayCountRow
	err := s.DB.WithContext(ctx).Raw(`
		SELECT COALESCE(b.barangay, '') AS barangay,
		       COUNT(*) FILTER (WHERE hh.is_printed = 1) AS printed,
		       COUNT(*) FILTER (WHERE hh.is_printed = 0) AS not_printed,
		       COUNT(*) AS total
		FROM registry.head_household hh
		INNER JOIN registry.v_info head ON hh.fh_v_id = head.v_id
		LEFT JOIN registry.barangays b ON head.barangay_id = b.id
		WHERE 1 = 1`+filterSQL+`
		GROUP BY COALESCE(b.barangay, '')`, filterArgs...).Scan(&hhRows).Error
	if err != nil {
		return nil, err
	}

	wlRows, err := s.leaderCountsByBarangay(ctx, registry.LeaderTypeWard, filterSQL, filterArgs)
	if err != nil {
		return nil, err
	}
	bcRows, err := s.leaderCountsByBarangay(ctx, registry.LeaderTypeCoordinator, filterSQL, filterArgs)
	if err != nil {
		return nil, err
	}

	merged := map[string]*BarangayPrintStat{}
	get := func(name string) *BarangayPrintStat {
		if st, ok := merged[name]; ok {
			return st
		}
		st := &BarangayPrintStat{Barangay: name}
		merged[name] = st
		return st
	}
	for _, r := range hhRows {
		get(r.Barangay).Households = classStat(r)
	}
	for _, r := range wlRows {
		get(r.Barangay).WardLeaders = classStat(r)
	}
	for _, r := range bcRows {
		get(r.Barangay).Coordinators = classStat(r)
	}

	result := make([]BarangayPrintStat, 0, len(merged))
	for _, st := range merged {
		result = append(result, *st)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Barangay < result[j].Barangay })
	return result, nil
}

func (s *Service) leaderCountsByBarangay(ctx context.Context, leaderType int, filterSQL string, filterArgs []any) ([]barangayCountRow, error) {
	extra := `
		  AND EXISTS (SELECT 1 FROM registry.head_household hh WHERE hh.leader_v_id = l.v_id)`
	if leaderType == registry.LeaderTypeCoordinator {
		extra = `
		  AND v.record_type = 1 AND l.status IS NULL`
	}

	sql := `
		SELECT COALESCE(b.barangay, '') AS barangay,
		       COUNT(DISTINCT l.v_id) FILTER (WHERE l.is_printed = 1) AS printed,
		       COUNT(DISTINCT l.v_id) FILTER (WHERE l.is_printed = 0) AS not_printed,
		       COUNT(DISTINCT l.v_id) AS total
		FROM registry.leaders l
		INNER JOIN registry.v_info v ON l.v_id = v.v_id
		LEFT JOIN registry.barangays b ON v.barangay_id = b.id` +
		latestLeaderJoin + `
		WHERE l.type = ? AND l.electionyear = ?` + extra + filterSQL + `
		GROUP BY COALESCE(b.barangay, '')`

	args := []any{leaderType, leaderType, leaderType, s.Sentinels.ElectionYear}
	args = append(args, filterArgs...)

	var rows []barangayCountRow
	err := s.DB.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error
	return rows, err
}

func classStat(r barangayCountRow) ClassStat {
	st := ClassStat{Printed: r.Printed, NotPrinted: r.NotPrinted, Total: r.Total}
	if r.Total > 0 {
		st.Percentage = math.Round(float64(r.Printed)/float64(r.Total)*1000) / 10
	}
	return st
}
