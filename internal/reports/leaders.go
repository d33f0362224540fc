package reports

import (
	"context"
	"time"

	"github.com/WardLink/WL-Backend/internal/registry"
)

// latestLeaderJoin restricts a leaders scan to each voter's most recent
// record of the given leader type. Binds the type twice. Rows sharing the
// max dateadded resolve to the highest surrogate id, so re-recorded leaders
// always resolve to exactly one row.
const latestLeaderJoin = `
		INNER JOIN (
			SELECT l1.v_id, MAX(l1.id) AS latest_id
			FROM registry.leaders l1
			INNER JOIN (
				SELECT v_id, MAX(dateadded) AS latest_date
				FROM registry.leaders
				WHERE type = ?
				GROUP BY v_id
			) d ON l1.v_id = d.v_id AND l1.dateadded = d.latest_date
			WHERE l1.type = ?
			GROUP BY l1.v_id
		) latest ON l.id = latest.latest_id`

// LeaderFilters narrows leader listings. Municipality and Barangay
// substring-match ("all" and empty mean no filter), Name searches the
// individual name parts and the assembled full name, so a first-plus-last
// search still matches.
type LeaderFilters struct {
	Municipality string
	Barangay     string
	Name         string
}

func leaderFilterClauses(f LeaderFilters) []Clause {
	var clauses []Clause
	if f.Municipality != "" && f.Municipality != "all" {
		clauses = append(clauses, like("b.municipality", f.Municipality))
	}
	if f.Barangay != "" && f.Barangay != "all" {
		clauses = append(clauses, like("b.barangay", f.Barangay))
	}
	if f.Name != "" {
		clauses = append(clauses, likeAny([]string{
			"v.v_fname", "v.v_lname", "v.v_mname",
			"CONCAT(COALESCE(v.v_fname, ''), ' ', COALESCE(v.v_mname, ''), ' ', COALESCE(v.v_lname, ''))",
		}, f.Name))
	}
	return clauses
}

type WardLeaderRow struct {
	VID            uint    `gorm:"column:v_id" json:"v_id"`
	FullName       string  `gorm:"column:full_name" json:"full_name"`
	Barangay       *string `gorm:"column:barangay" json:"barangay"`
	Municipality   *string `gorm:"column:municipality" json:"municipality"`
	HouseholdCount int     `gorm:"column:household_count" json:"household_count"`
	IsPrinted      int     `gorm:"column:is_printed" json:"is_printed"`
}

// ListWardLeaders returns one row per ward leader with at least one
// household, with household counts aggregated in the same query.
func (s *Service) ListWardLeaders(ctx context.Context, f LeaderFilters, page, limit int) ([]WardLeaderRow, int64, error) {
	filterSQL, filterArgs := compileWhere(leaderFilterClauses(f))

	base := `
		FROM registry.head_household hh
		INNER JOIN registry.leaders l ON hh.leader_v_id = l.v_id
		INNER JOIN registry.v_info v ON l.v_id = v.v_id
		LEFT JOIN registry.barangays b ON v.barangay_id = b.id` +
		latestLeaderJoin + `
		WHERE l.type = ? AND l.electionyear = ?` + filterSQL

	baseArgs := []any{
		registry.LeaderTypeWard, registry.LeaderTypeWard,
		registry.LeaderTypeWard, s.Sentinels.ElectionYear,
	}
	baseArgs = append(baseArgs, filterArgs...)

	var total int64
	if err := s.DB.WithContext(ctx).Raw("SELECT COUNT(DISTINCT v.v_id)"+base, baseArgs...).Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	selectSQL := `
		SELECT v.v_id,
		       CONCAT(COALESCE(v.v_fname, ''), ' ', COALESCE(v.v_mname, ''), ' ', COALESCE(v.v_lname, '')) AS full_name,
		       b.barangay,
		       b.municipality,
		       COUNT(DISTINCT hh.id) AS household_count,
		       l.is_printed` + base + `
		GROUP BY v.v_id, v.v_fname, v.v_mname, v.v_lname, b.barangay, b.municipality, l.is_printed
		ORDER BY b.municipality, b.barangay, v.v_lname, v.v_fname
		LIMIT ? OFFSET ?`

	args := append(append([]any{}, baseArgs...), limit, (page-1)*limit)

	rows := []WardLeaderRow{}
	if err := s.DB.WithContext(ctx).Raw(selectSQL, args...).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

type WardLeaderDetail struct {
	VID            uint    `gorm:"column:v_id" json:"v_id"`
	FirstName      *string `gorm:"column:v_fname" json:"v_fname"`
	MiddleName     *string `gorm:"column:v_mname" json:"v_mname"`
	LastName       *string `gorm:"column:v_lname" json:"v_lname"`
	Barangay       *string `gorm:"column:barangay" json:"barangay"`
	Municipality   *string `gorm:"column:municipality" json:"municipality"`
	PrecinctNo     *string `gorm:"column:v_precinct_no" json:"v_precinct_no"`
	HouseholdCount int     `gorm:"column:household_count" json:"household_count"`
	IsPrinted      int     `gorm:"column:is_printed" json:"is_printed"`
}

// GetWardLeader returns nil when no leader record exists for the voter.
func (s *Service) GetWardLeader(ctx context.Context, leaderVID uint) (*WardLeaderDetail, error) {
	var rows []WardLeaderDetail
	err := s.DB.WithContext(ctx).Raw(`
		SELECT v.v_id, v.v_fname, v.v_mname, v.v_lname,
		       b.barangay, b.municipality, v.v_precinct_no,
		       COUNT(DISTINCT hh.id) AS household_count,
		       l.is_printed
		FROM registry.leaders l
		INNER JOIN registry.v_info v ON l.v_id = v.v_id
		LEFT JOIN registry.barangays b ON v.barangay_id = b.id
		LEFT JOIN registry.head_household hh ON hh.leader_v_id = l.v_id`+
		latestLeaderJoin+`
		WHERE l.type = ? AND l.v_id = ?
		GROUP BY v.v_id, v.v_fname, v.v_mname, v.v_lname, b.barangay, b.municipality, v.v_precinct_no, l.is_printed`,
		registry.LeaderTypeWard, registry.LeaderTypeWard,
		registry.LeaderTypeWard, leaderVID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

type LeaderHouseholdRow struct {
	HouseholdID           uint       `gorm:"column:household_id" json:"household_id"`
	HouseholdHeadName     string     `gorm:"column:household_head_name" json:"household_head_name"`
	Location              *string    `gorm:"column:location" json:"location"`
	Municipality          *string    `gorm:"column:municipality" json:"municipality"`
	StreetAddress         *string    `gorm:"column:street_address" json:"street_address"`
	HouseholdMembersCount int        `gorm:"column:household_members_count" json:"household_members_count"`
	RegistrationDate      *time.Time `gorm:"column:registration_date" json:"registration_date"`
	IsPrinted             int        `gorm:"column:is_printed" json:"is_printed"`
}

func (s *Service) ListHouseholdsForLeader(ctx context.Context, leaderVID uint) ([]LeaderHouseholdRow, error) {
	rows := []LeaderHouseholdRow{}
	err := s.DB.WithContext(ctx).Raw(`
		SELECT hh.id AS household_id,
		       CONCAT(COALESCE(head.v_fname, ''), ' ', COALESCE(head.v_mname, ''), ' ', COALESCE(head.v_lname, '')) AS household_head_name,
		       b.barangay AS location,
		       b.municipality,
		       hh.purok_st AS street_address,
		       (SELECT COUNT(*) FROM registry.household_warding hw WHERE hw.fh_v_id = hh.fh_v_id) AS household_members_count,
		       hh.date_saved AS registration_date,
		       hh.is_printed
		FROM registry.head_household hh
		INNER JOIN registry.v_info head ON hh.fh_v_id = head.v_id
		LEFT JOIN registry.barangays b ON head.barangay_id = b.id
		WHERE hh.leader_v_id = ?
		ORDER BY head.v_lname, head.v_fname`, leaderVID).Scan(&rows).Error
	return rows, err
}

// UpdateWardLeaderPrintStatus sets is_printed on every ward-leader record
// for the voter and reports how many rows changed.
func (s *Service) UpdateWardLeaderPrintStatus(ctx context.Context, leaderVID uint, printed int) (int64, error) {
	res := s.DB.WithContext(ctx).Exec(
		`UPDATE registry.leaders SET is_printed = ? WHERE v_id = ? AND type = ?`,
		printed, leaderVID, registry.LeaderTypeWard)
	return res.RowsAffected, res.Error
}

type CoordinatorRow struct {
	VID              uint    `gorm:"column:v_id" json:"v_id"`
	FullName         string  `gorm:"column:full_name" json:"full_name"`
	Barangay         *string `gorm:"column:barangay" json:"barangay"`
	Municipality     *string `gorm:"column:municipality" json:"municipality"`
	WardLeadersCount int     `gorm:"column:ward_leaders_count" json:"ward_leaders_count"`
	IsPrinted        int     `gorm:"column:is_printed" json:"is_printed"`
}

// ListCoordinators lists barangay coordinators. Coordinators are verified
// voter records (record_type 1) with no deactivation status; each row counts
// the ward leaders sharing the coordinator's barangay.
func (s *Service) ListCoordinators(ctx context.Context, f LeaderFilters, page, limit int) ([]CoordinatorRow, int64, error) {
	filterSQL, filterArgs := compileWhere(leaderFilterClauses(f))

	base := `
		FROM registry.leaders l
		INNER JOIN registry.v_info v ON l.v_id = v.v_id
		LEFT JOIN registry.barangays b ON v.barangay_id = b.id` +
		latestLeaderJoin + `
		WHERE l.type = ? AND l.electionyear = ? AND v.record_type = 1 AND l.status IS NULL` + filterSQL

	baseArgs := []any{
		registry.LeaderTypeCoordinator, registry.LeaderTypeCoordinator,
		registry.LeaderTypeCoordinator, s.Sentinels.ElectionYear,
	}
	baseArgs = append(baseArgs, filterArgs...)

	var total int64
	if err := s.DB.WithContext(ctx).Raw("SELECT COUNT(DISTINCT v.v_id)"+base, baseArgs...).Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	selectSQL := `
		SELECT v.v_id,
		       CONCAT(COALESCE(v.v_fname, ''), ' ', COALESCE(v.v_mname, ''), ' ', COALESCE(v.v_lname, '')) AS full_name,
		       b.barangay,
		       b.municipality,
		       (SELECT COUNT(DISTINCT wl.v_id)
		        FROM registry.leaders wl
		        INNER JOIN registry.v_info wv ON wl.v_id = wv.v_id
		        WHERE wl.type = ? AND wl.electionyear = ? AND wv.barangay_id = v.barangay_id) AS ward_leaders_count,
		       l.is_printed` + base + `
		ORDER BY b.municipality, b.barangay, v.v_lname, v.v_fname
		LIMIT ? OFFSET ?`

	args := []any{registry.LeaderTypeWard, s.Sentinels.ElectionYear}
	args = append(args, baseArgs...)
	args = append(args, limit, (page-1)*limit)

	rows := []CoordinatorRow{}
	if err := s.DB.WithContext(ctx).Raw(selectSQL, args...).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

type CoordinatorWardLeaderRow struct {
	VID             uint       `gorm:"column:v_id" json:"v_id"`
	Name            string     `gorm:"column:name" json:"name"`
	AssignedArea    string     `gorm:"column:assigned_area" json:"assigned_area"`
	HouseholdsCount int        `gorm:"column:households_count" json:"households_count"`
	MembersCount    int        `gorm:"column:members_count" json:"members_count"`
	LastUpdated     *time.Time `gorm:"column:last_updated" json:"last_updated"`
	IsPrinted       int        `gorm:"column:is_printed" json:"is_printed"`
}

// ListWardLeadersForCoordinator returns the ward leaders in the
// coordinator's barangay. The bool reports whether the coordinator exists.
func (s *Service) ListWardLeadersForCoordinator(ctx context.Context, coordinatorVID uint) ([]CoordinatorWardLeaderRow, bool, error) {
	var coord []struct {
		BarangayID *uint `gorm:"column:barangay_id"`
	}
	err := s.DB.WithContext(ctx).Raw(`
		SELECT v.barangay_id
		FROM registry.leaders l
		INNER JOIN registry.v_info v ON l.v_id = v.v_id
		WHERE l.type = ? AND l.v_id = ?
		LIMIT 1`, registry.LeaderTypeCoordinator, coordinatorVID).Scan(&coord).Error
	if err != nil {
		return nil, false, err
	}
	if len(coord) == 0 {
		return nil, false, nil
	}
	if coord[0].BarangayID == nil {
		return []CoordinatorWardLeaderRow{}, true, nil
	}

	rows := []CoordinatorWardLeaderRow{}
	err = s.DB.WithContext(ctx).Raw(`
		SELECT v.v_id,
		       CONCAT(COALESCE(v.v_fname, ''), ' ', COALESCE(v.v_mname, ''), ' ', COALESCE(v.v_lname, '')) AS name,
		       CONCAT(COALESCE(b.barangay, ''), ', ', COALESCE(b.municipality, '')) AS assigned_area,
		       COUNT(DISTINCT hh.id) AS households_count,
		       COUNT(DISTINCT hw.id) AS members_count,
		       MAX(l.dateadded) AS last_updated,
		       l.is_printed
		FROM registry.leaders l
		INNER JOIN registry.v_info v ON l.v_id = v.v_id
		LEFT JOIN registry.barangays b ON v.barangay_id = b.id
		LEFT JOIN registry.head_household hh ON hh.leader_v_id = l.v_id
		LEFT JOIN registry.household_warding hw ON hw.fh_v_id = hh.fh_v_id`+
		latestLeaderJoin+`
		WHERE l.type = ? AND l.electionyear = ? AND v.barangay_id = ?
		GROUP BY v.v_id, v.v_fname, v.v_mname, v.v_lname, b.barangay, b.municipality, l.is_printed
		ORDER BY v.v_lname, v.v_fname`,
		registry.LeaderTypeWard, registry.LeaderTypeWard,
		registry.LeaderTypeWard, s.Sentinels.ElectionYear, *coord[0].BarangayID).Scan(&rows).Error
	if err != nil {
		return nil, true, err
	}
	return rows, true, nil
}
