package reports

import (
	"context"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	roleHead   = "Head of Household"
	roleMember = "Member"
)

type HouseholdReportFilters struct {
	Municipality string
	Barangay     string
	Name         string
	SortBy       string
	SortOrder    string
}

// householdSortColumns whitelists sortBy values against the expressions
// they order on. Anything else falls back to registration date.
var householdSortColumns = map[string]string{
	"household_head_name": "household_head_name",
	"barangay":            "b.barangay",
	"municipality":        "b.municipality",
	"registration_date":   "hh.date_saved",
	"members_count":       "members_count",
}

func householdOrderBy(sortBy, sortOrder string) string {
	col, ok := householdSortColumns[sortBy]
	if !ok {
		col = "hh.date_saved"
	}
	dir := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		dir = "ASC"
	}
	return col + " " + dir
}

type HouseholdReportRow struct {
	HouseholdID       uint       `gorm:"column:household_id" json:"household_id"`
	HouseholdHeadName string     `gorm:"column:household_head_name" json:"household_head_name"`
	Barangay          *string    `gorm:"column:barangay" json:"barangay"`
	Municipality      *string    `gorm:"column:municipality" json:"municipality"`
	StreetAddress     *string    `gorm:"column:street_address" json:"street_address"`
	WardLeaderName    string     `gorm:"column:ward_leader_name" json:"ward_leader_name"`
	MembersCount      int        `gorm:"column:members_count" json:"members_count"`
	RegistrationDate  *time.Time `gorm:"column:registration_date" json:"registration_date"`
	IsPrinted         int        `gorm:"column:is_printed" json:"is_printed"`
}

func (s *Service) ListHouseholds(ctx context.Context, f HouseholdReportFilters, page, limit int) ([]HouseholdReportRow, int64, error) {
	var clauses []Clause
	if f.Municipality != "" && f.Municipality != "all" {
		clauses = append(clauses, like("b.municipality", f.Municipality))
	}
	if f.Barangay != "" && f.Barangay != "all" {
		clauses = append(clauses, like("b.barangay", f.Barangay))
	}
	if f.Name != "" {
		clauses = append(clauses, likeAny([]string{
			"head.v_fname", "head.v_lname", "head.v_mname",
			"CONCAT(COALESCE(head.v_fname, ''), ' ', COALESCE(head.v_mname, ''), ' ', COALESCE(head.v_lname, ''))",
		}, f.Name))
	}
	filterSQL, filterArgs := compileWhere(clauses)

	base := `
		FROM registry.head_household hh
		INNER JOIN registry.v_info head ON hh.fh_v_id = head.v_id
		LEFT JOIN registry.barangays b ON head.barangay_id = b.id
		LEFT JOIN registry.v_info lv ON hh.leader_v_id = lv.v_id
		WHERE 1 = 1` + filterSQL

	var total int64
	if err := s.DB.WithContext(ctx).Raw("SELECT COUNT(*)"+base, filterArgs...).Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	selectSQL := `
		SELECT hh.id AS household_id,
		       CONCAT(COALESCE(head.v_fname, ''), ' ', COALESCE(head.v_lname, '')) AS household_head_name,
		       b.barangay,
		       b.municipality,
		       hh.purok_st AS street_address,
		       CONCAT(COALESCE(lv.v_fname, ''), ' ', COALESCE(lv.v_lname, '')) AS ward_leader_name,
		       (SELECT COUNT(*) FROM registry.household_warding hw WHERE hw.fh_v_id = hh.fh_v_id) AS members_count,
		       hh.date_saved AS registration_date,
		       hh.is_printed` + base + `
		ORDER BY ` + householdOrderBy(f.SortBy, f.SortOrder) + `
		LIMIT ? OFFSET ?`

	args := append(append([]any{}, filterArgs...), limit, (page-1)*limit)

	rows := []HouseholdReportRow{}
	if err := s.DB.WithContext(ctx).Raw(selectSQL, args...).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

type HouseholdMemberRow struct {
	VID    uint    `gorm:"column:v_id" json:"v_id"`
	Name   string  `gorm:"column:name" json:"name"`
	Age    *int    `gorm:"column:age" json:"age"`
	Gender *string `gorm:"column:gender" json:"gender"`
	Role   string  `gorm:"column:role" json:"role"`
}

// ListHouseholdMembers returns every member of a household, head first. The
// head's own member row is often never recorded during intake; when it is
// missing the head entry is synthesized from the household record so the
// roster always includes them. The bool reports whether the household
// exists.
func (s *Service) ListHouseholdMembers(ctx context.Context, householdID uint) ([]HouseholdMemberRow, bool, error) {
	var heads []struct {
		HeadVID *uint   `gorm:"column:fh_v_id"`
		Name    string  `gorm:"column:name"`
		Age     *int    `gorm:"column:age"`
		Gender  *string `gorm:"column:gender"`
	}
	err := s.DB.WithContext(ctx).Raw(`
		SELECT hh.fh_v_id,
		       CONCAT(COALESCE(head.v_fname, ''), ' ', COALESCE(head.v_mname, ''), ' ', COALESCE(head.v_lname, '')) AS name,
		       EXTRACT(YEAR FROM AGE(CURRENT_DATE, head.v_birthday))::int AS age,
		       head.v_gender AS gender
		FROM registry.head_household hh
		LEFT JOIN registry.v_info head ON hh.fh_v_id = head.v_id
		WHERE hh.id = ?`, householdID).Scan(&heads).Error
	if err != nil {
		return nil, false, err
	}
	if len(heads) == 0 {
		return nil, false, nil
	}
	head := heads[0]

	rows := []HouseholdMemberRow{}
	err = s.DB.WithContext(ctx).Raw(`
		SELECT m.v_id,
		       CONCAT(COALESCE(m.v_fname, ''), ' ', COALESCE(m.v_mname, ''), ' ', COALESCE(m.v_lname, '')) AS name,
		       EXTRACT(YEAR FROM AGE(CURRENT_DATE, m.v_birthday))::int AS age,
		       m.v_gender AS gender,
		       CASE WHEN hw.mem_v_id = hh.fh_v_id THEN ? ELSE ? END AS role
		FROM registry.household_warding hw
		INNER JOIN registry.v_info m ON hw.mem_v_id = m.v_id
		INNER JOIN registry.head_household hh ON hw.fh_v_id = hh.fh_v_id
		WHERE hh.id = ?`, roleHead, roleMember, householdID).Scan(&rows).Error
	if err != nil {
		return nil, true, err
	}

	hasHead := false
	for _, m := range rows {
		if m.Role == roleHead {
			hasHead = true
			break
		}
	}
	if !hasHead && head.HeadVID != nil {
		rows = append(rows, HouseholdMemberRow{
			VID:    *head.HeadVID,
			Name:   head.Name,
			Age:    head.Age,
			Gender: head.Gender,
			Role:   roleHead,
		})
	}

	// Head first, then members by collated name.
	c := newNameCollator()
	sort.SliceStable(rows, func(i, j int) bool {
		iHead := rows[i].Role == roleHead
		jHead := rows[j].Role == roleHead
		if iHead != jHead {
			return iHead
		}
		return c.CompareString(rows[i].Name, rows[j].Name) < 0
	})

	return rows, true, nil
}

// newNameCollator builds the collator used to order person names. Collators
// carry internal buffers, so each sort gets its own.
func newNameCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}
