package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/WardLink/WL-Backend/internal/registry"
)

const (
	defaultPrintLimit = 50
	printFetchCap     = 500
	leaderScanCap     = 100

	positionHead   = "HH Head"
	positionMember = "Member"

	placeholderNoMembers = "NO HOUSEHOLD MEMBERS"
	unassignedLeader     = "UNASSIGNED"
)

// PrintFilters narrows a print batch. Municipality and Barangay of "all" or
// empty mean unfiltered; Limit caps how many records one batch fetches.
type PrintFilters struct {
	Municipality string
	Barangay     string
	PurokSt      string
	Limit        int
}

func clampPrintLimit(limit int) int {
	if limit <= 0 {
		return defaultPrintLimit
	}
	if limit > printFetchCap {
		return printFetchCap
	}
	return limit
}

type PrintMember struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Remarks  string `json:"remarks"`
}

// Signatory is the blank received-by block printed at the bottom of every
// sheet, filled in by hand on distribution.
type Signatory struct {
	Name       string `json:"name"`
	Signature  string `json:"signature"`
	Position   string `json:"position"`
	TimeSigned string `json:"timeSigned"`
}

type PrintHousehold struct {
	HouseholdID     uint          `json:"householdId"`
	HouseholdNumber string        `json:"householdNumber"`
	WardLeader      string        `json:"wardLeader"`
	Members         []PrintMember `json:"members"`
	ReceivedBy      Signatory     `json:"receivedBy"`
	QRPayload       string        `json:"qrPayload"`
}

type PrintLeaderPolitics struct {
	Congressman         *int   `json:"congressman"`
	Governor            *int   `json:"governor"`
	ViceGov             *int   `json:"vicegov"`
	Mayor               *int   `json:"mayor"`
	SupportedCandidates string `json:"supportedCandidates"`
	IsUndecided         bool   `json:"isUndecided"`
}

type PrintLeader struct {
	LeaderID     uint                 `json:"leaderId"`
	Number       string               `json:"wardLeaderNumber"`
	VID          uint                 `json:"v_id"`
	Name         string               `json:"name"`
	Precinct     string               `json:"precinct"`
	Barangay     string               `json:"barangay"`
	Municipality string               `json:"municipality"`
	Gender       string               `json:"gender"`
	Birthday     string               `json:"birthday"`
	ElectionYear string               `json:"electionYear"`
	Politics     *PrintLeaderPolitics `json:"politicsData,omitempty"`
	Preference   PrintMember          `json:"votingPreference"`
	ReceivedBy   Signatory            `json:"receivedBy"`
	QRPayload    string               `json:"qrPayload"`
}

type printLeaderScanRow struct {
	VID   uint   `gorm:"column:v_id"`
	LName string `gorm:"column:lname"`
	FName string `gorm:"column:fname"`
	MName string `gorm:"column:mname"`
}

type printHouseholdScanRow struct {
	ID        uint   `gorm:"column:id"`
	HeadVID   *uint  `gorm:"column:fh_v_id"`
	LeaderVID *uint  `gorm:"column:leader_v_id"`
	HeadName  string `gorm:"column:head_name"`
}

type printMemberScanRow struct {
	HeadVID uint   `gorm:"column:fh_v_id"`
	VID     uint   `gorm:"column:v_id"`
	Name    string `gorm:"column:name"`
}

// FetchHouseholdsForPrint assembles the next batch of unprinted household
// sheets. Leaders with unprinted households are scanned in report order,
// their households grouped under them, and the batch cut off at the limit so
// one leader's stack is never split across batches mid-scan. Member rosters
// and preference rows are fetched in bulk for the whole batch.
func (s *Service) FetchHouseholdsForPrint(ctx context.Context, f PrintFilters) ([]PrintHousehold, error) {
	limit := clampPrintLimit(f.Limit)

	dir, err := s.loadCandidateDirectory(ctx)
	if err != nil {
		return nil, err
	}

	var clauses []Clause
	if f.Municipality != "" && f.Municipality != "all" {
		clauses = append(clauses, like("b.municipality", f.Municipality))
	}
	if f.Barangay != "" && f.Barangay != "all" {
		clauses = append(clauses, like("b.barangay", f.Barangay))
	}
	filterSQL, filterArgs := compileWhere(clauses)

	leaderSQL := `
		SELECT l.v_id,
		       COALESCE(lv.v_lname, '') AS lname,
		       COALESCE(lv.v_fname, '') AS fname,
		       COALESCE(lv.v_mname, '') AS mname
		FROM registry.leaders l
		INNER JOIN registry.v_info lv ON l.v_id = lv.v_id
		LEFT JOIN registry.barangays b ON lv.barangay_id = b.id` +
		latestLeaderJoin + `
		WHERE l.type = ? AND l.electionyear = ?
		  AND EXISTS (SELECT 1 FROM registry.head_household hh WHERE hh.leader_v_id = l.v_id AND hh.is_printed = 0)` +
		filterSQL + `
		ORDER BY b.municipality, b.barangay, lv.v_lname
		LIMIT ?`

	args := []any{
		registry.LeaderTypeWard, registry.LeaderTypeWard,
		registry.LeaderTypeWard, s.Sentinels.ElectionYear,
	}
	args = append(args, filterArgs...)
	args = append(args, leaderScanCap)

	var leaders []printLeaderScanRow
	if err := s.DB.WithContext(ctx).Raw(leaderSQL, args...).Scan(&leaders).Error; err != nil {
		return nil, err
	}
	if len(leaders) == 0 {
		return []PrintHousehold{}, nil
	}

	leaderIDs := make([]uint, len(leaders))
	leaderNames := make(map[uint]string, len(leaders))
	for i, l := range leaders {
		leaderIDs[i] = l.VID
		leaderNames[l.VID] = formatLeaderName(l.LName, l.FName, l.MName)
	}

	hhSQL := `
		SELECT hh.id, hh.fh_v_id, hh.leader_v_id,
		       CONCAT(COALESCE(head.v_fname, ''), ' ', COALESCE(head.v_mname, ''), ' ', COALESCE(head.v_lname, '')) AS head_name
		FROM registry.head_household hh
		INNER JOIN registry.v_info head ON hh.fh_v_id = head.v_id
		LEFT JOIN registry.barangays b ON head.barangay_id = b.id
		WHERE hh.is_printed = 0 AND hh.leader_v_id IN ?`
	hhArgs := []any{leaderIDs}
	if f.PurokSt != "" && f.PurokSt != "all" {
		hhSQL += ` AND hh.purok_st = ?`
		hhArgs = append(hhArgs, f.PurokSt)
	}
	hhSQL += `
		ORDER BY b.municipality, b.barangay, head.v_lname, head.v_fname`

	var hhRows []printHouseholdScanRow
	if err := s.DB.WithContext(ctx).Raw(hhSQL, hhArgs...).Scan(&hhRows).Error; err != nil {
		return nil, err
	}

	byLeader := map[uint][]printHouseholdScanRow{}
	for _, hh := range hhRows {
		if hh.LeaderVID == nil {
			continue
		}
		byLeader[*hh.LeaderVID] = append(byLeader[*hh.LeaderVID], hh)
	}

	var selected []printHouseholdScanRow
	for _, l := range leaders {
		if len(selected) >= limit {
			break
		}
		for _, hh := range byLeader[l.VID] {
			if len(selected) >= limit {
				break
			}
			selected = append(selected, hh)
		}
	}
	if len(selected) == 0 {
		return []PrintHousehold{}, nil
	}

	headIDs := make([]uint, 0, len(selected))
	for _, hh := range selected {
		if hh.HeadVID != nil {
			headIDs = append(headIDs, *hh.HeadVID)
		}
	}

	var memberRows []printMemberScanRow
	if len(headIDs) > 0 {
		err = s.DB.WithContext(ctx).Raw(`
			SELECT hw.fh_v_id, m.v_id,
			       CONCAT(COALESCE(m.v_fname, ''), ' ', COALESCE(m.v_mname, ''), ' ', COALESCE(m.v_lname, '')) AS name
			FROM registry.household_warding hw
			INNER JOIN registry.v_info m ON hw.mem_v_id = m.v_id
			WHERE hw.fh_v_id IN ?`, headIDs).Scan(&memberRows).Error
		if err != nil {
			return nil, err
		}
	}

	membersByHead := map[uint][]printMemberScanRow{}
	voterIDs := append([]uint{}, headIDs...)
	for _, m := range memberRows {
		membersByHead[m.HeadVID] = append(membersByHead[m.HeadVID], m)
		voterIDs = append(voterIDs, m.VID)
	}

	politics, err := s.loadPoliticsFor(ctx, voterIDs)
	if err != nil {
		return nil, err
	}

	result := make([]PrintHousehold, 0, len(selected))
	for _, hh := range selected {
		result = append(result, s.buildPrintHousehold(hh, leaderNames, membersByHead, politics, dir))
	}
	return result, nil
}

func (s *Service) buildPrintHousehold(hh printHouseholdScanRow, leaderNames map[uint]string, membersByHead map[uint][]printMemberScanRow, politics map[uint]*registry.Politics, dir CandidateDirectory) PrintHousehold {
	wardLeader := unassignedLeader
	if hh.LeaderVID != nil {
		if name, ok := leaderNames[*hh.LeaderVID]; ok {
			wardLeader = name
		}
	}

	type entry struct {
		vid  uint
		name string
		head bool
	}
	var entries []entry
	if hh.HeadVID != nil {
		hasHead := false
		for _, m := range membersByHead[*hh.HeadVID] {
			isHead := m.VID == *hh.HeadVID
			if isHead {
				hasHead = true
			}
			entries = append(entries, entry{vid: m.VID, name: m.Name, head: isHead})
		}
		if !hasHead {
			entries = append(entries, entry{vid: *hh.HeadVID, name: hh.HeadName, head: true})
		}
	}

	c := newNameCollator()
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].head != entries[j].head {
			return entries[i].head
		}
		return c.CompareString(entries[i].name, entries[j].name) < 0
	})

	members := make([]PrintMember, 0, len(entries)+1)
	for _, e := range entries {
		pos := positionMember
		if e.head {
			pos = positionHead
		}
		members = append(members, PrintMember{
			Name:     strings.ToUpper(e.name),
			Position: pos,
			Remarks:  Remarks(politics[e.vid], s.Sentinels, dir),
		})
	}
	if len(entries) <= 1 {
		members = append(members, PrintMember{Name: placeholderNoMembers, Position: "-", Remarks: "-"})
	}

	return PrintHousehold{
		HouseholdID:     hh.ID,
		HouseholdNumber: fmt.Sprintf("%03d", hh.ID),
		WardLeader:      wardLeader,
		Members:         members,
		ReceivedBy:      Signatory{},
		QRPayload: qrPayload(struct {
			HHID   uint   `json:"H_H_ID"`
			HHName string `json:"HH_Name"`
		}{hh.ID, hh.HeadName}),
	}
}

type printLeaderDetailRow struct {
	LeaderID     uint       `gorm:"column:leader_id"`
	VID          uint       `gorm:"column:v_id"`
	LName        string     `gorm:"column:lname"`
	FName        string     `gorm:"column:fname"`
	MName        string     `gorm:"column:mname"`
	Gender       *string    `gorm:"column:gender"`
	Precinct     *string    `gorm:"column:precinct"`
	Birthday     *time.Time `gorm:"column:birthday"`
	ElectionYear *int       `gorm:"column:electionyear"`
	Barangay     *string    `gorm:"column:barangay"`
	Municipality *string    `gorm:"column:municipality"`
}

func (s *Service) FetchWardLeadersForPrint(ctx context.Context, f PrintFilters) ([]PrintLeader, error) {
	return s.fetchLeadersForPrint(ctx, f, registry.LeaderTypeWard)
}

func (s *Service) FetchCoordinatorsForPrint(ctx context.Context, f PrintFilters) ([]PrintLeader, error) {
	return s.fetchLeadersForPrint(ctx, f, registry.LeaderTypeCoordinator)
}

func (s *Service) fetchLeadersForPrint(ctx context.Context, f PrintFilters, leaderType int) ([]PrintLeader, error) {
	limit := clampPrintLimit(f.Limit)

	dir, err := s.loadCandidateDirectory(ctx)
	if err != nil {
		return nil, err
	}

	var clauses []Clause
	if f.Municipality != "" && f.Municipality != "all" {
		clauses = append(clauses, equals("b.municipality", f.Municipality))
	}
	if f.Barangay != "" && f.Barangay != "all" {
		clauses = append(clauses, equals("b.barangay", f.Barangay))
	}
	filterSQL, filterArgs := compileWhere(clauses)

	extra := `
		  AND EXISTS (SELECT 1 FROM registry.head_household hh WHERE hh.leader_v_id = l.v_id)`
	if leaderType == registry.LeaderTypeCoordinator {
		extra = `
		  AND v.record_type = 1 AND l.status IS NULL`
	}

	purokSQL := ""
	var purokArgs []any
	if f.PurokSt != "" && f.PurokSt != "all" {
		purokSQL = `
		  AND EXISTS (SELECT 1 FROM registry.head_household hh WHERE hh.leader_v_id = l.v_id AND hh.purok_st = ?)`
		purokArgs = append(purokArgs, f.PurokSt)
	}

	sql := `
		SELECT l.id AS leader_id, l.v_id,
		       COALESCE(v.v_lname, '') AS lname,
		       COALESCE(v.v_fname, '') AS fname,
		       COALESCE(v.v_mname, '') AS mname,
		       v.v_gender AS gender,
		       v.v_precinct_no AS precinct,
		       v.v_birthday AS birthday,
		       l.electionyear,
		       b.barangay, b.municipality
		FROM registry.leaders l
		INNER JOIN registry.v_info v ON l.v_id = v.v_id
		LEFT JOIN registry.barangays b ON v.barangay_id = b.id` +
		latestLeaderJoin + `
		WHERE l.type = ? AND l.electionyear = ? AND l.is_printed = 0` +
		extra + filterSQL + purokSQL + `
		ORDER BY b.municipality, b.barangay, v.v_lname, v.v_fname
		LIMIT ?`

	args := []any{leaderType, leaderType, leaderType, s.Sentinels.ElectionYear}
	args = append(args, filterArgs...)
	args = append(args, purokArgs...)
	args = append(args, limit)

	var rows []printLeaderDetailRow
	if err := s.DB.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []PrintLeader{}, nil
	}

	voterIDs := make([]uint, len(rows))
	for i, r := range rows {
		voterIDs[i] = r.VID
	}
	politics, err := s.loadPoliticsFor(ctx, voterIDs)
	if err != nil {
		return nil, err
	}

	position := "WARD LEADER"
	if leaderType == registry.LeaderTypeCoordinator {
		position = "BARANGAY COORDINATOR"
	}

	result := make([]PrintLeader, 0, len(rows))
	for _, r := range rows {
		p := politics[r.VID]
		name := strings.ToUpper(formatLeaderName(r.LName, r.FName, r.MName))
		remarks := Remarks(p, s.Sentinels, dir)

		var pd *PrintLeaderPolitics
		if p != nil {
			pd = &PrintLeaderPolitics{
				Congressman:         p.Congressman,
				Governor:            p.Governor,
				ViceGov:             p.ViceGov,
				Mayor:               p.Mayor,
				SupportedCandidates: remarks,
				IsUndecided:         IsUndecided(p, s.Sentinels),
			}
		}

		result = append(result, PrintLeader{
			LeaderID:     r.LeaderID,
			Number:       fmt.Sprintf("%03d", r.LeaderID),
			VID:          r.VID,
			Name:         name,
			Precinct:     orNA(r.Precinct),
			Barangay:     orNA(r.Barangay),
			Municipality: orNA(r.Municipality),
			Gender:       orNA(r.Gender),
			Birthday:     formatBirthday(r.Birthday),
			ElectionYear: yearOrNA(r.ElectionYear),
			Politics:     pd,
			Preference:   PrintMember{Name: name, Position: position, Remarks: remarks},
			ReceivedBy:   Signatory{},
			QRPayload: qrPayload(struct {
				LID   uint   `json:"L_ID"`
				LName string `json:"L_Name"`
				VID   uint   `json:"V_ID"`
			}{r.LeaderID, name, r.VID}),
		})
	}
	return result, nil
}

// MarkHouseholdsPrinted flips is_printed on the given households. The
// is_printed = 0 guard makes retried confirmations idempotent: rows already
// confirmed are skipped and the returned count reflects only real changes.
func (s *Service) MarkHouseholdsPrinted(ctx context.Context, ids []int64) (int64, error) {
	res := s.DB.WithContext(ctx).Exec(
		`UPDATE registry.head_household SET is_printed = 1 WHERE id = ANY(?) AND is_printed = 0`,
		pq.Array(ids))
	return res.RowsAffected, res.Error
}

func (s *Service) MarkWardLeadersPrinted(ctx context.Context, ids []int64) (int64, error) {
	res := s.DB.WithContext(ctx).Exec(
		`UPDATE registry.leaders SET is_printed = 1 WHERE id = ANY(?) AND type = ? AND is_printed = 0`,
		pq.Array(ids), registry.LeaderTypeWard)
	return res.RowsAffected, res.Error
}

func (s *Service) MarkCoordinatorsPrinted(ctx context.Context, ids []int64) (int64, error) {
	res := s.DB.WithContext(ctx).Exec(
		`UPDATE registry.leaders SET is_printed = 1 WHERE id = ANY(?) AND type = ? AND is_printed = 0`,
		pq.Array(ids), registry.LeaderTypeCoordinator)
	return res.RowsAffected, res.Error
}

func formatLeaderName(lname, fname, mname string) string {
	return strings.TrimSpace(lname + ", " + fname + " " + mname)
}

func qrPayload(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(raw)
}

func orNA(v *string) string {
	if v == nil || *v == "" {
		return "N/A"
	}
	return *v
}

func formatBirthday(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("Jan 2, 2006")
}

func yearOrNA(y *int) string {
	if y == nil {
		return "N/A"
	}
	return strconv.Itoa(*y)
}
