package reports

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/WardLink/WL-Backend/internal/registry"
)

func uintp(v uint) *uint { return &v }

func TestClampPrintLimit(t *testing.T) {
	if got := clampPrintLimit(0); got != defaultPrintLimit {
		t.Errorf("clampPrintLimit(0) = %d", got)
	}
	if got := clampPrintLimit(-5); got != defaultPrintLimit {
		t.Errorf("clampPrintLimit(-5) = %d", got)
	}
	if got := clampPrintLimit(10); got != 10 {
		t.Errorf("clampPrintLimit(10) = %d", got)
	}
	if got := clampPrintLimit(9999); got != printFetchCap {
		t.Errorf("clampPrintLimit(9999) = %d", got)
	}
}

func TestFormatLeaderName(t *testing.T) {
	if got := formatLeaderName("RIVERA", "MONICA", ""); got != "RIVERA, MONICA" {
		t.Errorf("got %q", got)
	}
	if got := formatLeaderName("RIVERA", "MONICA", "SANTOS"); got != "RIVERA, MONICA SANTOS" {
		t.Errorf("got %q", got)
	}
}

func TestBuildPrintHousehold(t *testing.T) {
	s := &Service{Sentinels: DefaultSentinels()}
	dir := testDirectory()

	hh := printHouseholdScanRow{
		ID:        7,
		HeadVID:   uintp(1001),
		LeaderVID: uintp(1004),
		HeadName:  "Christoper Alcantara",
	}
	leaderNames := map[uint]string{1004: "RIVERA, MONICA"}
	// Roster carries the members only; the head row was never recorded.
	membersByHead := map[uint][]printMemberScanRow{
		1001: {
			{HeadVID: 1001, VID: 1003, Name: "Dave Alcantara"},
			{HeadVID: 1001, VID: 1002, Name: "Jane Alcantara"},
		},
	}
	politics := map[uint]*registry.Politics{
		1001: {VID: uintp(1001), Congressman: intp(660), Governor: intp(662), ViceGov: intp(676)},
		1002: {VID: uintp(1002), Congressman: intp(679), Governor: intp(680), ViceGov: intp(681)},
	}

	rec := s.buildPrintHousehold(hh, leaderNames, membersByHead, politics, dir)

	if rec.HouseholdNumber != "007" {
		t.Errorf("HouseholdNumber = %q, want 007", rec.HouseholdNumber)
	}
	if rec.WardLeader != "RIVERA, MONICA" {
		t.Errorf("WardLeader = %q", rec.WardLeader)
	}
	if len(rec.Members) != 3 {
		t.Fatalf("got %d members, want 3", len(rec.Members))
	}

	// Synthesized head leads the roster.
	if rec.Members[0].Name != "CHRISTOPER ALCANTARA" || rec.Members[0].Position != positionHead {
		t.Errorf("head row = %+v", rec.Members[0])
	}
	if rec.Members[0].Remarks != "STRAIGHT" {
		t.Errorf("head remarks = %q", rec.Members[0].Remarks)
	}

	// Members sorted by name after the head.
	if rec.Members[1].Name != "DAVE ALCANTARA" || rec.Members[2].Name != "JANE ALCANTARA" {
		t.Errorf("member order = %q, %q", rec.Members[1].Name, rec.Members[2].Name)
	}
	if rec.Members[1].Position != positionMember {
		t.Errorf("member position = %q", rec.Members[1].Position)
	}
	if rec.Members[1].Remarks != "NO DATA" {
		t.Errorf("member without politics row = %q", rec.Members[1].Remarks)
	}
	if rec.Members[2].Remarks != "UNDECIDED(ALL 3)" {
		t.Errorf("undecided member = %q", rec.Members[2].Remarks)
	}

	if rec.ReceivedBy != (Signatory{}) {
		t.Errorf("receivedBy should be blank, got %+v", rec.ReceivedBy)
	}

	var qr struct {
		HHID   uint   `json:"H_H_ID"`
		HHName string `json:"HH_Name"`
	}
	if err := json.Unmarshal([]byte(rec.QRPayload), &qr); err != nil {
		t.Fatalf("qrPayload not JSON: %v", err)
	}
	if qr.HHID != 7 || qr.HHName != "Christoper Alcantara" {
		t.Errorf("qr = %+v", qr)
	}
}

func TestBuildPrintHouseholdHeadOnly(t *testing.T) {
	s := &Service{Sentinels: DefaultSentinels()}

	hh := printHouseholdScanRow{ID: 3, HeadVID: uintp(2001), HeadName: "Monica Rivera"}
	rec := s.buildPrintHousehold(hh, nil, nil, nil, testDirectory())

	if rec.WardLeader != unassignedLeader {
		t.Errorf("WardLeader = %q, want %q", rec.WardLeader, unassignedLeader)
	}
	if len(rec.Members) != 2 {
		t.Fatalf("got %d members, want head plus placeholder", len(rec.Members))
	}
	if rec.Members[0].Position != positionHead {
		t.Errorf("first row = %+v", rec.Members[0])
	}
	if rec.Members[1].Name != placeholderNoMembers || rec.Members[1].Position != "-" || rec.Members[1].Remarks != "-" {
		t.Errorf("placeholder row = %+v", rec.Members[1])
	}
}

func TestPrintValueFallbacks(t *testing.T) {
	if got := orNA(nil); got != "N/A" {
		t.Errorf("orNA(nil) = %q", got)
	}
	empty := ""
	if got := orNA(&empty); got != "N/A" {
		t.Errorf("orNA(empty) = %q", got)
	}
	v := "0017A"
	if got := orNA(&v); got != "0017A" {
		t.Errorf("orNA = %q", got)
	}

	if got := formatBirthday(nil); got != "N/A" {
		t.Errorf("formatBirthday(nil) = %q", got)
	}
	bd := time.Date(1987, time.March, 9, 0, 0, 0, 0, time.UTC)
	if got := formatBirthday(&bd); got != "Mar 9, 1987" {
		t.Errorf("formatBirthday = %q", got)
	}

	if got := yearOrNA(nil); got != "N/A" {
		t.Errorf("yearOrNA(nil) = %q", got)
	}
	y := 2025
	if got := yearOrNA(&y); got != "2025" {
		t.Errorf("yearOrNA = %q", got)
	}
}
