package reports

import (
	"context"
	"fmt"
	"os"
	"slices"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/WardLink/WL-Backend/internal/db"
	"github.com/WardLink/WL-Backend/internal/registry"
)

// Integration tests run only when DATABASE_URL points at a Postgres
// instance; without it they skip and the unit tests above still run.
var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		var err error
		testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			fmt.Println("Failed to connect to test database:", err)
			os.Exit(1)
		}
		if err := db.EnsureSchema(testDB, "registry"); err != nil {
			fmt.Println("Failed to ensure schema:", err)
			os.Exit(1)
		}
		if err := testDB.AutoMigrate(
			&registry.Voter{}, &registry.Barangay{}, &registry.Leader{},
			&registry.Household{}, &registry.HouseholdMember{}, &registry.Politics{},
			&registry.Congressman{}, &registry.Governor{}, &registry.ViceGovernor{}, &registry.Mayor{},
		); err != nil {
			fmt.Println("Failed to migrate tables:", err)
			os.Exit(1)
		}
	}
	os.Exit(m.Run())
}

func requireDB(t *testing.T) *Service {
	t.Helper()
	if testDB == nil {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}
	return NewService(testDB, nil, DefaultSentinels())
}

// Fixture IDs live in a high range so reruns against a shared database
// don't collide with real rows.
const fixtureBase = 910000

func strp(s string) *string { return &s }

func timep(t time.Time) *time.Time { return &t }

func seedPrintFixture(t *testing.T) (leaderVID uint, householdIDs []uint) {
	t.Helper()

	brgyID := uint(fixtureBase + 1)
	leaderVID = uint(fixtureBase + 10)

	if err := testDB.Create(&registry.Barangay{
		ID: brgyID, Barangay: strp("Fixture Brgy"), Municipality: strp("Fixture Town"),
	}).Error; err != nil {
		t.Fatalf("seed barangay: %v", err)
	}
	t.Cleanup(func() { testDB.Exec(`DELETE FROM registry.barangays WHERE id = ?`, brgyID) })

	voters := []registry.Voter{
		{VID: leaderVID, BarangayID: &brgyID, LastName: strp("RIVERA"), FirstName: strp("MONICA"), RecordType: intp(1), Idx: "FX-10"},
	}
	for i := 0; i < 3; i++ {
		voters = append(voters, registry.Voter{
			VID: uint(fixtureBase + 20 + i), BarangayID: &brgyID,
			LastName: strp(fmt.Sprintf("HEAD%d", i)), FirstName: strp("TEST"),
			RecordType: intp(1), Idx: fmt.Sprintf("FX-2%d", i),
		})
	}
	if err := testDB.Create(&voters).Error; err != nil {
		t.Fatalf("seed voters: %v", err)
	}
	t.Cleanup(func() { testDB.Exec(`DELETE FROM registry.v_info WHERE v_id BETWEEN ? AND ?`, fixtureBase, fixtureBase+100) })

	// Two dated rows for the same leader; only the newer one is live.
	leaders := []registry.Leader{
		{
			ID: uint(fixtureBase + 30), VID: leaderVID, Type: intp(registry.LeaderTypeWard),
			ElectionYear: intp(2025), DateAdded: timep(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
			IsPrinted: 1,
		},
		{
			ID: uint(fixtureBase + 31), VID: leaderVID, Type: intp(registry.LeaderTypeWard),
			ElectionYear: intp(2025), DateAdded: timep(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)),
			IsPrinted: 0,
		},
	}
	if err := testDB.Create(&leaders).Error; err != nil {
		t.Fatalf("seed leaders: %v", err)
	}
	t.Cleanup(func() { testDB.Exec(`DELETE FROM registry.leaders WHERE id BETWEEN ? AND ?`, fixtureBase, fixtureBase+100) })

	for i := 0; i < 3; i++ {
		headVID := uint(fixtureBase + 20 + i)
		id := uint(fixtureBase + 40 + i)
		if err := testDB.Create(&registry.Household{
			ID: id, HeadVID: &headVID, LeaderVID: &leaderVID,
			PurokSt: strp("Purok 3"), DateSaved: timep(time.Now()),
		}).Error; err != nil {
			t.Fatalf("seed household: %v", err)
		}
		householdIDs = append(householdIDs, id)
	}
	t.Cleanup(func() { testDB.Exec(`DELETE FROM registry.head_household WHERE id BETWEEN ? AND ?`, fixtureBase, fixtureBase+100) })

	return leaderVID, householdIDs
}

func TestPrintPipelineEndToEnd(t *testing.T) {
	s := requireDB(t)
	ctx := context.Background()
	leaderVID, householdIDs := seedPrintFixture(t)

	rows, total, err := s.ListWardLeaders(ctx, LeaderFilters{Barangay: "Fixture Brgy"}, 1, 50)
	if err != nil {
		t.Fatalf("ListWardLeaders: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("total = %d, rows = %d, want 1 leader", total, len(rows))
	}
	if rows[0].VID != leaderVID {
		t.Errorf("leader v_id = %d, want %d", rows[0].VID, leaderVID)
	}
	if rows[0].HouseholdCount != 3 {
		t.Errorf("household_count = %d, want 3", rows[0].HouseholdCount)
	}
	// The newer leader record (is_printed = 0) wins over the older one.
	if rows[0].IsPrinted != 0 {
		t.Errorf("is_printed = %d, want 0 from the latest record", rows[0].IsPrinted)
	}

	batch, err := s.FetchHouseholdsForPrint(ctx, PrintFilters{Barangay: "Fixture Brgy"})
	if err != nil {
		t.Fatalf("FetchHouseholdsForPrint: %v", err)
	}
	if len(batch) != 3 {
		t.Fatalf("batch size = %d, want 3", len(batch))
	}
	for _, rec := range batch {
		if len(rec.Members) == 0 {
			t.Errorf("household %d has no member rows", rec.HouseholdID)
		}
	}

	ids := make([]int64, len(householdIDs))
	for i, id := range householdIDs {
		ids[i] = int64(id)
	}
	count, err := s.MarkHouseholdsPrinted(ctx, ids)
	if err != nil {
		t.Fatalf("MarkHouseholdsPrinted: %v", err)
	}
	if count != 3 {
		t.Errorf("first confirm updated %d rows, want 3", count)
	}

	// Retried confirmation is a no-op.
	count, err = s.MarkHouseholdsPrinted(ctx, ids)
	if err != nil {
		t.Fatalf("MarkHouseholdsPrinted retry: %v", err)
	}
	if count != 0 {
		t.Errorf("retry updated %d rows, want 0", count)
	}

	batch, err = s.FetchHouseholdsForPrint(ctx, PrintFilters{Barangay: "Fixture Brgy"})
	if err != nil {
		t.Fatalf("FetchHouseholdsForPrint after confirm: %v", err)
	}
	if len(batch) != 0 {
		t.Errorf("confirmed households still in batch: %d", len(batch))
	}
}

func TestListHouseholdMembersIntegration(t *testing.T) {
	s := requireDB(t)
	ctx := context.Background()
	_, householdIDs := seedPrintFixture(t)

	// Households recorded without explicit member rows still roster the
	// synthesized head as their only entry.
	rows, found, err := s.ListHouseholdMembers(ctx, householdIDs[0])
	if err != nil {
		t.Fatalf("ListHouseholdMembers: %v", err)
	}
	if !found {
		t.Fatal("household not found")
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want the synthesized head only", len(rows))
	}
	if rows[0].Role != roleHead {
		t.Errorf("role = %q, want %q", rows[0].Role, roleHead)
	}
	if rows[0].VID != uint(fixtureBase+20) {
		t.Errorf("v_id = %d, want %d", rows[0].VID, fixtureBase+20)
	}

	// An explicit member sorts after the head even when its name collates
	// first.
	headVID := uint(fixtureBase + 20)
	memberVID := uint(fixtureBase + 23)
	if err := testDB.Create(&registry.Voter{
		VID: memberVID, LastName: strp("AAA"), FirstName: strp("ABEL"),
		RecordType: intp(1), Idx: "FX-23",
	}).Error; err != nil {
		t.Fatalf("seed member voter: %v", err)
	}
	if err := testDB.Create(&registry.HouseholdMember{
		ID: uint(fixtureBase + 50), HeadVID: &headVID, MemberVID: &memberVID,
	}).Error; err != nil {
		t.Fatalf("seed member row: %v", err)
	}
	t.Cleanup(func() {
		testDB.Exec(`DELETE FROM registry.household_warding WHERE id = ?`, uint(fixtureBase+50))
	})

	rows, _, err = s.ListHouseholdMembers(ctx, householdIDs[0])
	if err != nil {
		t.Fatalf("ListHouseholdMembers with member: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want head plus one member", len(rows))
	}
	if rows[0].Role != roleHead || rows[1].VID != memberVID {
		t.Errorf("ordering = [%q %q], want head first", rows[0].Role, rows[1].Role)
	}

	if _, found, err := s.ListHouseholdMembers(ctx, uint(fixtureBase+999)); err != nil || found {
		t.Errorf("unknown household: found = %v, err = %v", found, err)
	}
}

func TestFilterOptionsIntegration(t *testing.T) {
	s := requireDB(t)
	ctx := context.Background()
	seedPrintFixture(t)

	opts, err := s.filterOptions(ctx, true)
	if err != nil {
		t.Fatalf("filterOptions: %v", err)
	}
	if !slices.Contains(opts.Municipalities, "Fixture Town") {
		t.Errorf("municipalities missing fixture: %v", opts.Municipalities)
	}
	if !slices.Contains(opts.Barangays, BarangayOption{Barangay: "Fixture Brgy", Municipality: "Fixture Town"}) {
		t.Errorf("barangays missing fixture: %v", opts.Barangays)
	}
	if !slices.Contains(opts.Puroks, "Purok 3") {
		t.Errorf("puroks missing fixture: %v", opts.Puroks)
	}

	opts, err = s.filterOptions(ctx, false)
	if err != nil {
		t.Fatalf("filterOptions without puroks: %v", err)
	}
	if len(opts.Puroks) != 0 {
		t.Errorf("puroks should be empty when skipped, got %v", opts.Puroks)
	}
}

func TestUpdateWardLeaderPrintStatusIntegration(t *testing.T) {
	s := requireDB(t)
	ctx := context.Background()
	leaderVID, _ := seedPrintFixture(t)

	count, err := s.UpdateWardLeaderPrintStatus(ctx, leaderVID, 1)
	if err != nil {
		t.Fatalf("UpdateWardLeaderPrintStatus: %v", err)
	}
	// Both historical records flip together.
	if count != 2 {
		t.Errorf("updated %d rows, want 2", count)
	}

	count, err = s.UpdateWardLeaderPrintStatus(ctx, uint(fixtureBase+999), 1)
	if err != nil {
		t.Fatalf("UpdateWardLeaderPrintStatus unknown: %v", err)
	}
	if count != 0 {
		t.Errorf("unknown leader updated %d rows, want 0", count)
	}
}
