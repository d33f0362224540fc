package seeds

import (
	"log"
	"time"

	"github.com/WardLink/WL-Backend/internal/db"
	"github.com/WardLink/WL-Backend/internal/registry"
)

// Run seeds the candidate lookup tables and a small demo hierarchy. Safe to
// run repeatedly; every insert goes through FirstOrCreate.
func Run() {
	SeedCandidates()
	SeedDemoHierarchy()
}

// SeedCandidates loads the candidate lookup tables. IDs 660, 662 and 676
// form the default straight-ticket lineup.
func SeedCandidates() {
	congressmen := []registry.Congressman{
		{ID: 660, FirstName: "Ramon", LastName: "VILLANUEVA"},
		{ID: 661, FirstName: "Elisa", LastName: "MARQUEZ"},
	}
	for i := range congressmen {
		if err := db.DB.FirstOrCreate(&congressmen[i], registry.Congressman{ID: congressmen[i].ID}).Error; err != nil {
			log.Println("Failed to seed congressman:", err)
		}
	}

	governors := []registry.Governor{
		{ID: 662, FirstName: "Teodoro", LastName: "SANTIAGO"},
		{ID: 663, FirstName: "Carmela", LastName: "REYES"},
	}
	for i := range governors {
		if err := db.DB.FirstOrCreate(&governors[i], registry.Governor{ID: governors[i].ID}).Error; err != nil {
			log.Println("Failed to seed governor:", err)
		}
	}

	viceGovernors := []registry.ViceGovernor{
		{ID: 676, FirstName: "Benigno", LastName: "OCAMPO"},
		{ID: 677, FirstName: "Lucia", LastName: "DELACRUZ"},
	}
	for i := range viceGovernors {
		if err := db.DB.FirstOrCreate(&viceGovernors[i], registry.ViceGovernor{ID: viceGovernors[i].ID}).Error; err != nil {
			log.Println("Failed to seed vice governor:", err)
		}
	}

	mayors := []registry.Mayor{
		{ID: 700, FirstName: "Rodolfo", LastName: "BAUTISTA"},
		{ID: 701, FirstName: "Imelda", LastName: "TORRES"},
	}
	for i := range mayors {
		if err := db.DB.FirstOrCreate(&mayors[i], registry.Mayor{ID: mayors[i].ID}).Error; err != nil {
			log.Println("Failed to seed mayor:", err)
		}
	}

	log.Println("[Seeds] Candidate lookup tables seeded")
}

// SeedDemoHierarchy builds one barangay with a ward leader, a household and
// three members carrying a spread of preference records. The leader gets two
// dated records so latest-record resolution has something to resolve.
func SeedDemoHierarchy() {
	strPtr := func(s string) *string { return &s }
	intPtr := func(i int) *int { return &i }
	uintPtr := func(u uint) *uint { return &u }
	timePtr := func(t time.Time) *time.Time { return &t }

	brgy := registry.Barangay{
		ID:           1,
		Barangay:     strPtr("San Isidro"),
		Municipality: strPtr("Malvar"),
		District:     intPtr(2),
	}
	if err := db.DB.FirstOrCreate(&brgy, registry.Barangay{ID: brgy.ID}).Error; err != nil {
		log.Println("Failed to seed barangay:", err)
	}

	voters := []registry.Voter{
		{VID: 1001, BarangayID: uintPtr(1), PrecinctNo: strPtr("0017A"), LastName: strPtr("ALCANTARA"), FirstName: strPtr("CHRISTOPER"), Gender: strPtr("M"), RecordType: intPtr(1), Idx: "A-1001"},
		{VID: 1002, BarangayID: uintPtr(1), PrecinctNo: strPtr("0017A"), LastName: strPtr("ALCANTARA"), FirstName: strPtr("JANE"), Gender: strPtr("F"), RecordType: intPtr(1), Idx: "A-1002"},
		{VID: 1003, BarangayID: uintPtr(1), PrecinctNo: strPtr("0017B"), LastName: strPtr("ALCANTARA"), FirstName: strPtr("DAVE"), Gender: strPtr("M"), RecordType: intPtr(1), Idx: "A-1003"},
		{VID: 1004, BarangayID: uintPtr(1), PrecinctNo: strPtr("0018A"), LastName: strPtr("RIVERA"), FirstName: strPtr("MONICA"), Gender: strPtr("F"), RecordType: intPtr(1), Idx: "A-1004"},
	}
	for i := range voters {
		if err := db.DB.FirstOrCreate(&voters[i], registry.Voter{VID: voters[i].VID}).Error; err != nil {
			log.Println("Failed to seed voter:", err)
		}
	}

	// Two records for the same ward leader; only the later one counts.
	leaders := []registry.Leader{
		{ID: 1, VID: 1004, Type: intPtr(registry.LeaderTypeWard), ElectionYear: intPtr(2025), DateAdded: timePtr(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))},
		{ID: 2, VID: 1004, Type: intPtr(registry.LeaderTypeWard), ElectionYear: intPtr(2025), DateAdded: timePtr(time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC))},
		{ID: 3, VID: 1001, Type: intPtr(registry.LeaderTypeCoordinator), ElectionYear: intPtr(2025), DateAdded: timePtr(time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC))},
	}
	for i := range leaders {
		if err := db.DB.FirstOrCreate(&leaders[i], registry.Leader{ID: leaders[i].ID}).Error; err != nil {
			log.Println("Failed to seed leader:", err)
		}
	}

	household := registry.Household{
		ID:        1,
		HeadVID:   uintPtr(1001),
		LeaderVID: uintPtr(1004),
		PurokSt:   strPtr("Purok 3"),
		DateSaved: timePtr(time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)),
	}
	if err := db.DB.FirstOrCreate(&household, registry.Household{ID: household.ID}).Error; err != nil {
		log.Println("Failed to seed household:", err)
	}

	members := []registry.HouseholdMember{
		{ID: 1, HeadVID: uintPtr(1001), MemberVID: uintPtr(1002)},
		{ID: 2, HeadVID: uintPtr(1001), MemberVID: uintPtr(1003)},
	}
	for i := range members {
		if err := db.DB.FirstOrCreate(&members[i], registry.HouseholdMember{ID: members[i].ID}).Error; err != nil {
			log.Println("Failed to seed household member:", err)
		}
	}

	// One straight ticket, one undecided triple, one mixed, one voter with
	// no record at all (1004).
	politics := []registry.Politics{
		{ID: 1, VID: uintPtr(1001), Congressman: intPtr(660), Governor: intPtr(662), ViceGov: intPtr(676)},
		{ID: 2, VID: uintPtr(1002), Congressman: intPtr(679), Governor: intPtr(680), ViceGov: intPtr(681)},
		{ID: 3, VID: uintPtr(1003), Congressman: intPtr(661), Governor: intPtr(663), ViceGov: intPtr(681)},
	}
	for i := range politics {
		if err := db.DB.FirstOrCreate(&politics[i], registry.Politics{ID: politics[i].ID}).Error; err != nil {
			log.Println("Failed to seed politics record:", err)
		}
	}

	log.Println("[Seeds] Demo hierarchy seeded")
}
