package registry

import (
	"log"

	"github.com/WardLink/WL-Backend/internal/db"
)

func Init() {
	// Ensure the registry schema exists first
	if err := db.EnsureSchema(db.DB, "registry"); err != nil {
		log.Fatal("Failed to create registry schema: ", err)
	}

	if err := db.DB.AutoMigrate(
		&Voter{}, &Barangay{}, &Leader{}, &Household{}, &HouseholdMember{},
		&Politics{}, &Congressman{}, &Governor{}, &ViceGovernor{}, &Mayor{},
	); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
