package registry

import "time"

// Voter is the registry's identity record. Rows are immutable after intake
// except for administrative corrections.
type Voter struct {
	VID          uint       `gorm:"column:v_id;primaryKey" json:"v_id"`
	BarangayID   *uint      `gorm:"column:barangay_id" json:"barangay_id"`
	PrecinctNo   *string    `gorm:"column:v_precinct_no;size:45" json:"v_precinct_no"`
	LastName     *string    `gorm:"column:v_lname;size:145" json:"v_lname"`
	FirstName    *string    `gorm:"column:v_fname;size:145" json:"v_fname"`
	MiddleName   *string    `gorm:"column:v_mname;size:45" json:"v_mname"`
	Birthday     *time.Time `gorm:"column:v_birthday" json:"v_birthday"`
	Gender       *string    `gorm:"column:v_gender;size:15" json:"v_gender"`
	RecordType   *int       `gorm:"column:record_type" json:"record_type"`
	Idx          string     `gorm:"column:v_idx;size:45;not null" json:"v_idx"`
	DateRecorded *time.Time `gorm:"column:date_recorded" json:"date_recorded"`
}

type Barangay struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Barangay     *string `gorm:"size:45" json:"barangay"`
	Municipality *string `gorm:"size:45" json:"municipality"`
	District     *int    `json:"district"`
	Households   *int    `json:"households"`
}

// Leader assigns a voter the role of ward leader (type 1) or barangay
// coordinator (type 2) for an election year. A voter can be re-recorded
// across cycles, so multiple dated rows may share a (v_id, type); only the
// row with the maximum dateadded is authoritative.
type Leader struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	VID          uint       `gorm:"column:v_id;not null;index" json:"v_id"`
	Type         *int       `json:"type"`
	ElectionYear *int       `gorm:"column:electionyear" json:"electionyear"`
	DateAdded    *time.Time `gorm:"column:dateadded" json:"dateadded"`
	UserID       *uint      `gorm:"column:user_id" json:"user_id"`
	Status       *int       `json:"status"`
	IsPrinted    int        `gorm:"column:is_printed;not null;default:0" json:"is_printed"`
	IsReceived   int        `gorm:"column:is_received;not null;default:0" json:"is_received"`
}

const (
	LeaderTypeWard        = 1
	LeaderTypeCoordinator = 2
)

// Household ties a head voter to an assigned ward leader. The is_printed
// flag moves 0 -> 1 only through a confirmed print batch; nothing in the
// pipeline clears it.
type Household struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	HeadVID            *uint      `gorm:"column:fh_v_id;index" json:"fh_v_id"`
	DateSaved          *time.Time `gorm:"column:date_saved" json:"date_saved"`
	UserID             *uint      `gorm:"column:user_id" json:"user_id"`
	LeaderVID          *uint      `gorm:"column:leader_v_id;index" json:"leader_v_id"`
	PurokSt            *string    `gorm:"column:purok_st;size:245" json:"purok_st"`
	VerificationStatus *string    `gorm:"column:verification_status;size:20" json:"verification_status"`
	IsPrinted          int        `gorm:"column:is_printed;not null;default:0" json:"is_printed"`
	IsReceived         int        `gorm:"column:is_received;not null;default:0" json:"is_received"`
}

// HouseholdMember joins a household (keyed by its head voter id) to a member
// voter. The head may appear as its own member row; when it doesn't, report
// paths synthesize the head entry from the Household record.
type HouseholdMember struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	HeadVID   *uint      `gorm:"column:fh_v_id;index" json:"fh_v_id"`
	MemberVID *uint      `gorm:"column:mem_v_id;index" json:"mem_v_id"`
	DateSaved *time.Time `gorm:"column:date_saved" json:"date_saved"`
	UserID    *uint      `gorm:"column:user_id" json:"user_id"`
}

// Politics holds one voter's raw candidate preferences. Nullable IDs compare
// against sentinel values; the classifier owns that logic.
type Politics struct {
	ID          uint  `gorm:"primaryKey" json:"id"`
	VID         *uint `gorm:"column:v_id;index" json:"v_id"`
	Congressman *int  `json:"congressman"`
	Governor    *int  `json:"governor"`
	ViceGov     *int  `gorm:"column:vicegov" json:"vicegov"`
	Mayor       *int  `json:"mayor"`
	Status      *int  `json:"status"`
}

// Candidate lookup tables: static reference data rendered into remark
// strings, never mutated by the pipeline.

type Congressman struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"column:first_name;size:145" json:"first_name"`
	LastName  string `gorm:"column:last_name;size:145" json:"last_name"`
}

type Governor struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"column:first_name;size:145" json:"first_name"`
	LastName  string `gorm:"column:last_name;size:145" json:"last_name"`
}

type ViceGovernor struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"column:first_name;size:145" json:"first_name"`
	LastName  string `gorm:"column:last_name;size:145" json:"last_name"`
}

type Mayor struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"column:first_name;size:145" json:"first_name"`
	LastName  string `gorm:"column:last_name;size:145" json:"last_name"`
}

func (Voter) TableName() string           { return "registry.v_info" }
func (Barangay) TableName() string        { return "registry.barangays" }
func (Leader) TableName() string          { return "registry.leaders" }
func (Household) TableName() string       { return "registry.head_household" }
func (HouseholdMember) TableName() string { return "registry.household_warding" }
func (Politics) TableName() string        { return "registry.politics" }
func (Congressman) TableName() string     { return "registry.congressman" }
func (Governor) TableName() string        { return "registry.governor" }
func (ViceGovernor) TableName() string    { return "registry.vice_governor" }
func (Mayor) TableName() string           { return "registry.mayor" }
