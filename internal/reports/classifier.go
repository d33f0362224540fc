package reports

import (
	"strings"

	"github.com/WardLink/WL-Backend/internal/registry"
)

// Remark strings rendered onto print sheets and report rows.
const (
	RemarkNoData       = "NO DATA"
	RemarkUndecidedAll = "UNDECIDED(ALL 3)"
	RemarkStraight     = "STRAIGHT"
	RemarkNoPreference = "NO PREFERENCE"

	tokenUndecided = "UNDECIDED"
)

// Remarks classifies one voter's raw preference record into a remark
// string. Precedence: no record at all, then the all-undecided forms (every
// office empty, or the exact undecided triple), then the straight-ticket
// triple, then a per-office candidate list.
//
// Within the list each office contributes either the UNDECIDED token (its
// sentinel or an empty value) or the candidate's surname. A non-zero ID
// missing from the directory contributes nothing; if every office falls
// through that way the list is empty and the record reads NO PREFERENCE.
func Remarks(p *registry.Politics, s Sentinels, dir CandidateDirectory) string {
	if p == nil {
		return RemarkNoData
	}

	cong := intVal(p.Congressman)
	gov := intVal(p.Governor)
	vice := intVal(p.ViceGov)

	if cong == 0 && gov == 0 && vice == 0 {
		return RemarkUndecidedAll
	}
	if cong == s.Undecided.Congressman && gov == s.Undecided.Governor && vice == s.Undecided.ViceGov {
		return RemarkUndecidedAll
	}
	if cong == s.Straight.Congressman && gov == s.Straight.Governor && vice == s.Straight.ViceGov {
		return RemarkStraight
	}

	var picks []string
	appendOffice := func(id, undecidedID int, names map[int]string) {
		switch {
		case id == 0 || id == undecidedID:
			picks = append(picks, tokenUndecided)
		default:
			if name, ok := names[id]; ok {
				picks = append(picks, name)
			}
		}
	}
	appendOffice(cong, s.Undecided.Congressman, dir.Congressmen)
	appendOffice(gov, s.Undecided.Governor, dir.Governors)
	appendOffice(vice, s.Undecided.ViceGov, dir.ViceGovernors)

	if len(picks) == 0 {
		return RemarkNoPreference
	}
	return strings.Join(picks, ", ")
}

// IsUndecided reports whether the record is one of the all-undecided forms.
func IsUndecided(p *registry.Politics, s Sentinels) bool {
	if p == nil {
		return true
	}
	cong := intVal(p.Congressman)
	gov := intVal(p.Governor)
	vice := intVal(p.ViceGov)
	if cong == 0 && gov == 0 && vice == 0 {
		return true
	}
	return cong == s.Undecided.Congressman && gov == s.Undecided.Governor && vice == s.Undecided.ViceGov
}

func intVal(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
