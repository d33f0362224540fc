package reports

import (
	"testing"

	"github.com/WardLink/WL-Backend/internal/registry"
)

func intp(v int) *int { return &v }

func testDirectory() CandidateDirectory {
	return CandidateDirectory{
		Congressmen:   map[int]string{660: "VILLANUEVA", 661: "MARQUEZ"},
		Governors:     map[int]string{662: "SANTIAGO", 663: "REYES"},
		ViceGovernors: map[int]string{676: "OCAMPO", 677: "DELACRUZ"},
		Mayors:        map[int]string{700: "BAUTISTA"},
	}
}

func TestRemarks(t *testing.T) {
	s := DefaultSentinels()
	dir := testDirectory()

	tests := []struct {
		name string
		p    *registry.Politics
		want string
	}{
		{"no record", nil, "NO DATA"},
		{"all nil", &registry.Politics{}, "UNDECIDED(ALL 3)"},
		{"all zero", &registry.Politics{Congressman: intp(0), Governor: intp(0), ViceGov: intp(0)}, "UNDECIDED(ALL 3)"},
		{"undecided triple", &registry.Politics{Congressman: intp(679), Governor: intp(680), ViceGov: intp(681)}, "UNDECIDED(ALL 3)"},
		{"straight ticket", &registry.Politics{Congressman: intp(660), Governor: intp(662), ViceGov: intp(676)}, "STRAIGHT"},
		{
			"named picks with one sentinel",
			&registry.Politics{Congressman: intp(661), Governor: intp(663), ViceGov: intp(681)},
			"MARQUEZ, REYES, UNDECIDED",
		},
		{
			"nil offices read undecided",
			&registry.Politics{Governor: intp(663)},
			"UNDECIDED, REYES, UNDECIDED",
		},
		{
			"straight candidates in a different mix are named",
			&registry.Politics{Congressman: intp(660), Governor: intp(663), ViceGov: intp(676)},
			"VILLANUEVA, REYES, OCAMPO",
		},
		{
			"unknown ids contribute nothing",
			&registry.Politics{Congressman: intp(999), Governor: intp(663), ViceGov: intp(0)},
			"REYES, UNDECIDED",
		},
		{
			"all unknown ids read no preference",
			&registry.Politics{Congressman: intp(999), Governor: intp(998), ViceGov: intp(997)},
			"NO PREFERENCE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Remarks(tt.p, s, dir)
			if got != tt.want {
				t.Errorf("Remarks() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsUndecided(t *testing.T) {
	s := DefaultSentinels()

	if !IsUndecided(nil, s) {
		t.Error("nil record should be undecided")
	}
	if !IsUndecided(&registry.Politics{}, s) {
		t.Error("empty record should be undecided")
	}
	if !IsUndecided(&registry.Politics{Congressman: intp(679), Governor: intp(680), ViceGov: intp(681)}, s) {
		t.Error("undecided triple should be undecided")
	}
	if IsUndecided(&registry.Politics{Congressman: intp(660), Governor: intp(662), ViceGov: intp(676)}, s) {
		t.Error("straight ticket should not be undecided")
	}
	if IsUndecided(&registry.Politics{Governor: intp(663)}, s) {
		t.Error("a single real pick should not be undecided")
	}
}

func TestRemarksCustomSentinels(t *testing.T) {
	s := Sentinels{
		ElectionYear: 2028,
		Undecided:    OfficeTriple{Congressman: 10, Governor: 11, ViceGov: 12},
		Straight:     OfficeTriple{Congressman: 20, Governor: 21, ViceGov: 22},
	}
	dir := CandidateDirectory{
		Congressmen:   map[int]string{20: "AAA"},
		Governors:     map[int]string{21: "BBB"},
		ViceGovernors: map[int]string{22: "CCC"},
	}

	p := &registry.Politics{Congressman: intp(10), Governor: intp(11), ViceGov: intp(12)}
	if got := Remarks(p, s, dir); got != "UNDECIDED(ALL 3)" {
		t.Errorf("custom undecided triple = %q, want UNDECIDED(ALL 3)", got)
	}

	p = &registry.Politics{Congressman: intp(20), Governor: intp(21), ViceGov: intp(22)}
	if got := Remarks(p, s, dir); got != "STRAIGHT" {
		t.Errorf("custom straight triple = %q, want STRAIGHT", got)
	}

	// The default sentinel IDs mean nothing under custom config.
	p = &registry.Politics{Congressman: intp(679), Governor: intp(680), ViceGov: intp(681)}
	if got := Remarks(p, s, dir); got != "NO PREFERENCE" {
		t.Errorf("default triple under custom config = %q, want NO PREFERENCE", got)
	}
}
