package reports

import (
	"context"

	"gorm.io/gorm"

	"github.com/WardLink/WL-Backend/internal/cache"
	"github.com/WardLink/WL-Backend/internal/registry"
)

// Service carries the report pipeline's dependencies. Handlers, the
// hierarchy aggregator and the print-batch orchestrator all hang off it so
// tests can swap in fakes instead of reaching for package-level singletons.
type Service struct {
	DB        *gorm.DB
	Cache     cache.Store
	Sentinels Sentinels
}

func NewService(db *gorm.DB, store cache.Store, sentinels Sentinels) *Service {
	if store == nil {
		store = cache.Noop{}
	}
	return &Service{DB: db, Cache: store, Sentinels: sentinels}
}

// CandidateDirectory maps candidate IDs to display surnames, one map per
// elected office. Loaded once per print/report request to avoid joining the
// lookup tables into every row.
type CandidateDirectory struct {
	Congressmen   map[int]string
	Governors     map[int]string
	ViceGovernors map[int]string
	Mayors        map[int]string
}

func (s *Service) loadCandidateDirectory(ctx context.Context) (CandidateDirectory, error) {
	dir := CandidateDirectory{
		Congressmen:   map[int]string{},
		Governors:     map[int]string{},
		ViceGovernors: map[int]string{},
		Mayors:        map[int]string{},
	}

	var congressmen []registry.Congressman
	if err := s.DB.WithContext(ctx).Find(&congressmen).Error; err != nil {
		return dir, err
	}
	for _, c := range congressmen {
		dir.Congressmen[int(c.ID)] = c.LastName
	}

	var governors []registry.Governor
	if err := s.DB.WithContext(ctx).Find(&governors).Error; err != nil {
		return dir, err
	}
	for _, g := range governors {
		dir.Governors[int(g.ID)] = g.LastName
	}

	var viceGovernors []registry.ViceGovernor
	if err := s.DB.WithContext(ctx).Find(&viceGovernors).Error; err != nil {
		return dir, err
	}
	for _, vg := range viceGovernors {
		dir.ViceGovernors[int(vg.ID)] = vg.LastName
	}

	var mayors []registry.Mayor
	if err := s.DB.WithContext(ctx).Find(&mayors).Error; err != nil {
		return dir, err
	}
	for _, m := range mayors {
		dir.Mayors[int(m.ID)] = m.LastName
	}

	return dir, nil
}

// loadPoliticsFor fetches preference rows for a set of voter IDs in one
// query and indexes them by voter.
func (s *Service) loadPoliticsFor(ctx context.Context, voterIDs []uint) (map[uint]*registry.Politics, error) {
	byVoter := map[uint]*registry.Politics{}
	if len(voterIDs) == 0 {
		return byVoter, nil
	}

	var rows []registry.Politics
	if err := s.DB.WithContext(ctx).Where("v_id IN ?", voterIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		if rows[i].VID != nil {
			byVoter[*rows[i].VID] = &rows[i]
		}
	}
	return byVoter, nil
}

func (s *Service) invalidate(ctx context.Context, patterns ...string) {
	for _, p := range patterns {
		s.Cache.DeleteByPattern(ctx, p)
	}
}

// Cache invalidation patterns per entity class. Any print-status mutation on
// a class clears every cached read touching that class, plus the statistics
// endpoints that count printed flags. The per-leader household list carries
// household print flags, so it clears with both classes.
var (
	householdCachePatterns = []string{
		"reports:households:*",
		"reports:household:*",
		"reports:leader:*",
		"reports:printing:households:*",
		"reports:print-statistics*",
	}
	wardLeaderCachePatterns = []string{
		"reports:ward-leaders:*",
		"reports:ward-leaders-statistics:*",
		"reports:leader:*",
		"reports:printing:ward-leaders:*",
		"reports:print-statistics*",
	}
	coordinatorCachePatterns = []string{
		"reports:barangay-coordinators:*",
		"reports:printing:barangay-coordinators:*",
		"reports:print-statistics*",
	}
)
