package reports

import "context"

// BarangayOption pairs a barangay with its municipality so clients can
// narrow the barangay dropdown once a municipality is picked.
type BarangayOption struct {
	Barangay     string `gorm:"column:barangay" json:"barangay"`
	Municipality string `gorm:"column:municipality" json:"municipality"`
}

// FilterOptions feeds the report screens' filter dropdowns. It ships with
// every listing payload so clients never issue a separate lookup round trip.
type FilterOptions struct {
	Municipalities []string         `json:"municipalities"`
	Barangays      []BarangayOption `json:"barangays"`
	Puroks         []string         `json:"puroks"`
}

// filterOptions collects the distinct municipalities, barangays and puroks
// present in the registry. Puroks only matter to household listings, so
// other callers skip that query and get an empty list.
func (s *Service) filterOptions(ctx context.Context, includePuroks bool) (FilterOptions, error) {
	opts := FilterOptions{
		Municipalities: []string{},
		Barangays:      []BarangayOption{},
		Puroks:         []string{},
	}

	err := s.DB.WithContext(ctx).Raw(`
		SELECT DISTINCT municipality
		FROM registry.barangays
		WHERE municipality IS NOT NULL AND municipality <> ''
		ORDER BY municipality`).Scan(&opts.Municipalities).Error
	if err != nil {
		return opts, err
	}

	err = s.DB.WithContext(ctx).Raw(`
		SELECT DISTINCT barangay, COALESCE(municipality, '') AS municipality
		FROM registry.barangays
		WHERE barangay IS NOT NULL AND barangay <> ''
		ORDER BY municipality, barangay`).Scan(&opts.Barangays).Error
	if err != nil {
		return opts, err
	}

	if includePuroks {
		err = s.DB.WithContext(ctx).Raw(`
			SELECT DISTINCT purok_st
			FROM registry.head_household
			WHERE purok_st IS NOT NULL AND purok_st <> ''
			ORDER BY purok_st`).Scan(&opts.Puroks).Error
		if err != nil {
			return opts, err
		}
	}

	return opts, nil
}
