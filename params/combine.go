package params

// CombineConfig configures combination generation and conflict filtering.
type CombineConfig struct {
	DataDir   string `validate:"required"`
	OutputDir string `validate:"required"`

	// GroupNum is the number of groups the catalogued files are split into,
	// by ascending trajectory count.
	GroupNum int `validate:"gte=1"`

	// PickPerGroup is the number of files chosen from every group
	// for a single combination.
	PickPerGroup int `validate:"gte=1"`

	Vehicle     VehicleDims
	Eligibility Eligibility
	Cache       CacheConfig

	// DryRun stops after catalogue and partition, writing nothing.
	DryRun bool
}

func DefaultCombineConfig() *CombineConfig {
	return &CombineConfig{
		DataDir:      DefaultDataDir,
		OutputDir:    DefaultCombineOutDir,
		GroupNum:     5,
		PickPerGroup: 1,
		Vehicle:      DefaultVehicleDims(),
		Eligibility:  DefaultEligibility(),
		Cache:        DefaultCacheConfig(),
	}
}

func (c *CombineConfig) Validate() error {
	return check(c)
}
