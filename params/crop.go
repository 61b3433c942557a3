package params

// CropConfig configures the subject-vehicle cropping of merged scenes.
type CropConfig struct {
	InputDir  string `validate:"required"`
	OutputDir string `validate:"required"`

	// MinVehicles is exclusive: a sub-scene needs more vehicles than this,
	// the subject included.
	MinVehicles int `validate:"gte=0"`

	// MinDuration is exclusive: the subject span must be longer than this,
	// in timestamp units.
	MinDuration int64 `validate:"gte=0"`

	Eligibility Eligibility
}

func DefaultCropConfig() *CropConfig {
	return &CropConfig{
		InputDir:    DefaultCombineOutDir,
		OutputDir:   DefaultCropOutDir,
		MinVehicles: 5,
		MinDuration: 5000,
		Eligibility: DefaultEligibility(),
	}
}

func (c *CropConfig) Validate() error {
	return check(c)
}
