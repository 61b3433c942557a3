package params

// CollectConfig configures the final threshold filter and copy.
// Both thresholds are inclusive.
type CollectConfig struct {
	InputDir    string `validate:"required"`
	OutputDir   string `validate:"required"`
	MinDuration int64  `validate:"gte=0"`
	MinCount    int    `validate:"gte=0"`
	Extension   string `validate:"required"`
}

func DefaultCollectConfig() *CollectConfig {
	return &CollectConfig{
		InputDir:    DefaultCropOutDir,
		OutputDir:   DefaultCollectOutDir,
		MinDuration: 20000,
		MinCount:    10,
		Extension:   DefaultExtension,
	}
}

func (c *CollectConfig) Validate() error {
	return check(c)
}

// RunConfig chains all three stages, each reading the previous one's output.
type RunConfig struct {
	Combine *CombineConfig `validate:"required"`
	Crop    *CropConfig    `validate:"required"`
	Collect *CollectConfig `validate:"required"`
}

func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		Combine: DefaultCombineConfig(),
		Crop:    DefaultCropConfig(),
		Collect: DefaultCollectConfig(),
	}
}

// Chain points every stage's input at the previous stage's output.
func (c *RunConfig) Chain() {
	c.Crop.InputDir = c.Combine.OutputDir
	c.Crop.Eligibility = c.Combine.Eligibility
	c.Collect.InputDir = c.Crop.OutputDir
	c.Collect.Extension = c.Combine.Eligibility.Extension
}

func (c *RunConfig) Validate() error {
	if err := check(c); err != nil {
		return err
	}
	for _, v := range []interface{ Validate() error }{c.Combine, c.Crop, c.Collect} {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
