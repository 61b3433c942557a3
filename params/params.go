package params

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rotblauer/trajmix/names"
)

var ErrInvalidConfig = errors.New("invalid configuration")

var validate = validator.New()

func check(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

const (
	DefaultDataDir       = "./data"
	DefaultCombineOutDir = "./data/outputs"
	DefaultCropOutDir    = "./data_deal_1"
	DefaultCollectOutDir = "./num"

	DefaultExtension = ".json"
)

// Eligibility decides which files in a directory are trajectory files.
// The same rule is shared by the combine and crop stages.
type Eligibility struct {
	// Digits is the length of the required numeric filename prefix.
	Digits int `validate:"gte=0"`
	// Extension is the required filename suffix, eg. ".json" or ".json.gz".
	Extension string `validate:"required"`
}

func DefaultEligibility() Eligibility {
	return Eligibility{
		Digits:    names.SourcePrefixLen,
		Extension: DefaultExtension,
	}
}

func (e Eligibility) Match(filename string) bool {
	return strings.HasSuffix(filename, e.Extension) && names.HasNumericPrefix(filename, e.Digits)
}

// VehicleDims are the dimensions of the rectangle standing in for every vehicle.
type VehicleDims struct {
	Length float64 `validate:"gt=0"`
	Width  float64 `validate:"gt=0"`
}

func DefaultVehicleDims() VehicleDims {
	return VehicleDims{Length: 5, Width: 2}
}

type CacheConfig struct {
	// Files is the number of parsed source files kept in memory
	// between combinations. Zero disables the cache.
	Files int `validate:"gte=0"`
}

func DefaultCacheConfig() CacheConfig {
	return CacheConfig{Files: 64}
}
