package conceptual

import "strconv"

// VehicleID is the id of a vehicle within one merged scene.
// Ids are dense and 0-based. The string form is the key used in artifacts.
type VehicleID int

func (v VehicleID) String() string {
	return strconv.Itoa(int(v))
}

// ComboName names one combination of source files, eg. "000123-000456".
type ComboName string

func (c ComboName) String() string {
	return string(c)
}

func (c ComboName) Empty() bool {
	return c == ""
}
