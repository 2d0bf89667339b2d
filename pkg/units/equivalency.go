package units

import (
	"fmt"

	"gonum.org/v1/gonum/unit"
)

// Rule converts between two physical dimensions that are not otherwise convertible. Forward
// and Backward operate on values in SI base units.
type Rule struct {
	From, To          unit.Dimensions
	Forward, Backward func(float64) float64
}

// Equivalency is a named table of conversion rules, e.g. wavelength to frequency.
type Equivalency struct {
	Name  string
	Rules []Rule
}

func (e Equivalency) String() string { return e.Name }

func inverse(k float64) func(float64) float64 {
	return func(v float64) float64 { return k / v }
}

func linear(k float64) func(float64) float64 {
	return func(v float64) float64 { return k * v }
}

var (
	length     = dims(dimL, 1)
	frequency  = dims(dimT, -1)
	energy     = dims(dimM, 1, dimL, 2, dimT, -2)
	wavenumber = dims(dimL, -1)
	mass       = dims(dimM, 1)
	temp       = dims(dimK, 1)
	angle      = dims(dimA, 1)
)

// Spectral returns the equivalencies between wavelength, frequency, photon energy and
// wavenumber.
func Spectral() Equivalency {
	hc := Planck * SpeedOfLight
	return Equivalency{Name: "spectral", Rules: []Rule{
		{From: length, To: frequency, Forward: inverse(SpeedOfLight), Backward: inverse(SpeedOfLight)},
		{From: length, To: energy, Forward: inverse(hc), Backward: inverse(hc)},
		{From: frequency, To: energy, Forward: linear(Planck), Backward: linear(1 / Planck)},
		{From: length, To: wavenumber, Forward: inverse(1), Backward: inverse(1)},
		{From: frequency, To: wavenumber, Forward: linear(1 / SpeedOfLight), Backward: linear(SpeedOfLight)},
		{From: energy, To: wavenumber, Forward: linear(1 / hc), Backward: linear(hc)},
	}}
}

// MassEnergy returns the equivalency between mass and energy (E = mc^2).
func MassEnergy() Equivalency {
	c2 := SpeedOfLight * SpeedOfLight
	return Equivalency{Name: "mass_energy", Rules: []Rule{
		{From: mass, To: energy, Forward: linear(c2), Backward: linear(1 / c2)},
	}}
}

// TemperatureEnergy returns the equivalency between temperature and energy (E = kT).
func TemperatureEnergy() Equivalency {
	return Equivalency{Name: "temperature_energy", Rules: []Rule{
		{From: temp, To: energy, Forward: linear(Boltzmann), Backward: linear(1 / Boltzmann)},
	}}
}

// DimensionlessAngles treats angles as dimensionless.
func DimensionlessAngles() Equivalency {
	return Equivalency{Name: "dimensionless_angles", Rules: []Rule{
		{From: angle, To: dims(), Forward: linear(1), Backward: linear(1)},
	}}
}

var equivalencies = map[string]func() Equivalency{
	"spectral":             Spectral,
	"mass_energy":          MassEnergy,
	"temperature_energy":   TemperatureEnergy,
	"dimensionless_angles": DimensionlessAngles,
}

// EquivalenciesByName resolves equivalency tables by name.
func EquivalenciesByName(names ...string) ([]Equivalency, error) {
	ret := make([]Equivalency, 0, len(names))
	for _, name := range names {
		f, ok := equivalencies[name]
		if !ok {
			return nil, fmt.Errorf("unknown equivalency %q", name)
		}
		ret = append(ret, f())
	}
	return ret, nil
}
