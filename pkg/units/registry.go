package units

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/unit"
)

// Physical constants in SI units.
const (
	SpeedOfLight = 299792458.0
	Planck       = 6.62607015e-34
	Boltzmann    = 1.380649e-23
)

type definition struct {
	scale      float64 // factor to SI base units
	offset     float64 // affine offset to SI base units, only used for stand-alone units
	dims       unit.Dimensions
	prefixable bool
}

type prefix struct {
	symbol string
	factor float64
}

var prefixes = []prefix{
	{"Y", 1e24}, {"Z", 1e21}, {"E", 1e18}, {"P", 1e15}, {"T", 1e12}, {"G", 1e9},
	{"M", 1e6}, {"k", 1e3}, {"h", 1e2}, {"da", 1e1}, {"d", 1e-1}, {"c", 1e-2},
	{"m", 1e-3}, {"u", 1e-6}, {"µ", 1e-6}, {"n", 1e-9}, {"p", 1e-12}, {"f", 1e-15},
	{"a", 1e-18}, {"z", 1e-21}, {"y", 1e-24},
}

func init() {
	// "da" must be tried before "d"
	sort.SliceStable(prefixes, func(i, j int) bool {
		return len(prefixes[i].symbol) > len(prefixes[j].symbol)
	})
}

func dims(kv ...int) unit.Dimensions {
	ret := unit.Dimensions{}
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] != 0 {
			ret[unit.Dimension(kv[i])] = kv[i+1]
		}
	}
	return ret
}

var (
	dimL = int(unit.LengthDim)
	dimM = int(unit.MassDim)
	dimT = int(unit.TimeDim)
	dimI = int(unit.CurrentDim)
	dimK = int(unit.TemperatureDim)
	dimN = int(unit.MoleDim)
	dimJ = int(unit.LuminousIntensityDim)
	dimA = int(unit.AngleDim)
)

var registry = map[string]definition{
	// SI base
	"m":   {scale: 1, dims: dims(dimL, 1), prefixable: true},
	"g":   {scale: 1e-3, dims: dims(dimM, 1), prefixable: true},
	"s":   {scale: 1, dims: dims(dimT, 1), prefixable: true},
	"A":   {scale: 1, dims: dims(dimI, 1), prefixable: true},
	"K":   {scale: 1, dims: dims(dimK, 1), prefixable: true},
	"mol": {scale: 1, dims: dims(dimN, 1), prefixable: true},
	"cd":  {scale: 1, dims: dims(dimJ, 1), prefixable: true},
	"rad": {scale: 1, dims: dims(dimA, 1), prefixable: true},
	"sr":  {scale: 1, dims: dims(dimA, 2), prefixable: true},

	// SI derived
	"Hz":  {scale: 1, dims: dims(dimT, -1), prefixable: true},
	"N":   {scale: 1, dims: dims(dimM, 1, dimL, 1, dimT, -2), prefixable: true},
	"Pa":  {scale: 1, dims: dims(dimM, 1, dimL, -1, dimT, -2), prefixable: true},
	"J":   {scale: 1, dims: dims(dimM, 1, dimL, 2, dimT, -2), prefixable: true},
	"W":   {scale: 1, dims: dims(dimM, 1, dimL, 2, dimT, -3), prefixable: true},
	"C":   {scale: 1, dims: dims(dimI, 1, dimT, 1), prefixable: true},
	"V":   {scale: 1, dims: dims(dimM, 1, dimL, 2, dimT, -3, dimI, -1), prefixable: true},
	"F":   {scale: 1, dims: dims(dimM, -1, dimL, -2, dimT, 4, dimI, 2), prefixable: true},
	"ohm": {scale: 1, dims: dims(dimM, 1, dimL, 2, dimT, -3, dimI, -2), prefixable: true},
	"S":   {scale: 1, dims: dims(dimM, -1, dimL, -2, dimT, 3, dimI, 2), prefixable: true},
	"Wb":  {scale: 1, dims: dims(dimM, 1, dimL, 2, dimT, -2, dimI, -1), prefixable: true},
	"T":   {scale: 1, dims: dims(dimM, 1, dimT, -2, dimI, -1), prefixable: true},
	"H":   {scale: 1, dims: dims(dimM, 1, dimL, 2, dimT, -2, dimI, -2), prefixable: true},
	"lm":  {scale: 1, dims: dims(dimJ, 1, dimA, 2), prefixable: true},
	"lx":  {scale: 1, dims: dims(dimJ, 1, dimA, 2, dimL, -2), prefixable: true},
	"Bq":  {scale: 1, dims: dims(dimT, -1), prefixable: true},
	"Gy":  {scale: 1, dims: dims(dimL, 2, dimT, -2), prefixable: true},

	// non-SI
	"min":      {scale: 60, dims: dims(dimT, 1)},
	"h":        {scale: 3600, dims: dims(dimT, 1)},
	"d":        {scale: 86400, dims: dims(dimT, 1)},
	"yr":       {scale: 365.25 * 86400, dims: dims(dimT, 1), prefixable: true},
	"l":        {scale: 1e-3, dims: dims(dimL, 3), prefixable: true},
	"L":        {scale: 1e-3, dims: dims(dimL, 3), prefixable: true},
	"micron":   {scale: 1e-6, dims: dims(dimL, 1)},
	"Angstrom": {scale: 1e-10, dims: dims(dimL, 1)},
	"AU":       {scale: 1.495978707e11, dims: dims(dimL, 1)},
	"pc":       {scale: 3.0856775814913673e16, dims: dims(dimL, 1), prefixable: true},
	"lyr":      {scale: 9.4607304725808e15, dims: dims(dimL, 1)},
	"eV":       {scale: 1.602176634e-19, dims: dims(dimM, 1, dimL, 2, dimT, -2), prefixable: true},
	"erg":      {scale: 1e-7, dims: dims(dimM, 1, dimL, 2, dimT, -2)},
	"dyn":      {scale: 1e-5, dims: dims(dimM, 1, dimL, 1, dimT, -2)},
	"Jy":       {scale: 1e-26, dims: dims(dimM, 1, dimT, -2), prefixable: true},
	"bar":      {scale: 1e5, dims: dims(dimM, 1, dimL, -1, dimT, -2), prefixable: true},
	"barn":     {scale: 1e-28, dims: dims(dimL, 2), prefixable: true},
	"deg":      {scale: math.Pi / 180, dims: dims(dimA, 1)},
	"arcmin":   {scale: math.Pi / 180 / 60, dims: dims(dimA, 1)},
	"arcsec":   {scale: math.Pi / 180 / 3600, dims: dims(dimA, 1), prefixable: true},
	"mas":      {scale: math.Pi / 180 / 3600 / 1000, dims: dims(dimA, 1)},
	"deg_C":    {scale: 1, offset: 273.15, dims: dims(dimK, 1)},
}

// siBase is the symbol every dimension decomposes into.
var siBase = map[unit.Dimension]string{
	unit.LengthDim:            "m",
	unit.MassDim:              "kg",
	unit.TimeDim:              "s",
	unit.CurrentDim:           "A",
	unit.TemperatureDim:       "K",
	unit.MoleDim:              "mol",
	unit.LuminousIntensityDim: "cd",
	unit.AngleDim:             "rad",
}

// cgsBase overrides siBase for the CGS system.
var cgsBase = map[unit.Dimension]string{
	unit.LengthDim: "cm",
	unit.MassDim:   "g",
}

// resolved is a symbol looked up in the registry with its prefix applied.
type resolved struct {
	scale  float64
	offset float64
	dims   unit.Dimensions
}

// lookup resolves a unit symbol, trying exact symbols before prefixed ones.
func lookup(symbol string) (resolved, bool) {
	if d, ok := registry[symbol]; ok {
		return resolved{scale: d.scale, offset: d.offset, dims: d.dims}, true
	}

	for _, p := range prefixes {
		rest, ok := strings.CutPrefix(symbol, p.symbol)
		if !ok || rest == "" {
			continue
		}
		if d, ok := registry[rest]; ok && d.prefixable {
			return resolved{scale: p.factor * d.scale, dims: d.dims}, true
		}
	}

	return resolved{}, false
}

// IsKnownSymbol reports whether symbol, possibly prefixed, is a recognized unit.
func IsKnownSymbol(symbol string) bool {
	_, ok := lookup(symbol)
	return ok
}
