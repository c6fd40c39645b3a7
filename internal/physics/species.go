package physics

// Species identifies a particle type circulated in the machine.
type Species string

const (
	Proton     Species = "Proton"
	Electron   Species = "Electron"
	LeadIon    Species = "Lead Ion"
	Antiproton Species = "Antiproton"
)

// AllSpecies lists the supported beam species in display order.
var AllSpecies = []Species{Proton, Electron, LeadIon, Antiproton}

// RGB is a display color for a species.
type RGB struct {
	R, G, B uint8
}

// Properties holds the static per-species constants.
type Properties struct {
	MassGeV float64 // rest mass, GeV/c^2
	Charge  float64 // units of elementary charge
	Spin    float64
	GFactor float64
	Color   RGB
}

var speciesTable = map[Species]Properties{
	Proton: {
		MassGeV: 0.938272,
		Charge:  1,
		Spin:    0.5,
		GFactor: 5.5857,
		Color:   RGB{255, 255, 0},
	},
	Electron: {
		MassGeV: 0.000511,
		Charge:  -1,
		Spin:    0.5,
		GFactor: 2.00232,
		Color:   RGB{0, 255, 255},
	},
	LeadIon: { // Pb-208, fully stripped
		MassGeV: 193.7,
		Charge:  82,
		Spin:    0,
		GFactor: 0,
		Color:   RGB{255, 0, 255},
	},
	Antiproton: {
		MassGeV: 0.938272,
		Charge:  -1,
		Spin:    0.5,
		GFactor: 5.5857,
		Color:   RGB{255, 128, 0},
	},
}

// Lookup returns the properties for a species. Unknown species fall back to
// proton defaults rather than failing.
func Lookup(s Species) Properties {
	if p, ok := speciesTable[s]; ok {
		return p
	}
	return speciesTable[Proton]
}

// ParseSpecies maps a name to a Species, falling back to Proton when the
// name is unknown.
func ParseSpecies(name string) Species {
	for _, s := range AllSpecies {
		if string(s) == name {
			return s
		}
	}
	return Proton
}
