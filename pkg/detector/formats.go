package detector

import "regexp"

// DefaultMarkerPattern matches a bare Eclipse keyword line: an upper-case
// name of at most eight characters.
const DefaultMarkerPattern = `^[A-Z][A-Z0-9_+-]{0,7}$`

// KnownKeyword describes a keyword commonly found in GRDECL exports.
type KnownKeyword struct {
	Name        string
	Description string
	// PerCell is true for properties with one value per grid cell.
	PerCell bool
}

// KnownKeywords returns the keywords the inventory annotates.
func KnownKeywords() map[string]KnownKeyword {
	known := []KnownKeyword{
		{Name: "SPECGRID", Description: "Grid specification (nx ny nz numres type)"},
		{Name: "DIMENS", Description: "Grid dimensions (nx ny nz)"},
		{Name: "MAPAXES", Description: "Map coordinate axes"},
		{Name: "COORD", Description: "Corner-point pillar coordinates"},
		{Name: "ZCORN", Description: "Corner-point depths"},
		{Name: "ACTNUM", Description: "Active cell flags", PerCell: true},
		{Name: "TOPS", Description: "Cell top depths", PerCell: true},
		{Name: "DX", Description: "Cell size in X", PerCell: true},
		{Name: "DY", Description: "Cell size in Y", PerCell: true},
		{Name: "DZ", Description: "Cell thickness", PerCell: true},
		{Name: "PORO", Description: "Porosity", PerCell: true},
		{Name: "NTG", Description: "Net-to-gross ratio", PerCell: true},
		{Name: "PERMX", Description: "Permeability in X", PerCell: true},
		{Name: "PERMY", Description: "Permeability in Y", PerCell: true},
		{Name: "PERMZ", Description: "Permeability in Z", PerCell: true},
		{Name: "MULTX", Description: "Transmissibility multiplier in X", PerCell: true},
		{Name: "MULTY", Description: "Transmissibility multiplier in Y", PerCell: true},
		{Name: "MULTZ", Description: "Transmissibility multiplier in Z", PerCell: true},
		{Name: "SATNUM", Description: "Saturation region numbers", PerCell: true},
		{Name: "EQLNUM", Description: "Equilibration region numbers", PerCell: true},
		{Name: "FIPNUM", Description: "Fluid-in-place region numbers", PerCell: true},
		{Name: "PVTNUM", Description: "PVT region numbers", PerCell: true},
	}

	out := make(map[string]KnownKeyword, len(known))
	for _, k := range known {
		out[k.Name] = k
	}
	return out
}

func compileMarkerPattern(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(pattern)
}
