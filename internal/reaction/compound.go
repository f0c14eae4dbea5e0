package reaction

import (
	"fmt"
	"regexp"
	"strconv"
)

// Compound is a chemical species with its initial concentration in mol/L.
type Compound struct {
	Formula       string
	Name          string
	Concentration float64
}

func (c Compound) String() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Formula)
}

// DefaultMolarMass is assigned to placeholder species such as "A" and to
// element symbols missing from the atomic mass table.
const DefaultMolarMass = 100.0

// atomicMasses in g/mol.
var atomicMasses = map[string]float64{
	"H": 1.008, "He": 4.003, "Li": 6.94, "Be": 9.012, "B": 10.81,
	"C": 12.01, "N": 14.01, "O": 16.00, "F": 19.00, "Ne": 20.18,
	"Na": 22.99, "Mg": 24.31, "Al": 26.98, "Si": 28.09, "P": 30.97,
	"S": 32.06, "Cl": 35.45, "Ar": 39.95, "K": 39.10, "Ca": 40.08,
	"I": 126.90,
}

var elementPattern = regexp.MustCompile(`([A-Z][a-z]?)(\d*)`)

// Element is one entry of a formula's composition.
type Element struct {
	Symbol string
	Count  int
}

// ParseComposition splits a formula such as "C6H12O6" into element counts
// in order of first appearance. Repeated symbols are summed. Anything that
// is not an element token (charges, parentheses) is ignored.
func ParseComposition(formula string) []Element {
	matches := elementPattern.FindAllStringSubmatch(formula, -1)
	out := make([]Element, 0, len(matches))
	pos := make(map[string]int, len(matches))
	for _, m := range matches {
		count := 1
		if m[2] != "" {
			n, err := strconv.Atoi(m[2])
			if err == nil {
				count = n
			}
		}
		if i, ok := pos[m[1]]; ok {
			out[i].Count += count
			continue
		}
		pos[m[1]] = len(out)
		out = append(out, Element{Symbol: m[1], Count: count})
	}
	return out
}

// MolarMass estimates the molar mass of a formula in g/mol. A single
// unknown one-letter symbol (the "A", "B", "C" of textbook examples) maps to
// DefaultMolarMass, as does every unknown element inside a larger formula.
func MolarMass(formula string) float64 {
	comp := ParseComposition(formula)
	if len(comp) == 0 {
		return DefaultMolarMass
	}

	total := 0.0
	for _, el := range comp {
		mass, ok := atomicMasses[el.Symbol]
		if !ok {
			mass = DefaultMolarMass
		}
		total += mass * float64(el.Count)
	}
	return total
}
