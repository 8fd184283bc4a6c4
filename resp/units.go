package resp

import (
	"strings"
)

// unitPrefix maps the numerator token (before any "/") to a Unit and MKS
// scale factor, per spec.md §4.2.
var unitPrefix = map[string]struct {
	unit  Unit
	scale float64
}{
	"M":      {UnitDisplacement, 1},
	"NM":     {UnitDisplacement, 1e-9},
	"UM":     {UnitDisplacement, 1e-6},
	"MM":     {UnitDisplacement, 1e-3},
	"CM":     {UnitDisplacement, 1e-2},
	"COUNTS": {UnitCounts, 1},
	"V":      {UnitVolts, 1},
	"PA":     {UnitPressure, 1},
	"T":      {UnitTesla, 1},
	"C":      {UnitCentigrade, 1},
}

// ParseUnit parses a free-form RESP unit token (the first whitespace
// field after "Units:") into a Unit and MKS scale factor. If
// useDefaultUnits is true the token is not categorized at all: the
// returned UnitValue has Unit == UnitDefault and Scale == 1, signalling
// that input equals output (spec.md §3, §4.2).
func ParseUnit(ctx *Context, token string, useDefaultUnits bool) (UnitValue, error) {
	if useDefaultUnits {
		return UnitValue{Unit: UnitDefault, Scale: 1, Token: token}, nil
	}

	clean := strings.ToUpper(strings.TrimSpace(token))
	if clean == "" {
		return UnitValue{}, newErr(ctx, KindUnrecognizedUnits, "empty unit token", nil)
	}

	num := clean
	den := ""
	if idx := strings.Index(clean, "/"); idx >= 0 {
		num = clean[:idx]
		den = clean[idx+1:]
	}

	entry, ok := unitPrefix[num]
	if !ok {
		return UnitValue{}, newErr(ctx, KindUnrecognizedUnits, "unrecognized unit \""+token+"\"", nil)
	}

	unit := entry.unit
	if unit == UnitDisplacement {
		switch den {
		case "":
			unit = UnitDisplacement
		case "S":
			unit = UnitVelocity
		case "S**2", "S2":
			unit = UnitAcceleration
		default:
			return UnitValue{}, newErr(ctx, KindUnrecognizedUnits, "unrecognized unit \""+token+"\"", nil)
		}
	} else if den != "" {
		return UnitValue{}, newErr(ctx, KindUnrecognizedUnits, "unrecognized unit \""+token+"\"", nil)
	}

	return UnitValue{Unit: unit, Scale: entry.scale, Token: token}, nil
}
