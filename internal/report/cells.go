package report

import "rahmet_export/internal/choco"

func decimalCell(v choco.Number) any {
	if !v.Valid {
		return ""
	}
	return v.Value.InexactFloat64()
}

// countCell writes whole numbers as integers and anything else as a float.
func countCell(v choco.Number) any {
	if !v.Valid {
		return ""
	}
	if v.Value.IsInteger() {
		return v.Value.IntPart()
	}
	return v.Value.InexactFloat64()
}

func scalarCell(v *choco.Scalar) any {
	if v == nil {
		return ""
	}
	return v.String()
}

// idCell keeps numeric ids numeric in the sheet.
func idCell(v *choco.Scalar) any {
	if v == nil {
		return ""
	}
	if n, ok := v.Int64(); ok {
		return n
	}
	return v.String()
}

func progressCell(v choco.Number) any {
	if !v.Valid {
		return ""
	}
	return v.String() + "%"
}
