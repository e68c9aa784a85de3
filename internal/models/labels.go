package models

// Hiring type and level arrive from the service as numeric codes. Decoding is
// total: a code without a known label is shown verbatim instead of hidden.

// HiringTypeLabel maps a hiring type code to its display label.
func HiringTypeLabel(code string) string {
	switch code {
	case "1":
		return "Sales"
	case "2":
		return "IT"
	case "3":
		return "Non-Sales"
	case "4":
		return "Sales Support"
	default:
		return code
	}
}

// LevelLabel maps an experience level code to its display label.
func LevelLabel(code string) string {
	switch code {
	case "1":
		return "Fresher"
	case "2":
		return "Experienced"
	default:
		return code
	}
}

// HiringTypeOptions lists the selectable hiring types in display order.
func HiringTypeOptions() []string {
	return []string{"Sales", "IT", "Non-Sales", "Sales Support"}
}

// LevelOptions lists the selectable experience levels in display order.
func LevelOptions() []string {
	return []string{"Fresher", "Experienced"}
}

// HiringTypeCode is the inverse of HiringTypeLabel for known labels; unknown
// labels pass through unchanged so a round-trip never loses information.
func HiringTypeCode(label string) string {
	switch label {
	case "Sales":
		return "1"
	case "IT":
		return "2"
	case "Non-Sales":
		return "3"
	case "Sales Support":
		return "4"
	default:
		return label
	}
}

// LevelCode is the inverse of LevelLabel for known labels.
func LevelCode(label string) string {
	switch label {
	case "Fresher":
		return "1"
	case "Experienced":
		return "2"
	default:
		return label
	}
}
