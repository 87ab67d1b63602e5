package vanilla

import (
	"strconv"
	"strings"
)

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "cf-" + strings.ReplaceAll(trimmed, "_", "-")
}

// formatValue renders a field value for an input's value attribute.
func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case interface{ String() string }:
		return v.String()
	default:
		return ""
	}
}

var groupTitles = map[string]string{
	"general":   "Coil & Air",
	"dimension": "Dimensions",
	"mode":      "Fluid",
	"driver":    "Calculation Driver",
}

func groupTitle(group, mode string) string {
	if group == "mode" && mode != "" && mode != "1" {
		return "Refrigerant"
	}
	if title, ok := groupTitles[group]; ok {
		return title
	}
	if group == "" {
		return ""
	}
	return strings.ToUpper(group[:1]) + group[1:]
}
