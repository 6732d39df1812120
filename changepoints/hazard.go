package changepoints

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	HazardMajorRegression     = "Major Regression"
	HazardModerateRegression  = "Moderate Regression"
	HazardMinorRegression     = "Minor Regression"
	HazardNoChange            = "No Change"
	HazardMinorImprovement    = "Minor Improvement"
	HazardModerateImprovement = "Moderate Improvement"
	HazardMajorImprovement    = "Major Improvement"
)

// HazardValues are the options offered by the percent change column filter, in display order.
var HazardValues = []string{
	HazardMajorRegression,
	HazardModerateRegression,
	HazardMinorRegression,
	HazardNoChange,
	HazardMinorImprovement,
	HazardModerateImprovement,
	HazardMajorImprovement,
}

var hazardWindows = map[string]string{
	HazardMajorRegression:     "-100,-50",
	HazardModerateRegression:  "-50,-20",
	HazardMinorRegression:     "-20,0",
	HazardNoChange:            "0,0",
	HazardMinorImprovement:    "0,20",
	HazardModerateImprovement: "20,50",
	HazardMajorImprovement:    "50,1000000",
}

// HazardWindows maps hazard levels to percent_change windows, keeping input order.
// Level names are matched case-insensitively.
func HazardWindows(levels []string) ([]string, error) {
	var out []string
	for _, l := range levels {
		name, ok := canonicalHazard(l)
		if !ok {
			return nil, fmt.Errorf("unknown hazard level %q", l)
		}
		out = append(out, hazardWindows[name])
	}
	return out, nil
}

// HazardLevelsFor is the inverse of HazardWindows. Windows that do not belong
// to a known level are returned unchanged.
func HazardLevelsFor(windows []string) []string {
	var out []string
	for _, w := range windows {
		found := false
		for _, name := range HazardValues {
			if hazardWindows[name] == w {
				out = append(out, name)
				found = true
				break
			}
		}
		if !found {
			out = append(out, w)
		}
	}
	return out
}

// HazardLevel classifies a percent change into one of HazardValues.
func HazardLevel(percent float64) string {
	switch {
	case percent <= -50:
		return HazardMajorRegression
	case percent <= -20:
		return HazardModerateRegression
	case percent < 0:
		return HazardMinorRegression
	case percent == 0:
		return HazardNoChange
	case percent < 20:
		return HazardMinorImprovement
	case percent < 50:
		return HazardModerateImprovement
	default:
		return HazardMajorImprovement
	}
}

func canonicalHazard(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, name := range HazardValues {
		if strings.EqualFold(name, s) {
			return name, true
		}
	}
	return "", false
}

// ParsePercentChange parses a ';' separated list where each item is either a
// hazard level name or a raw "min,max" window.
func ParsePercentChange(s string) ([]string, error) {
	var out []string
	for _, item := range strings.Split(s, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if name, ok := canonicalHazard(item); ok {
			out = append(out, hazardWindows[name])
			continue
		}
		lo, hi, ok := strings.Cut(item, ",")
		if !ok {
			return nil, fmt.Errorf("unknown hazard level %q", item)
		}
		lo, hi = strings.TrimSpace(lo), strings.TrimSpace(hi)
		if _, err := strconv.ParseFloat(lo, 64); err != nil {
			return nil, fmt.Errorf("invalid percent change window %q", item)
		}
		if _, err := strconv.ParseFloat(hi, 64); err != nil {
			return nil, fmt.Errorf("invalid percent change window %q", item)
		}
		out = append(out, lo+","+hi)
	}
	return out, nil
}

// FormatPercentChangeWindows is the inverse of ParsePercentChange.
func FormatPercentChangeWindows(windows []string) string {
	return strings.Join(HazardLevelsFor(windows), "; ")
}
