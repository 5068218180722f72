package models

// Adjustment groups in the studio's develop view, in display order.
const (
	GroupSharpening          = "sharpening"
	GroupPresence            = "presence"
	GroupNoiseReduction      = "noise_reduction"
	GroupChromaticAberration = "chromatic_aberration"
	GroupNegativeConversion  = "negative_conversion"
	GroupVignette            = "vignette"
	GroupColorCalibration    = "color_calibration"
	GroupGrain               = "grain"
)

// AdjustmentGroups lists every adjustment group, in the order the interface
// tab presents them.
var AdjustmentGroups = []string{
	GroupSharpening,
	GroupPresence,
	GroupNoiseReduction,
	GroupChromaticAberration,
	GroupNegativeConversion,
	GroupVignette,
	GroupColorCalibration,
	GroupGrain,
}

// adjustmentDefaults holds each group's shipped visibility. Chromatic
// aberration, negative conversion, and color calibration are specialist
// panels and start hidden.
var adjustmentDefaults = map[string]bool{
	GroupSharpening:          true,
	GroupPresence:            true,
	GroupNoiseReduction:      true,
	GroupChromaticAberration: false,
	GroupNegativeConversion:  false,
	GroupVignette:            true,
	GroupColorCalibration:    false,
	GroupGrain:               true,
}

// KnownGroup reports whether name is a recognized adjustment group.
func KnownGroup(name string) bool {
	_, ok := adjustmentDefaults[name]
	return ok
}

// GroupVisibleDefault returns a group's shipped visibility. Unknown groups
// default to hidden.
func GroupVisibleDefault(group string) bool {
	return adjustmentDefaults[group]
}

// DefaultAdjustmentVisibility returns a fresh copy of the shipped
// visibility map.
func DefaultAdjustmentVisibility() map[string]bool {
	out := make(map[string]bool, len(adjustmentDefaults))
	for k, v := range adjustmentDefaults {
		out[k] = v
	}
	return out
}

// GroupLabel returns the display label for an adjustment group.
func GroupLabel(group string) string {
	switch group {
	case GroupSharpening:
		return "Sharpening"
	case GroupPresence:
		return "Presence"
	case GroupNoiseReduction:
		return "Noise Reduction"
	case GroupChromaticAberration:
		return "Chromatic Aberration"
	case GroupNegativeConversion:
		return "Negative Conversion"
	case GroupVignette:
		return "Vignette"
	case GroupColorCalibration:
		return "Color Calibration"
	case GroupGrain:
		return "Grain"
	default:
		return group
	}
}
