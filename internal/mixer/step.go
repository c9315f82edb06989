package mixer

// Step is the volume adjustment unit in percent.
const Step = 10

// Increase returns the next volume up from v. Values already on a
// multiple of Step move one full step; unaligned values first snap
// down to the nearest multiple, then move one step up. Repeated calls
// therefore converge onto multiples of Step even when another process
// left the mixer at an odd value.
func Increase(v int) int {
	if v%Step != 0 {
		v = v / Step * Step
	}
	return clamp(v + Step)
}

// Decrease returns the next volume down from v, with the same
// alignment rule as Increase.
func Decrease(v int) int {
	if v%Step != 0 {
		v = v / Step * Step
	}
	return clamp(v - Step)
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
