package logic

// Decide picks the authority for this cycle. A manual override or a lost
// host both hand control to local fallback; manual wins over liveness.
func Decide(manual bool, liveness Liveness) Mode {
	if manual || liveness == LivenessLost {
		return ModeLocalFallback
	}
	return ModeHost
}

// FallbackColor is the locally computed colour: red when the limit switch is
// closed, green when open, scaled by brightness.
func FallbackColor(limitClosed bool, brightness float64) Color {
	if limitClosed {
		return Red.Scale(brightness)
	}
	return Green.Scale(brightness)
}
