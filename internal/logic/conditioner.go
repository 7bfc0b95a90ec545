package logic

import "slices"

// Signal conditioning defaults.
const (
	WindowSize       = 9
	DefaultAlpha     = 0.1
	DefaultFullScale = 4095 // 12-bit ADC
)

// Median returns the middle value of the sorted samples. For the standard
// window of 9 this is the 5th value. The input is not modified.
func Median(samples []uint16) uint16 {
	if len(samples) == 0 {
		return 0
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	return sorted[len(sorted)/2]
}

// Conditioner turns a window of noisy analog samples into a stable
// brightness fraction: median filter, then exponential moving average.
type Conditioner struct {
	alpha     float64
	fullScale float64
	smoothed  float64
}

// NewConditioner creates a Conditioner with smoothed = 0.
func NewConditioner(alpha, fullScale float64) *Conditioner {
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultAlpha
	}
	if fullScale <= 0 {
		fullScale = DefaultFullScale
	}
	return &Conditioner{alpha: alpha, fullScale: fullScale}
}

// Update folds the window's median into the moving average and returns the
// brightness fraction in [0,1]. An empty window leaves the average unchanged.
func (c *Conditioner) Update(window []uint16) float64 {
	if len(window) > 0 {
		m := float64(Median(window))
		c.smoothed = c.alpha*m + (1-c.alpha)*c.smoothed
	}
	return c.Brightness()
}

// Smoothed returns the raw-scale moving average.
func (c *Conditioner) Smoothed() float64 {
	return c.smoothed
}

// Brightness returns the moving average normalised against full scale.
func (c *Conditioner) Brightness() float64 {
	return clamp01(c.smoothed / c.fullScale)
}
