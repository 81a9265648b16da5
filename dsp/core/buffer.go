package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Deinterleave splits frames of src into the planar slices of dst.
// It returns the number of frames copied, bounded by the shortest dst slice.
func Deinterleave(dst [][]float64, src []float64) int {
	channels := len(dst)
	if channels == 0 {
		return 0
	}

	frames := len(src) / channels
	for ch := range dst {
		if len(dst[ch]) < frames {
			frames = len(dst[ch])
		}
	}

	for i := 0; i < frames; i++ {
		base := i * channels
		for ch := range dst {
			dst[ch][i] = src[base+ch]
		}
	}

	return frames
}

// Interleave writes the first frames samples of each planar slice in src
// into dst as interleaved frames.
func Interleave(dst []float64, src [][]float64, frames int) {
	channels := len(src)
	for i := 0; i < frames; i++ {
		base := i * channels
		for ch := range src {
			dst[base+ch] = src[ch][i]
		}
	}
}
