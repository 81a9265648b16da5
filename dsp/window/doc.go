// Package window generates cosine-sum analysis windows for spectral
// measurements.
package window
