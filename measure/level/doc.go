// Package level computes peak and RMS levels of sample buffers.
package level
