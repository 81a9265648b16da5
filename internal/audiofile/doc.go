// Package audiofile moves audio between wav or mp3 files and the planar
// float64 buffers the processors run on.
package audiofile
