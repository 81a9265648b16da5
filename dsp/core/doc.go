// Package core holds small numeric and buffer helpers shared by the amp
// packages, plus the ProcessSpec that a processor is prepared with.
package core
