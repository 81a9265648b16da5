package amp

// Component values of the modeled circuit. Resistances in ohms, capacitances
// in farads, frequencies in Hz.
const (
	inputHighpassHz = 30.0

	// Non-inverting first stage: 1 + (R1 + g*Rpot)/R2.
	firstStageR1   = 1e3
	firstStageRpot = 100e3
	firstStageR2   = 10e3

	// Inverting second stage: Rf/Rin.
	postStageRf  = 22e3
	postStageRin = 10e3

	// Anti-alias corner sits this far below Nyquist.
	antiAliasMarginHz = 2000.0

	// Clipper output RC.
	postClipR = 2.2e3
	postClipC = 11.5e-9

	// Passive RC after the tone stack.
	postToneR = 10e3
	postToneC = 1.5e-9

	toneMinHz = 100.0
	toneMaxHz = 10000.0

	minCornerHz    = 10.0
	maxCornerRatio = 0.499 // of the sample rate, just under Nyquist

	butterworthQ = 0.7071067811865476
)

// quadratic holds a*g^2 + b*g + c over the normalized gain g.
type quadratic struct {
	a, b, c float64
}

func (q quadratic) at(g float64) float64 {
	return (q.a*g+q.b)*g + q.c
}

// linear holds m*g + c over the normalized gain g.
type linear struct {
	m, c float64
}

func (l linear) at(g float64) float64 {
	return l.m*g + l.c
}

// Gain-dependent loading of the clipping network, fitted per stage.
var (
	boostFreq = quadratic{a: -200, b: 480, c: 720}
	boostQ    = linear{m: 0.5, c: 0.7}
	boostDB   = linear{m: 6, c: 3}

	notchFreq = quadratic{a: -400, b: 900, c: 2600}
	notchQ    = linear{m: 1.5, c: 1.0}
	notchDB   = linear{m: -6, c: -2}
)
