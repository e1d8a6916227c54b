package NeuralNetwork

import "math"

// Default parameters for the parameterised activations.
const (
	DefaultLeakySlope = 0.1
	DefaultELUAlpha   = 1.0
)

// geluScale is sqrt(2/pi) for the tanh approximation of GELU.
var geluScale = math.Sqrt(2 / math.Pi)

// Func is an elementwise activation.
type Func func(z float64) float64

// Sigmoid is the logistic function. Both branches only ever exponentiate a
// non-positive number, so it never overflows.
func Sigmoid(z float64) float64 {
	if z >= 0 {
		return 1.0 / (1.0 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1.0 + e)
}

func SigmoidPrime(z float64) float64 { s := Sigmoid(z); return s * (1 - s) }

func Tanh(z float64) float64 { return math.Tanh(z) }

func ReLU(z float64) float64 {
	if z > 0 {
		return z
	}
	return 0
}

func ReLUPrime(z float64) float64 {
	if z > 0 {
		return 1
	}
	return 0
}

// LeakyReLU passes z through for z >= 0 and scales it by a otherwise.
func LeakyReLU(z, a float64) float64 {
	if z >= 0 {
		return z
	}
	return a * z
}

// ELU is z for z >= 0 and alpha*(e^z - 1) below zero.
func ELU(z, alpha float64) float64 {
	if z >= 0 {
		return z
	}
	return alpha * math.Expm1(z)
}

// GELU uses the Hendrycks & Gimpel tanh approximation.
func GELU(z float64) float64 {
	return 0.5 * z * (1 + math.Tanh(geluScale*(z+0.044715*z*z*z)))
}

// Swish (SiLU) is z * sigmoid(z).
func Swish(z float64) float64 { return z * Sigmoid(z) }

// GLUSlice is a one-dimensional view of a gated linear unit where the same
// scalar feeds both the value and the gate. It is a visual stand-in only.
func GLUSlice(z float64) float64 { return z * Sigmoid(z) }

// SwiGLUSlice gates z with swish(z), again with a single shared input.
func SwiGLUSlice(z float64) float64 { return z * Swish(z) }

// LeakyReLUWith binds the negative slope a.
func LeakyReLUWith(a float64) Func {
	return func(z float64) float64 { return LeakyReLU(z, a) }
}

// ELUWith binds alpha.
func ELUWith(alpha float64) Func {
	return func(z float64) float64 { return ELU(z, alpha) }
}

// Softmax maps logits to probabilities. The maximum logit is subtracted
// before exponentiating so large inputs do not overflow.
func Softmax(logits []float64) []float64 {
	if len(logits) == 0 {
		return nil
	}
	m := logits[0]
	for _, v := range logits[1:] {
		if v > m {
			m = v
		}
	}
	out := make([]float64, len(logits))
	sum := 0.0
	for i, v := range logits {
		out[i] = math.Exp(v - m)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// SoftmaxProbability returns P(class 1) for the logit vector (t, 0, 0),
// which equals e^t / (e^t + 2).
func SoftmaxProbability(t float64) float64 {
	return Softmax([]float64{t, 0, 0})[0]
}
