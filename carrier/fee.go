package carrier

import "math"

// baseTxOverhead approximates the byte cost of the surrounding
// transaction skeleton (version, one input, change output, locktime).
const baseTxOverhead = 110

// Estimate projects the fee for embedding payloadSize bytes via c at
// feeRate (fee units per byte), rounded up to a whole unit.
//
// This is a rough linear model, not real weight or virtual-size
// accounting. It exists to give applications a stable, cheap ordering
// between carrier choices, not a binding quote.
func Estimate(c Carrier, payloadSize int, feeRate float64) int64 {
	if payloadSize < 0 || feeRate <= 0 {
		return 0
	}
	cost := (float64(baseTxOverhead+c.Overhead) + float64(payloadSize)*c.FeeWeight) * feeRate
	return int64(math.Ceil(cost))
}
