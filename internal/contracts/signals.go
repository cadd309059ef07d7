package contracts

// SignalState is the boolean signal snapshot derived once per evaluation.
//
//	S1 — momentum breakout
//	S2 — trend confirmation (S2Strength counts corroborating sub-conditions)
//	S3 — breakdown (one-day down-cross under the 20-day average)
//
// Ret1D and Ret5D default to 0.0 when undefined.
type SignalState struct {
	Ret1D      float64 `json:"ret_1d"`
	Ret5D      float64 `json:"ret_5d"`
	S1         bool    `json:"s1"`
	S2         bool    `json:"s2"`
	S3         bool    `json:"s3"`
	S2Strength int     `json:"s2_strength"` // 0-3
}
