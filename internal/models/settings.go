package models

const (
	// DefaultFXRate is the USD -> GHS rate used until the user sets one.
	DefaultFXRate = 15.0
	// MinFXRate is the smallest rate the settings form accepts.
	MinFXRate = 0.01
)

// Holdings maps a symbol to the quantity held.
type Holdings map[Symbol]float64

// Settings is the user's persisted dashboard input.
type Settings struct {
	Holdings      Holdings `json:"holdings"`
	FXRate        float64  `json:"fx_rate"`
	TotalInvested float64  `json:"total_invested"`
}

// DefaultSettings returns zero holdings for every tracked coin and the default FX rate.
func DefaultSettings() Settings {
	h := make(Holdings, len(Coins))
	for _, c := range Coins {
		h[c.Symbol] = 0
	}
	return Settings{Holdings: h, FXRate: DefaultFXRate}
}

// Normalize returns a copy holding exactly the tracked symbols with every value
// clamped to the range the settings form allows.
func (s Settings) Normalize() Settings {
	out := Settings{
		Holdings:      make(Holdings, len(Coins)),
		FXRate:        s.FXRate,
		TotalInvested: s.TotalInvested,
	}
	for _, c := range Coins {
		out.Holdings[c.Symbol] = max(s.Holdings[c.Symbol], 0)
	}
	if out.FXRate < MinFXRate {
		out.FXRate = MinFXRate
	}
	if out.TotalInvested < 0 {
		out.TotalInvested = 0
	}
	return out
}
