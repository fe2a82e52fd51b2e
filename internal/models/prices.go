package models

// Prices maps a symbol to its USD price.
type Prices map[Symbol]float64
