package models

import "strings"

// Symbol is the ticker of a tracked coin.
type Symbol string

const (
	BTC  Symbol = "BTC"
	ETH  Symbol = "ETH"
	USDT Symbol = "USDT"
	USDC Symbol = "USDC"
	BNB  Symbol = "BNB"
	SOL  Symbol = "SOL"
	XRP  Symbol = "XRP"
	ADA  Symbol = "ADA"
	DOGE Symbol = "DOGE"
	TRX  Symbol = "TRX"
)

// Coin represents a tracked coin and how it is looked up.
type Coin struct {
	Symbol      Symbol
	CoinGeckoID string
	Stablecoin  bool // priced at 1 USD, never looked up
}

// Coins is the tracked set, in display order.
var Coins = []Coin{
	{Symbol: BTC, CoinGeckoID: "bitcoin"},
	{Symbol: ETH, CoinGeckoID: "ethereum"},
	{Symbol: USDT, CoinGeckoID: "tether", Stablecoin: true},
	{Symbol: USDC, CoinGeckoID: "usd-coin", Stablecoin: true},
	{Symbol: BNB, CoinGeckoID: "binancecoin"},
	{Symbol: SOL, CoinGeckoID: "solana"},
	{Symbol: XRP, CoinGeckoID: "ripple"},
	{Symbol: ADA, CoinGeckoID: "cardano"},
	{Symbol: DOGE, CoinGeckoID: "dogecoin"},
	{Symbol: TRX, CoinGeckoID: "tron"},
}

var coinsBySymbol = func() map[Symbol]Coin {
	m := make(map[Symbol]Coin, len(Coins))
	for _, c := range Coins {
		m[c.Symbol] = c
	}
	return m
}()

// Symbols returns the tracked symbols in display order.
func Symbols() []Symbol {
	out := make([]Symbol, len(Coins))
	for i, c := range Coins {
		out[i] = c.Symbol
	}
	return out
}

// LookupCoin returns the coin for a symbol.
func LookupCoin(s Symbol) (Coin, bool) {
	c, ok := coinsBySymbol[s]
	return c, ok
}

// ParseSymbol resolves a case-insensitive ticker to a tracked symbol.
func ParseSymbol(raw string) (Symbol, bool) {
	s := Symbol(strings.ToUpper(strings.TrimSpace(raw)))
	_, ok := coinsBySymbol[s]
	return s, ok
}

// IsStablecoin reports whether the symbol is pegged 1:1 to USD.
func (s Symbol) IsStablecoin() bool {
	return coinsBySymbol[s].Stablecoin
}

func (s Symbol) String() string { return string(s) }
