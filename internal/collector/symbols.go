package collector

import "strings"

// symbolAliases maps common index nicknames to provider tickers.
var symbolAliases = map[string]string{
	"SPX500": "^GSPC",
	"SPX":    "^GSPC",
	"SP500":  "^GSPC",
	"NDX":    "^NDX",
	"DJI":    "^DJI",
}

// NormalizeSymbol trims and upper-cases a ticker and resolves known aliases.
func NormalizeSymbol(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if mapped, ok := symbolAliases[s]; ok {
		return mapped
	}
	return s
}
