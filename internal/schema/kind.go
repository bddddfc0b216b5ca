package schema

import "marketwire/pkg/exception"

// Kind names a subscribable data feed.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindTrades
	KindOhlcv1S
	KindOhlcv1M
	KindOhlcv1H
	KindOhlcv1D
	KindDefinition
	KindStatus
)

var kindNames = map[Kind]string{
	KindTrades:     "trades",
	KindOhlcv1S:    "ohlcv-1s",
	KindOhlcv1M:    "ohlcv-1m",
	KindOhlcv1H:    "ohlcv-1h",
	KindOhlcv1D:    "ohlcv-1d",
	KindDefinition: "definition",
	KindStatus:     "status",
}

// ParseKind resolves a feed name like "trades" or "ohlcv-1s".
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindUnknown, exception.ErrUnknownDataKind
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}
