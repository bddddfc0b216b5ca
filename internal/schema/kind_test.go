package schema

import (
	"errors"
	"testing"

	"marketwire/pkg/exception"
)

func TestParseKind(t *testing.T) {
	testCases := []struct {
		name string
		want Kind
	}{
		{"trades", KindTrades},
		{"ohlcv-1s", KindOhlcv1S},
		{"ohlcv-1m", KindOhlcv1M},
		{"ohlcv-1h", KindOhlcv1H},
		{"ohlcv-1d", KindOhlcv1D},
		{"definition", KindDefinition},
		{"status", KindStatus},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseKind(tc.name)
			if err != nil {
				t.Fatalf("parse %s: %+v", tc.name, err)
			}
			if got != tc.want {
				t.Fatalf("kind mismatch! should be %v but got %v", tc.want, got)
			}
			if got.String() != tc.name {
				t.Fatalf("kind name mismatch! should be %s but got %s", tc.name, got.String())
			}
		})
	}
}

func TestParseKindUnknown(t *testing.T) {
	got, err := ParseKind("mbp-10")
	if !errors.Is(err, exception.ErrUnknownDataKind) {
		t.Fatalf("should reject unknown feed name, got err %+v", err)
	}
	if got != KindUnknown {
		t.Fatalf("kind mismatch! should be %v but got %v", KindUnknown, got)
	}
	if got.String() != "unknown" {
		t.Fatalf("kind name mismatch! should be unknown but got %s", got.String())
	}
}
