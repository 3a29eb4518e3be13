package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type lotInput struct {
	Ticker    string `validate:"required,ticker"`
	AssetType string `validate:"asset_type"`
}

func newValidate(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	if err := v.RegisterValidation("ticker", validateTicker); err != nil {
		t.Fatalf("register ticker: %v", err)
	}
	if err := v.RegisterValidation("asset_type", validateAssetType); err != nil {
		t.Fatalf("register asset_type: %v", err)
	}
	return v
}

func TestTickerValidation(t *testing.T) {
	v := newValidate(t)
	tests := []struct {
		name    string
		ticker  string
		wantErr bool
	}{
		{name: "plain_symbol", ticker: "AAPL"},
		{name: "exchange_suffix", ticker: "RELIANCE.BSE"},
		{name: "class_share", ticker: "BRK-B"},
		{name: "lowercase_accepted", ticker: "msft"},
		{name: "empty_rejected", ticker: "", wantErr: true},
		{name: "space_rejected", ticker: "AA PL", wantErr: true},
		{name: "leading_dot_rejected", ticker: ".AAPL", wantErr: true},
		{name: "too_long_rejected", ticker: "ABCDEFGHIJKLMNOPQRSTU", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(lotInput{Ticker: tt.ticker})
			if (err != nil) != tt.wantErr {
				t.Errorf("ticker %q: err = %v, wantErr %v", tt.ticker, err, tt.wantErr)
			}
		})
	}
}

func TestAssetTypeValidation(t *testing.T) {
	v := newValidate(t)
	for _, ok := range []string{"", "stock", "etf", "mutual_fund", "bond", "other"} {
		if err := v.Struct(lotInput{Ticker: "AAPL", AssetType: ok}); err != nil {
			t.Errorf("asset type %q should be valid: %v", ok, err)
		}
	}
	if err := v.Struct(lotInput{Ticker: "AAPL", AssetType: "crypto"}); err == nil {
		t.Error("asset type crypto should be rejected")
	}
}
