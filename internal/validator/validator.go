// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Exchange suffixes such as "RELIANCE.BSE" and class shares such as "BRK-B" are allowed.
var tickerRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.\-]{0,19}$`)

var registerOnce sync.Once

// Register registers all custom validators with the Gin binding engine.
func Register() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("ticker", validateTicker)
			_ = v.RegisterValidation("asset_type", validateAssetType)
		}
	})
}

// IsTicker reports whether s looks like an exchange ticker symbol.
func IsTicker(s string) bool {
	return tickerRegex.MatchString(s)
}

func validateTicker(fl validator.FieldLevel) bool {
	return IsTicker(fl.Field().String())
}

func validateAssetType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "stock", "etf", "mutual_fund", "bond", "other":
		return true
	}
	return false
}
