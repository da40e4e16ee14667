package view

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatting(t *testing.T) {
	assert.Equal(t, "123,456", Count(123456))
	assert.Equal(t, "999", Count(999))
	assert.Equal(t, "$12.5", Millions(decimal.RequireFromString("12.47")))
	assert.Equal(t, "$12.5M", MillionsAxis(12.49))
	assert.Equal(t, "45.2K", Thousands(45200))
	assert.Equal(t, "120k", ThousandsAxis(120400))
	assert.Equal(t, "+15.3%", Percent(decimal.RequireFromString("15.3")))
	assert.Equal(t, "-0.5%", Percent(decimal.RequireFromString("-0.46")))
}
