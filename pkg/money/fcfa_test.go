package money_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Gestion-api/pkg/money"
)

func TestFormatPlain_AgrupaMiles(t *testing.T) {
	cases := map[int64]string{
		0:       "0 FCFA",
		450:     "450 FCFA",
		1234:    "1 234 FCFA",
		1234567: "1 234 567 FCFA",
		-25000:  "-25 000 FCFA",
	}
	for in, want := range cases {
		assert.Equal(t, want, money.FormatPlain(money.FromInt(in)), "monto %d", in)
	}
}

func TestFormatPlain_RedondeaSinDecimales(t *testing.T) {
	assert.Equal(t, "151 FCFA", money.FormatPlain(decimal.RequireFromString("150.6")))
}

func TestFormat_UsaSeparadorDelLocale(t *testing.T) {
	out := money.Format(money.FromInt(1234))
	assert.True(t, strings.HasSuffix(out, " FCFA"))
	assert.NotEqual(t, "1234 FCFA", out, "debe agrupar los miles")
	assert.Equal(t, "1 234 FCFA", money.FormatPlain(money.FromInt(1234)))
}

func TestFormatShort(t *testing.T) {
	assert.Equal(t, "1.5M FCFA", money.FormatShort(money.FromInt(1_500_000)))
	assert.Equal(t, "250K FCFA", money.FormatShort(money.FromInt(250_000)))
	assert.Equal(t, "900 FCFA", money.FormatShort(money.FromInt(900)))
}
