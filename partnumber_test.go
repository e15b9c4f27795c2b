package partscout_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/partscout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidPartNumber(t *testing.T) {
	t.Parallel()

	t.Run("accepts real part numbers", func(t *testing.T) {
		t.Parallel()

		for _, token := range []string{
			"LM358",
			"1N4148",
			"NE555P",
			"SN74HC595",
			"ESP32-WROOM-32",
			"STM32F103C8T6",
			"LM358/NOPB",
			"LM358.DT",
			"2N3904",
			"ATMEGA328P",
			"IRF540N",
			"AD8606",
		} {
			assert.True(t, partscout.IsValidPartNumber(token), token)
		}
	})

	t.Run("ignores case and surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		assert.True(t, partscout.IsValidPartNumber("  lm358\t"))
		assert.True(t, partscout.IsValidPartNumber("ne555p"))
	})

	t.Run("rejects look-alikes", func(t *testing.T) {
		t.Parallel()

		for _, token := range []string{
			"2024",
			"API",
			"A1",
			"REF123",
			"123456",
			"SW1-SW19",
			"ITEM5",
			"AB123456",
			"2024-01-01",
			"RESISTOR10K",
			"D1-D11",
			"SW-19",
			"R12",
			"A1234B",
			"HELLO",
			"CUSTOMER42",
		} {
			assert.False(t, partscout.IsValidPartNumber(token), token)
		}
	})

	t.Run("rejects empty and malformed input", func(t *testing.T) {
		t.Parallel()

		for _, token := range []string{"", "   ", "\x00\xff\xfe", "--//..", "LM"} {
			assert.False(t, partscout.IsValidPartNumber(token), "%q", token)
		}
	})

	t.Run("rejects tokens longer than forty characters", func(t *testing.T) {
		t.Parallel()

		token := "LM" + strings.Repeat("3", 39)
		assert.False(t, partscout.IsValidPartNumber(token))
	})

	t.Run("stays valid after trimming and uppercasing", func(t *testing.T) {
		t.Parallel()

		for _, token := range []string{" lm358 ", "1n4148", "esp32-wroom-32\n", "Sn74hc595", "stm32f103c8t6"} {
			require.True(t, partscout.IsValidPartNumber(token), token)
			normalized := strings.ToUpper(strings.TrimSpace(token))
			assert.True(t, partscout.IsValidPartNumber(normalized), normalized)
		}
	})
}

func TestClassifyToken(t *testing.T) {
	t.Parallel()

	t.Run("reports accepting inclusion rule", func(t *testing.T) {
		t.Parallel()

		c := partscout.ClassifyToken("lm358")

		assert.True(t, c.Valid)
		assert.Equal(t, "LM358", c.Token)
		assert.Equal(t, "family-suffix", c.Rule)
		assert.Equal(t, partscout.ReasonNone, c.Reason)
	})

	t.Run("exclusion overrides inclusion", func(t *testing.T) {
		t.Parallel()

		c := partscout.ClassifyToken("SW1-SW19")

		assert.False(t, c.Valid)
		assert.Equal(t, partscout.ReasonExcluded, c.Reason)
		assert.Equal(t, "range-pair", c.Rule)
	})

	t.Run("reports placeholder exclusion", func(t *testing.T) {
		t.Parallel()

		c := partscout.ClassifyToken("REF123")

		assert.Equal(t, partscout.ReasonExcluded, c.Reason)
		assert.Equal(t, "placeholder", c.Rule)
	})

	t.Run("reports length before other checks", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, partscout.ReasonLength, partscout.ClassifyToken("A1").Reason)
		assert.Equal(t, partscout.ReasonEmpty, partscout.ClassifyToken(" ").Reason)
	})

	t.Run("requires letters and digits", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, partscout.ReasonMix, partscout.ClassifyToken("2024").Reason)
		assert.Equal(t, partscout.ReasonMix, partscout.ClassifyToken("API").Reason)
	})

	t.Run("rejects tokens matching no shape", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, partscout.ReasonNoShape, partscout.ClassifyToken("X9Z").Reason)
	})

	t.Run("applies strict lead without a common prefix", func(t *testing.T) {
		t.Parallel()

		c := partscout.ClassifyToken("A12BC345")
		assert.Equal(t, partscout.ReasonStrict, c.Reason)

		assert.True(t, partscout.ClassifyToken("QX358").Valid)
	})
}

func TestGrammar(t *testing.T) {
	t.Parallel()

	exclusions, inclusions := partscout.Grammar()
	require.NotEmpty(t, exclusions)
	require.NotEmpty(t, inclusions)

	t.Run("exclusion examples match their rule and are rejected", func(t *testing.T) {
		t.Parallel()

		for _, r := range exclusions {
			assert.True(t, r.MatchString(r.Example), r.Name)
			assert.False(t, partscout.IsValidPartNumber(r.Example), r.Name)
		}
	})

	t.Run("inclusion examples match their rule and are accepted", func(t *testing.T) {
		t.Parallel()

		for _, r := range inclusions {
			assert.True(t, r.MatchString(r.Example), r.Name)
			assert.True(t, partscout.IsValidPartNumber(r.Example), r.Name)
		}
	})

	t.Run("rule names are unique", func(t *testing.T) {
		t.Parallel()

		seen := map[string]bool{}
		all := append(append([]partscout.Rule{}, exclusions...), inclusions...)
		for _, r := range all {
			assert.False(t, seen[r.Name], r.Name)
			seen[r.Name] = true
		}
	})
}

func TestParsePartNumber(t *testing.T) {
	t.Parallel()

	t.Run("returns normalized part number", func(t *testing.T) {
		t.Parallel()

		pn, err := partscout.ParsePartNumber(" ne555p ")

		require.NoError(t, err)
		assert.Equal(t, partscout.PartNumber("NE555P"), pn)
	})

	t.Run("echoes offending token", func(t *testing.T) {
		t.Parallel()

		_, err := partscout.ParsePartNumber("SW1-SW19")

		require.Error(t, err)
		assert.Equal(t, partscout.EINVALID, partscout.ErrorCode(err))
		assert.Contains(t, partscout.ErrorMessage(err), `"SW1-SW19"`)
	})
}
