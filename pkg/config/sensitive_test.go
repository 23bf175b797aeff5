package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensitiveString_String(t *testing.T) {
	t.Run("Should redact non-empty values", func(t *testing.T) {
		s := SensitiveString("hf_secret_token")
		assert.Equal(t, "[REDACTED]", s.String())
	})

	t.Run("Should return empty string for empty values", func(t *testing.T) {
		s := SensitiveString("")
		assert.Equal(t, "", s.String())
	})
}

func TestSensitiveString_Value(t *testing.T) {
	t.Run("Should return actual value", func(t *testing.T) {
		secret := "hf_secret_token"
		s := SensitiveString(secret)
		assert.Equal(t, secret, s.Value())
	})
}

func TestSensitiveString_MarshalJSON(t *testing.T) {
	t.Run("Should marshal as redacted string", func(t *testing.T) {
		type testStruct struct {
			Token SensitiveString `json:"token"`
			Name  string          `json:"name"`
		}
		data, err := json.Marshal(testStruct{
			Token: SensitiveString("hf_secret_token"),
			Name:  "adapter",
		})
		require.NoError(t, err)

		var result map[string]string
		require.NoError(t, json.Unmarshal(data, &result))
		assert.Equal(t, "[REDACTED]", result["token"])
		assert.Equal(t, "adapter", result["name"])
	})

	t.Run("Should marshal empty value as empty string", func(t *testing.T) {
		data, err := json.Marshal(SensitiveString(""))
		require.NoError(t, err)
		assert.Equal(t, `""`, string(data))
	})
}

func TestSensitiveString_UnmarshalJSON(t *testing.T) {
	t.Run("Should unmarshal string values", func(t *testing.T) {
		var s SensitiveString
		require.NoError(t, json.Unmarshal([]byte(`"secret-value"`), &s))
		assert.Equal(t, "secret-value", s.Value())
	})
}
