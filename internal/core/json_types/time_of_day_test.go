package json_types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	t.Run("parses HH:MM", func(t *testing.T) {
		tod, err := ParseTimeOfDay("09:30")
		require.NoError(t, err)
		assert.Equal(t, NewTimeOfDay(9, 30), tod)
	})

	t.Run("parses HH:MM:SS and drops seconds", func(t *testing.T) {
		tod, err := ParseTimeOfDay("14:15:59")
		require.NoError(t, err)
		assert.Equal(t, NewTimeOfDay(14, 15), tod)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ParseTimeOfDay("half past nine")
		assert.Error(t, err)

		_, err = ParseTimeOfDay("25:00")
		assert.Error(t, err)
	})
}

func TestTimeOfDay_Arithmetic(t *testing.T) {
	t.Run("add minutes crosses the hour", func(t *testing.T) {
		assert.Equal(t, NewTimeOfDay(10, 15), NewTimeOfDay(9, 45).AddMinutes(30))
	})

	t.Run("total minutes", func(t *testing.T) {
		assert.Equal(t, 570, NewTimeOfDay(9, 30).TotalMinutes())
	})

	t.Run("minutes until may be negative", func(t *testing.T) {
		assert.Equal(t, 45, NewTimeOfDay(9, 0).MinutesUntil(NewTimeOfDay(9, 45)))
		assert.Equal(t, -45, NewTimeOfDay(9, 45).MinutesUntil(NewTimeOfDay(9, 0)))
	})

	t.Run("ordering", func(t *testing.T) {
		assert.True(t, NewTimeOfDay(9, 0).Before(NewTimeOfDay(9, 1)))
		assert.False(t, NewTimeOfDay(9, 1).Before(NewTimeOfDay(9, 0)))
		assert.True(t, NewTimeOfDay(9, 0).Equal(NewTimeOfDay(9, 0)))
	})
}

func TestTimeOfDay_JSON(t *testing.T) {
	t.Run("marshals as HH:MM string", func(t *testing.T) {
		data, err := json.Marshal(NewTimeOfDay(8, 5))
		require.NoError(t, err)
		assert.Equal(t, `"08:05"`, string(data))
	})

	t.Run("unmarshals from string", func(t *testing.T) {
		var tod TimeOfDay
		require.NoError(t, json.Unmarshal([]byte(`"16:45"`), &tod))
		assert.Equal(t, NewTimeOfDay(16, 45), tod)
	})

	t.Run("unmarshal rejects bad format", func(t *testing.T) {
		var tod TimeOfDay
		assert.Error(t, json.Unmarshal([]byte(`"sixteen"`), &tod))
	})

	t.Run("rejects non-string JSON values", func(t *testing.T) {
		for _, payload := range []string{`5`, `null`, `{}`, `["09:00"]`, `true`} {
			var tod TimeOfDay
			assert.Error(t, json.Unmarshal([]byte(payload), &tod), "payload %s", payload)
		}
	})
}
