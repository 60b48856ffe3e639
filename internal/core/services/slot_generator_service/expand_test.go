package slot_generator_service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medagenda/clinic-slots-generator/internal/core/json_types"
)

func TestExpandWindow(t *testing.T) {
	t.Run("even division fills the window", func(t *testing.T) {
		times := ExpandWindow(json_types.NewTimeOfDay(9, 0), json_types.NewTimeOfDay(10, 0), 30)

		require.Len(t, times, 2)
		assert.Equal(t, "09:00", times[0].String())
		assert.Equal(t, "09:30", times[1].String())
	})

	t.Run("remainder is dropped", func(t *testing.T) {
		times := ExpandWindow(json_types.NewTimeOfDay(9, 0), json_types.NewTimeOfDay(9, 50), 30)

		// 09:30 + 30 вышло бы за 09:50, неполный хвост не эмитится
		require.Len(t, times, 1)
		assert.Equal(t, "09:00", times[0].String())
	})

	t.Run("window equal to one duration yields one slot", func(t *testing.T) {
		times := ExpandWindow(json_types.NewTimeOfDay(14, 0), json_types.NewTimeOfDay(14, 30), 30)

		require.Len(t, times, 1)
		assert.Equal(t, "14:00", times[0].String())
	})

	t.Run("window shorter than duration yields nothing", func(t *testing.T) {
		times := ExpandWindow(json_types.NewTimeOfDay(9, 0), json_types.NewTimeOfDay(9, 20), 30)

		assert.Empty(t, times)
	})

	t.Run("inverted window yields nothing", func(t *testing.T) {
		times := ExpandWindow(json_types.NewTimeOfDay(12, 0), json_types.NewTimeOfDay(9, 0), 30)

		assert.Empty(t, times)
	})

	t.Run("non-positive duration yields nothing", func(t *testing.T) {
		assert.Empty(t, ExpandWindow(json_types.NewTimeOfDay(9, 0), json_types.NewTimeOfDay(10, 0), 0))
		assert.Empty(t, ExpandWindow(json_types.NewTimeOfDay(9, 0), json_types.NewTimeOfDay(10, 0), -15))
	})

	t.Run("slots tile without overlap", func(t *testing.T) {
		times := ExpandWindow(json_types.NewTimeOfDay(8, 0), json_types.NewTimeOfDay(12, 0), 15)

		require.Len(t, times, 16)
		for i := 1; i < len(times); i++ {
			assert.Equal(t, 15, times[i-1].MinutesUntil(times[i]))
		}
	})

	t.Run("expansion is idempotent", func(t *testing.T) {
		first := ExpandWindow(json_types.NewTimeOfDay(10, 0), json_types.NewTimeOfDay(13, 0), 45)
		second := ExpandWindow(json_types.NewTimeOfDay(10, 0), json_types.NewTimeOfDay(13, 0), 45)

		assert.Equal(t, first, second)
	})
}
