package booking

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loulwahalabdely/FC723-Project1/internal/domain/seat"
)

func TestNewEvent(t *testing.T) {
	b := NewBooking(seat.MustParse("15F"), Passenger{FirstName: "John", LastName: "Doe", PassportID: "X1"}, "ABCD1234")
	require.NoError(t, b.SelectMeal(MealVegan))

	e := NewEvent(EventMealSelected, b)

	assert.Equal(t, EventMealSelected, e.Type)
	assert.Equal(t, "ABCD1234", e.Reference)
	assert.Equal(t, "15F", e.Seat)
	assert.Equal(t, "DOE", e.LastName)
	assert.Equal(t, "vegan", e.Meal)
	assert.False(t, e.OccurredAt.IsZero())
}

func TestEvent_JSON(t *testing.T) {
	b := NewBooking(seat.MustParse("2A"), Passenger{FirstName: "Ada", LastName: "Lovelace", PassportID: "P"}, "ZZZZ0000")

	data, err := json.Marshal(NewEvent(EventCreated, b))
	require.NoError(t, err)

	// 機内食未選択の場合は meal を含めない（旅券番号は送らない）
	assert.Contains(t, string(data), `"type":"booking.created"`)
	assert.NotContains(t, string(data), `"meal"`)
	assert.NotContains(t, string(data), "passport")
}
