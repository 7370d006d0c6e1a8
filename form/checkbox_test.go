package form

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKeysAreClosed(t *testing.T) {
	assert := assert.New(t)
	assert.Equal([]Key{
		GuestCounts, PlayRestaurant, FoodDrink, Accountable,
		EngageTeam, BringBack, GrowSales, IncreaseProfits,
	}, Keys())
	assert.Equal([]Key{GuestCounts, PlayRestaurant, FoodDrink, Accountable}, RowKeys(TopRow))
	assert.Equal([]Key{EngageTeam, BringBack, GrowSales, IncreaseProfits}, RowKeys(BottomRow))

	var c Checkboxes
	_, err := c.With("bonus", true)
	assert.True(errors.Is(err, ErrUnknownKey))
	assert.False(c.Get("bonus"))
	assert.Len(c.Checked(), 0)

	_, err = ParseKey("bonus")
	assert.True(errors.Is(err, ErrUnknownKey))
	k, err := ParseKey("bringBack")
	assert.NoError(err)
	assert.Equal(BringBack, k)
}

func TestCheckboxToggleIsolation(t *testing.T) {
	assert := assert.New(t)
	var c Checkboxes
	for _, k := range Keys() {
		on, err := c.With(k, true)
		assert.NoError(err)
		assert.Equal([]Key{k}, on.Checked())
		off, err := on.With(k, false)
		assert.NoError(err)
		assert.Equal(c, off)
	}
	// With never mutates the receiver.
	assert.Len(c.Checked(), 0)
}

func TestLabels(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("FOOD & DRINK PERFECTION", FoodDrink.Label())
	assert.Equal("INCREASE PROFITS", IncreaseProfits.Label())
	assert.Equal("", Key("bonus").Label())
	assert.Equal("WITH #CHILISLOVE,", Signature.Label())
}
