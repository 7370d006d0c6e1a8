package form

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNewStateIsEmpty(t *testing.T) {
	assert := assert.New(t)
	var s State
	for _, f := range Fields() {
		assert.Equal("", s.Value(f))
	}
	for _, k := range Keys() {
		assert.False(s.Checkboxes.Get(k))
	}
	assert.Equal(Fields(), s.Missing())
}

func TestWithFieldTouchesOnlyItsField(t *testing.T) {
	assert := assert.New(t)
	base, err := State{
		RecipientName: "Jane Doe",
		Message:       "Great job!",
		Signature:     "Sam",
		Date:          "2024-05-01",
	}.WithCheckbox(GrowSales, true)
	assert.NoError(err)

	for _, f := range Fields() {
		got, err := base.WithField(f, "changed")
		assert.NoError(err)
		assert.Equal("changed", got.Value(f))
		for _, other := range Fields() {
			if other != f {
				assert.Equal(base.Value(other), got.Value(other), "%s changed %s", f, other)
			}
		}
		assert.Equal(base.Checkboxes, got.Checkboxes)
		// The receiver is untouched.
		assert.NotEqual("changed", base.Value(f))
	}

	_, err = base.WithField("nickname", "x")
	assert.True(errors.Is(err, ErrUnknownField))
}

// Random edit sequences never leak into other fields, and each checkbox ends
// up as the last value written to it.
func TestEditIsolation(t *testing.T) {
	assert := assert.New(t)
	r := rand.New(rand.NewSource(42))
	fields := Fields()
	keys := Keys()

	var s State
	wantFields := map[Field]string{}
	wantBoxes := map[Key]bool{}
	for i := 0; i < 1000; i++ {
		if r.Intn(2) == 0 {
			f := fields[r.Intn(len(fields))]
			v := string(rune('a' + r.Intn(26)))
			var err error
			s, err = s.WithField(f, v)
			assert.NoError(err)
			wantFields[f] = v
		} else {
			k := keys[r.Intn(len(keys))]
			v := r.Intn(2) == 0
			var err error
			s, err = s.WithCheckbox(k, v)
			assert.NoError(err)
			wantBoxes[k] = v
		}
		for _, f := range fields {
			assert.Equal(wantFields[f], s.Value(f))
		}
		for _, k := range keys {
			assert.Equal(wantBoxes[k], s.Checkboxes.Get(k))
		}
	}
}

func TestValidate(t *testing.T) {
	assert := assert.New(t)
	full := State{RecipientName: "Jane Doe", Message: "Great job!", Signature: "Sam", Date: "2024-05-01"}

	tc := []struct {
		name string
		s    State
		want []string
	}{
		{"complete", full, nil},
		{"empty", State{}, []string{
			"Recipient name is required",
			"Message is required",
			"Signature is required",
			"Date is required",
		}},
		{"missing signature", full.WithSignature(""), []string{"Signature is required"}},
		{"whitespace counts as filled", full.WithMessage(" "), nil},
		{"bad date", full.WithDate("05/01/2024"), []string{"Date must be a date like 2024-05-01"}},
	}
	for _, t := range tc {
		assert.Equal(t.want, t.s.Validate(), t.name)
	}
}

func TestStateJSON(t *testing.T) {
	assert := assert.New(t)
	s, err := State{RecipientName: "Jane Doe", Date: "2024-05-01"}.WithCheckbox(FoodDrink, true)
	assert.NoError(err)

	b, err := json.Marshal(s)
	assert.NoError(err)
	assert.JSONEq(`{
		"recipientName": "Jane Doe",
		"message": "",
		"signature": "",
		"date": "2024-05-01",
		"checkboxes": {
			"guestCounts": false, "playRestaurant": false, "foodDrink": true, "accountable": false,
			"engageTeam": false, "bringBack": false, "growSales": false, "increaseProfits": false
		}
	}`, string(b))

	var got State
	assert.NoError(json.Unmarshal(b, &got))
	assert.Equal(s, got)

	assert.Error(json.Unmarshal([]byte(`{"checkboxes": {"bonus": true}}`), &got))
}
