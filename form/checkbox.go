package form

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// Key names one of the recognition checkboxes.
type Key string

const (
	GuestCounts     Key = "guestCounts"
	PlayRestaurant  Key = "playRestaurant"
	FoodDrink       Key = "foodDrink"
	Accountable     Key = "accountable"
	EngageTeam      Key = "engageTeam"
	BringBack       Key = "bringBack"
	GrowSales       Key = "growSales"
	IncreaseProfits Key = "increaseProfits"
)

// ErrUnknownKey is returned for any key outside the fixed set.
var ErrUnknownKey = errors.New("unknown checkbox key")

// Row is a horizontal group of checkboxes on the card.
type Row int

const (
	TopRow Row = iota
	BottomRow
)

type keyInfo struct {
	key   Key
	label string
	row   Row
}

// keys is the closed set of checkboxes in display order. Checkboxes is
// indexed by position in this table.
var keys = [...]keyInfo{
	{GuestCounts, "EVERY GUEST COUNTS", TopRow},
	{PlayRestaurant, "PLAY RESTAURANT", TopRow},
	{FoodDrink, "FOOD & DRINK PERFECTION", TopRow},
	{Accountable, "BE ACCOUNTABLE", TopRow},
	{EngageTeam, "ENGAGE TEAM MEMBERS", BottomRow},
	{BringBack, "BRING BACK GUESTS", BottomRow},
	{GrowSales, "GROW SALES", BottomRow},
	{IncreaseProfits, "INCREASE PROFITS", BottomRow},
}

// Keys returns every checkbox key in display order.
func Keys() []Key {
	r := make([]Key, len(keys))
	for i, k := range keys {
		r[i] = k.key
	}
	return r
}

// RowKeys returns the keys shown in row, left to right.
func RowKeys(row Row) []Key {
	var r []Key
	for _, k := range keys {
		if k.row == row {
			r = append(r, k.key)
		}
	}
	return r
}

// ParseKey validates s as a checkbox key.
func ParseKey(s string) (Key, error) {
	if _, ok := index(Key(s)); !ok {
		return "", errors.Wrapf(ErrUnknownKey, "%q", s)
	}
	return Key(s), nil
}

// Label is the text printed next to the checkbox.
func (k Key) Label() string {
	i, ok := index(k)
	if !ok {
		return ""
	}
	return keys[i].label
}

func index(k Key) (int, bool) {
	for i, ki := range keys {
		if ki.key == k {
			return i, true
		}
	}
	return 0, false
}

// Checkboxes is the on/off state of every key. The zero value has all boxes
// unchecked. It is a value type: With returns a modified copy.
type Checkboxes struct {
	values [len(keys)]bool
}

// Get reports whether k is checked. Unknown keys are never checked.
func (c Checkboxes) Get(k Key) bool {
	i, ok := index(k)
	return ok && c.values[i]
}

// With returns a copy of c with k set to v.
func (c Checkboxes) With(k Key, v bool) (Checkboxes, error) {
	i, ok := index(k)
	if !ok {
		return c, errors.Wrapf(ErrUnknownKey, "%q", k)
	}
	c.values[i] = v
	return c, nil
}

// Checked returns the checked keys in display order.
func (c Checkboxes) Checked() []Key {
	var r []Key
	for i, v := range c.values {
		if v {
			r = append(r, keys[i].key)
		}
	}
	return r
}

func (c Checkboxes) MarshalJSON() ([]byte, error) {
	m := make(map[Key]bool, len(keys))
	for i, k := range keys {
		m[k.key] = c.values[i]
	}
	return json.Marshal(m)
}

// UnmarshalJSON accepts a subset of the keys; absent keys stay unchecked.
func (c *Checkboxes) UnmarshalJSON(b []byte) error {
	var m map[string]bool
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	var r Checkboxes
	for s, v := range m {
		k, err := ParseKey(s)
		if err != nil {
			return err
		}
		if r, err = r.With(k, v); err != nil {
			return err
		}
	}
	*c = r
	return nil
}

func (c Checkboxes) String() string {
	return fmt.Sprintf("%v", c.Checked())
}
