package time

import (
	"testing"
	gt "time"

	"github.com/stretchr/testify/assert"
)

func TestBasics(t *testing.T) {
	assert := assert.New(t)
	SetFake()
	f := Now()
	assert.NotEqual(f, gt.Now())
	assert.NotEmpty(f)
	ClearFake()
	assert.NotEqual(f, Now())
	func() {
		defer SetFake()()
		assert.Equal(f, Now())
	}()
	assert.NotEqual(f, Now())
}

func TestTimestamp(t *testing.T) {
	assert := assert.New(t)
	defer SetFake()()
	assert.Equal("2024-05-01T14:30:00.000Z", Timestamp(Now()))

	est := gt.FixedZone("EST", -5*60*60)
	assert.Equal("2024-05-01T17:04:05.120Z", Timestamp(gt.Date(2024, 5, 1, 12, 4, 5, 120*int(gt.Millisecond), est)))
}
