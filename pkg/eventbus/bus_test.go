package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testTopic = NewTopic[string]("currencyChanged")

func TestPublishDeliversInSubscriptionOrder(t *testing.T) {
	b := New(nil)
	var got []string

	s1 := Subscribe(b, testTopic, func(v string) { got = append(got, "a:"+v) })
	s2 := Subscribe(b, testTopic, func(v string) { got = append(got, "b:"+v) })
	defer s1.Unsubscribe()
	defer s2.Unsubscribe()

	n := Publish(b, testTopic, "USD")

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"a:USD", "b:USD"}, got)
}

func TestUnsubscribeReleasesListener(t *testing.T) {
	b := New(nil)
	calls := 0
	s := Subscribe(b, testTopic, func(string) { calls++ })
	assert.Equal(t, 1, b.Len(testTopic.Name()))

	s.Unsubscribe()
	s.Unsubscribe()

	assert.Equal(t, 0, b.Len(testTopic.Name()))
	assert.Equal(t, 0, Publish(b, testTopic, "EUR"))
	assert.Equal(t, 0, calls)
}

func TestUnsubscribeFromInsideListener(t *testing.T) {
	b := New(nil)
	calls := 0
	var s *Subscription
	s = Subscribe(b, testTopic, func(string) {
		calls++
		s.Unsubscribe()
	})

	Publish(b, testTopic, "INR")
	Publish(b, testTopic, "INR")

	assert.Equal(t, 1, calls)
}

func TestPanickingListenerDoesNotStopDelivery(t *testing.T) {
	b := New(nil)
	delivered := false
	Subscribe(b, testTopic, func(string) { panic("boom") })
	Subscribe(b, testTopic, func(string) { delivered = true })

	assert.NotPanics(t, func() { Publish(b, testTopic, "USD") })
	assert.True(t, delivered)
}

func TestTopicsAreIsolated(t *testing.T) {
	b := New(nil)
	other := NewTopic[int]("other")
	calls := 0
	Subscribe(b, other, func(int) { calls++ })

	Publish(b, testTopic, "USD")

	assert.Equal(t, 0, calls)
}
