package predicate

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMatches_Contains(t *testing.T) {
	p := NewContains("name", "Foo")

	assert.True(t, Matches(p, Values{"name": "FooBar"}))
	assert.True(t, Matches(p, Values{"name": "xFoox"}))
	assert.True(t, Matches(p, Values{"name": "Foo"}))
	assert.False(t, Matches(p, Values{"name": "bar"}))
	assert.False(t, Matches(p, Values{"name": "foo"}), "matching is case-sensitive")
	assert.False(t, Matches(p, Values{}))
	assert.False(t, Matches(p, Values{"name": 42}))

	s := "my Foo"
	assert.True(t, Matches(p, Values{"name": &s}))
	assert.True(t, Matches(p, Values{"name": status("Foo!")}))
}

func TestMatches_Equal(t *testing.T) {
	p := NewEqual("count", 5)

	assert.True(t, Matches(p, Values{"count": 5}))
	assert.True(t, Matches(p, Values{"count": int64(5)}))
	assert.True(t, Matches(p, Values{"count": uint8(5)}))
	assert.True(t, Matches(p, Values{"count": 5.0}))
	assert.True(t, Matches(p, Values{"count": json.Number("5")}))
	assert.False(t, Matches(p, Values{"count": 50}))
	assert.False(t, Matches(p, Values{"count": 0}))
	assert.False(t, Matches(p, Values{"count": "5"}))
	assert.False(t, Matches(p, Values{}))
	assert.False(t, Matches(p, Values{"count": nil}))
}

func TestMatches_EqualOtherKinds(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, Matches(NewEqual("at", now), Values{"at": now.In(time.FixedZone("CET", 3600))}))
	assert.False(t, Matches(NewEqual("at", now), Values{"at": now.Add(time.Second)}))

	assert.True(t, Matches(NewEqual("active", true), Values{"active": true}))
	assert.False(t, Matches(NewEqual("active", true), Values{"active": false}))

	assert.True(t, Matches(NewEqual("status", status("open")), Values{"status": "open"}))
	assert.True(t, Matches(NewEqual("raw", []byte("ab")), Values{"raw": []byte("ab")}))
	assert.True(t, Matches(NewEqual("owner", nil), Values{"owner": nil}))
}

func TestMatches_Composite(t *testing.T) {
	and := NewAnd(NewContains("name", "Foo"), NewEqual("count", 5))

	assert.True(t, Matches(and, Values{"name": "FooBar", "count": 5}))
	assert.False(t, Matches(and, Values{"name": "FooBar", "count": 6}))
	assert.False(t, Matches(and, Values{"name": "Bar", "count": 5}))

	or := NewOr(NewContains("title", "xyz"), NewContains("body", "xyz"))

	assert.True(t, Matches(or, Values{"title": "axyz", "body": ""}))
	assert.True(t, Matches(or, Values{"title": "", "body": "xyzb"}))
	assert.False(t, Matches(or, Values{"title": "abc", "body": "def"}))

	assert.True(t, Matches(True{}, Values{}))
	assert.True(t, Matches(And{}, Values{}))
	assert.True(t, Matches(Or{}, Values{}))
	assert.True(t, Matches(nil, Values{}))
}
