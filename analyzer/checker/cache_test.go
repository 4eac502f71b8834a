package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFingerprint verifies fingerprints are stable for equal text and
// distinct for different text.
func TestFingerprint(t *testing.T) {
	assert.Equal(t, Fingerprint("<div></div>"), Fingerprint("<div></div>"))
	assert.NotEqual(t, Fingerprint("<div></div>"), Fingerprint("<div> </div>"))
	assert.Len(t, Fingerprint(""), 16)
}

// TestQueryCacheRoundTrip verifies set/get on distinct keys.
func TestQueryCacheRoundTrip(t *testing.T) {
	c := newQueryCache()
	k1 := cacheKey{kind: "parse", file: "/a.go", fingerprint: "f1"}
	k2 := cacheKey{kind: "parse", file: "/a.go", fingerprint: "f2"}

	_, ok := c.get(k1)
	require.False(t, ok)

	c.set(k1, "one")
	c.set(k2, "two")

	v, ok := c.get(k1)
	require.True(t, ok)
	assert.Equal(t, "one", v)

	v, ok = c.get(k2)
	require.True(t, ok)
	assert.Equal(t, "two", v)
}

// TestInvalidateOnlyNamedFile verifies invalidation granularity.
func TestInvalidateOnlyNamedFile(t *testing.T) {
	c := newQueryCache()
	c.set(cacheKey{kind: "parse", file: "/a.go", fingerprint: "f"}, 1)
	c.set(cacheKey{kind: "resolve", file: "/a.go", fingerprint: "f", class: "/a.go:User"}, 2)
	c.set(cacheKey{kind: "parse", file: "/b.html", fingerprint: "g"}, 3)

	c.invalidate("/a.go")

	assert.Equal(t, 1, c.size())
	_, ok := c.get(cacheKey{kind: "parse", file: "/b.html", fingerprint: "g"})
	assert.True(t, ok)
}
