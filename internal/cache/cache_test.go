package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheStartsEmpty(t *testing.T) {
	c := New()

	assert.Equal(t, 0, c.Len("users"))
	_, ok := c.Get("users", "u1")
	assert.False(t, ok)
	assert.Empty(t, c.Snapshot("users"))
}

func TestPutOverwritesById(t *testing.T) {
	c := New()

	c.Put("users", "u1", "first")
	c.Put("users", "u1", "second")
	c.Put("users", "u2", "other")

	require.Equal(t, 2, c.Len("users"))
	v, ok := c.Get("users", "u1")
	require.True(t, ok)
	assert.Equal(t, "second", v)
}

func TestAppendDoesNotDeduplicate(t *testing.T) {
	c := New()

	c.Append("messages", "m1", "a")
	c.Append("messages", "m1", "b")

	assert.Equal(t, 2, c.Len("messages"))
}

func TestSnapshotIsACopy(t *testing.T) {
	c := New()
	c.Put("users", "u1", "a")
	c.Put("users", "u2", "b")

	snap := c.Snapshot("users")
	snap[0].Value = "mutated"

	v, ok := c.Get("users", "u1")
	require.True(t, ok)
	assert.Equal(t, "a", v)
}

func TestReplaceAllSwapsCollection(t *testing.T) {
	c := New()
	c.Put("users", "u1", "old")

	c.ReplaceAll("users", []Entry{
		{ID: "u2", Value: "new"},
	})

	assert.Equal(t, 1, c.Len("users"))
	_, ok := c.Get("users", "u1")
	assert.False(t, ok)
	v, ok := c.Get("users", "u2")
	require.True(t, ok)
	assert.Equal(t, "new", v)
}

func TestCollectionsAreIndependent(t *testing.T) {
	c := New()
	c.Put("users", "id", "user")
	c.Put("profiles", "id", "profile")

	u, _ := c.Get("users", "id")
	p, _ := c.Get("profiles", "id")
	assert.Equal(t, "user", u)
	assert.Equal(t, "profile", p)
}
