package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoDo(t *testing.T) {
	m := NewMemo[string, int]()
	calls := 0
	fn := func() (int, error) {
		calls++
		return 42, nil
	}

	v, err := m.Do("a", fn)
	assert.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = m.Do("a", fn)
	assert.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)

	stats := m.Stats()
	assert.Equal(t, 1, stats["keys"])
	assert.Equal(t, 1, stats["hits"])
	assert.Equal(t, 1, stats["misses"])
}

func TestMemoRemembersErrors(t *testing.T) {
	m := NewMemo[int, string]()
	boom := errors.New("boom")
	calls := 0

	for i := 0; i < 3; i++ {
		_, err := m.Do(7, func() (string, error) {
			calls++
			return "", boom
		})
		assert.ErrorIs(t, err, boom)
	}
	assert.Equal(t, 1, calls)
}

func TestETag(t *testing.T) {
	etag := ComputeETag([]byte(`{"rows":[]}`))
	assert.Equal(t, etag, ComputeETag([]byte(`{"rows":[]}`)))
	assert.NotEqual(t, etag, ComputeETag([]byte(`{"rows":[1]}`)))
	assert.Regexp(t, `^W/"[0-9a-f]{16}"$`, etag)

	assert.True(t, CheckETagMatch(etag, etag))
	assert.True(t, CheckETagMatch("*", etag))
	assert.False(t, CheckETagMatch("", etag))
	assert.False(t, CheckETagMatch(`W/"other"`, etag))
}
