package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryPutGetRemove(t *testing.T) {
	r := NewRegistry[*Poll]()

	_, ok := r.Get("missing")
	assert.False(t, ok)

	p := NewPoll("q", []string{"a", "b"})
	r.Put("msg1", p)

	got, ok := r.Get("msg1")
	assert.True(t, ok)
	assert.Same(t, p, got)

	r.Remove("msg1")
	_, ok = r.Get("msg1")
	assert.False(t, ok)
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry[string]()

	var wg sync.WaitGroup
	for n := 0; n < 32; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", n)
			r.Put(key, "v")
			r.Get(key)
			if n%2 == 0 {
				r.Remove(key)
			}
		}(n)
	}
	wg.Wait()

	assert.Equal(t, 16, r.Len())
}
