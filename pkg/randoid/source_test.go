package randoid

import (
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRand_LittleEndianGroups(t *testing.T) {
	// The first PCG(1, 2) value is 0xc4f5a58656eef510.
	src := NewPCG(1, 2)

	buf := make([]byte, 8)
	n, err := src.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, []byte{0x10, 0xf5, 0xee, 0x56, 0x86, 0xa5, 0xf5, 0xc4}, buf)
}

func TestFromRand_PartialGroupDiscardsHighBytes(t *testing.T) {
	src := NewPCG(1, 2)

	head := make([]byte, 3)
	_, err := src.Read(head)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x10, 0xf5, 0xee}, head)

	// The next read starts on the second value, 0x9dcec3ad077dec6c.
	next := make([]byte, 2)
	_, err = src.Read(next)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x6c, 0xec}, next)
}

func TestFillFunc(t *testing.T) {
	src := FillFunc(func(p []byte) {
		for i := range p {
			p[i] = 'x'
		}
	})

	buf := make([]byte, 5)
	n, err := src.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "xxxxx", string(buf))
}

func TestCryptoSource(t *testing.T) {
	buf := make([]byte, 32)
	_, err := io.ReadFull(CryptoSource(), buf)
	require.NoError(t, err)
	assert.NotEqual(t, make([]byte, 32), buf)
}

func TestLocked_ConcurrentGenerators(t *testing.T) {
	src := Locked(NewPCG(11, 12))

	const workers = 8
	const perWorker = 200

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[string]struct{}, workers*perWorker)
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Each goroutine has its own generator; only the source is shared.
			g := WithSource(src)
			for i := 0; i < perWorker; i++ {
				id := g.MustGenerate()
				mu.Lock()
				ids[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, ids, workers*perWorker)
}

func TestCryptoSource_SharedGenerator(t *testing.T) {
	g := Default()

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = g.MustGenerate()
		}()
	}
	wg.Wait()

	for _, id := range results {
		assert.NoError(t, g.Validate(id))
	}
}
