package particles

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt64(t *testing.T) {
	out := []int64{42, 0, 23, 0, 16, 0, 15, 0, 8, 0, 4, 0}
	data := []int64{4, 8, 15, 16, 23, 42}
	from := []int{ 5, 4, 3, 2, 1, 0 }
	to := []int{ 0, 2, 4, 6, 8, 10 }
	name := "test_value"

	x := NewInt64(name, data)

	if x.Len() != len(data) {
		t.Fatalf("Expected x.Len() = %d, got %d.", len(data), x.Len())
	}
	assert.Equal(t, data, x.Data())
	assert.Equal(t, name, x.Name())

	p := New()
	require.NoError(t, x.CreateDestination(p, len(out)))
	if _, ok := p.Get(name); !ok {
		t.Fatalf("Expected Particles to gain '%s' field, but it wasn't added.",
			name)
	}

	require.NoError(t, x.Transfer(p, from, to))
	got, _ := p.Int64s(name)
	assert.Equal(t, out, got)

	assert.Error(t, x.Transfer(p, from, to[:2]))
	assert.Error(t, x.Transfer(New(), from, to))
}

func TestFloat64(t *testing.T) {
	out := []float64{42, 0, 23, 0, 16, 0, 15, 0, 8, 0, 4, 0}
	data := []float64{4, 8, 15, 16, 23, 42}
	from := []int{ 5, 4, 3, 2, 1, 0 }
	to := []int{ 0, 2, 4, 6, 8, 10 }
	name := "test_value"

	x := NewFloat64(name, data)
	assert.Equal(t, len(data), x.Len())

	p := New()
	require.NoError(t, x.CreateDestination(p, len(out)))
	require.NoError(t, x.Transfer(p, from, to))
	got, _ := p.Float64s(name)
	assert.Equal(t, out, got)

	// An []int64 destination with the same name is a type mismatch.
	q := New()
	require.NoError(t, q.Add(NewInt64(name, make([]int64, len(out)))))
	assert.Error(t, x.Transfer(q, from, to))
}

func TestAdd(t *testing.T) {
	p := New()
	assert.Equal(t, 0, p.Len())

	require.NoError(t, p.Add(NewInt64("PID", []int64{ 1, 2, 3 })))
	require.NoError(t, p.Add(NewFloat64("w", []float64{ 1, 1, 1 })))
	assert.Error(t, p.Add(NewFloat64("w", []float64{ 2, 2, 2 })))
	assert.Error(t, p.Add(NewFloat64("x", []float64{ 2, 2 })))

	assert.Equal(t, 3, p.Len())
	assert.Equal(t, 2, p.NumFields())
	assert.Equal(t, []string{ "PID", "w" }, p.Names())
	assert.Equal(t, "w", p.Column(1).Name())

	_, ok := p.Float64s("PID")
	assert.False(t, ok)
	_, ok = p.Int64s("missing")
	assert.False(t, ok)
}

func TestTake(t *testing.T) {
	p := New()
	require.NoError(t, p.Add(NewInt64("PID", []int64{ 10, 11, 12, 13 })))
	require.NoError(t, p.Add(NewFloat64("z", []float64{ 0.5, 1.5, 2.5, 3.5 })))

	tests := []struct {
		idx []int
		pid []int64
		z []float64
		valid bool
	} {
		{ []int{ }, []int64{ }, []float64{ }, true },
		{ []int{ 2 }, []int64{ 12 }, []float64{ 2.5 }, true },
		{ []int{ 3, 0, 1 }, []int64{ 13, 10, 11 }, []float64{ 3.5, 0.5, 1.5 }, true },
		{ []int{ 4 }, nil, nil, false },
		{ []int{ -1 }, nil, nil, false },
	}

	for i := range tests {
		q, err := p.Take(tests[i].idx)
		if !tests[i].valid {
			if err == nil {
				t.Errorf("%d) Expected Take(%d) to fail, but it succeeded.",
					i, tests[i].idx)
			}
			continue
		} else if err != nil {
			t.Errorf("%d) Expected Take(%d) to succeed, got error '%s'.",
				i, tests[i].idx, err.Error())
			continue
		}

		pid, _ := q.Int64s("PID")
		z, _ := q.Float64s("z")
		assert.Equal(t, tests[i].pid, pid, "%d) PID", i)
		assert.Equal(t, tests[i].z, z, "%d) z", i)
		assert.Equal(t, p.Names(), q.Names(), "%d) column order", i)
	}

	// The projection is detached from the source.
	q, err := p.Take([]int{ 0 })
	require.NoError(t, err)
	z, _ := q.Float64s("z")
	z[0] = -100
	zp, _ := p.Float64s("z")
	assert.Equal(t, 0.5, zp[0])
}

func TestWriteCSV(t *testing.T) {
	p := New()
	require.NoError(t, p.Add(NewInt64("PID", []int64{ 7, 8 })))
	require.NoError(t, p.Add(NewFloat64("gamma", []float64{ 1.5, 200 })))

	b := &bytes.Buffer{ }
	require.NoError(t, WriteCSV(b, p))
	assert.Equal(t, "PID,gamma\n7,1.5\n8,200\n", b.String())
}
