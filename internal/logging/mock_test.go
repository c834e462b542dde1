package logging

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_DerivedLoggersShareEntries(t *testing.T) {
	root := NewMockLogger()
	child := root.WithField(FieldStage, "merchant").WithError(errors.New("boom"))

	child.Warn("stage failed", Field{Key: FieldCount, Value: 3})
	root.Info("done")

	entries := root.GetEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[0].Level)
	assert.EqualError(t, entries[0].Error, "boom")
	assert.Equal(t, []Field{{Key: FieldStage, Value: "merchant"}, {Key: FieldCount, Value: 3}}, entries[0].Fields)
	assert.Nil(t, entries[1].Error)

	value, ok := root.FieldValue("stage failed", FieldCount)
	assert.True(t, ok)
	assert.Equal(t, 3, value)
	assert.True(t, root.HasEntry("INFO", "done"))
	assert.Len(t, root.GetEntriesByLevel("WARN"), 1)
}

func TestMockLogger_ZeroValueUsable(t *testing.T) {
	var m MockLogger
	m.Debug("hello")
	m.Fatalf("bad %s", "thing")
	assert.True(t, m.HasEntry("FATAL", "bad thing"))
	m.Clear()
	assert.Empty(t, m.GetEntries())
}

func TestMockLogger_ConcurrentUse(t *testing.T) {
	m := NewMockLogger()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.WithField(FieldCount, i).Debug("tick")
		}(i)
	}
	wg.Wait()
	assert.Len(t, m.GetEntries(), 20)
}
