package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id string) *GeneratedImage {
	return &GeneratedImage{ID: id, DataURL: "data:image/png;base64,xx", CreatedAt: time.Now()}
}

func TestStore_Prepend(t *testing.T) {
	store := NewStore()
	store.Prepend(record("a"))
	store.Prepend(record("b"))
	store.Prepend(record("c"))

	snapshot := store.Snapshot()
	require.Len(t, snapshot, 3)
	// 항상 최신이 맨 앞
	assert.Equal(t, "c", snapshot[0].ID)
	assert.Equal(t, "b", snapshot[1].ID)
	assert.Equal(t, "a", snapshot[2].ID)
	assert.Equal(t, "c", store.Latest().ID)
}

func TestStore_Restore(t *testing.T) {
	store := NewStore()
	store.Prepend(record("a"))
	store.Prepend(record("b"))
	store.Prepend(record("c"))

	t.Run("인덱스 2의 레코드가 맨 앞으로, 복제 없음", func(t *testing.T) {
		ok := store.Restore("a")
		require.True(t, ok)

		snapshot := store.Snapshot()
		require.Len(t, snapshot, 3)
		assert.Equal(t, "a", snapshot[0].ID)
		assert.Equal(t, "c", snapshot[1].ID)
		assert.Equal(t, "b", snapshot[2].ID)
	})

	t.Run("모르는 ID는 false, 순서 불변", func(t *testing.T) {
		before := store.Snapshot()
		ok := store.Restore("zzz")
		assert.False(t, ok)
		assert.Equal(t, before, store.Snapshot())
	})

	t.Run("이미 맨 앞인 레코드 복원은 순서 유지", func(t *testing.T) {
		first := store.Latest().ID
		require.True(t, store.Restore(first))
		assert.Equal(t, first, store.Latest().ID)
		assert.Equal(t, 3, store.Len())
	})
}

func TestStore_Empty(t *testing.T) {
	store := NewStore()
	assert.Nil(t, store.Latest())
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.Snapshot())
}
