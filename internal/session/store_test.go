package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fracki1010/edu-cart-app/internal/domain"
	"github.com/fracki1010/edu-cart-app/internal/localstore"
)

func newKV(t *testing.T, dir string) *localstore.Store {
	t.Helper()
	kv, err := localstore.Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { kv.Close() })
	return kv
}

func TestSetPersistsAcrossRestart(t *testing.T) {
	dir := t.TempDir()
	kv := newKV(t, dir)

	sut, err := NewStore(kv, nil)
	require.NoError(t, err)
	assert.False(t, sut.Current().Authenticated())

	user := domain.User{ID: 7, Username: "demo", Role: "customer"}
	require.NoError(t, sut.Set(user, "tok-123"))
	assert.True(t, sut.Current().Authenticated())
	assert.Equal(t, "demo", sut.Current().User.Username)

	// A fresh store over the same data directory sees the same session.
	kv2 := newKV(t, dir)
	reloaded, err := NewStore(kv2, nil)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", reloaded.Current().Token)
	require.NotNil(t, reloaded.Current().User)
	assert.Equal(t, int64(7), reloaded.Current().User.ID)
}

func TestClear_WipesStorageAndFiresHooks(t *testing.T) {
	kv := newKV(t, t.TempDir())
	sut, err := NewStore(kv, nil)
	require.NoError(t, err)
	require.NoError(t, sut.Set(domain.User{ID: 7}, "tok"))

	var fired int
	sut.OnClear(func() { fired++ })

	sut.Clear()
	assert.False(t, sut.Current().Authenticated())
	assert.Equal(t, 1, fired)

	_, ok, err := kv.Get(localstore.KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = kv.Get(localstore.KeyUser)
	require.NoError(t, err)
	assert.False(t, ok)

	// Clearing an already-guest session does not fire hooks again.
	sut.Clear()
	assert.Equal(t, 1, fired)
}

func TestNewStore_CorruptUserIsDiscarded(t *testing.T) {
	kv := newKV(t, t.TempDir())
	require.NoError(t, kv.Put(localstore.KeyToken, "tok"))
	require.NoError(t, kv.Put(localstore.KeyUser, "{not json"))

	sut, err := NewStore(kv, nil)
	require.NoError(t, err)
	assert.True(t, sut.Current().Authenticated())
	assert.Nil(t, sut.Current().User)
}

func TestUpdateUser_KeepsToken(t *testing.T) {
	kv := newKV(t, t.TempDir())
	sut, err := NewStore(kv, nil)
	require.NoError(t, err)
	require.NoError(t, sut.Set(domain.User{ID: 7, Name: "Old"}, "tok"))

	require.NoError(t, sut.UpdateUser(domain.User{ID: 7, Name: "New"}))
	assert.Equal(t, "New", sut.Current().User.Name)
	assert.Equal(t, "tok", sut.Current().Token)
}
