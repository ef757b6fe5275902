package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthlink-platform/healthlink/internal/config"
	"github.com/healthlink-platform/healthlink/internal/quota"
)

func setupHandler(t *testing.T) (*Handler, *miniredis.Miniredis, *quota.RedisStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	store := quota.NewRedisStore(rdb, 500, config.TierProd)
	return NewHandler(store, "operator-pass"), mr, store
}

func post(t *testing.T, fn http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/v1/admin/quota", strings.NewReader(body))
	rec := httptest.NewRecorder()
	fn(rec, req)
	return rec
}

func TestSnapshot_WrongPassword(t *testing.T) {
	h, _, _ := setupHandler(t)

	for _, body := range []string{
		`{"password":"wrong"}`,
		`{"password":""}`,
		`{}`,
		`not json`,
	} {
		rec := post(t, h.Snapshot, body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "body: %s", body)
	}
}

func TestSnapshot_OK(t *testing.T) {
	h, mr, store := setupHandler(t)
	seedCount(t, mr, store, "42")

	rec := post(t, h.Snapshot, `{"password":"operator-pass"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap quota.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 500, snap.Cap)
	assert.Equal(t, 42, snap.Count)
	assert.Equal(t, 458, snap.Remaining)
	assert.NotEmpty(t, snap.DateKey)
}

func TestSnapshot_StoreDown(t *testing.T) {
	h, mr, _ := setupHandler(t)
	mr.Close()

	rec := post(t, h.Snapshot, `{"password":"operator-pass"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "unavailable")
}

func TestReset(t *testing.T) {
	h, mr, store := setupHandler(t)
	seedCount(t, mr, store, "321")

	rec := post(t, h.Reset, `{"password":"operator-pass"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var snap quota.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 0, snap.Count)
	assert.Equal(t, 500, snap.Remaining)
}

func TestEmptyConfiguredPasswordRejectsEverything(t *testing.T) {
	store := quota.NewRedisStore(nil, 500, config.TierDev)
	h := NewHandler(store, "")

	rec := post(t, h.Snapshot, `{"password":"anything"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func seedCount(t *testing.T, mr *miniredis.Miniredis, store *quota.RedisStore, val string) {
	t.Helper()
	snap, err := store.CurrentSnapshot(context.Background())
	require.NoError(t, err)
	require.NoError(t, mr.Set("global_daily_api_count:"+snap.DateKey, val))
}
