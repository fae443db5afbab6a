package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestCookieStoreWriteThenRead(t *testing.T) {
	store := NewCookieStore()
	c, w := newTestContext(t)

	store.SetToken(c, "abc")

	// 書き込み直後の読み取りは同一リクエスト内で新しい値を観測する
	value, ok := store.GetToken(c)
	require.True(t, ok)
	assert.Equal(t, "abc", value)
	assert.True(t, store.HasToken(c))

	// クッキーとしてもクライアントへ送られる
	setCookie := w.Header().Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(setCookie, TokenKey+"=abc"))
}

func TestCookieStoreReadsRequestCookie(t *testing.T) {
	store := NewCookieStore()
	c, _ := newTestContext(t)
	c.Request.AddCookie(&http.Cookie{Name: TokenKey, Value: "tok1"})

	value, ok := store.GetToken(c)
	require.True(t, ok)
	assert.Equal(t, "tok1", value)
}

func TestCookieStoreMissingCookieFailsClosed(t *testing.T) {
	store := NewCookieStore()
	c, _ := newTestContext(t)

	_, ok := store.GetToken(c)
	assert.False(t, ok)
	assert.False(t, store.HasToken(c))
}

func TestCookieStoreEmptyValueCountsAsPresent(t *testing.T) {
	// スロットが存在する限り、中身が空に見えてもトークン有りとして扱う
	store := NewCookieStore()
	c, _ := newTestContext(t)
	c.Request.AddCookie(&http.Cookie{Name: TokenKey, Value: ""})

	assert.True(t, store.HasToken(c))
}

func TestCookieStoreClearIsIdempotent(t *testing.T) {
	store := NewCookieStore()
	c, _ := newTestContext(t)
	c.Request.AddCookie(&http.Cookie{Name: TokenKey, Value: "tok1"})

	store.ClearToken(c)
	assert.False(t, store.HasToken(c))

	// 既に空のスロットの削除もエラーにならない
	store.ClearToken(c)
	assert.False(t, store.HasToken(c))
}

func TestMemoryStoreLifecycle(t *testing.T) {
	store := &MemoryStore{}
	c, _ := newTestContext(t)

	assert.False(t, store.HasToken(c))

	store.SetToken(c, "tok1")
	value, ok := store.GetToken(c)
	require.True(t, ok)
	assert.Equal(t, "tok1", value)

	store.ClearToken(c)
	assert.False(t, store.HasToken(c))
	store.ClearToken(c)
	assert.False(t, store.HasToken(c))
}
