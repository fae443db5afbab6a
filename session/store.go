package session

import (
	"github.com/gin-gonic/gin"
)

// TokenKey はセッショントークンを保存するスロットの固定キー名です。
// この名前はログイン処理が書き込むクッキー名と一致している必要があります。
const TokenKey = "authToken"

// contextKey はSetToken直後のGetTokenが同一リクエスト内で
// 新しい値を観測できるようにするためのコンテキストキーです。
const contextKey = "session." + TokenKey

// slot はコンテキスト内に保持するスロットの状態です。
// 空文字列のトークンと「未設定」を区別するためpresentを持ちます。
type slot struct {
	value   string
	present bool
}

// Store は単一スロットのセッショントークン保管庫です。
// トークンの中身は一切解釈しません。存在チェックのみを提供します。
// 実装をミドルウェアやハンドラーへ注入することで、テスト時には
// MemoryStoreに差し替えられます。
type Store interface {
	// SetToken はトークンをスロットへ書き込みます。値の検証は行いません。
	SetToken(c *gin.Context, value string)
	// GetToken は保存されている値を返します。未設定・削除済みの場合はfalseを返します。
	GetToken(c *gin.Context) (string, bool)
	// HasToken はトークンが存在するかどうかだけを返します。
	HasToken(c *gin.Context) bool
	// ClearToken はスロットを削除します。既に空の場合も何もせず成功します。
	ClearToken(c *gin.Context)
}

// CookieStore はauthTokenクッキーを永続スロットとして使用するStoreの実装です。
// クッキーはオリジン単位で保持され、プロセスの再起動をまたいで有効です。
type CookieStore struct {
	MaxAge int  // 秒。0の場合はデフォルト（24時間）
	Secure bool // HTTPSでのみ送信するかどうか
}

// NewCookieStore はデフォルト設定のCookieStoreを返します。
func NewCookieStore() *CookieStore {
	return &CookieStore{MaxAge: 24 * 60 * 60}
}

func (s *CookieStore) maxAge() int {
	if s.MaxAge == 0 {
		return 24 * 60 * 60
	}
	return s.MaxAge
}

func (s *CookieStore) SetToken(c *gin.Context, value string) {
	c.SetCookie(TokenKey, value, s.maxAge(), "/", "", s.Secure, true)
	c.Set(contextKey, slot{value: value, present: true})
}

func (s *CookieStore) GetToken(c *gin.Context) (string, bool) {
	// 同一リクエスト内でSetToken/ClearToken済みの場合はその値を優先
	if v, ok := c.Get(contextKey); ok {
		sl, _ := v.(slot)
		if !sl.present {
			return "", false
		}
		return sl.value, true
	}

	value, err := c.Cookie(TokenKey)
	if err != nil {
		// クッキーが読み取れない場合はトークン無しとして扱う（フェイルクローズ）
		return "", false
	}
	return value, true
}

func (s *CookieStore) HasToken(c *gin.Context) bool {
	_, ok := s.GetToken(c)
	return ok
}

func (s *CookieStore) ClearToken(c *gin.Context) {
	c.SetCookie(TokenKey, "", -1, "/", "", s.Secure, true)
	c.Set(contextKey, slot{})
}

// MemoryStore はテスト用の単一スロット実装です。クッキーには触れません。
type MemoryStore struct {
	value   string
	present bool
}

func (s *MemoryStore) SetToken(_ *gin.Context, value string) {
	s.value = value
	s.present = true
}

func (s *MemoryStore) GetToken(_ *gin.Context) (string, bool) {
	if !s.present {
		return "", false
	}
	return s.value, true
}

func (s *MemoryStore) HasToken(c *gin.Context) bool {
	_, ok := s.GetToken(c)
	return ok
}

func (s *MemoryStore) ClearToken(_ *gin.Context) {
	s.value = ""
	s.present = false
}
