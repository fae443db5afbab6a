package screens

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"quizserver/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newQuizTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Quiz{}, &models.Question{}, &models.Attempt{}))
	return db
}

func seedPublishedQuiz(t *testing.T, db *gorm.DB, choices string) models.Quiz {
	t.Helper()
	quiz := models.Quiz{
		UserID:     1,
		Title:      "一般常識クイズ",
		State:      "published",
		ShareToken: "tok-play",
	}
	require.NoError(t, db.Create(&quiz).Error)
	require.NoError(t, db.Create(&models.Question{
		QuizID:   quiz.ID,
		Text:     "首都はどこ？",
		Choices:  choices,
		Answer:   0,
		Position: 1,
	}).Error)
	return quiz
}

func TestPlayQuizHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newQuizTestDB(t)
	seedPublishedQuiz(t, db, `["東京","大阪"]`)

	router := gin.New()
	router.GET("/quiz/:shareToken", func(c *gin.Context) {
		PlayQuizHandler(c, db, zap.NewNop())
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quiz/tok-play", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "東京")
	// 正解インデックスは含まれない
	assert.NotContains(t, w.Body.String(), `"answer"`)
}

func TestPlayQuizHandlerCorruptChoicesFails(t *testing.T) {
	// 選択肢がデコードできない設問を黙って飛ばすと、表示と採点の
	// インデックスがずれるため、リクエスト全体が失敗する
	gin.SetMode(gin.TestMode)
	db := newQuizTestDB(t)
	seedPublishedQuiz(t, db, `{broken json`)

	router := gin.New()
	router.GET("/quiz/:shareToken", func(c *gin.Context) {
		PlayQuizHandler(c, db, zap.NewNop())
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quiz/tok-play", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestQuizInfoHandlerCorruptChoicesFails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newQuizTestDB(t)
	quiz := seedPublishedQuiz(t, db, `{broken json`)

	router := gin.New()
	router.GET("/admin/quizzes/:id", func(c *gin.Context) {
		c.Set("UserID", quiz.UserID) // AdminOnlyが設定する値
		QuizInfoHandler(c, db, zap.NewNop())
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/quizzes/1", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
