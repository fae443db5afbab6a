package main

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"quizserver/database" //PostgreSQLとRedisの初期化
	"quizserver/handlers" //ログイン・ダッシュボード・プロフィールのHTTPリクエストの処理
	ws "quizserver/internal/websocket"
	"quizserver/middlewares" //ルートガードとトークン生成
	"quizserver/screens"     //管理画面のクイズ管理と解答に関連するHTTPリクエストの処理
	"quizserver/session"     //セッショントークンの保管庫
	"quizserver/utils"       //ロガーの初期化とCronジョブ(PostgreSQLの定期クリーンナップ)

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

func main() {
	var logger *zap.Logger
	var err error
	logger, err = utils.InitLogger() // ロガーの初期化
	if err != nil {
		panic(err) // 失敗した場合はプログラム停止
	}
	defer logger.Sync() // ロガーのクリーンアップ

	// Websocket接続で用いる変数を初期化
	hub := ws.NewHub()
	upgrader := &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	// 非同期でPostgreSQLとRedisの初期化
	var db *gorm.DB
	var rdb *redis.Client
	done := make(chan bool)

	go func() {
		config, err := database.LoadConfig("config.json")
		if err != nil {
			logger.Fatal("設定ファイルの読み込みに失敗しました", zap.Error(err))
		}
		db, err = database.InitPostgreSQL(config, logger)
		if err != nil {
			logger.Fatal("PostgreSQLの初期化に失敗しました", zap.Error(err))
		}
		done <- true
	}()

	go func() {
		rdb, err = database.InitRedis(logger)
		if err != nil {
			logger.Fatal("Failed to initialize Redis", zap.Error(err))
		}
		done <- true
	}()

	// 2つの初期化が完了するのを待つ
	<-done
	<-done

	// クーロンスケジューラのセットアップと呼び出し
	go utils.CronCleaner(db, logger)

	// セッショントークンの保管庫。ガードとログイン・ログアウトへ注入する
	store := session.NewCookieStore()

	router := gin.New()
	router.Use(gin.Recovery(), utils.RequestLogger(logger))

	//CORS（Cross-Origin Resource Sharing）ポリシーを設定
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://192.168.1.1:8080"}, //ここにデプロイサーバーのIPアドレスを設定
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	//認証不要のルーティング
	router.GET(middlewares.LoginPath, handlers.LoginPage())
	router.POST("/login", handlers.Login(db, rdb, store, logger))
	router.POST("/register", handlers.RegisterUser(db, logger))
	router.POST("/logout", handlers.Logout(rdb, store, logger))

	//ログイン済みユーザーのみのルーティング
	authorized := router.Group("/", middlewares.RouteGuard(store, logger))
	authorized.GET("/home", func(c *gin.Context) {
		handlers.DashboardHandler(c, db, store, logger)
	})
	authorized.GET("/profile", func(c *gin.Context) {
		handlers.ProfileHandler(c, db, rdb, store, logger)
	})
	authorized.GET("/quiz/:shareToken", func(c *gin.Context) {
		screens.PlayQuizHandler(c, db, logger)
	})
	authorized.POST("/quiz/:shareToken/attempt", func(c *gin.Context) {
		screens.AttemptHandler(c, db, store, hub, logger)
	})
	authorized.GET("/ws/:shareToken", func(c *gin.Context) {
		ws.HandleConnections(c, db, store, hub, upgrader, logger)
	})

	//管理者のみのルーティング
	admin := authorized.Group("/admin", middlewares.AdminOnly(store, logger))
	admin.POST("/quizzes", func(c *gin.Context) {
		screens.QuizCreateHandler(c, db, logger)
	})
	admin.GET("/quizzes", func(c *gin.Context) {
		screens.QuizListHandler(c, db, logger)
	})
	admin.GET("/quizzes/:id", func(c *gin.Context) {
		screens.QuizInfoHandler(c, db, logger)
	})
	admin.PUT("/quizzes/:id", func(c *gin.Context) {
		screens.QuizUpdateHandler(c, db, logger)
	})
	admin.DELETE("/quizzes/:id", func(c *gin.Context) {
		screens.QuizDeleteHandler(c, db, logger)
	})
	admin.POST("/quizzes/:id/questions", func(c *gin.Context) {
		screens.QuestionCreateHandler(c, db, logger)
	})
	admin.DELETE("/quizzes/:id/questions/:qid", func(c *gin.Context) {
		screens.QuestionDeleteHandler(c, db, logger)
	})

	// テスト時はHTTPサーバーとして運用。デフォルトポートは ":8080"
	router.Run()

	// // 本番環境ではコメントアウトを解除し、HTTPSサーバーとして運用
	// err = router.RunTLS(":443", "path/to/cert.pem", "path/to/key.pem")
	// if err != nil {
	// 	logger.Fatal("Failed to run HTTPS server: ", zap.Error(err))
	// }
}
