package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appbook "github.com/xuelin/bookshelf/internal/application/book"
	appuser "github.com/xuelin/bookshelf/internal/application/user"
	"github.com/xuelin/bookshelf/internal/domain/book"
	"github.com/xuelin/bookshelf/internal/domain/person"
	"github.com/xuelin/bookshelf/internal/infrastructure/config"
	"github.com/xuelin/bookshelf/internal/infrastructure/persistence/mysql"
	"github.com/xuelin/bookshelf/internal/interface/http/handler"
	"github.com/xuelin/bookshelf/internal/interface/http/middleware"
	"github.com/xuelin/bookshelf/pkg/metrics"
	"github.com/xuelin/bookshelf/pkg/response"
)

// main 主程序入口
// 说明：显式构造函数注入（不使用反射式容器），组装链：
// Repository ← Service ← UseCase ← Handler
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// 2. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 3. 初始化指标
	metrics.InitMetrics()

	// 4. 依赖注入（手动组装）

	// 基础设施层
	txManager := mysql.NewTxManager(db)
	personRepo := mysql.NewPersonRepository(db)
	bookRepo := mysql.NewBookRepository(db)

	// 领域层
	personService := person.NewService(personRepo, txManager)
	bookService := book.NewService(bookRepo, txManager)

	// 应用层
	userUseCase := appuser.NewUseCase(personService, bookService, txManager)
	bookUseCase := appbook.NewUseCase(bookService, personService)

	// 接口层
	userHandler := handler.NewUserHandler(userUseCase)
	bookHandler := handler.NewBookHandler(bookUseCase)

	// 5. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	// 6. 注册路由
	registerRoutes(r, userHandler, bookHandler)

	// 7. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	fmt.Printf("\n🚀 服务启动成功！\n")
	fmt.Printf("   访问地址: http://localhost%s\n", addr)
	fmt.Printf("   健康检查: http://localhost%s/ping\n", addr)
	fmt.Printf("   指标端点: http://localhost%s/metrics\n", addr)
	fmt.Printf("\n按Ctrl+C停止服务\n\n")

	if err := r.Run(addr); err != nil {
		log.Fatalf("启动服务失败: %v", err)
	}
}

// registerRoutes 注册路由
func registerRoutes(r *gin.Engine, userHandler *handler.UserHandler, bookHandler *handler.BookHandler) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 读者模块
		users := v1.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser) // 级联删除该读者的图书
		}

		// 图书模块
		books := v1.Group("/books")
		{
			books.POST("", bookHandler.CreateBook)
			books.GET("", bookHandler.ListBooks)
			books.GET("/:id", bookHandler.GetBook)
			books.PUT("/:id", bookHandler.UpdateBook)
			books.DELETE("/:id", bookHandler.DeleteBook)
		}
	}
}
