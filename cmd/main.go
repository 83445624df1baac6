package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	v1 "github.com/pratikkarwade30/postcard-journey/api/v1"
	"github.com/pratikkarwade30/postcard-journey/config"
	"github.com/pratikkarwade30/postcard-journey/dao"
	"github.com/pratikkarwade30/postcard-journey/internal/auth"
	"github.com/pratikkarwade30/postcard-journey/internal/cache"
	"github.com/pratikkarwade30/postcard-journey/internal/storage"
	myvalidator "github.com/pratikkarwade30/postcard-journey/internal/validator"
	"github.com/pratikkarwade30/postcard-journey/middleware"
	"github.com/pratikkarwade30/postcard-journey/model"
	"github.com/pratikkarwade30/postcard-journey/service"
)

func main() {
	// 初始化配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../"
	}
	config.InitConfig(configPath)
	config.InitRedis()

	// 初始化数据库
	db, err := gorm.Open(mysql.Open(config.GlobalConfig.MySQL.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		panic(err)
	}

	// 自动迁移
	if err := db.AutoMigrate(&model.User{}, &model.Follow{}, &model.Trip{}, &model.Postcard{}); err != nil {
		panic(err)
	}

	// 初始化 DAO 和 Service
	userDAO := dao.NewUserDAO(db)
	followDAO := dao.NewFollowDAO(db)
	tripDAO := dao.NewTripDAO(db)
	postcardDAO := dao.NewPostcardDAO(db)

	issuer := auth.NewTokenIssuer(config.GlobalConfig.JWT.Secret,
		time.Duration(config.GlobalConfig.JWT.Expire)*time.Second)
	feed := cache.NewFeedCache(config.RedisClient,
		time.Duration(config.GlobalConfig.Cache.FeedTTL)*time.Second)

	userService := service.NewUserService(userDAO, followDAO, issuer, storage.LogDeleter{})
	followService := service.NewFollowService(userDAO, followDAO)
	tripService := service.NewTripService(userDAO, tripDAO, postcardDAO)

	userAPI := v1.NewUserAPI(userService, followService, feed)
	tripAPI := v1.NewTripAPI(tripService, followService, feed)

	// 初始化路由
	r := gin.Default()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 注册自定义校验器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		myvalidator.RegisterTagName(v)
		if err := v.RegisterValidation("imageurl", myvalidator.IsImageURL); err != nil {
			panic(err)
		}
	}

	// 公共路由
	public := r.Group("/api/v1")
	{
		public.POST("/users/register", userAPI.Register)
		loginLimiter := middleware.LoginRateLimiter(config.RedisClient, 5, time.Minute)
		public.POST("/users/login", loginLimiter, userAPI.Login)
		public.GET("/users/:userId/trips", tripAPI.Aggregate)
	}

	// 私有路由
	private := r.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(issuer))
	{
		private.GET("/users/current", userAPI.Current)
		private.PUT("/users/:userId/follow", userAPI.Follow)
		private.DELETE("/users/:userId/unfollow", userAPI.Unfollow)
		private.GET("/users/follows", userAPI.Follows)
		private.PUT("/users/profile/image", userAPI.ReplaceProfileImage)
		private.DELETE("/users/profile/image", userAPI.RemoveProfileImage)
	}

	// 启动服务
	if err := r.Run(config.GlobalConfig.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
