package main

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"vidtube/config"
	"vidtube/internal/database"
	"vidtube/internal/global"
	"vidtube/internal/media"
)

// InitGlobal khởi tạo các biến toàn cục theo đúng thứ tự phụ thuộc.
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
	initRedis()            // Khởi tạo Redis (optional, cache thống kê kênh)
	initMediaStore()       // Khởi tạo storage media (S3)
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.InitColNames()
	logrus.Info("Initialized collection names")
}

// Hàm khởi tạo validator (đăng ký custom validators: no_xss, username, strong_password, ...)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")
}

// initRedis kết nối Redis nếu được cấu hình. Không có Redis thì cache thống kê
// tắt, mọi truy vấn thống kê tính trực tiếp từ MongoDB.
func initRedis() {
	cfg := global.ServerConfig
	if cfg.Redis_Addr == "" {
		logrus.Info("Redis not configured, stats cache disabled")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis_Addr,
		Password: cfg.Redis_Password,
		DB:       cfg.Redis_DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		logrus.Errorf("Failed to connect to Redis at %s: %v, stats cache disabled", cfg.Redis_Addr, err)
		return
	}

	global.RedisClient = client
	logrus.Info("Connected to Redis")
}

// initMediaStore khởi tạo storage media. S3 không cấu hình thì dùng memory
// store — chỉ phù hợp cho môi trường phát triển.
func initMediaStore() {
	cfg := global.ServerConfig
	if cfg.S3_Bucket == "" {
		logrus.Warn("S3 not configured, using in-memory media store (development only)")
		global.MediaStore = media.NewMemoryStore()
		return
	}

	store, err := media.NewS3Store(context.Background(), cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize S3 media store: %v", err)
	}
	global.MediaStore = store
	logrus.Info("Initialized S3 media store")
}
