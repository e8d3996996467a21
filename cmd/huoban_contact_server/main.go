package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"huoban_contact_server/internal/config"
	dao "huoban_contact_server/internal/dao/mysql"
	myredis "huoban_contact_server/internal/dao/redis"
	"huoban_contact_server/internal/gateway/websocket"
	"huoban_contact_server/internal/handler"
	"huoban_contact_server/internal/https_server"
	"huoban_contact_server/internal/infrastructure/logger"
	"huoban_contact_server/internal/infrastructure/notify"
	"huoban_contact_server/internal/infrastructure/sms"
	"huoban_contact_server/internal/service"
	"huoban_contact_server/pkg/clock"
	"huoban_contact_server/pkg/util/jwt"
	"huoban_contact_server/pkg/util/snowflake"

	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	conf := config.GetConfig()

	// 2. 初始化日志
	if err := logger.Init(&conf.LogConfig, "dev"); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("日志初始化成功")

	// 3. 初始化雪花算法节点
	snowflake.Init()
	zap.L().Info("雪花算法初始化成功")

	// 4. 初始化数据库
	repos := dao.Init()
	zap.L().Info("数据库初始化成功")

	// 5. 初始化 Redis
	myredis.Init()
	zap.L().Info("Redis 初始化成功")

	// 6. 初始化 JWT
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry, conf.JWTConfig.RefreshTokenExpiry)
	zap.L().Info("JWT 初始化成功")

	// 7. 初始化 SMS Service
	smsSvc, err := sms.Init(myredis.GetCacheService())
	if err != nil {
		zap.L().Fatal("SMS Service 初始化失败", zap.Error(err))
	}
	zap.L().Info("SMS Service 初始化成功")

	// 8. 初始化同步提醒 Broker（channel 或 kafka，由配置决定）
	if conf.KafkaConfig.MessageMode == "kafka" {
		if err := notify.CreateSyncTopic(); err != nil {
			zap.L().Fatal("Kafka 主题创建失败", zap.Error(err))
		}
	}
	broker := notify.NewBroker()
	zap.L().Info("同步提醒 Broker 初始化成功", zap.String("mode", conf.KafkaConfig.MessageMode))

	// 9. 初始化 Service 层 (依赖注入)
	service.InitServices(repos, myredis.GetCacheService(), smsSvc, broker, clock.System())
	zap.L().Info("Service 层初始化成功")

	// 10. 初始化长连接网关，开始消费同步提醒
	websocket.Init(broker)
	zap.L().Info("长连接网关初始化成功")

	// 11. 初始化参数校验翻译器
	if err := handler.InitTrans("zh"); err != nil {
		zap.L().Fatal("翻译器初始化失败", zap.Error(err))
	}

	// 12. 初始化 HTTP 服务器
	https_server.Init()
	zap.L().Info("HTTP 服务器初始化成功")

	// 13. 启动服务
	host := conf.MainConfig.Host
	port := conf.MainConfig.Port
	go func() {
		if err := https_server.GE.Run(fmt.Sprintf("%s:%d", host, port)); err != nil {
			zap.L().Fatal("server running fault")
			return
		}
	}()

	// 设置信号监听
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 等待信号
	<-quit

	zap.L().Info("关闭服务器...")
	websocket.Gate.Close()
	_ = broker.Close()
	zap.L().Info("服务器已关闭")
}
