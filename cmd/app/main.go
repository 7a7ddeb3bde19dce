package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"kitchen/cmd"
	httpin "kitchen/internal/adapters/in/http"
	"kitchen/internal/adapters/out/postgres/metricsrepo"
	"kitchen/internal/adapters/out/postgres/orderrepo"
	"kitchen/internal/adapters/out/rabbitmq"
	"kitchen/internal/adapters/out/rediscache"
	"kitchen/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)

	rabbitClient, err := rabbitmq.Dial(rabbitmq.Config{
		Host:     configs.RabbitMQHost,
		Port:     configs.RabbitMQPort,
		User:     configs.RabbitMQUser,
		Password: configs.RabbitMQPassword,
	})
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer rabbitClient.Close()

	publisher, err := rabbitmq.NewEventPublisher(rabbitClient)
	if err != nil {
		log.Fatalf("Failed to set up event publisher: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
	})
	defer func() { _ = redisClient.Close() }()
	statusCache := rediscache.NewQueueStatusCache(redisClient)

	app := cmd.NewCompositionRoot(configs, gormDB, publisher, statusCache)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(
		app.CreateOptimizeQueueCommandHandler(),
		app.Scheduler(),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		DBHost:           goDotEnvVariable("DB_HOST"),
		DBPort:           goDotEnvVariable("DB_PORT"),
		DBUser:           goDotEnvVariable("DB_USER"),
		DBPassword:       goDotEnvVariable("DB_PASSWORD"),
		DBName:           goDotEnvVariable("DB_NAME"),
		DBSslMode:        goDotEnvVariable("DB_SSLMODE"),
		RabbitMQHost:     goDotEnvVariable("RABBITMQ_HOST"),
		RabbitMQPort:     mustAtoi(goDotEnvVariable("RABBITMQ_PORT")),
		RabbitMQUser:     goDotEnvVariable("RABBITMQ_USER"),
		RabbitMQPassword: goDotEnvVariable("RABBITMQ_PASSWORD"),
		RedisAddr:        goDotEnvVariable("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		KitchenStaff:     mustAtoi(goDotEnvVariable("KITCHEN_STAFF")),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustAtoi(value string) int {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Invalid numeric config value %q: %v", value, err)
	}
	return parsed
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &metricsrepo.MetricDTO{}); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpin.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateProcessNextBatchCommandHandler(),
		app.CreateCompleteBatchCommandHandler(),
		app.CreateOptimizeQueueCommandHandler(),
		app.CreateGetUncompletedOrdersQueryHandler(),
		app.CreateGetOrdersByRestaurantQueryHandler(),
		app.CreateGetOrdersByStatusQueryHandler(),
		app.CreateGetOrderQueueQueryHandler(),
		app.CreateGetQueueStatusQueryHandler(),
		app.CreateGetOrderMetricsQueryHandler(),
		app.CreateGetAverageProcessingTimeQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
