package config

import (
	"load-tracking-service/src/internal/delivery/http"
	"load-tracking-service/src/internal/delivery/http/middleware"
	"load-tracking-service/src/internal/delivery/http/route"
	"load-tracking-service/src/internal/gateway/geocode"
	"load-tracking-service/src/internal/gateway/messaging"
	"load-tracking-service/src/internal/gateway/storage"
	"load-tracking-service/src/internal/repository"
	"load-tracking-service/src/internal/usecase"
	"load-tracking-service/src/pkg/databases/postgres"
	kafkaPkg "load-tracking-service/src/pkg/kafka"
	"load-tracking-service/src/pkg/log"
	"load-tracking-service/src/pkg/qrimage"
	"load-tracking-service/src/pkg/signature"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

type BootstrapConfig struct {
	DB          postgres.DBInterface
	App         *fiber.App
	Log         log.Log
	Validate    *validator.Validate
	Config      *viper.Viper
	Producer    kafkaPkg.Producer
	Redis       redis.UniversalClient
	Storage     storage.ObjectStorage
	Geoservice  *GeoService
	Signer      *signature.Signer
	AsynqClient *asynq.Client
	Async       *asynq.ServeMux
}

func Bootstrap(config *BootstrapConfig) {
	// setup repositories
	orderRepository := repository.NewOrderRepository(config.DB)
	qrCodeRepository := repository.NewQRCodeRepository(config.DB)
	activationRepository := repository.NewActivationRepository(config.DB)
	locationRepository := repository.NewLocationRepository(config.DB)
	auditRepository := repository.NewAuditRepository(config.DB)
	userRepository := repository.NewUserRepository(config.DB)
	trackingRepository := repository.NewTrackingRepository(config.Redis)
	orderProducer := messaging.NewOrderProducer(config.Producer, config.Log)
	geocoder := geocode.NewGeocoder(config.Geoservice.Client)

	// setup use cases
	auditUseCase := usecase.NewAuditUseCase(config.Log, config.AsynqClient, auditRepository)
	qrCodeUseCase := usecase.NewQRCodeUseCase(
		config.Log,
		config.Validate,
		config.Signer,
		orderRepository,
		activationRepository,
		auditRepository,
		auditUseCase,
		orderProducer,
	)
	orderUseCase := usecase.NewOrderUseCase(
		config.Log,
		config.Validate,
		config.Signer,
		orderRepository,
		qrCodeRepository,
		activationRepository,
		auditRepository,
		config.Storage,
		qrimage.NewRenderer(),
		geocoder,
		auditUseCase,
		orderProducer,
	)
	locationUseCase := usecase.NewLocationUseCase(
		config.Log,
		config.Validate,
		config.Config,
		orderRepository,
		locationRepository,
		trackingRepository,
	)
	accountUseCase := usecase.NewAccountUseCase(config.Log, config.Validate, userRepository, auditUseCase)

	// setup controllers
	orderController := http.NewOrderController(orderUseCase, config.Log)
	qrCodeController := http.NewQRCodeController(qrCodeUseCase, config.Log)
	locationController := http.NewLocationController(locationUseCase, config.Log)
	accountController := http.NewAccountController(accountUseCase, config.Log)

	// setup middleware
	authMiddleware := middleware.VerifyBearer(config.Config)
	config.Async.HandleFunc(usecase.TypeAuditRecord, auditUseCase.HandleRecord)
	routeConfig := route.RouteConfig{
		App:                config.App,
		OrderController:    orderController,
		QRCodeController:   qrCodeController,
		LocationController: locationController,
		AccountController:  accountController,
		AuthMiddleware:     authMiddleware,
	}
	routeConfig.Setup()
}
