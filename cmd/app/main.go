package main

import (
	"fmt"
	"log/slog"
	"os"

	"aos/cmd"
	"aos/internal/adapters/in/http"
	"aos/internal/adapters/out/postgres/accountrepo"
	"aos/internal/adapters/out/postgres/deliveryrepo"
	"aos/internal/adapters/out/postgres/keyaddressrepo"
	"aos/internal/adapters/out/postgres/noderepo"
	"aos/internal/adapters/out/postgres/outboxrepo"
	"aos/internal/adapters/out/postgres/permissionrepo"
	"aos/internal/adapters/out/postgres/registryrepo"
	"aos/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager, err := startJobs(&app, logger)
	if err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:               goDotEnvVariable("HTTP_PORT"),
		DBHost:                 goDotEnvVariable("DB_HOST"),
		DBPort:                 goDotEnvVariable("DB_PORT"),
		DBUser:                 goDotEnvVariable("DB_USER"),
		DBPassword:             goDotEnvVariable("DB_PASSWORD"),
		DBName:                 goDotEnvVariable("DB_NAME"),
		DBSslMode:              goDotEnvVariable("DB_SSLMODE"),
		HostChain:              goDotEnvVariable("HOST_CHAIN"),
		AdminAddress:           goDotEnvVariable("ADMIN_ADDRESS"),
		BridgeURL:              goDotEnvVariable("BRIDGE_URL"),
		DeliveryTimeoutSeconds: goDotEnvVariable("DELIVERY_TIMEOUT_SECONDS"),
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

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	// TranslateError surfaces unique index violations as
	// gorm.ErrDuplicatedKey, which the repositories map onto domain errors.
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := gormDB.AutoMigrate(
		&deliveryrepo.DeliveryDTO{},
		&noderepo.NodeDTO{},
		&registryrepo.EntryDTO{},
		&permissionrepo.PermissionDTO{},
		&accountrepo.AccountDTO{},
		&keyaddressrepo.KeyAddressDTO{},
		&outboxrepo.OutboxMessageDTO{},
		&outboxrepo.ChannelSequenceDTO{},
	); err != nil {
		return nil, err
	}

	return gormDB, nil
}

func startJobs(app *cmd.CompositionRoot, logger *slog.Logger) (*jobs.JobManager, error) {
	jobManager := jobs.NewJobManager(
		app.FinalizeUoWFactory(),
		app.CreateTimeoutDeliveryCommandHandler(),
		app.OutboxRepository(),
		app.TransportClient(),
		logger,
	)

	if err := jobManager.StartAll(); err != nil {
		return nil, err
	}

	return jobManager, nil
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	sendMessageHandler, err := app.CreateSendMessageCommandHandler()
	if err != nil {
		log.Fatalf("Failed to build send handler: %v", err)
	}

	retryDeliveryHandler, err := app.CreateRetryDeliveryCommandHandler()
	if err != nil {
		log.Fatalf("Failed to build retry handler: %v", err)
	}

	server := http.NewServer(
		sendMessageHandler,
		app.CreateUpsertKeyAddressCommandHandler(),
		app.CreateAcknowledgeDeliveryCommandHandler(),
		app.CreateTimeoutDeliveryCommandHandler(),
		retryDeliveryHandler,
		app.CreateRegisterPathCommandHandler(),
		app.CreatePublishVersionCommandHandler(),
		app.CreateSetActionFeeCommandHandler(),
		app.CreateUpdatePublisherCommandHandler(),
		app.CreateChargeActionFeeCommandHandler(),
		app.CreateGrantPermissionCommandHandler(),
		app.CreateRevokePermissionCommandHandler(),
		app.CreateConsumePermissionCommandHandler(),
		app.CreateGetKeyAddressQueryHandler(),
		app.CreateVerifyAddressQueryHandler(),
		app.CreateResolveVersionQueryHandler(),
		app.CreateGetPendingDeliveriesQueryHandler(),
		app.EnvelopeCodec(),
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
