package main

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-kit/kit/endpoint"
	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"

	deliveryHTTP "github.com/authogonal/account-service/account/delivery/http"
	accountDynamodbRepo "github.com/authogonal/account-service/account/repository/account/dynamodb"
	accountMemoryRepo "github.com/authogonal/account-service/account/repository/account/memory"
	authRepoLib "github.com/authogonal/account-service/account/repository/auth"
	notificationRepoLib "github.com/authogonal/account-service/account/repository/notification"
	accountUseCaseLib "github.com/authogonal/account-service/account/usecase/account"
	authUseCaseLib "github.com/authogonal/account-service/account/usecase/auth"
	"github.com/authogonal/account-service/domain"
	httpKit "github.com/authogonal/account-service/kit/http"
	httpMiddlewareKit "github.com/authogonal/account-service/kit/http/middleware"
	loggerKit "github.com/authogonal/account-service/kit/logger"
	"github.com/authogonal/account-service/kit/mq"
	kafkaMQKit "github.com/authogonal/account-service/kit/mq/kafka"
	memoryMQKit "github.com/authogonal/account-service/kit/mq/memory"
	traceKit "github.com/authogonal/account-service/kit/trace"
	utilKit "github.com/authogonal/account-service/kit/util"
)

const (
	SYSTEM_NAME  = "authogonal"
	SERVICE_NAME = "account"
)

func main() {
	var (
		enableTracer = utilKit.GetEnvBool("ENABLE_TRACER", false)
		enableMetric = utilKit.GetEnvBool("ENABLE_METRIC", false)
		env          = utilKit.GetEnvString("ENV", "development")
		port         = utilKit.GetEnvInt("PORT", 3000)

		jwtSecret = utilKit.GetRequireEnvString("JWT_SECRET")

		store        = utilKit.GetEnvString("STORE", "dynamodb")
		awsRegion    = utilKit.GetEnvString("AWS_REGION", "us-east-1")
		accountTable = utilKit.GetEnvString("ACCOUNT_TABLE", "accts")
		awsAccessKey = utilKit.GetEnvString("AWS_ACCESS_KEY_ID", "")
		awsSecretKey = utilKit.GetEnvString("AWS_SECRET_ACCESS_KEY", "")

		kafkaURL          = utilKit.GetEnvString("KAFKA_URL", "")
		notificationTopic = utilKit.GetEnvString("NOTIFICATION_TOPIC", "account-notifications")

		sendGridAPIKey = utilKit.GetEnvString("SENDGRID_API_KEY", "")
	)

	logLevel := loggerKit.InfoLevel
	if env == "development" {
		logLevel = loggerKit.DebugLevel
	}
	logger, err := loggerKit.NewLogger("./go.log", logLevel)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()

	var accountRepo domain.AccountRepo
	if store == "memory" {
		accountRepo = accountMemoryRepo.CreateAccountRepo()
	} else {
		var repoOptions []accountDynamodbRepo.Option
		if awsAccessKey != "" && awsSecretKey != "" {
			repoOptions = append(repoOptions, accountDynamodbRepo.WithStaticCredentials(awsAccessKey, awsSecretKey))
		}
		accountRepo, err = accountDynamodbRepo.CreateAccountRepo(ctx, awsRegion, accountTable, repoOptions...)
		if err != nil {
			panic(err)
		}
	}

	authRepo := authRepoLib.CreateAuthRepo([]byte(jwtSecret))

	var notificationMQTopic mq.MQTopic
	if kafkaURL != "" {
		notificationMQTopic = kafkaMQKit.CreateKafkaMQ(ctx, kafkaURL, notificationTopic, SERVICE_NAME+":notification")
	} else {
		notificationMQTopic = memoryMQKit.CreateMemoryMQ(ctx, 1000, 100*time.Millisecond)
	}
	notificationRepo := notificationRepoLib.CreateNotificationRepo(notificationMQTopic)

	var mailSender domain.MailSender
	if sendGridAPIKey != "" {
		mailSender = notificationRepoLib.CreateSendGridMailSender(sendGridAPIKey)
	} else {
		mailSender = notificationRepoLib.CreateLogMailSender(logger)
	}
	dispatcher := notificationRepoLib.CreateDispatcher(notificationMQTopic, mailSender, logger, 3, 5*time.Second)
	defer dispatcher.Shutdown()

	var tracer trace.Tracer
	if enableTracer {
		tracer, err = traceKit.CreateTracer(ctx, SERVICE_NAME)
		if err != nil {
			panic(err)
		}
	} else {
		tracer = traceKit.CreateNoOpTracer()
	}

	accountUseCase, err := accountUseCaseLib.CreateAccountUseCase(accountRepo, authRepo, notificationRepo, logger)
	if err != nil {
		panic(err)
	}
	authUseCase, err := authUseCaseLib.CreateAuthUseCase(accountRepo, authRepo, notificationRepo, logger)
	if err != nil {
		panic(err)
	}

	customMiddleware := endpoint.Chain(
		httpMiddlewareKit.CreateLoggingMiddleware(logger),
		httpMiddlewareKit.CreateMetrics(SYSTEM_NAME, SERVICE_NAME),
	)

	g := new(run.Group)
	{
		r := mux.NewRouter()
		options := []httptransport.ServerOption{
			httptransport.ServerBefore(httpKit.CustomBeforeCtx(tracer)),
			httptransport.ServerAfter(httpKit.CustomAfterCtx),
			httptransport.ServerErrorEncoder(httpKit.EncodeHTTPErrorResponse()),
		}
		r.Methods("POST").Path("/register").Handler(
			httptransport.NewServer(
				customMiddleware(deliveryHTTP.MakeAccountRegisterEndpoint(accountUseCase)),
				deliveryHTTP.DecodeAccountRegisterRequest,
				deliveryHTTP.EncodeAccountRegisterResponse,
				options...,
			))
		r.Methods("PUT").Path("/verify-email").Handler(
			httptransport.NewServer(
				customMiddleware(deliveryHTTP.MakeAccountVerifyEmailEndpoint(accountUseCase)),
				deliveryHTTP.DecodeAccountVerifyEmailRequest,
				deliveryHTTP.EncodeAccountVerifyEmailResponse,
				options...,
			))
		r.Methods("GET").Path("/names-of-users").Handler(
			httptransport.NewServer(
				customMiddleware(deliveryHTTP.MakeAccountListNamesEndpoint(accountUseCase)),
				deliveryHTTP.DecodeAccountListNamesRequest,
				deliveryHTTP.EncodeAccountListNamesResponse,
				options...,
			))
		r.Methods("GET").Path("/emails/{Email}/passwords/{Password}").Handler(
			httptransport.NewServer(
				customMiddleware(deliveryHTTP.MakeAuthLoginEndpoint(authUseCase)),
				deliveryHTTP.DecodeAuthLoginRequest,
				deliveryHTTP.EncodeAuthLoginResponse,
				options...,
			))
		r.Methods("GET").Path("/get-password/{Email}/{CurrentPassword}").Handler(
			httptransport.NewServer(
				customMiddleware(deliveryHTTP.MakeAuthPasswordCheckEndpoint(authUseCase)),
				deliveryHTTP.DecodeAuthPasswordCheckRequest,
				deliveryHTTP.EncodeAuthPasswordCheckResponse,
				options...,
			))
		r.Methods("GET").Path("/check-if-reset-sendable/{Email}").Handler(
			httptransport.NewServer(
				customMiddleware(deliveryHTTP.MakeAccountResetRequestEndpoint(authUseCase)),
				deliveryHTTP.DecodeAccountResetRequestRequest,
				deliveryHTTP.EncodeAccountResetRequestResponse,
				options...,
			))
		r.Methods("PUT").Path("/reset-password").Handler(
			httptransport.NewServer(
				customMiddleware(deliveryHTTP.MakeAccountResetCommitEndpoint(authUseCase)),
				deliveryHTTP.DecodeAccountResetCommitRequest,
				deliveryHTTP.EncodeAccountResetCommitResponse,
				options...,
			))
		if enableMetric {
			r.Handle("/metrics", promhttp.Handler())
		}
		httpSrv := http.Server{
			Addr:    ":" + strconv.Itoa(port),
			Handler: r,
		}
		g.Add(func() error {
			return httpSrv.ListenAndServe()
		}, func(err error) {
			if err != nil {
				logger.Error(err.Error())
			}
			httpSrv.Close()
		})
	}
	{
		g.Add(func() error {
			<-notificationMQTopic.Done()
			return notificationMQTopic.Err()
		}, func(err error) {
			if err != nil {
				logger.Error(err.Error())
			}
			notificationMQTopic.Shutdown()
		})
	}
	g.Run()
}
