package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/j99way99/my-inv-app/internal/config"
	"github.com/j99way99/my-inv-app/internal/domain/model"
	"github.com/j99way99/my-inv-app/internal/handler"
	"github.com/j99way99/my-inv-app/internal/infra/db"
	infraRepo "github.com/j99way99/my-inv-app/internal/infra/repository"
	"github.com/j99way99/my-inv-app/internal/server"
	"github.com/j99way99/my-inv-app/internal/usecase"
	auth "github.com/j99way99/my-inv-app/internal/usecase/auth_usecase"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type randSource struct{}

func (r *randSource) IntN(n int) int {
	return rand.Intn(n)
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID string, username string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .envはローカル開発用。本番は環境変数を直接渡す
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.GoEnv == "dev" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Item{},
		&model.ApplyEvent{},
		&model.EventItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Counter{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	itemRepo := infraRepo.NewItemGormRepository(gormDB)
	eventRepo := infraRepo.NewEventGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	counterRepo := infraRepo.NewCounterGormRepository(gormDB)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	random := &randSource{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 7 * 24 * time.Hour,
	}

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, idGen, clock)
	loginUC := auth.NewLoginUsecase(userRepo, verifier, issuer, clock)
	itemUC := usecase.NewItemUsecase(itemRepo, orderRepo, counterRepo, idGen, clock)
	eventUC := usecase.NewEventUsecase(eventRepo, itemRepo, orderRepo, idGen, clock)
	orderUC := usecase.NewOrderUsecase(orderRepo, eventRepo, itemRepo, idGen, clock, random)

	//Handler生成
	handlers := server.Handlers{
		Auth:  handler.NewAuthHandler(registerUC, loginUC, userRepo),
		Item:  handler.NewItemHandler(itemUC),
		Event: handler.NewEventHandler(eventUC),
		Order: handler.NewOrderHandler(orderUC),
	}

	//Server起動
	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := server.Start(cfg, handlers); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
