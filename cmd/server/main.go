package main

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"database/sql"

	"github.com/lamor-bank/gamur-bank/pkg/configpkg"
	"github.com/lamor-bank/gamur-bank/pkg/currencypkg"
	"github.com/lamor-bank/gamur-bank/pkg/dbpkg"
	"github.com/lamor-bank/gamur-bank/pkg/tokenpkg"
	_ "github.com/lib/pq"

	"github.com/lamor-bank/gamur-bank/internal/accountdelivery"
	"github.com/lamor-bank/gamur-bank/internal/accountrepo"
	"github.com/lamor-bank/gamur-bank/internal/accountservice"
	"github.com/lamor-bank/gamur-bank/internal/entryrepo"
	"github.com/lamor-bank/gamur-bank/internal/ledgerdelivery"
	"github.com/lamor-bank/gamur-bank/internal/ledgerrepo"
	"github.com/lamor-bank/gamur-bank/internal/ledgerservice"
	"github.com/lamor-bank/gamur-bank/internal/middleware"
	"github.com/lamor-bank/gamur-bank/internal/sessiondelivery"
	"github.com/lamor-bank/gamur-bank/internal/sessionrepo"
	"github.com/lamor-bank/gamur-bank/internal/sessionservice"
	"github.com/lamor-bank/gamur-bank/internal/userdelivery"
	"github.com/lamor-bank/gamur-bank/internal/userrepo"
	"github.com/lamor-bank/gamur-bank/internal/userservice"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	conn, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to db")
	}

	server, err := createServer(conn, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	err = server.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}

func createServer(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*gin.Engine, error) {
	userRepo := userrepo.NewRepoPGS(conn)
	accountRepo := accountrepo.NewRepoPGS(conn)
	entryRepo := entryrepo.NewRepoPGS(conn)
	ledgerRepo := ledgerrepo.NewRepoPGS(conn)
	sessionRepo := sessionrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	userService := userservice.New(userRepo)
	accountService := accountservice.New(accountRepo, entryRepo)
	ledgerService := ledgerservice.New(ledgerRepo, accountService)
	sessionService := sessionservice.New(sessionRepo, config, tokenMaker)

	userHandler := userdelivery.NewHandler(userService, accountService, sessionService)
	accountHandler := accountdelivery.NewHandler(accountService)
	ledgerHandler := ledgerdelivery.NewHandler(ledgerService)
	sessionHandler := sessiondelivery.NewHandler(sessionService)

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()

	server.Use(middleware.RequestLogger(logger))
	server.Use(gin.Recovery())

	server.POST("/users", userHandler.Create)
	server.POST("/users/login", userHandler.Login)
	server.POST("/sessions", sessionHandler.RenewAccessToken)

	authRoutes := server.Group("/").Use(middleware.AuthMiddleware(sessionService.TokenMaker))

	authRoutes.POST("/accounts", accountHandler.Create)
	authRoutes.GET("/accounts/:id", accountHandler.Get)
	authRoutes.GET("/accounts", accountHandler.List)
	authRoutes.GET("/accounts/:id/entries", accountHandler.ListEntries)

	authRoutes.POST("/deposits", ledgerHandler.Deposit)
	authRoutes.POST("/payments", ledgerHandler.Pay)
	authRoutes.POST("/transfers", ledgerHandler.Transfer)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("currency", currencypkg.ValidCurrency)
		if err != nil {
			return nil, errors.New("cannot register currency validator")
		}
	}

	return server, nil
}
