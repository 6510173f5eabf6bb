package main

import (
	"io"
	"os"

	"github.com/envelope-zero/budget-engine/internal/config"
	"github.com/envelope-zero/budget-engine/internal/controllers"
	"github.com/envelope-zero/budget-engine/internal/database"
	"github.com/envelope-zero/budget-engine/internal/router"
	"github.com/envelope-zero/budget-engine/pkg/engine"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

//	@title		Budget Engine
//	@version	0.0.0
//	@BasePath	/api
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	gin.SetMode(cfg.GinMode)

	output := io.Writer(os.Stdout)
	if cfg.LogHuman {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	// Connect to the database. Postgres is used if it is configured, SQLite otherwise.
	db, err := database.Database(cfg.DBPath, cfg.Postgres)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Migrates the schema
	e, err := engine.New(db, engine.Options{Currency: cfg.Currency})
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	opts := router.Options{AllowOrigins: cfg.AllowOrigins, EnablePprof: cfg.EnablePprof}
	r, teardown, err := router.Config(cfg.URL, opts)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer teardown()

	router.AttachRoutes(controllers.Controller{DB: db, Engine: e}, r.Group(cfg.URL.Path), opts)

	log.Info().Str("address", cfg.Address()).Str("currency", cfg.Currency).Msg("Starting server")
	if err := r.Run(cfg.Address()); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
