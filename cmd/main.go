package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/vedant-kerulkar07/Hostel-Leave-Application/config"
	"github.com/vedant-kerulkar07/Hostel-Leave-Application/database"
	"github.com/vedant-kerulkar07/Hostel-Leave-Application/routes"
)

func main() {
	cfg := config.Load()

	// fail fast if the database is not up yet
	database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: true, // the SPA sends the session cookie
	}))

	routes.Register(e)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
