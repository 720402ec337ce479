package main

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"variantgo/internal/transport"
)

func main() {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Static("/", "static")

	registry := transport.NewRegistry()

	e.GET("/ws", transport.Handler(registry))
	e.POST("/game/new", transport.NewGameHandler(registry))
	e.GET("/game/:id", transport.GetGameHandler(registry))
	e.POST("/game/:id/move", transport.MoveHandler(registry))

	e.Logger.Fatal(e.Start(":8080"))
}
