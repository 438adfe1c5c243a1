package main

import (
	"cryptofolio/internal/app"

	"github.com/sirupsen/logrus"
)

// @title Cryptofolio API
// @version 1.0
// @description Exchange portfolio tracker: wallet balances, imported fills and unrealized profit of telegram users.
// @BasePath /api
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("Application stopped")
	}
}
