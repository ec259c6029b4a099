package main

import (
	"github.com/thecurioussailor/telegramAPI/internal/app"
	"go.uber.org/fx"
)

func main() {
	fx.New(app.CreateApp()).Run()
}
