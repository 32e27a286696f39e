package main

import (
	"github.com/quickbite/oms/internal/app"
	"github.com/quickbite/oms/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
