//go:build tinygo

package main

import (
	"dial/app"
	"dial/config"
	"dial/hal"
)

func main() {
	cfg := config.Default()
	if err := app.Run(hal.New(cfg.Button.HoldMs), cfg, 60); err != nil {
		println(err.Error())
	}
	select {}
}
