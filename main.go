package main

import (
	"faceclock.io/infrastructure"
	"faceclock.io/infrastructure/env"
)

func init() {
	env.LoadEnv()
}

func main() {
	infrastructure.StartServer()
}
