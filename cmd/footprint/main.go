package main

import (
	"os"

	"npmfootprint/internal/app"
)

func main() {
	application := app.New()
	os.Exit(application.Run())
}
