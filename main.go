package main

import (
	"os"

	"github.com/GoGuestbook/GoGuestbook/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
