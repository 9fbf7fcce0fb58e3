package main

import "photoshare-backend/internal/app"

func main() {
	app.Run()
}
