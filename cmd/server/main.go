package main

import (
	"os"

	"nutricare/backend/internal/app"
)

// @title        NutriCare Assistant API
// @version      1.0
// @description  Conversational nutrition assistant: threads, transcripts, and streaming exchanges.
// @BasePath     /api
func main() {
	os.Exit(app.Run())
}
