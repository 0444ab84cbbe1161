package main

import "github.com/joho/godotenv"

func main() {
	// Local runs keep NASS_API_KEY and friends in a .env file; absence is fine.
	_ = godotenv.Load()
	Execute()
}
