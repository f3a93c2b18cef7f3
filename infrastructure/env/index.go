package env

import (
	"github.com/joho/godotenv"
)

// LoadEnv pulls a local .env file into the process environment. Missing
// files are fine; deployed environments configure variables directly.
func LoadEnv() {
	godotenv.Load()
}
