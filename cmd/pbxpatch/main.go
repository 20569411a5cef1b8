// Command pbxpatch registers newly added source and resource files in an
// Xcode project descriptor without launching Xcode.
package main

import (
	"github.com/joho/godotenv"

	"pbxpatch/internal/cli"
)

func main() {
	// Optional .env for PBXPATCH_CONFIG / PBXPATCH_ROOT overrides.
	_ = godotenv.Load()
	cli.Execute()
}
