// cmd/main.go
package main

import (
	"vidtube-api/app"
)

// @title           VidTube API
// @version         1.0
// @description     User-account and media-profile backend for a video-sharing application.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
