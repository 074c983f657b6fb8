package main

import (
	"meetning-api/core/logger"
	"meetning-api/core/server"
)

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", "error", err)
	}
}
