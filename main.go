package main

import (
	"github.com/SundayYogurt/approval_service/config"
	"github.com/SundayYogurt/approval_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
