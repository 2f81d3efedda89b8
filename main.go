package main

import (
	"github.com/SundayYogurt/task_service/config"
	"github.com/SundayYogurt/task_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
