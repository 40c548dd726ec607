package main

import (
	"log"

	"github.com/RoySegal1/Calander-V1/internal/cli"
)

func main() {
	if err := cli.New().Execute(); err != nil {
		log.Fatalf("命令执行失败: %v", err)
	}
}
