package main

import (
	"github.com/Zackmartin238/HyFlipper/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
