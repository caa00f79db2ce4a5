package main

import (
	"github.com/txlens/base-tx-analyzer/internal/cli"
)

func main() {
	cli.Execute()
}
