package main

import (
	"github.com/thryce/site/pkg/cli"
	"github.com/thryce/site/pkg/embedded"
)

func main() {
	embedded.Init(assetsFS)
	cli.Execute()
}
