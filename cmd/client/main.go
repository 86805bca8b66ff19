package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/redesocial/internal/client/cli"
	"github.com/dmitrijs2005/redesocial/internal/client/config"
	"github.com/dmitrijs2005/redesocial/internal/flagx"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()

	args := flagx.Positionals(os.Args[1:], config.Flags)

	app := cli.NewApp(cfg)
	os.Exit(app.Run(ctx, args))
}
