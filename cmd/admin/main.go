// Command admin creates accounts directly against the configured store.
// It reads the same configuration as the server.
//
//	admin -email root@example.com -name Root [-role admin] [-d DSN]
package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/authkeeper/internal/admin"
	"github.com/dmitrijs2005/authkeeper/internal/server"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context) error {
	opts, err := admin.ParseOptions(os.Args[1:])
	if err != nil {
		return err
	}

	app, err := server.NewApp(ctx, config.LoadConfig())
	if err != nil {
		return err
	}
	defer app.Close()

	_, err = admin.Provision(ctx, app.Users(), opts, os.Stdin, os.Stdout)
	return err
}
