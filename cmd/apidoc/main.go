package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vitalvas/apidoc/cli"
	"github.com/vitalvas/apidoc/examples/petstore"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := petstore.NewStore(
		petstore.Category{ID: 1, Name: "Dogs"},
		petstore.Category{ID: 2, Name: "Cats"},
	)

	if err := cli.NewRootCmd(petstore.Catalog(store)).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, cli.ErrUsage) {
			return 2
		}
		return 1
	}
	return 0
}
