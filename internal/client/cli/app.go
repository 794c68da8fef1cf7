// Package cli implements the interactive gophtasks client: a small REPL
// over the HTTP API with register/login and task commands.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmitrijs2005/gophtasks/internal/client/client"
	"github.com/dmitrijs2005/gophtasks/internal/client/config"
)

type App struct {
	config    *config.Config
	api       *client.Client
	userEmail string
	reader    *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	api, err := client.NewClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}

	return &App{config: c, api: api, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) isLoggedIn() bool {
	return a.api.IsAuthenticated()
}

func (a *App) getStatus() string {
	if a.userEmail != "" {
		return "(" + a.userEmail + ")"
	}
	return ""
}

func (a *App) Run(ctx context.Context) {
	printlnFn("gophtasks CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}
