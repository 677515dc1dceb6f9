package cli

import (
	"fmt"
	"net"

	"github.com/julianstephens/fitcoach/internal/config"
	"github.com/julianstephens/fitcoach/internal/logger"
	"github.com/julianstephens/fitcoach/internal/server"
)

type ServeCmd struct {
	Port string `help:"Port to listen on. Defaults to PORT or 3001."`
	Host string `help:"Interface to bind; all interfaces when empty."`
}

func (c *ServeCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	if cfg == nil {
		cfg = config.Load()
	}
	port := cfg.Port
	if c.Port != "" {
		port = c.Port
	}

	if cfg.IsProduction() && len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		logger.Warn("ALLOWED_ORIGINS is unset in production; accepting requests from any origin")
	}
	logger.Info("Starting server", "store", ctx.Store.GetConfigPath(), "env", cfg.Environment)

	srv := server.New(ctx.Manager(), cfg.AllowedOrigins)
	if err := srv.ListenAndServe(ctx.Ctx(), net.JoinHostPort(c.Host, port)); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	return nil
}
