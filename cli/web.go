// ABOUTME: Web UI subcommand
// ABOUTME: Serves the read-only page views over HTTP
package cli

import (
	"github.com/harperreed/crmview/web"
)

// WebCommand starts the web UI server.
func WebCommand(app *App, args []string) error {
	fs := newFlagSet(app, "web")
	port := fs.Int("port", 8080, "Port to listen on")
	if err := fs.Parse(args); err != nil {
		return err
	}

	server, err := web.NewServer(web.Options{
		Repos:    app.Repos,
		Labels:   app.Labels,
		Logger:   app.Logger,
		Now:      app.Now,
		PageSize: app.PageSize,
	})
	if err != nil {
		return err
	}
	return server.Start(*port)
}
