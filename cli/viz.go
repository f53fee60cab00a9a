// ABOUTME: Visualization CLI commands
// ABOUTME: Handles graph generation for the pipeline, contacts and the whole CRM
package cli

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/harperreed/crmview/pages"
	"github.com/harperreed/crmview/viz"
)

// graphGenerator loads every collection once and wraps it for rendering.
func graphGenerator(app *App) (*viz.GraphGenerator, error) {
	cols, err := load(app, pages.Graph(), struct{}{})
	if err != nil {
		return nil, err
	}
	return viz.NewGraphGenerator(cols, app.Labels), nil
}

func writeGraph(app *App, output, dot string) error {
	if output != "" {
		if err := os.WriteFile(output, []byte(dot), 0644); err != nil {
			return fmt.Errorf("failed to write graph: %w", err)
		}
		app.printf("✓ Graph written to %s\n", output)
		return nil
	}
	app.printf("%s\n", dot)
	return nil
}

// VizGraphPipelineCommand generates a deal pipeline graph.
func VizGraphPipelineCommand(app *App, args []string) error {
	fs := newFlagSet(app, "viz graph pipeline")
	output := fs.String("output", "", "Output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	generator, err := graphGenerator(app)
	if err != nil {
		return err
	}
	dot, err := generator.GeneratePipelineGraph()
	if err != nil {
		return err
	}
	return writeGraph(app, *output, dot)
}

// VizGraphContactsCommand generates a contact network graph, optionally
// for a single contact.
func VizGraphContactsCommand(app *App, args []string) error {
	fs := newFlagSet(app, "viz graph contacts")
	output := fs.String("output", "", "Output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var contactID *uuid.UUID
	if fs.NArg() > 0 {
		id, err := idArg(fs, "contact")
		if err != nil {
			return err
		}
		contactID = &id
	}

	generator, err := graphGenerator(app)
	if err != nil {
		return err
	}
	dot, err := generator.GenerateContactGraph(contactID)
	if err != nil {
		return err
	}
	return writeGraph(app, *output, dot)
}

// VizGraphAllCommand generates a complete graph with all entities.
func VizGraphAllCommand(app *App, args []string) error {
	fs := newFlagSet(app, "viz graph all")
	output := fs.String("output", "", "Output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	generator, err := graphGenerator(app)
	if err != nil {
		return err
	}
	dot, err := generator.GenerateCompleteGraph()
	if err != nil {
		return err
	}
	return writeGraph(app, *output, dot)
}
