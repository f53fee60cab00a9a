// ABOUTME: MCP server subcommand
// ABOUTME: Starts the MCP server for Claude Desktop integration
package cli

import (
	"context"

	"github.com/harperreed/crmview/handlers"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

// NewMCPServer registers every CRM tool, resource and prompt.
func NewMCPServer(app *App) *mcp.Server {
	deps := handlers.Deps{Repos: app.Repos, Labels: app.Labels, Logger: app.Logger, Now: app.Now}

	contactHandlers := handlers.NewContactHandlers(deps)
	companyHandlers := handlers.NewCompanyHandlers(deps)
	dealHandlers := handlers.NewDealHandlers(deps)
	taskHandlers := handlers.NewTaskHandlers(deps)
	activityHandlers := handlers.NewActivityHandlers(deps)
	viewHandlers := handlers.NewViewHandlers(deps, app.PageSize)
	vizHandlers := handlers.NewVizHandlers(deps)
	resourceHandlers := handlers.NewResourceHandlers(deps, app.PageSize)
	promptHandlers := handlers.NewPromptHandlers(deps)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "crmview",
		Version: Version,
	}, nil)

	// Contacts and companies
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_contact",
		Description: "Add a new contact to the CRM",
	}, contactHandlers.AddContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_contacts",
		Description: "Search for contacts by name, email, or company",
	}, contactHandlers.FindContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_contact",
		Description: "Get a contact with their deals and activities",
	}, contactHandlers.GetContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_contact",
		Description: "Update an existing contact's information",
	}, contactHandlers.UpdateContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_contact",
		Description: "Delete a contact; deals and activities that referenced it show as unknown",
	}, contactHandlers.DeleteContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_company",
		Description: "Add a new company to the CRM",
	}, companyHandlers.AddCompany)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_companies",
		Description: "Search for companies by name or domain",
	}, companyHandlers.FindCompanies)

	// Deals
	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_deal",
		Description: "Create a new deal for a contact",
	}, dealHandlers.CreateDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_deal",
		Description: "Update a deal's title, value, probability or expected close date",
	}, dealHandlers.UpdateDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "move_deal_stage",
		Description: "Move a deal to another pipeline stage",
	}, dealHandlers.MoveDealStage)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_deal",
		Description: "Delete a deal",
	}, dealHandlers.DeleteDeal)

	// Tasks and activities
	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_task",
		Description: "Add a task with a due date",
	}, taskHandlers.AddTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "toggle_task",
		Description: "Mark a task complete, or reopen a completed task",
	}, taskHandlers.ToggleTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task",
	}, taskHandlers.DeleteTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_activity",
		Description: "Log a call, email, meeting or note with a contact",
	}, activityHandlers.LogActivity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_activity",
		Description: "Delete an activity",
	}, activityHandlers.DeleteActivity)

	// Page views
	mcp.AddTool(server, &mcp.Tool{
		Name:        "view_dashboard",
		Description: "Pipeline totals, overdue tasks, upcoming tasks and recent activity",
	}, viewHandlers.ViewDashboard)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "view_pipeline",
		Description: "Deals grouped by stage with counts and values",
	}, viewHandlers.ViewPipeline)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "view_tasks",
		Description: "Tasks filtered by search, status and priority with due-date labels",
	}, viewHandlers.ViewTasks)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "view_activities",
		Description: "Activity timeline filtered by search, type and date window",
	}, viewHandlers.ViewActivities)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "view_quotes",
		Description: "One page of quotes with search and sorting",
	}, viewHandlers.ViewQuotes)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_graph",
		Description: "Generate a GraphViz graph of the pipeline, contacts or the whole CRM",
	}, vizHandlers.GenerateGraph)

	for _, r := range resourceHandlers.Resources() {
		server.AddResource(r, resourceHandlers.ReadResource)
	}
	server.AddResourceTemplate(resourceHandlers.ContactTemplate(), resourceHandlers.ReadResource)

	for _, p := range promptHandlers.Prompts() {
		server.AddPrompt(p, promptHandlers.GetPrompt)
	}

	return server
}

// MCPCommand starts the MCP server on stdio
func MCPCommand(app *App) error {
	app.Logger.Info("Starting CRM MCP Server", "version", Version)

	// Run server on stdio transport
	ctx := context.Background()
	return NewMCPServer(app).Run(ctx, &mcp.StdioTransport{})
}
