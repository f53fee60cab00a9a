// ABOUTME: Company MCP tool handlers
// ABOUTME: Implements add_company and find_companies tools
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/crmview/filter"
	"github.com/harperreed/crmview/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type CompanyHandlers struct {
	deps Deps
}

func NewCompanyHandlers(deps Deps) *CompanyHandlers {
	return &CompanyHandlers{deps: deps}
}

type AddCompanyInput struct {
	Name     string `json:"name" jsonschema:"Company name (required)"`
	Domain   string `json:"domain,omitempty" jsonschema:"Company website domain"`
	Industry string `json:"industry,omitempty" jsonschema:"Industry sector"`
	Notes    string `json:"notes,omitempty" jsonschema:"Notes about the company"`
}

func (h *CompanyHandlers) AddCompany(ctx context.Context, _ *mcp.CallToolRequest, input AddCompanyInput) (*mcp.CallToolResult, CompanyOutput, error) {
	company, err := h.deps.Repos.Companies.Create(ctx, models.Company{
		Name:     input.Name,
		Domain:   input.Domain,
		Industry: input.Industry,
		Notes:    input.Notes,
	})
	if err != nil {
		return nil, CompanyOutput{}, fmt.Errorf("failed to create company: %w", err)
	}
	return nil, companyToOutput(company), nil
}

type FindCompaniesInput struct {
	Query string `json:"query,omitempty" jsonschema:"Search term matched against name and domain"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum results (default 10)"`
}

type FindCompaniesOutput struct {
	Companies []CompanyOutput `json:"companies"`
}

func (h *CompanyHandlers) FindCompanies(ctx context.Context, _ *mcp.CallToolRequest, input FindCompaniesInput) (*mcp.CallToolResult, FindCompaniesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	companies, err := h.deps.Repos.Companies.All(ctx)
	if err != nil {
		return nil, FindCompaniesOutput{}, fmt.Errorf("failed to find companies: %w", err)
	}

	matches := filter.Apply(companies, filter.Text(input.Query,
		func(c models.Company) string { return c.Name },
		func(c models.Company) string { return c.Domain },
	))

	out := FindCompaniesOutput{Companies: []CompanyOutput{}}
	for i, c := range matches {
		if i >= limit {
			break
		}
		out.Companies = append(out.Companies, companyToOutput(c))
	}
	return nil, out, nil
}
