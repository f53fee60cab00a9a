// ABOUTME: Company CLI commands
// ABOUTME: Human-friendly commands for managing companies
package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/harperreed/crmview/filter"
	"github.com/harperreed/crmview/models"
)

// AddCompanyCommand adds a new company.
func AddCompanyCommand(app *App, args []string) error {
	fs := newFlagSet(app, "add-company")
	name := fs.String("name", "", "Company name (required)")
	domain := fs.String("domain", "", "Company domain (e.g., acme.com)")
	industry := fs.String("industry", "", "Industry")
	notes := fs.String("notes", "", "Notes about company")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	company, err := app.Repos.Companies.Create(app.ctx(), models.Company{
		Name:     *name,
		Domain:   *domain,
		Industry: *industry,
		Notes:    *notes,
	})
	if err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	app.printf("✓ Company created: %s (ID: %s)\n", company.Name, company.ID)
	if company.Domain != "" {
		app.printf("  Domain: %s\n", company.Domain)
	}
	if company.Industry != "" {
		app.printf("  Industry: %s\n", company.Industry)
	}
	return nil
}

// ListCompaniesCommand lists companies.
func ListCompaniesCommand(app *App, args []string) error {
	fs := newFlagSet(app, "list-companies")
	query := fs.String("query", "", "Search by name or domain")
	if err := fs.Parse(args); err != nil {
		return err
	}

	all, err := app.Repos.Companies.All(app.ctx())
	if err != nil {
		return fmt.Errorf("failed to find companies: %w", err)
	}

	companies := filter.Apply(all, filter.Text(*query,
		func(c models.Company) string { return c.Name },
		func(c models.Company) string { return c.Domain },
	))
	if len(companies) == 0 {
		app.printf("No companies found\n")
		return nil
	}

	w := tabwriter.NewWriter(app.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tDOMAIN\tINDUSTRY\tID")
	_, _ = fmt.Fprintln(w, "----\t------\t--------\t--")
	for _, company := range companies {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			company.Name, orDash(company.Domain), orDash(company.Industry), shortID(company.ID))
	}
	_ = w.Flush()

	app.printf("\nTotal: %d company(ies)\n", len(companies))
	return nil
}

// UpdateCompanyCommand updates the fields passed as flags.
func UpdateCompanyCommand(app *App, args []string) error {
	fs := newFlagSet(app, "update-company")
	name := fs.String("name", "", "Company name")
	domain := fs.String("domain", "", "Company domain")
	industry := fs.String("industry", "", "Industry")
	notes := fs.String("notes", "", "Notes about company")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := idArg(fs, "company")
	if err != nil {
		return err
	}

	set := setFlags(fs)
	var patch models.CompanyPatch
	if set["name"] {
		patch.Name = name
	}
	if set["domain"] {
		patch.Domain = domain
	}
	if set["industry"] {
		patch.Industry = industry
	}
	if set["notes"] {
		patch.Notes = notes
	}

	company, err := app.Repos.Companies.Update(app.ctx(), id, patch)
	if err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}

	app.printf("✓ Company updated: %s (ID: %s)\n", company.Name, company.ID)
	return nil
}

// DeleteCompanyCommand deletes a company.
func DeleteCompanyCommand(app *App, args []string) error {
	fs := newFlagSet(app, "delete-company")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := idArg(fs, "company")
	if err != nil {
		return err
	}

	company, err := app.Repos.Companies.Delete(app.ctx(), id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	app.printf("✓ Company deleted: %s (%s)\n", company.Name, id)
	return nil
}
