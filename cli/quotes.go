// ABOUTME: Quote CLI commands
// ABOUTME: Create, update and delete quotes with billing and shipping addresses
package cli

import (
	"fmt"

	"github.com/harperreed/crmview/models"
)

type addressFlags struct {
	nameTo, street, city, state, country, pincode *string
}

func (a addressFlags) address() models.Address {
	return models.Address{
		NameTo:  *a.nameTo,
		Street:  *a.street,
		City:    *a.city,
		State:   *a.state,
		Country: *a.country,
		Pincode: *a.pincode,
	}
}

func (a addressFlags) empty() bool {
	return a.address() == models.Address{}
}

// AddQuoteCommand creates a quote.
func AddQuoteCommand(app *App, args []string) error {
	fs := newFlagSet(app, "add-quote")
	name := fs.String("name", "", "Quote name (required)")
	status := fs.String("status", string(models.QuoteDraft), "Status (Draft, Sent, Accepted, Rejected)")
	company := fs.String("company", "", "Company ID")
	contact := fs.String("contact", "", "Contact ID")
	deal := fs.String("deal", "", "Deal ID")
	delivery := fs.String("delivery", "", "Delivery method")
	expires := fs.String("expires", "", "Expiry date (YYYY-MM-DD)")
	tags := fs.String("tags", "", "Comma-separated tags")
	billing := addressFlags{
		nameTo:  fs.String("bill-to", "", "Billing recipient"),
		street:  fs.String("bill-street", "", "Billing street"),
		city:    fs.String("bill-city", "", "Billing city"),
		state:   fs.String("bill-state", "", "Billing state"),
		country: fs.String("bill-country", "", "Billing country"),
		pincode: fs.String("bill-pincode", "", "Billing postal code"),
	}
	shipping := addressFlags{
		nameTo:  fs.String("ship-to", "", "Shipping recipient"),
		street:  fs.String("ship-street", "", "Shipping street"),
		city:    fs.String("ship-city", "", "Shipping city"),
		state:   fs.String("ship-state", "", "Shipping state"),
		country: fs.String("ship-country", "", "Shipping country"),
		pincode: fs.String("ship-pincode", "", "Shipping postal code"),
	}
	sameAsBilling := fs.Bool("ship-same", false, "Ship to the billing address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	quote := models.Quote{
		Name:           *name,
		Status:         models.QuoteStatus(*status),
		DeliveryMethod: *delivery,
		Billing:        billing.address(),
		Shipping:       shipping.address(),
		Tags:           splitTags(*tags),
	}
	if *sameAsBilling && shipping.empty() {
		quote.Shipping = quote.Billing
	}

	var err error
	if quote.CompanyID, err = optionalID(*company, "company"); err != nil {
		return err
	}
	if quote.ContactID, err = optionalID(*contact, "contact"); err != nil {
		return err
	}
	if quote.DealID, err = optionalID(*deal, "deal"); err != nil {
		return err
	}
	if *expires != "" {
		t, err := parseDate(*expires)
		if err != nil {
			return err
		}
		quote.ExpiresOn = &t
	}

	quote, err = app.Repos.Quotes.Create(app.ctx(), quote)
	if err != nil {
		return fmt.Errorf("failed to create quote: %w", err)
	}

	app.printf("✓ Quote created: %s (ID: %s)\n", quote.Name, quote.ID)
	app.printf("  Status: %s\n", quote.Status)
	return nil
}

// UpdateQuoteCommand updates a quote's name, status or expiry.
func UpdateQuoteCommand(app *App, args []string) error {
	fs := newFlagSet(app, "update-quote")
	name := fs.String("name", "", "Quote name")
	status := fs.String("status", "", "Status (Draft, Sent, Accepted, Rejected)")
	delivery := fs.String("delivery", "", "Delivery method")
	expires := fs.String("expires", "", "Expiry date (YYYY-MM-DD, or 'none' to clear)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := idArg(fs, "quote")
	if err != nil {
		return err
	}

	set := setFlags(fs)
	var patch models.QuotePatch
	if set["name"] {
		patch.Name = name
	}
	if set["status"] {
		s := models.QuoteStatus(*status)
		patch.Status = &s
	}
	if set["delivery"] {
		patch.DeliveryMethod = delivery
	}
	if set["expires"] {
		if *expires == "none" {
			patch.ClearExpiry = true
		} else {
			t, err := parseDate(*expires)
			if err != nil {
				return err
			}
			patch.ExpiresOn = &t
		}
	}

	quote, err := app.Repos.Quotes.Update(app.ctx(), id, patch)
	if err != nil {
		return fmt.Errorf("failed to update quote: %w", err)
	}

	app.printf("✓ Quote updated: %s (ID: %s)\n", quote.Name, quote.ID)
	return nil
}

// DeleteQuoteCommand deletes a quote.
func DeleteQuoteCommand(app *App, args []string) error {
	fs := newFlagSet(app, "delete-quote")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := idArg(fs, "quote")
	if err != nil {
		return err
	}

	if _, err := app.Repos.Quotes.Delete(app.ctx(), id); err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}

	app.printf("✓ Deleted quote: %s\n", id)
	return nil
}
