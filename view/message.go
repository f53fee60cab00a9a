// ABOUTME: Translation of typed failures into user-visible messages
// ABOUTME: Stores and repositories return errors; presentation layers describe them
package view

import (
	"errors"

	"github.com/harperreed/crmview/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Describe turns err into a message for the action named by fallback,
// e.g. "Failed to update deal".
func Describe(err error, fallback string) string {
	var nf *models.NotFoundError
	if errors.As(err, &nf) {
		return title(nf.Entity) + " not found"
	}

	var ve *models.ValidationError
	if errors.As(err, &ve) {
		msg := "Validation failed"
		for i, f := range ve.Fields {
			if i == 0 {
				msg += ": "
			} else {
				msg += ", "
			}
			msg += f.Field + " " + f.Reason
		}
		return msg
	}

	return fallback
}

func title(s string) string {
	return cases.Title(language.English).String(s)
}
