package editor

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shihabsss1/portfolio/models"
	"github.com/shihabsss1/portfolio/utils"
)

const changelogDateLayout string = time.DateOnly

// ValidationError rejects an add action. Errors is keyed by field name.
type ValidationError struct {
	Message string
	Errors  fiber.Map
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(entry string, errs fiber.Map) error {
	if len(errs) < 1 {
		return nil
	}

	return &ValidationError{
		Message: fmt.Sprintf("Please fill in all required %s fields.", entry),
		Errors:  errs,
	}
}

func required(errs fiber.Map, field string, value string) {
	if len(strings.TrimSpace(value)) < 1 {
		utils.AddError(errs, field, fmt.Sprintf("The %s field is required.", field))
	}
}

func validateExperience(x models.Experience) error {
	errs := fiber.Map{}

	required(errs, "company", x.Company)
	required(errs, "position", x.Position)
	required(errs, "duration", x.Duration)

	return newValidationError("experience", errs)
}

func validateProject(p models.Project) error {
	errs := fiber.Map{}

	required(errs, "title", p.Title)
	required(errs, "description", p.Description)

	return newValidationError("project", errs)
}

func validateSocial(s models.Social) error {
	errs := fiber.Map{}

	required(errs, "platform", s.Platform)
	required(errs, "link", s.Link)

	return newValidationError("social link", errs)
}

func validateChangelogItem(item models.ChangelogItem) error {
	errs := fiber.Map{}

	required(errs, "version", item.Version)
	required(errs, "title", item.Title)
	required(errs, "date", item.Date)

	if len(strings.TrimSpace(item.Date)) > 0 {
		if _, err := time.Parse(changelogDateLayout, strings.TrimSpace(item.Date)); err != nil {
			utils.AddError(errs, "date", "The date must use the YYYY-MM-DD format.")
		}
	}

	if len(utils.CleanStringList(item.Changes)) < 1 {
		utils.AddError(errs, "changes", "At least one change is required.")
	}

	return newValidationError("changelog", errs)
}

func validateValue(field string, value string) error {
	errs := fiber.Map{}
	required(errs, field, value)

	return newValidationError(field, errs)
}

// ValidatePatch runs the add-action checks against every list entry carried
// by p and returns the first failure.
func ValidatePatch(p models.ContentPatch) error {
	if p.Experiences != nil {
		for _, x := range *p.Experiences {
			if err := validateExperience(x); err != nil {
				return err
			}
		}
	}

	if p.Projects != nil {
		for _, pr := range *p.Projects {
			if err := validateProject(pr); err != nil {
				return err
			}
		}
	}

	if p.Socials != nil {
		for _, s := range *p.Socials {
			if err := validateSocial(s); err != nil {
				return err
			}
		}
	}

	if p.Changelog != nil {
		for _, item := range *p.Changelog {
			if err := validateChangelogItem(item); err != nil {
				return err
			}
		}
	}

	return nil
}
