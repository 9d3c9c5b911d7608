package controllers

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/shihabsss1/portfolio/helpers"
	"github.com/shihabsss1/portfolio/tasks"
	"github.com/shihabsss1/portfolio/utils"
)

const (
	maxContactNameLength    int = 100
	maxContactMessageLength int = 5000
)

type contactInput struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

// PostContact queues the contact form message for delivery to the address
// published in the content document.
func (h *Handler) PostContact(c *fiber.Ctx) error {
	input := &contactInput{}
	if err := c.BodyParser(input); err != nil {
		slog.Error(fmt.Sprintf("Error parsing input data: %v", err))

		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": []string{"The message data is invalid."},
		})
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Message = strings.TrimSpace(input.Message)

	errs := fiber.Map{}

	if len(input.Name) < 1 {
		errs = utils.AddError(errs, "name", "Please, enter your name.")
	} else if utf8.RuneCountInString(input.Name) > maxContactNameLength {
		errs = utils.AddError(errs, "name", "Your name is longer than the length allowed.")
	}

	if !utils.IsValidEmail(input.Email) {
		errs = utils.AddError(errs, "email", "Please, enter a valid email address.")
	}

	if len(input.Message) < 1 {
		errs = utils.AddError(errs, "message", "Please, enter a message.")
	} else if utf8.RuneCountInString(input.Message) > maxContactMessageLength {
		errs = utils.AddError(errs, "message", fmt.Sprintf("The message must be at most %d characters long.", maxContactMessageLength))
	}

	if len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"error": errs,
		})
	}

	to := h.Content.Current(c.UserContext()).Contact.Email

	if h.Queue == nil || !utils.IsValidEmail(to) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(&fiber.Map{
			"error": []string{"The contact form is not available."},
		})
	}

	if err := tasks.NewEmail(
		c.UserContext(),
		h.Queue,
		helpers.EmailOpts{
			Subject:      "New contact message",
			TemplateName: "contact_message",
			ToList:       []string{to},
			ReplyTo:      input.Email,
		},
		map[string]interface{}{
			"Name":    input.Name,
			"Email":   input.Email,
			"Message": input.Message,
		},
	); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(&fiber.Map{
			"error": []string{"Could not send your message. Please try again."},
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(&fiber.Map{
		"message": []string{"Your message has been sent."},
	})
}
