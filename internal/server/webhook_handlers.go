package server

import (
	"errors"
	"log/slog"

	"inkwell/internal/models"
	"inkwell/internal/webhook"

	"github.com/gofiber/fiber/v2"
)

// HandleClerkWebhook verifies and applies an identity-provider event. The
// signature covers the raw request body, so the body is never parsed before
// verification succeeds.
func (s *Server) HandleClerkWebhook(c *fiber.Ctx) error {
	if s.verifier == nil {
		return models.RespondWithAppError(c,
			models.NewInternalError(errWebhooksNotConfigured))
	}

	headers := map[string]string{
		webhook.HeaderID:        c.Get(webhook.HeaderID),
		webhook.HeaderTimestamp: c.Get(webhook.HeaderTimestamp),
		webhook.HeaderSignature: c.Get(webhook.HeaderSignature),
	}

	evt, err := s.verifier.Verify(c.Body(), headers)
	if err != nil {
		var verr *webhook.VerificationError
		if errors.As(err, &verr) {
			slog.Warn("webhook rejected", "reason", verr.Reason)
			return models.RespondWithAppError(c,
				models.NewValidationError("Webhook verification failed"))
		}
		return models.RespondWithAppError(c, err)
	}

	if err := s.webhookService.Apply(c.UserContext(), evt); err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Webhook received"})
}
