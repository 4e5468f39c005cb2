package internal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Purger is implemented by stores that can drop everything they hold.
type Purger interface {
	Purge(ctx context.Context) error
}

// ChargeStore records successful charges and aggregates them for the
// payments-summary endpoint.
type ChargeStore interface {
	Add(ctx context.Context, customer CustomerData, charge Charge) error
	Summary(ctx context.Context, from, to string) (SummaryResponse, error)
	Purge(ctx context.Context) error
}

type PaymentHandler struct {
	service *PaymentService
	repo    ChargeStore
	log     TransactionLog
}

func NewPaymentHandler(service *PaymentService, repo ChargeStore, log TransactionLog) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		repo:    repo,
		log:     log,
	}
}

func (h *PaymentHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/payments", h.Process)
	app.Get("/payments-summary", h.Summary)
	app.Post("/purge-payments", h.Purge)
}

func (h *PaymentHandler) Process(c *fiber.Ctx) error {
	var req ProcessRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "malformed request body"})
	}

	charge, err := h.service.ProcessTransaction(c.UserContext(), req.Customer, req.Payment)

	var validationErr *ValidationError
	var providerErr *ProviderError
	switch {
	case errors.As(err, &validationErr):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": validationErr.Error()})
	case errors.As(err, &providerErr):
		return c.Status(http.StatusPaymentRequired).JSON(fiber.Map{"error": providerErr.Error()})
	case err != nil:
		slog.Error("failed to process the transaction", "err", err)
		return c.SendStatus(http.StatusInternalServerError)
	}

	if h.repo != nil {
		if err := h.repo.Add(c.UserContext(), req.Customer, charge); err != nil {
			slog.Error("failed to record the charge", "err", err, "chargeId", charge.ID)
		}
	}

	return c.Status(http.StatusCreated).JSON(charge)
}

func (h *PaymentHandler) Summary(c *fiber.Ctx) error {
	if h.repo == nil {
		return c.JSON(SummaryResponse{})
	}

	summary, err := h.repo.Summary(c.UserContext(), c.Query("from"), c.Query("to"))
	if err != nil {
		return c.SendStatus(http.StatusInternalServerError)
	}

	return c.JSON(summary)
}

func (h *PaymentHandler) Purge(c *fiber.Ctx) error {
	if h.repo != nil {
		if err := h.repo.Purge(c.UserContext()); err != nil {
			return c.SendStatus(http.StatusInternalServerError)
		}
	}

	if p, ok := h.log.(Purger); ok {
		if err := p.Purge(c.UserContext()); err != nil {
			return c.SendStatus(http.StatusInternalServerError)
		}
	}

	return c.SendStatus(http.StatusOK)
}
