package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/repository"
)

// ClientHandler covers the admin-facing guest registry: searching,
// creating walk-in profiles and deleting profiles that have no active
// reservations.
type ClientHandler struct {
	Clients *repository.ClientRepo
}

func NewClientHandler(cl *repository.ClientRepo) *ClientHandler {
	return &ClientHandler{Clients: cl}
}

type createClientReq struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	TaxID     string `json:"tax_id" validate:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email" validate:"omitempty,email"`
}

// Search handles GET /v1/clients?q=term. An empty term lists everyone.
func (h *ClientHandler) Search(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Clients.Search(ctx, c.QueryParam("q"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "client search failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"clients": out})
}

// Create registers a walk-in guest with no linked account. Guests who
// sign up themselves get their profile through registration instead.
func (h *ClientHandler) Create(c echo.Context) error {
	var req createClientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cl := model.Client{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		TaxID:     strings.TrimSpace(req.TaxID),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
	}
	if err := h.Clients.Create(ctx, &cl); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "tax id already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create client failed"})
	}
	return c.JSON(http.StatusCreated, cl)
}

// Delete removes a client profile. The repository applies the guard (no
// PENDING or CONFIRMED reservations) inside the DELETE itself, so a
// booking racing this call cannot orphan itself; the losing delete
// simply matches nothing and answers 409.
func (h *ClientHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid client id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	removed, err := h.Clients.Delete(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete client failed"})
	}
	if !removed {
		return c.JSON(http.StatusConflict, echo.Map{"error": "client not found or has active reservations"})
	}
	return c.NoContent(http.StatusNoContent)
}
