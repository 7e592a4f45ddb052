package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cedrulion/murika-farm/internal/core/domain"
	"github.com/cedrulion/murika-farm/internal/core/ports"
)

// ExpenseHandler handles expense tracking.
type ExpenseHandler struct {
	expenseService ports.ExpenseService
}

func NewExpenseHandler(expenseService ports.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

type expenseRequest struct {
	Title    string    `json:"title"    validate:"required"`
	Category string    `json:"category" validate:"required"`
	Amount   float64   `json:"amount"   validate:"required,gt=0"`
	Date     time.Time `json:"date"`
	Notes    string    `json:"notes"`
}

func (r expenseRequest) toInput() ports.ExpenseInput {
	return ports.ExpenseInput{
		Title:    r.Title,
		Category: r.Category,
		Amount:   r.Amount,
		Date:     r.Date,
		Notes:    r.Notes,
	}
}

// Create records an expense credited to the caller.
//
// @Summary      Record an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      expenseRequest  true  "Expense details; date defaults to now"
// @Success      201   {object}  domain.Expense
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/expenses [post]
func (h *ExpenseHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req expenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	expense, err := h.expenseService.Create(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, expense)
}

// List returns all expenses, most recent date first.
//
// @Summary      List expenses
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Expense
// @Router       /api/expenses [get]
func (h *ExpenseHandler) List(c echo.Context) error {
	expenses, err := h.expenseService.List(c.Request().Context())
	if err != nil {
		return err
	}
	if expenses == nil {
		expenses = []*domain.Expense{}
	}
	return c.JSON(http.StatusOK, expenses)
}

// Summary returns per-category totals, largest first.
//
// @Summary      Expense totals by category
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.CategoryTotal
// @Router       /api/expenses/summary [get]
func (h *ExpenseHandler) Summary(c echo.Context) error {
	totals, err := h.expenseService.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	if totals == nil {
		totals = []ports.CategoryTotal{}
	}
	return c.JSON(http.StatusOK, totals)
}

// Get returns one expense.
//
// @Summary      Get an expense
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Expense id"
// @Success      200  {object}  domain.Expense
// @Failure      404  {object}  errorResponse
// @Router       /api/expenses/{id} [get]
func (h *ExpenseHandler) Get(c echo.Context) error {
	expense, err := h.expenseService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, expense)
}

// Update replaces the writable fields of an expense.
//
// @Summary      Update an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Expense id"
// @Param        body  body      expenseRequest  true  "Expense details"
// @Success      200   {object}  domain.Expense
// @Failure      404   {object}  errorResponse
// @Router       /api/expenses/{id} [put]
func (h *ExpenseHandler) Update(c echo.Context) error {
	var req expenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	expense, err := h.expenseService.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, expense)
}

// Delete removes an expense.
//
// @Summary      Delete an expense
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Expense id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c echo.Context) error {
	if err := h.expenseService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "expense deleted"})
}
