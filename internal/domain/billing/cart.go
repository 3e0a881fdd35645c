// Package billing composes a cart into bill totals.
//
// Amounts are carried as decimals. Per-line and overall discounts are
// percentages in [0, 100].
package billing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ErrEmptyCart is returned when a cart without lines is finalized.
var ErrEmptyCart = errors.New("billing: cart is empty")

// InputError reports a rejected cart input.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("billing: %s %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &InputError{Field: field, Reason: reason}
}

// Item is what the cashier adds: a product snapshot plus quantity and discount.
type Item struct {
	Name      string
	Quantity  float64
	UnitPrice float64
	Discount  float64
}

// Line is an item with its computed totals.
type Line struct {
	Item
	Total decimal.Decimal
	Final decimal.Decimal
}

// LineTotal is quantity × unit price.
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice)
}

// ApplyDiscount takes pct percent off amount.
func ApplyDiscount(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(hundred.Sub(pct)).Div(hundred)
}

// DiscountFromTotal derives the overall discount that turns subtotal into
// entered. A zero subtotal yields a zero discount.
func DiscountFromTotal(subtotal, entered decimal.Decimal) decimal.Decimal {
	if subtotal.IsZero() {
		return decimal.Zero
	}
	return subtotal.Sub(entered).Div(subtotal).Mul(hundred)
}

func checkPercent(field string, pct float64) error {
	if pct < 0 || pct > 100 {
		return invalid(field, "must be between 0 and 100")
	}
	return nil
}

// Cart is the in-progress bill. The zero value is not usable; call NewCart.
type Cart struct {
	lines           []Line
	overallDiscount decimal.Decimal
}

func NewCart() *Cart {
	return &Cart{overallDiscount: decimal.Zero}
}

// Add appends a line after validating it.
func (c *Cart) Add(item Item) error {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return invalid("name", "is required")
	}
	if item.Quantity <= 0 {
		return invalid("quantity", "must be greater than 0")
	}
	if item.UnitPrice < 0 {
		return invalid("unit_price", "must not be negative")
	}
	if err := checkPercent("discount", item.Discount); err != nil {
		return err
	}

	total := LineTotal(decimal.NewFromFloat(item.Quantity), decimal.NewFromFloat(item.UnitPrice))
	c.lines = append(c.lines, Line{
		Item:  item,
		Total: total,
		Final: ApplyDiscount(total, decimal.NewFromFloat(item.Discount)),
	})
	return nil
}

// Remove drops the line at index.
func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.lines) {
		return invalid("index", "is out of range")
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return nil
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Subtotal is the sum of the discounted line totals.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.Final)
	}
	return sum
}

// SetOverallDiscount sets the discount applied to the subtotal.
func (c *Cart) SetOverallDiscount(pct float64) error {
	if err := checkPercent("overall_discount", pct); err != nil {
		return err
	}
	c.overallDiscount = decimal.NewFromFloat(pct)
	return nil
}

// SetGrandTotal back-computes the overall discount from a typed grand total.
// The discount keeps full precision so GrandTotal returns the entered value.
func (c *Cart) SetGrandTotal(total float64) error {
	entered := decimal.NewFromFloat(total)
	if entered.IsNegative() {
		return invalid("grand_total", "must not be negative")
	}
	subtotal := c.Subtotal()
	if subtotal.IsZero() {
		c.overallDiscount = decimal.Zero
		return nil
	}
	if entered.GreaterThan(subtotal) {
		return invalid("grand_total", "must not exceed the subtotal")
	}
	c.overallDiscount = DiscountFromTotal(subtotal, entered)
	return nil
}

// OverallDiscount is the current overall discount percentage.
func (c *Cart) OverallDiscount() decimal.Decimal {
	return c.overallDiscount
}

// GrandTotal is the subtotal after the overall discount.
func (c *Cart) GrandTotal() decimal.Decimal {
	return ApplyDiscount(c.Subtotal(), c.overallDiscount)
}

// Validate is the check run before a cart becomes a bill.
func (c *Cart) Validate() error {
	if len(c.lines) == 0 {
		return ErrEmptyCart
	}
	return nil
}

// Totals is a cart summary in display precision.
type Totals struct {
	Subtotal        float64 `json:"subtotal"`
	OverallDiscount float64 `json:"overall_discount"`
	// DisplayDiscount is OverallDiscount rounded to 2 decimals.
	DisplayDiscount float64 `json:"display_discount"`
	DiscountAmount  float64 `json:"discount_amount"`
	GrandTotal      float64 `json:"grand_total"`
}

func (c *Cart) Totals() Totals {
	subtotal := c.Subtotal()
	grand := c.GrandTotal()
	return Totals{
		Subtotal:        subtotal.Round(2).InexactFloat64(),
		OverallDiscount: c.overallDiscount.InexactFloat64(),
		DisplayDiscount: c.overallDiscount.Round(2).InexactFloat64(),
		DiscountAmount:  subtotal.Sub(grand).Round(2).InexactFloat64(),
		GrandTotal:      grand.Round(2).InexactFloat64(),
	}
}
