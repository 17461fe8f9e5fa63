package store

import (
	"strings"
	"sync"
)

// CartLine は(商品, 数量)の1行。productIdはカート内で一意。
type CartLine struct {
	ProductID     int64
	Name          string
	UnitPrice     int64
	ImageURLs     []string
	StockQuantity int64
	Quantity      int64
}

// CartItem は追加時に渡す商品情報。
type CartItem struct {
	ProductID     int64
	Name          string
	UnitPrice     int64
	ImageURLs     []string
	StockQuantity int64
}

type DeliveryMethod string

const (
	DeliveryNone   DeliveryMethod = ""
	DeliveryPickup DeliveryMethod = "pickup"
	DeliveryShip   DeliveryMethod = "delivery"
)

// Cart is the in-memory cart. It is not server-backed: add-to-cart works
// without authentication and contents live for the process lifetime.
//
// Every mutation replaces the whole line slice instead of editing in
// place, so observers holding the previous snapshot can detect a change
// by comparing slice identity.
type Cart struct {
	Notifier

	mu             sync.Mutex
	lines          []CartLine
	deliveryMethod DeliveryMethod
}

func NewCart() *Cart {
	return &Cart{}
}

// Add puts one unit of item into the cart. An existing line is incremented
// by 1, clamped to stock: the clamp returns ErrStockExceeded and leaves
// state untouched.
func (c *Cart) Add(item CartItem) error {
	c.mu.Lock()

	for i, line := range c.lines {
		if line.ProductID != item.ProductID {
			continue
		}
		if line.Quantity >= line.StockQuantity {
			c.mu.Unlock()
			return ErrStockExceeded
		}
		next := c.copyLines()
		next[i].Quantity++
		c.lines = next
		c.mu.Unlock()
		c.notify()
		return nil
	}

	if item.StockQuantity < 1 {
		c.mu.Unlock()
		return ErrStockExceeded
	}

	next := c.copyLines()
	next = append(next, CartLine{
		ProductID:     item.ProductID,
		Name:          item.Name,
		UnitPrice:     item.UnitPrice,
		ImageURLs:     item.ImageURLs,
		StockQuantity: item.StockQuantity,
		Quantity:      1,
	})
	c.lines = next
	c.mu.Unlock()
	c.notify()
	return nil
}

// Increase adds 1 to the line's quantity, bounded by stock.
// An absent id is a no-op.
func (c *Cart) Increase(productID int64) error {
	c.mu.Lock()
	for i, line := range c.lines {
		if line.ProductID != productID {
			continue
		}
		if line.Quantity >= line.StockQuantity {
			c.mu.Unlock()
			return ErrStockExceeded
		}
		next := c.copyLines()
		next[i].Quantity++
		c.lines = next
		c.mu.Unlock()
		c.notify()
		return nil
	}
	c.mu.Unlock()
	return nil
}

// Decrease subtracts 1; a line driven below 1 is removed, not kept at zero.
func (c *Cart) Decrease(productID int64) {
	c.mu.Lock()
	for i, line := range c.lines {
		if line.ProductID != productID {
			continue
		}
		if line.Quantity <= 1 {
			c.lines = c.linesWithout(i)
		} else {
			next := c.copyLines()
			next[i].Quantity--
			c.lines = next
		}
		c.mu.Unlock()
		c.notify()
		return
	}
	c.mu.Unlock()
}

// Remove drops the line. Removing an absent id is a no-op.
func (c *Cart) Remove(productID int64) {
	c.mu.Lock()
	for i, line := range c.lines {
		if line.ProductID == productID {
			c.lines = c.linesWithout(i)
			c.mu.Unlock()
			c.notify()
			return
		}
	}
	c.mu.Unlock()
}

func (c *Cart) Clear() {
	c.mu.Lock()
	changed := len(c.lines) > 0
	c.lines = nil
	c.mu.Unlock()
	if changed {
		c.notify()
	}
}

// Quantity returns 0 for absent lines.
func (c *Cart) Quantity(productID int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, line := range c.lines {
		if line.ProductID == productID {
			return line.Quantity
		}
	}
	return 0
}

// Lines returns the current snapshot. The slice is never mutated after
// publication, so callers may hold it and compare identity across calls.
func (c *Cart) Lines() []CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lines
}

// Subtotal is recomputed from the lines on every call.
func (c *Cart) Subtotal() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var sum int64
	for _, line := range c.lines {
		sum += line.UnitPrice * line.Quantity
	}
	return sum
}

// TotalQuantity is the unit count across all lines (header badge).
func (c *Cart) TotalQuantity() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var sum int64
	for _, line := range c.lines {
		sum += line.Quantity
	}
	return sum
}

func (c *Cart) SetDeliveryMethod(m DeliveryMethod) {
	c.mu.Lock()
	if c.deliveryMethod == m {
		c.mu.Unlock()
		return
	}
	c.deliveryMethod = m
	c.mu.Unlock()
	c.notify()
}

func (c *Cart) DeliveryMethod() DeliveryMethod {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deliveryMethod
}

// DeliveryFee は配送方法と届け先から送料を出す。pickupは常に0、
// 配送先住所が未選択なら暫定の500。
func (c *Cart) DeliveryFee(region, city string, hasAddress bool) int64 {
	c.mu.Lock()
	method := c.deliveryMethod
	c.mu.Unlock()

	switch method {
	case DeliveryShip:
		if !hasAddress {
			return 500
		}
		return deliveryFeeFor(region, city)
	default:
		return 0
	}
}

// Total = subtotal + delivery fee。
func (c *Cart) Total(region, city string, hasAddress bool) int64 {
	return c.Subtotal() + c.DeliveryFee(region, city, hasAddress)
}

func (c *Cart) copyLines() []CartLine {
	next := make([]CartLine, len(c.lines))
	copy(next, c.lines)
	return next
}

func (c *Cart) linesWithout(i int) []CartLine {
	next := make([]CartLine, 0, len(c.lines)-1)
	next = append(next, c.lines[:i]...)
	next = append(next, c.lines[i+1:]...)
	return next
}

// 地域×都市の送料表。未知の地域/都市はdefaultに落ちる。
var deliveryFees = map[string]map[string]int64{
	"Nairobi": {
		"Nairobi":  200,
		"Kiambu":   300,
		"Machakos": 400,
		"Kajiado":  350,
		"default":  500,
	},
	"Central": {
		"Nyeri":     600,
		"Murang'a":  550,
		"Kirinyaga": 700,
		"Nyandarua": 800,
		"Kiambu":    300,
		"default":   750,
	},
	"Coast": {
		"Mombasa": 800,
		"Kilifi":  1000,
		"Kwale":   1200,
		"Malindi": 1100,
		"default": 1300,
	},
	"Western": {
		"Kisumu":   900,
		"Kakamega": 1000,
		"Bungoma":  1100,
		"Vihiga":   950,
		"default":  1200,
	},
	"Rift Valley": {
		"Nakuru":   500,
		"Eldoret":  800,
		"Naivasha": 400,
		"Kericho":  700,
		"default":  900,
	},
	"Eastern": {
		"Machakos": 400,
		"Kitui":    600,
		"Makueni":  650,
		"Embu":     550,
		"default":  700,
	},
	"Nyanza": {
		"Kisumu":   900,
		"Homa Bay": 1000,
		"Migori":   1100,
		"Siaya":    950,
		"default":  1200,
	},
	"North Eastern": {
		"Garissa": 1500,
		"Wajir":   1800,
		"Mandera": 2000,
		"default": 1700,
	},
	"default": {
		"default": 1000,
	},
}

func deliveryFeeFor(region, city string) int64 {
	regionFees, ok := deliveryFees[strings.TrimSpace(region)]
	if !ok {
		regionFees = deliveryFees["default"]
	}
	if fee, ok := regionFees[strings.TrimSpace(city)]; ok {
		return fee
	}
	if fee, ok := regionFees["default"]; ok {
		return fee
	}
	return 1000
}
