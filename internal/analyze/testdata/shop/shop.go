// Package shop is loaded by the analyze tests.
package shop

import (
	"math/big"
	"time"

	"github.com/google/uuid"
)

type Status string

type Audit struct {
	CreatedAt time.Time
	CreatedBy string
	Note      string
}

type Address struct {
	Street string
	City   string
}

type Line struct {
	SKU      string `bean:"sku"`
	Quantity int
	Price    *big.Rat
}

type Order struct {
	Audit

	ID       uuid.UUID `bean:"id,readonly"`
	Status   Status
	Note     string
	Lines    []Line
	Ship     *Address
	Attrs    map[string]any
	Tags     [3]string
	Secret   string `bean:"-"`
	Events   chan string
	internal int

	labels map[string]string
	total  int64
}

func (o *Order) GetTotal() int64 { return o.total }

func (o *Order) IsPaid() bool { return o.total > 0 }

func (o *Order) GetLabel(key string) string { return o.labels[key] }

func (o *Order) SetLabel(key, value string) {
	if o.labels == nil {
		o.labels = make(map[string]string)
	}

	o.labels[key] = value
}

func (o *Order) SetPassword(string) error { return nil }

type Page[T any] struct {
	Items []T
}
