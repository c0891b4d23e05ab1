package beanutil_test

import (
	"errors"
	"time"
)

type Address struct {
	Street string
	City   string
	Lines  []string
}

type Customer struct {
	ID        string `bean:"id,readonly"`
	Name      string
	Age       int
	Home      Address
	Work      *Address
	Addresses []Address
	Tags      map[string]string
	Scores    []int
	Joined    time.Time
}

func newCustomer() *Customer {
	return &Customer{
		ID:        "c-1",
		Name:      "Ann",
		Age:       30,
		Home:      Address{Street: "Main St 1", City: "Bergen"},
		Addresses: []Address{{City: "Oslo"}, {City: "Tromsø"}},
		Scores:    []int{1, 2, 3},
	}
}

type Counter struct {
	Count int `bean:"count,readonly"`
	Name  string
}

var errLedgerClosed = errors.New("ledger closed")

// Ledger exposes a getter that always fails.
type Ledger struct {
	Name string
}

func (l *Ledger) GetBalance() (int, error) { return 0, errLedgerClosed }
