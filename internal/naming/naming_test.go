package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecapitalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Name", "name"},
		{"OrderID", "orderID"},
		{"URL", "URL"},
		{"X", "x"},
		{"x", "x"},
		{"", ""},
		{"Élan", "élan"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decapitalize(tt.input))
		})
	}
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Name", Capitalize("name"))
	assert.Equal(t, "OrderID", Capitalize("orderID"))
	assert.Equal(t, "", Capitalize(""))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"OrderID", "orderid"},
		{"order_id", "orderid"},
		{"order-id", "orderid"},
		{"orderId", "orderid"},
		{"XMLParser", "xmlparser"},
		{"PRICE_CENTS", "pricecents"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"OrderID", []string{"Order", "ID"}},
		{"customerName", []string{"customer", "Name"}},
		{"XMLParser", []string{"XML", "Parser"}},
		{"getHTTPResponse", []string{"get", "HTTP", "Response"}},
		{"order_id", []string{"order", "id"}},
		{"ABcD", []string{"A", "Bc", "D"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Tokenize(tt.input))
		})
	}
}
