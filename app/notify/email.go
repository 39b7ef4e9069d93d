// Package notify composes quote and service request emails. Delivery is
// delegated to a Mailer; the only one shipped writes messages to the log.
package notify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

const (
	TypeQuoteGeneral = "quote-general"
	TypeQuoteProduct = "quote-product"
	TypeServices     = "services"
)

var ErrUnsupportedType = errors.New("unsupported email type")

// Text is a form value sent either as a JSON string or a JSON number.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

// Request is the payload of a send-email call.
type Request struct {
	Type              string           `json:"type"`
	ClientName        string           `json:"clientName"`
	ClientEmail       string           `json:"clientEmail"`
	ClientPhone       string           `json:"clientPhone"`
	Company           string           `json:"company"`
	Message           string           `json:"message"`
	To                string           `json:"to"`
	Quantity          Text             `json:"quantity,omitempty"`
	ProductName       string           `json:"productName,omitempty"`
	ProductCode       string           `json:"productCode,omitempty"`
	ProductPrice      *decimal.Decimal `json:"productPrice,omitempty"`
	ContactPreference string           `json:"contactPreference,omitempty"`
}

type Message struct {
	To          string `json:"to"`
	Subject     string `json:"subject"`
	HTMLContent string `json:"htmlContent"`
}

// quantity parses the leading integer of the quantity field, defaulting to 1.
func (r Request) quantity() int64 {
	s := strings.TrimSpace(string(r.Quantity))
	end := 0
	for end < len(s) && (unicode.IsDigit(rune(s[end])) || (end == 0 && (s[0] == '-' || s[0] == '+'))) {
		end++
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 1
	}
	return n
}

const messageBlock = `            <p><strong>Mensaje:</strong></p>
            <p style="background-color: #f5f5f5; padding: 10px; border-radius: 5px;">%s</p>
`

func contactBlock(r Request) string {
	return fmt.Sprintf(`            <p><strong>Nombre:</strong> %s</p>
            <p><strong>Email:</strong> %s</p>
            <p><strong>Teléfono:</strong> %s</p>
            <p><strong>Empresa:</strong> %s</p>
`, r.ClientName, r.ClientEmail, r.ClientPhone, r.Company)
}

// Compose builds the subject and HTML body for r. Client supplied values are
// embedded as given. When r.To is empty the message goes to defaultTo.
func Compose(r Request, defaultTo string) (Message, error) {
	var b strings.Builder
	var subject string

	switch r.Type {
	case TypeQuoteGeneral:
		subject = "Solicitud de Cotización General - Agencia 1"
		b.WriteString("\n          <h2>Nueva Solicitud de Cotización General</h2>\n")
		b.WriteString("          <div style=\"font-family: Arial, sans-serif; line-height: 1.6;\">\n")
		b.WriteString(contactBlock(r))
		fmt.Fprintf(&b, "            <p><strong>Cantidad:</strong> %s</p>\n", r.Quantity)
		fmt.Fprintf(&b, messageBlock, r.Message)

	case TypeQuoteProduct:
		price := decimal.Zero
		if r.ProductPrice != nil {
			price = *r.ProductPrice
		}
		total := price.Mul(decimal.NewFromInt(r.quantity()))

		subject = "Solicitud de Cotización - " + r.ProductName
		b.WriteString("\n          <h2>Nueva Solicitud de Cotización de Producto</h2>\n")
		b.WriteString("          <div style=\"font-family: Arial, sans-serif; line-height: 1.6;\">\n")
		b.WriteString(contactBlock(r))
		b.WriteString("\n            <div style=\"background-color: #e8f4fd; padding: 15px; border-radius: 8px; margin: 15px 0;\">\n")
		b.WriteString("              <h3 style=\"margin: 0 0 10px 0; color: #1976d2;\">Información del Producto</h3>\n")
		fmt.Fprintf(&b, "              <p><strong>Producto:</strong> %s</p>\n", r.ProductName)
		fmt.Fprintf(&b, "              <p><strong>Código:</strong> %s</p>\n", r.ProductCode)
		fmt.Fprintf(&b, "              <p><strong>Precio Unitario:</strong> $%s</p>\n", price.StringFixed(2))
		fmt.Fprintf(&b, "              <p><strong>Cantidad:</strong> %s</p>\n", r.Quantity)
		fmt.Fprintf(&b, "              <p><strong>Total Estimado:</strong> $%s</p>\n", total.StringFixed(2))
		b.WriteString("            </div>\n\n")
		fmt.Fprintf(&b, messageBlock, r.Message)

	case TypeServices:
		subject = "Solicitud de Información de Servicios - Agencia 1"
		b.WriteString("\n          <h2>Nueva Solicitud de Información de Servicios</h2>\n")
		b.WriteString("          <div style=\"font-family: Arial, sans-serif; line-height: 1.6;\">\n")
		b.WriteString(contactBlock(r))
		fmt.Fprintf(&b, "            <p><strong>Preferencia de Contacto:</strong> %s</p>\n", r.ContactPreference)
		fmt.Fprintf(&b, messageBlock, r.Message)

	default:
		return Message{}, fmt.Errorf("%w: %q", ErrUnsupportedType, r.Type)
	}
	b.WriteString("          </div>\n        ")

	to := strings.TrimSpace(r.To)
	if to == "" {
		to = defaultTo
	}
	return Message{To: to, Subject: subject, HTMLContent: b.String()}, nil
}
