package extract

import (
	"regexp"
	"strings"

	"factory-status-backend/internal/model"
	"factory-status-backend/internal/normalize"
)

var (
	orderCodeRe    = regexp.MustCompile(`(?i)\b(ORD[A-Za-z0-9]+)\b`)
	orderKeywordRe = regexp.MustCompile(`(?i)\bORDER\s+([A-Za-z0-9]+)\b`)
	etaValueRe     = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9\- ]*`)
)

var orderLabels = []string{"CUSTOMER", "STAGE", "PRIORITY", "QUANTITY", "QTY", "ETA", "MATERIALS", "STATUS", "ASSIGNED"}

// OrderUpdate holds the fields found in an order message. Nil fields were
// not mentioned in the text.
type OrderUpdate struct {
	OrderCode    string  `json:"order_code"`
	CustomerName *string `json:"customer_name,omitempty"`
	Stage        *string `json:"stage,omitempty"`
	Priority     *string `json:"priority,omitempty"`
	Quantity     *int    `json:"quantity,omitempty"`
	Materials    *string `json:"materials,omitempty"`
	ETA          *string `json:"eta,omitempty"`
	Status       *string `json:"status,omitempty"`
	AssignedTo   *string `json:"assigned_to,omitempty"`
}

// orderCode finds the order's business key. A direct ORD token wins; failing
// that, the token after the word ORDER is prefixed with ORD as needed.
func orderCode(text string) (string, bool) {
	for _, m := range orderCodeRe.FindAllStringSubmatch(text, -1) {
		// The keyword ORDER itself matches the ORD+alphanumeric shape and
		// must not be mistaken for a code.
		tok := strings.ToUpper(m[1])
		if tok == "ORDER" {
			continue
		}
		return tok, true
	}
	if m := orderKeywordRe.FindStringSubmatch(text); m != nil {
		code := strings.ToUpper(m[1])
		if !strings.HasPrefix(code, "ORD") {
			code = "ORD" + code
		}
		return code, true
	}
	return "", false
}

// Order extracts a partial order update from raw text. The order code is
// the only mandatory field; extraction fails without it.
func Order(text string) (*OrderUpdate, error) {
	code, ok := orderCode(text)
	if !ok {
		return nil, &MissingKeyError{Entity: "order", Field: "order code"}
	}

	upd := &OrderUpdate{OrderCode: code}

	if customer, ok := captureUntil(text, "CUSTOMER", orderLabels); ok {
		upd.CustomerName = strPtr(customer)
	}
	if word, ok := captureWord(text, "STAGE"); ok {
		upd.Stage = strPtr(normalize.OrderStage(word))
	}
	if word, ok := captureWord(text, "PRIORITY"); ok {
		if p, match := normalize.Closed(word, model.PriorityValues()); match {
			upd.Priority = strPtr(p)
		}
	}
	if n, ok := captureInt(text, "(?:QUANTITY|QTY)"); ok {
		upd.Quantity = intPtr(n)
	}
	if raw, ok := captureUntil(text, "ETA", orderLabels); ok {
		if eta := strings.TrimSpace(etaValueRe.FindString(raw)); eta != "" {
			upd.ETA = strPtr(eta)
		}
	}
	if materials, ok := captureUntil(text, "MATERIALS", orderLabels); ok {
		upd.Materials = strPtr(materials)
	}
	if word, ok := captureWord(text, "STATUS"); ok {
		if s, match := normalize.Closed(word, model.OrderStatusValues()); match {
			upd.Status = strPtr(s)
		}
	}
	if assigned, ok := captureUntil(text, "ASSIGNED", orderLabels); ok {
		upd.AssignedTo = strPtr(assigned)
	}

	return upd, nil
}
