package saleor

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// PaymentMethodCard is the only payment method the apps accept in the opaque
// event data today.
const PaymentMethodCard = "card"

// paymentIntentDataSchema rejects unknown payment methods and any extra
// fields smuggled into the opaque payload. Storefronts must not be able to
// pass arbitrary provider parameters through it.
const paymentIntentDataSchema = `{
	"type": "object",
	"properties": {
		"paymentIntent": {
			"type": "object",
			"properties": {
				"paymentMethod": {"type": "string", "enum": ["card"]}
			},
			"required": ["paymentMethod"],
			"additionalProperties": false
		}
	},
	"required": ["paymentIntent"],
	"additionalProperties": false
}`

var paymentIntentSchema = gojsonschema.NewStringLoader(paymentIntentDataSchema)

type paymentIntentData struct {
	PaymentIntent struct {
		PaymentMethod string `json:"paymentMethod"`
	} `json:"paymentIntent"`
}

// ParsePaymentMethodData extracts the selected payment method from the event's
// opaque data payload. An absent payload defaults to card. Any schema
// violation is the storefront's fault and must surface as a malformed request.
func ParsePaymentMethodData(data json.RawMessage) (string, error) {
	if len(data) == 0 || string(data) == "null" {
		return PaymentMethodCard, nil
	}

	result, err := gojsonschema.Validate(paymentIntentSchema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return "", fmt.Errorf("validating payment data: %w", err)
	}
	if !result.Valid() {
		return "", fmt.Errorf("invalid payment data: %s", result.Errors()[0].String())
	}

	var parsed paymentIntentData
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decoding payment data: %w", err)
	}

	return parsed.PaymentIntent.PaymentMethod, nil
}
