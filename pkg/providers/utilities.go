package providers

import (
	"context"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/ankr/toolhub/pkg/catalog"
	"github.com/ankr/toolhub/pkg/toolexecutor"
)

// Utilities provides small self-contained helper tools
type Utilities struct {
	now func() time.Time
}

// NewUtilities creates the utilities provider
func NewUtilities() *Utilities {
	return &Utilities{now: time.Now}
}

func (u *Utilities) Name() string            { return "utilities" }
func (u *Utilities) RequiresResources() bool { return false }

// Setup declares parameters in both list and mapping form
func (u *Utilities) Setup(ctx context.Context) ([]catalog.RawTool, error) {
	return []catalog.RawTool{
		{
			Name:        "echo",
			Description: "Return the given message unchanged",
			Category:    "utilities",
			Parameters: json.RawMessage(`[
				{"name": "message", "type": "string", "description": "Text to echo", "required": true}
			]`),
			Handler: toolexecutor.HandlerFunc(u.echo),
		},
		{
			Name:        "time_now",
			Description: "Current time in an IANA timezone",
			Parameters: json.RawMessage(`{
				"timezone": {"type": "string", "description": "IANA timezone name", "default": "Asia/Kolkata"},
				"format": {"type": "string", "description": "Go time layout", "default": "2006-01-02T15:04:05Z07:00"}
			}`),
			Handler: toolexecutor.HandlerFunc(u.timeNow),
		},
		{
			Name:        "uuid_generate",
			Description: "Generate random UUIDs",
			Parameters: json.RawMessage(`[
				{"name": "count", "type": "int", "description": "How many to generate", "default": 1}
			]`),
			Handler: toolexecutor.HandlerFunc(u.uuidGenerate),
		},
		{
			Name:        "short_id_generate",
			Description: "Generate a URL-safe short identifier",
			Parameters: json.RawMessage(`{
				"size": {"type": "integer", "description": "Identifier length", "default": 21}
			}`),
			Handler: toolexecutor.HandlerFunc(u.shortID),
		},
		{
			Name:        "text_hash",
			Description: "Hash text with sha256, sha1 or md5",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"text": {"type": "string", "description": "Text to hash"},
					"algorithm": {"type": "string", "description": "sha256, sha1 or md5", "default": "sha256"}
				},
				"required": ["text"]
			}`),
			Handler: toolexecutor.HandlerFunc(u.textHash),
		},
	}, nil
}

func (u *Utilities) echo(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	return map[string]interface{}{"message": stringParam(params, "message")}, nil
}

func (u *Utilities) timeNow(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	tz := stringParam(params, "timezone")
	if tz == "" {
		tz = "Asia/Kolkata"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", tz, err)
	}

	layout := stringParam(params, "format")
	if layout == "" {
		layout = time.RFC3339
	}

	now := u.now().In(loc)
	return map[string]interface{}{
		"timezone": tz,
		"time":     now.Format(layout),
		"unix":     now.Unix(),
	}, nil
}

func (u *Utilities) uuidGenerate(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	count := intParam(params, "count", 1)
	if count < 1 || count > 100 {
		return nil, fmt.Errorf("count must be between 1 and 100, got %d", count)
	}
	ids := make([]string, count)
	for i := range ids {
		ids[i] = uuid.New().String()
	}
	return map[string]interface{}{"uuids": ids}, nil
}

func (u *Utilities) shortID(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	size := intParam(params, "size", 21)
	if size < 4 || size > 64 {
		return nil, fmt.Errorf("size must be between 4 and 64, got %d", size)
	}
	id, err := gonanoid.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate id: %w", err)
	}
	return map[string]interface{}{"id": id}, nil
}

func (u *Utilities) textHash(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	text, ok := params["text"].(string)
	if !ok {
		return nil, fmt.Errorf("text is required")
	}

	algorithm := stringParam(params, "algorithm")
	if algorithm == "" {
		algorithm = "sha256"
	}

	var h hash.Hash
	switch algorithm {
	case "sha256":
		h = sha256.New()
	case "sha1":
		h = sha1.New()
	case "md5":
		h = md5.New()
	default:
		return nil, fmt.Errorf("unsupported algorithm %q", algorithm)
	}
	h.Write([]byte(text))

	return map[string]interface{}{
		"algorithm": algorithm,
		"hash":      hex.EncodeToString(h.Sum(nil)),
	}, nil
}
