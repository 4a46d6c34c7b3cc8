package transport

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
)

// canonicalPayload is the stable projection of a Request used for hashing.
// Field order is fixed by the struct so identical requests hash identically
// across processes.
type canonicalPayload struct {
	Operation    string `json:"operation"`
	StyleID      string `json:"style_id"`
	Round        int    `json:"round"`
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	SystemPrompt string `json:"system_prompt"`
	UserPrompt   string `json:"user_prompt"`
	MaxTokens    int    `json:"max_tokens"`
	Temperature  string `json:"temperature"`
}

// IdempotencyKey returns the request's idempotency key, deriving one from
// the canonical payload hash when none was supplied.
func IdempotencyKey(req *Request) string {
	if req.IdempotencyKey != "" {
		return req.IdempotencyKey
	}
	return HashRequest(req)
}

// HashRequest computes a deterministic SHA-256 digest over the request
// fields that affect the completion. Requests differing only in timeout or
// trace metadata share a hash.
func HashRequest(req *Request) string {
	temp := ""
	if req.Temperature != nil {
		temp = strconv.FormatFloat(*req.Temperature, 'f', -1, 64)
	}
	payload := canonicalPayload{
		Operation:    string(req.Operation),
		StyleID:      req.StyleID,
		Round:        req.Round,
		Provider:     req.Provider,
		Model:        req.Model,
		SystemPrompt: req.SystemPrompt,
		UserPrompt:   req.UserPrompt,
		MaxTokens:    req.MaxTokens,
		Temperature:  temp,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		// Marshal of a flat struct cannot fail; keep a stable fallback anyway.
		data = []byte(string(req.Operation) + ":" + req.Provider + ":" + req.Model + ":" + req.UserPrompt)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
