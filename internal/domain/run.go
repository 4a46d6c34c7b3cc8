package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PrincipalType represents the type of entity that can initiate runs.
// This supports both human users and automated service principals.
type PrincipalType string

const (
	// PrincipalUser represents human users who initiate runs.
	PrincipalUser PrincipalType = "user"

	// PrincipalService represents automated services or systems.
	PrincipalService PrincipalType = "service"
)

// Principal represents an entity (user or service) that can request runs.
type Principal struct {
	// Type indicates whether this is a user or service principal.
	Type PrincipalType `json:"type" validate:"required,oneof=user service"`

	// ID uniquely identifies the principal.
	// For users: email address, username, or user ID
	// For services: service name, URN, or service account identifier
	ID string `json:"id" validate:"required,min=1"`
}

// String returns a human-readable representation of the principal.
func (p Principal) String() string { return fmt.Sprintf("%s:%s", p.Type, p.ID) }

// RunRequest initiates one production run: a single source text turned into
// one article per configured style. The request is the primary input to the
// run workflow and carries metadata for tracking and auditing.
type RunRequest struct {
	// ID uniquely identifies this run using UUID format.
	ID string `json:"id" validate:"required,uuid"`

	// SourceText is the source material, shared read-only by all variants.
	SourceText string `json:"source_text" validate:"required,min=10"`

	// SourceURL optionally identifies the original release for attribution.
	SourceURL string `json:"source_url,omitempty"`

	// StyleIDs is the ordered list of style profiles to produce, one variant
	// each. Order is preserved into the RunResult.
	StyleIDs []string `json:"style_ids" validate:"required,min=1,dive,min=1"`

	// RequestedBy identifies the user or service that initiated this run.
	RequestedBy Principal `json:"requested_by" validate:"required"`

	// RequestedAt records when this run request was created.
	RequestedAt time.Time `json:"requested_at" validate:"required"`
}

// NewRunRequest creates a run request with a generated ID and current timestamp.
//
// WARNING: Do not call this function inside workflow code as it uses
// nondeterministic operations (uuid.New() and time.Now()).
// Use MakeRunRequest instead for workflow-safe construction.
func NewRunRequest(sourceText, sourceURL string, styleIDs []string, requestedBy Principal) (*RunRequest, error) {
	return MakeRunRequest(uuid.New().String(), time.Now(), sourceText, sourceURL, styleIDs, requestedBy)
}

// MakeRunRequest creates a run request with the provided ID and timestamp.
// Safe inside workflow code: no nondeterministic values are generated here.
func MakeRunRequest(id string, requestedAt time.Time, sourceText, sourceURL string, styleIDs []string, requestedBy Principal) (*RunRequest, error) {
	req := &RunRequest{
		ID:          id,
		SourceText:  sourceText,
		SourceURL:   sourceURL,
		StyleIDs:    cloneStringSlice(styleIDs),
		RequestedBy: requestedBy,
		RequestedAt: requestedAt,
	}

	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return req, nil
}

// Validate checks if the run request meets all requirements.
func (r *RunRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	return nil
}

// RunInput is the workflow input for one run: the request plus the resolved
// style profiles in request order and the engine configuration. Styles are
// resolved by the launcher before the workflow starts so an unknown style
// identifier fails the run before any variant work begins.
type RunInput struct {
	Request RunRequest     `json:"request" validate:"required"`
	Styles  []StyleProfile `json:"styles" validate:"required,min=1"`
	Config  EngineConfig   `json:"config" validate:"required"`
}

// Validate checks the input and the request/profile pairing: one resolved
// profile per requested style ID, in the same order.
func (in *RunInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return err
	}
	if err := in.Request.Validate(); err != nil {
		return err
	}
	if len(in.Styles) != len(in.Request.StyleIDs) {
		return fmt.Errorf("%w: %d styles resolved for %d requested", ErrInvalidRequest, len(in.Styles), len(in.Request.StyleIDs))
	}
	for i := range in.Styles {
		if in.Styles[i].ID != in.Request.StyleIDs[i] {
			return fmt.Errorf("%w: style %q resolved at position of %q", ErrInvalidRequest, in.Styles[i].ID, in.Request.StyleIDs[i])
		}
	}
	return nil
}

// VariantInput is the child workflow input for one variant pipeline.
type VariantInput struct {
	RunID      string       `json:"run_id" validate:"required,uuid"`
	SourceText string       `json:"source_text" validate:"required,min=1"`
	SourceURL  string       `json:"source_url,omitempty"`
	Style      StyleProfile `json:"style" validate:"required"`
	Config     EngineConfig `json:"config" validate:"required"`
}

// Validate checks if the variant input meets all requirements.
func (in *VariantInput) Validate() error { return validate.Struct(in) }
