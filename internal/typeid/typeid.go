package typeid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.jetify.com/typeid/v2"
)

const (
	PrefixUser    = "user"
	PrefixPlan    = "plan"
	PrefixElement = "elem"
	PrefixRack    = "rack"
	PrefixImage   = "img"
)

// tempPrefix marks client-generated placeholder ids. Items carrying one have
// never been persisted; the server assigns a real typeid on first save.
const tempPrefix = "tmp_"

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewUserID() string    { return New(PrefixUser) }
func NewPlanID() string    { return New(PrefixPlan) }
func NewElementID() string { return New(PrefixElement) }
func NewRackID() string    { return New(PrefixRack) }
func NewImageID() string   { return New(PrefixImage) }

// NewTempID returns a client-side placeholder id for a not-yet-persisted item.
func NewTempID() string {
	return tempPrefix + uuid.NewString()
}

// IsTemporary reports whether the id is a client-side placeholder.
func IsTemporary(id string) bool {
	return strings.HasPrefix(id, tempPrefix)
}

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}
