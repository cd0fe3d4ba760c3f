package plugin

import (
	"errors"

	"github.com/google/uuid"
)

// Info contains plugin metadata
type Info struct {
	ID       string // Unique plugin identifier (e.g., "com.example.myplugin")
	Name     string // Display name
	Version  string // Semantic version (e.g., "1.0.0")
	Vendor   string // Company/developer name
	Category string // Plugin category (e.g., "audio-effect", "instrument")
}

// uidNamespace scopes plugin UIDs so they never collide with other
// name-based UUIDs derived from the same string.
var uidNamespace = uuid.MustParse("6f1c5a7e-3d2b-4c8e-9a51-0b7d2e4f8c13")

// UID returns a stable 16-byte identifier derived from the string ID.
func (i Info) UID() [16]byte {
	return uuid.NewSHA1(uidNamespace, []byte(i.ID))
}

// ValidateUID reports whether the ID can produce a usable UID.
func (i Info) ValidateUID() error {
	if i.ID == "" {
		return errors.New("plugin ID is empty")
	}
	return nil
}
