package roles

import (
	"strings"

	"github.com/grimkeeper/grimkeeper/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_classifier.go github.com/grimkeeper/grimkeeper/internal/roles Classifier

// Classifier determines an occupant's game role.
type Classifier interface {
	Classify(occupant models.Occupant) models.Role
}

// Nickname prefixes used to mark roles. A "[BRB] " marker may precede any of
// them and is stripped before matching.
const (
	PrefixStoryteller   = "(ST) "
	PrefixCoStoryteller = "(Co-ST) "
	PrefixSpectator     = "!"
	PrefixBRB           = "[BRB] "
)

// PrefixClassifier classifies occupants by their nickname prefix.
type PrefixClassifier struct{}

// NewPrefixClassifier creates a prefix-based role classifier.
func NewPrefixClassifier() *PrefixClassifier {
	return &PrefixClassifier{}
}

// CleanName strips the BRB marker and any role prefix from a display name,
// leaving the bare name.
func CleanName(displayName string) string {
	name := strings.TrimPrefix(displayName, PrefixBRB)
	name = strings.TrimPrefix(name, PrefixStoryteller)
	name = strings.TrimPrefix(name, PrefixCoStoryteller)
	name = strings.TrimPrefix(name, PrefixSpectator)
	return name
}

// Classify maps a display name to a role. Anyone without a recognized prefix
// is a player.
func (c *PrefixClassifier) Classify(occupant models.Occupant) models.Role {
	name := strings.TrimPrefix(occupant.DisplayName, PrefixBRB)

	switch {
	case strings.HasPrefix(name, PrefixStoryteller):
		return models.RoleStoryteller
	case strings.HasPrefix(name, PrefixCoStoryteller):
		return models.RoleCoStoryteller
	case strings.HasPrefix(name, PrefixSpectator):
		return models.RoleSpectator
	default:
		return models.RolePlayer
	}
}
