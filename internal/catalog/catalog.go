// Package catalog holds the immutable set of role templates a match
// deals from.
package catalog

import (
	"fmt"

	"github.com/KirkDiggler/mafia/internal/models"
)

// Block is the half of the table a participant is dealt from
type Block string

const (
	// BlockMafia deals mafia-faction roles
	BlockMafia Block = "mafia"

	// BlockTown deals town and neutral roles
	BlockTown Block = "town"
)

// Catalog is an immutable, ordered set of role templates
type Catalog struct {
	roles []*models.RoleTemplate
	byID  map[string]*models.RoleTemplate
}

// New validates the templates and builds a catalog from private copies
func New(templates []*models.RoleTemplate) (*Catalog, error) {
	if len(templates) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		roles: make([]*models.RoleTemplate, 0, len(templates)),
		byID:  make(map[string]*models.RoleTemplate, len(templates)),
	}

	for _, t := range templates {
		if t == nil || t.ID == "" {
			return nil, ErrEmptyRoleID
		}
		if _, ok := c.byID[t.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRoleID, t.ID)
		}
		if !t.Faction.IsValid() {
			return nil, fmt.Errorf("%w: %s has %q", ErrInvalidFaction, t.ID, t.Faction)
		}
		for _, ability := range t.Abilities {
			if !ability.IsValid() || ability == models.ActionKindVote || ability == models.ActionKindNone {
				return nil, fmt.Errorf("%w: %s has %q", ErrInvalidAbility, t.ID, ability)
			}
		}

		role := copyRole(t)
		if role.Weight == 0 {
			role.Weight = 1
		}
		if role.Weight < 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidWeight, t.ID)
		}

		c.roles = append(c.roles, role)
		c.byID[role.ID] = role
	}

	return c, nil
}

// MustDefault returns the default catalog; the default table is static so
// a failure here is a programming error.
func MustDefault() *Catalog {
	c, err := New(DefaultRoles())
	if err != nil {
		panic(err)
	}
	return c
}

// Role returns a copy of the role with the given id
func (c *Catalog) Role(id string) (*models.RoleTemplate, error) {
	role, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoleNotFound, id)
	}
	return copyRole(role), nil
}

// Faction returns the faction of the role with the given id
func (c *Catalog) Faction(id string) (models.Faction, bool) {
	role, ok := c.byID[id]
	if !ok {
		return "", false
	}
	return role.Faction, true
}

// Priority returns the resolution priority of the role with the given id
func (c *Catalog) Priority(id string) (int, bool) {
	role, ok := c.byID[id]
	if !ok {
		return 0, false
	}
	return role.Priority, true
}

// Can reports whether the role with the given id may submit the kind
func (c *Catalog) Can(id string, kind models.ActionKind) bool {
	return c.byID[id].Can(kind)
}

// Roles returns copies of every template in catalog order
func (c *Catalog) Roles() []*models.RoleTemplate {
	out := make([]*models.RoleTemplate, 0, len(c.roles))
	for _, role := range c.roles {
		out = append(out, copyRole(role))
	}
	return out
}

// Eligible returns the roles a participant of the given level can be
// dealt from the given block, in catalog order
func (c *Catalog) Eligible(block Block, level int) []*models.RoleTemplate {
	var out []*models.RoleTemplate
	for _, role := range c.roles {
		if role.Special || role.UnlockLevel > level {
			continue
		}
		inMafia := role.Faction == models.FactionMafia
		if (block == BlockMafia) != inMafia {
			continue
		}
		out = append(out, copyRole(role))
	}
	return out
}

func copyRole(r *models.RoleTemplate) *models.RoleTemplate {
	out := *r
	out.Abilities = append([]models.ActionKind(nil), r.Abilities...)
	return &out
}
