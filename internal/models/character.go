package models

// Character is the only resource served by the API.
type Character struct {
	Name      string   `json:"name"`
	ID        string   `json:"id"`
	Abilities []string `json:"abilities"`
	Bio       string   `json:"bio"`
}

// CharacterRequest is the body accepted by create and update. The id is
// always assigned by the server, so it is not part of the request shape.
type CharacterRequest struct {
	Name      string   `json:"name"`
	Abilities []string `json:"abilities"`
	Bio       string   `json:"bio"`
}

// CharacterFields holds the mutable part of a Character.
type CharacterFields struct {
	Name      string
	Abilities []string
	Bio       string
}

// Fields converts a request into the mutable fields of a Character
func (r CharacterRequest) Fields() CharacterFields {
	return CharacterFields{
		Name:      r.Name,
		Abilities: r.Abilities,
		Bio:       r.Bio,
	}
}

// Clone returns a copy that shares no memory with c.
func (c Character) Clone() Character {
	out := c
	out.Abilities = cloneAbilities(c.Abilities)
	return out
}

// Apply overwrites the mutable fields. The id is left untouched.
func (c *Character) Apply(f CharacterFields) {
	c.Name = f.Name
	c.Abilities = cloneAbilities(f.Abilities)
	c.Bio = f.Bio
}

// abilities always encode as an array, never null
func cloneAbilities(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
