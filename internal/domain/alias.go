package domain

// Conflict records an alias that a later airport tried to claim after it was
// already registered to a different primary.
type Conflict struct {
	Alias           string `json:"alias" yaml:"alias"`
	ExistingPrimary string `json:"existing_primary" yaml:"existing_primary"`
	NewPrimary      string `json:"new_primary" yaml:"new_primary"`
}

// AliasMap resolves any airport identifier to its primary. It is append-only:
// once an identifier is registered it is never repointed.
type AliasMap struct {
	t *Table[string]
}

// NewAliasMap returns an empty AliasMap.
func NewAliasMap() *AliasMap {
	return &AliasMap{t: NewTable[string]()}
}

// Register maps id to primary. If id already maps to a different primary the
// existing mapping is kept and the collision is returned with ok set.
func (a *AliasMap) Register(id, primary string) (c Conflict, ok bool) {
	if existing, found := a.t.Get(id); found {
		if existing == primary {
			return Conflict{}, false
		}
		return Conflict{Alias: id, ExistingPrimary: existing, NewPrimary: primary}, true
	}
	a.t.Set(id, primary)
	return Conflict{}, false
}

// Resolve returns the primary identifier for id.
func (a *AliasMap) Resolve(id string) (string, bool) {
	return a.t.Get(id)
}

// Len returns the number of registered identifiers, primaries included.
func (a *AliasMap) Len() int {
	return a.t.Len()
}

// Table returns a copy of the mapping in registration order. Changing the
// copy does not affect the map.
func (a *AliasMap) Table() *Table[string] {
	t := NewTable[string]()
	for id, primary := range a.t.All() {
		t.Set(id, primary)
	}
	return t
}

func (a *AliasMap) MarshalJSON() ([]byte, error) {
	return a.t.MarshalJSON()
}
