package domain

// Cardinality is the multiplicity of one side of a relationship.
type Cardinality int

const (
	// One is the referenced side.
	One Cardinality = iota + 1
	// Many is the referencing side.
	Many
)

func (c Cardinality) String() string {
	if c == One {
		return "ONE"
	}
	return "MANY"
}

// Entity is one side of a relationship.
type Entity struct {
	Table       string
	Columns     []string
	Cardinality Cardinality
}

// EntityRelationship links the referenced (primary) entity with the
// referencing (foreign) one.
type EntityRelationship struct {
	Primary Entity
	Foreign Entity
}

// EntityRelationshipModel is an ordered collection of relationships.
type EntityRelationshipModel struct {
	relationships []EntityRelationship
}

// NewEntityRelationshipModel returns an empty model.
func NewEntityRelationshipModel() *EntityRelationshipModel {
	return &EntityRelationshipModel{}
}

// Add appends a relationship.
func (m *EntityRelationshipModel) Add(r EntityRelationship) {
	m.relationships = append(m.relationships, r)
}

// Relationships returns the relationships in insertion order.
func (m *EntityRelationshipModel) Relationships() []EntityRelationship {
	out := make([]EntityRelationship, len(m.relationships))
	copy(out, m.relationships)
	return out
}

// Len returns the number of relationships.
func (m *EntityRelationshipModel) Len() int {
	return len(m.relationships)
}
