package schema

// Semantics is the closed set of behaviours a member function can have.
type Semantics interface {
	semantics()
	String() string
}

// BlockRequirement controls whether a configuring block may follow a call.
type BlockRequirement int

const (
	BlockNotAllowed BlockRequirement = iota
	BlockOptional
	BlockRequired
)

func (b BlockRequirement) String() string {
	switch b {
	case BlockNotAllowed:
		return "not allowed"
	case BlockOptional:
		return "optional"
	case BlockRequired:
		return "required"
	default:
		return "unknown"
	}
}

// Pure functions compute a value and do not change the receiver.
type Pure struct{}

// AddAndConfigure functions create a new object, attach it to the receiver,
// and optionally configure it with a block.
type AddAndConfigure struct {
	ConfigureBlock BlockRequirement
}

// AccessAndConfigure functions configure an object the receiver already
// owns, reached through the Accessor property.
type AccessAndConfigure struct {
	Accessor string
}

func (Pure) semantics()               {}
func (AddAndConfigure) semantics()    {}
func (AccessAndConfigure) semantics() {}

func (Pure) String() string            { return "pure" }
func (AddAndConfigure) String() string { return "add-and-configure" }
func (a AccessAndConfigure) String() string {
	return "access-and-configure(" + a.Accessor + ")"
}

// BlockRequirementOf returns how a function treats a trailing configuring
// block.
func BlockRequirementOf(s Semantics) BlockRequirement {
	switch v := s.(type) {
	case AddAndConfigure:
		return v.ConfigureBlock
	case AccessAndConfigure:
		return BlockRequired
	default:
		return BlockNotAllowed
	}
}
