package manifest

// Manifest is the merged content of every manifest file under a directory.
type Manifest struct {
	Interfaces map[string]*Interface
}

// Interface declares the expected registrations for one interface tag.
type Interface struct {
	Name            string
	Description     string
	Implementations map[string]*Implementation
}

// Implementation declares one expected (type, interface) registration.
type Implementation struct {
	// Type is the implementing type's bare name, the block label.
	Type string
	// Path optionally pins the package-qualified type path. Empty means any
	// package may provide the type.
	Path string
	// Constructor states whether the registration must carry a constructor.
	Constructor bool
	// SourceFile is the manifest file this block was parsed from.
	SourceFile string
}

// New returns an empty manifest.
func New() *Manifest {
	return &Manifest{Interfaces: make(map[string]*Interface)}
}
