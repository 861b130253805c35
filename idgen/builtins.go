package idgen

import "github.com/brettbedarf/vfstree"

type BuiltInGeneratorType = string

const (
	ShortGeneratorType    BuiltInGeneratorType = "short"
	UUIDGeneratorType     BuiltInGeneratorType = "uuid"
	SequenceGeneratorType BuiltInGeneratorType = "sequence"
)

// RegisterBuiltins registers all built-in generators on r
// or only the specific ones if keys are provided
func RegisterBuiltins(r *Registry, generators ...BuiltInGeneratorType) {
	if len(generators) == 0 {
		generators = []BuiltInGeneratorType{ShortGeneratorType, UUIDGeneratorType, SequenceGeneratorType}
	}

	for _, key := range generators {
		switch key {
		case ShortGeneratorType:
			r.Register(key, func(string) vfstree.IDGenerator { return Short{} })
		case UUIDGeneratorType:
			r.Register(key, func(string) vfstree.IDGenerator { return UUID{} })
		case SequenceGeneratorType:
			r.Register(key, func(prefix string) vfstree.IDGenerator { return NewSequence(prefix) })
		}
	}
}
