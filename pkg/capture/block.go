package capture

// Block produces tag content when run.
type Block interface {
	Run() (string, error)
}

// BlockFunc adapts an ordinary closure to a Block.
type BlockFunc func() (string, error)

// Run calls f.
func (f BlockFunc) Run() (string, error) {
	if f == nil {
		return "", nil
	}
	return f()
}

// TemplateBlock is a Block authored inside template-engine code. Tags built
// with a TemplateBlock stream their markup into the active buffer.
type TemplateBlock func() (string, error)

// Run calls f.
func (f TemplateBlock) Run() (string, error) {
	if f == nil {
		return "", nil
	}
	return f()
}

// AsBlock converts the function shapes accepted by the tag builder into a
// Block. It reports false for any other value, including nil functions.
func AsBlock(v any) (Block, bool) {
	switch b := v.(type) {
	case nil:
		return nil, false
	case BlockFunc:
		return b, b != nil
	case TemplateBlock:
		return b, b != nil
	case Block:
		return b, true
	case func() (string, error):
		if b == nil {
			return nil, false
		}
		return BlockFunc(b), true
	case func() string:
		if b == nil {
			return nil, false
		}
		return BlockFunc(func() (string, error) { return b(), nil }), true
	case func() error:
		if b == nil {
			return nil, false
		}
		return BlockFunc(func() (string, error) { return "", b() }), true
	case func():
		if b == nil {
			return nil, false
		}
		return BlockFunc(func() (string, error) {
			b()
			return "", nil
		}), true
	default:
		return nil, false
	}
}

// isTemplate reports whether b carries the template marker.
func isTemplate(b Block) bool {
	_, ok := b.(TemplateBlock)
	return ok
}
