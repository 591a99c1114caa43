package ir

// Method is a callable member of a class. It is immutable; build one with
// NewMethod.
type Method struct {
	identifier string
	async      bool
	params     []Field
	returns    *TargetType
	body       string
}

func (m Method) Identifier() string { return m.identifier }
func (m Method) IsAsync() bool      { return m.async }
func (m Method) Body() string       { return m.body }

// Params returns a copy of the parameter list in declaration order.
func (m Method) Params() []Field {
	out := make([]Field, len(m.params))
	copy(out, m.params)
	return out
}

// Returns reports the return type, if one was set.
func (m Method) Returns() (TargetType, bool) {
	if m.returns == nil {
		return TargetType{}, false
	}
	return *m.returns, true
}

// MethodBuilder accumulates a Method. It is single-use: after Build, every
// further call panics.
type MethodBuilder struct {
	m     Method
	built bool
}

// NewMethod starts a synchronous method with no parameters, no return type
// and an empty body.
func NewMethod(identifier string) *MethodBuilder {
	return &MethodBuilder{m: Method{identifier: identifier}}
}

func (b *MethodBuilder) guard() {
	if b.built {
		panic("ir: MethodBuilder used after Build")
	}
}

// Async marks the method as asynchronous.
func (b *MethodBuilder) Async() *MethodBuilder {
	b.guard()
	b.m.async = true
	return b
}

// Returns sets the return type.
func (b *MethodBuilder) Returns(t TargetType) *MethodBuilder {
	b.guard()
	b.m.returns = &t
	return b
}

// Param appends a parameter.
func (b *MethodBuilder) Param(name string, t TargetType) *MethodBuilder {
	b.guard()
	b.m.params = append(b.m.params, Field{Name: name, Type: t})
	return b
}

// Body sets the raw body text, replacing any previous body.
func (b *MethodBuilder) Body(text string) *MethodBuilder {
	b.guard()
	b.m.body = text
	return b
}

// Build returns the finished Method and retires the builder.
func (b *MethodBuilder) Build() Method {
	b.guard()
	b.built = true
	m := b.m
	m.params = append([]Field(nil), b.m.params...)
	return m
}
