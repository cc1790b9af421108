package mdtypes

// NamedEntity is the common shape of Artifact, Execution, and Context
// that the Entity Upsert Helpers (§4.E) operate over generically: one
// create-or-update code path serving all three, per the "variant
// dispatch" design note (§9) rather than three copy-pasted upsert
// functions.
type NamedEntity interface {
	GetID() int64
	SetID(id int64)
	GetTypeID() int64
	GetName() *string
	GetCreateTime() int64
	SetCreateTime(ms int64)
	GetUpdateTime() int64
	SetUpdateTime(ms int64)
}

// Artifact is a named, typed data object produced or consumed by a
// pipeline step.
type Artifact struct {
	ID                       int64
	TypeID                   int64
	Name                     *string
	URI                      *string
	Properties               map[string]PropertyValue
	CustomProperties         map[string]PropertyValue
	CreateTimeSinceEpoch     int64
	LastUpdateTimeSinceEpoch int64
}

func (a *Artifact) GetID() int64             { return a.ID }
func (a *Artifact) SetID(id int64)           { a.ID = id }
func (a *Artifact) GetTypeID() int64         { return a.TypeID }
func (a *Artifact) GetName() *string         { return a.Name }
func (a *Artifact) GetCreateTime() int64     { return a.CreateTimeSinceEpoch }
func (a *Artifact) SetCreateTime(ms int64)   { a.CreateTimeSinceEpoch = ms }
func (a *Artifact) GetUpdateTime() int64     { return a.LastUpdateTimeSinceEpoch }
func (a *Artifact) SetUpdateTime(ms int64)   { a.LastUpdateTimeSinceEpoch = ms }

// Execution is a named, typed record of a pipeline step invocation.
type Execution struct {
	ID                       int64
	TypeID                   int64
	Name                     *string
	Properties               map[string]PropertyValue
	CustomProperties         map[string]PropertyValue
	CreateTimeSinceEpoch     int64
	LastUpdateTimeSinceEpoch int64
}

func (e *Execution) GetID() int64           { return e.ID }
func (e *Execution) SetID(id int64)         { e.ID = id }
func (e *Execution) GetTypeID() int64       { return e.TypeID }
func (e *Execution) GetName() *string       { return e.Name }
func (e *Execution) GetCreateTime() int64   { return e.CreateTimeSinceEpoch }
func (e *Execution) SetCreateTime(ms int64) { e.CreateTimeSinceEpoch = ms }
func (e *Execution) GetUpdateTime() int64   { return e.LastUpdateTimeSinceEpoch }
func (e *Execution) SetUpdateTime(ms int64) { e.LastUpdateTimeSinceEpoch = ms }

// Context is a named grouping to which artifacts and executions are
// linked. Unlike Artifact/Execution, its name is mandatory (§3.1).
type Context struct {
	ID                       int64
	TypeID                   int64
	Name                     string
	Properties               map[string]PropertyValue
	CustomProperties         map[string]PropertyValue
	CreateTimeSinceEpoch     int64
	LastUpdateTimeSinceEpoch int64
}

func (c *Context) GetID() int64           { return c.ID }
func (c *Context) SetID(id int64)         { c.ID = id }
func (c *Context) GetTypeID() int64       { return c.TypeID }
func (c *Context) GetName() *string       { return &c.Name }
func (c *Context) GetCreateTime() int64   { return c.CreateTimeSinceEpoch }
func (c *Context) SetCreateTime(ms int64) { c.CreateTimeSinceEpoch = ms }
func (c *Context) GetUpdateTime() int64   { return c.LastUpdateTimeSinceEpoch }
func (c *Context) SetUpdateTime(ms int64) { c.LastUpdateTimeSinceEpoch = ms }

// EventKind is the role an Event plays between an artifact and an
// execution.
type EventKind int

const (
	EventKindUnknown EventKind = iota
	EventKindDeclaredInput
	EventKindDeclaredOutput
	EventKindInput
	EventKindOutput
	EventKindInternalInput
	EventKindInternalOutput
)

// PathStep is one element of an Event's path: either a string key (a
// named slot, e.g. a dict key) or an integer index (a list position).
type PathStep struct {
	Key   string
	Index *int64
}

// Event is an immutable artifact-execution edge.
type Event struct {
	ArtifactID       int64
	ExecutionID      int64
	Kind             EventKind
	Path             []PathStep
	MillisSinceEpoch int64
}

// Attribution is a context-artifact link (set semantics).
type Attribution struct {
	ContextID  int64
	ArtifactID int64
}

// Association is a context-execution link (set semantics).
type Association struct {
	ContextID   int64
	ExecutionID int64
}

// ParentContext is a directed edge between two contexts (set semantics).
type ParentContext struct {
	ParentContextID int64
	ChildContextID  int64
}

// ParentType is the inheritance edge between two types. At most one
// parent per child is supported (§3.1).
type ParentType struct {
	ParentTypeID int64
	ChildTypeID  int64
}
