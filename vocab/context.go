package vocab

// Context sentinels accepted in an entry's context list.
const (
	// ContextVocab stands for the vocabulary's default context.
	ContextVocab = "vocab"

	// ContextNone removes the term from every context, including the default.
	ContextNone = "none"
)

// StatusCounter tallies entries by status.
type StatusCounter struct {
	counts map[Status]int
}

// NewStatusCounter creates an empty tally.
func NewStatusCounter() *StatusCounter {
	return &StatusCounter{counts: make(map[Status]int)}
}

// Add counts one entry with status s.
func (c *StatusCounter) Add(s Status) {
	c.counts[s]++
}

// Count returns the number of entries with status s.
func (c *StatusCounter) Count(s Status) int {
	return c.counts[s]
}

// Total returns the number of counted entries.
func (c *StatusCounter) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// ContextIndex is the context → terms inversion. Contexts and the curies
// under each context keep first-seen order.
type ContextIndex struct {
	order []string
	terms map[string][]string
}

// NewContextIndex creates an empty index.
func NewContextIndex() *ContextIndex {
	return &ContextIndex{terms: make(map[string][]string)}
}

// Add appends curie under context.
func (x *ContextIndex) Add(context, curie string) {
	existing, ok := x.terms[context]
	if !ok {
		x.order = append(x.order, context)
	}
	for _, c := range existing {
		if c == curie {
			return
		}
	}
	x.terms[context] = append(existing, curie)
}

// Contexts returns the known context identifiers.
func (x *ContextIndex) Contexts() []string {
	out := make([]string, len(x.order))
	copy(out, x.order)
	return out
}

// Terms returns the curies assigned to context.
func (x *ContextIndex) Terms(context string) []string {
	terms := x.terms[context]
	out := make([]string, len(terms))
	copy(out, terms)
	return out
}

// Len returns the number of contexts.
func (x *ContextIndex) Len() int {
	return len(x.order)
}

// BuildContext is the state of a single conversion. It is created at the
// start of Build and must not be shared between builds.
type BuildContext struct {
	VocabPrefix    string
	VocabURL       string
	DefaultContext string

	Status   *StatusCounter
	Contexts *ContextIndex
}

// NewBuildContext creates the state for one build.
func NewBuildContext(prefix, url, defaultContext string) *BuildContext {
	return &BuildContext{
		VocabPrefix:    prefix,
		VocabURL:       url,
		DefaultContext: defaultContext,
		Status:         NewStatusCounter(),
		Contexts:       NewContextIndex(),
	}
}

// ResolveContexts maps the declared context identifiers to concrete ones.
// An empty declaration means the default context; "vocab" is replaced by the
// default context and "none" is dropped.
func (c *BuildContext) ResolveContexts(declared []string) []string {
	if len(declared) == 0 {
		if c.DefaultContext == "" {
			return nil
		}
		return []string{c.DefaultContext}
	}

	var out []string
	seen := make(map[string]bool, len(declared))
	for _, ctx := range declared {
		switch ctx {
		case ContextNone:
			continue
		case ContextVocab:
			if c.DefaultContext == "" {
				continue
			}
			ctx = c.DefaultContext
		}
		if seen[ctx] {
			continue
		}
		seen[ctx] = true
		out = append(out, ctx)
	}
	return out
}

// record adds a finished entry to the status tally and the context index.
func (c *BuildContext) record(t *Term) {
	c.Status.Add(t.Status)
	for _, ctx := range t.Context {
		c.Contexts.Add(ctx, t.Curie)
	}
}
