package transition

// RootID is the back target when nothing has been visited yet.
const RootID = "root"

// Pointer tracks the current panel and the stack of panels to go back to.
type Pointer struct {
	Stack   []string
	current string
}

// Current returns the current panel ID ("" before the first transition).
func (p *Pointer) Current() string {
	return p.current
}

// Previous returns the back target: the top of the stack, or RootID when empty.
func (p *Pointer) Previous() string {
	if len(p.Stack) == 0 {
		return RootID
	}
	return p.Stack[len(p.Stack)-1]
}

// Len returns the number of back hops available.
func (p *Pointer) Len() int {
	return len(p.Stack)
}

// Push records a forward move from from to to.
func (p *Pointer) Push(from, to string) {
	if from == "" {
		from = RootID
	}
	p.Stack = append(p.Stack, from)
	p.current = to
}

// Pop records a back move to the top of the stack and returns it.
// An empty stack moves to RootID.
func (p *Pointer) Pop() string {
	prev := p.Previous()
	if len(p.Stack) > 0 {
		p.Stack = p.Stack[:len(p.Stack)-1]
	}
	p.current = prev
	return prev
}

// Override replaces the top of the stack with id.
func (p *Pointer) Override(id string) {
	if len(p.Stack) == 0 {
		p.Stack = append(p.Stack, id)
		return
	}
	p.Stack[len(p.Stack)-1] = id
}

// SetCurrent sets the current panel without touching the stack.
func (p *Pointer) SetCurrent(id string) {
	p.current = id
}
