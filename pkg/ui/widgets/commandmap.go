package widgets

// Command is a callback run against the widget that triggered it.
type Command[S any] func(source S)

// CommandMap keeps ordered command lists per key, such as one list per
// button action. The zero value is not usable; call NewCommandMap.
type CommandMap[S any, K comparable] struct {
	commands map[K][]Command[S]
}

// NewCommandMap creates an empty map.
func NewCommandMap[S any, K comparable]() *CommandMap[S, K] {
	return &CommandMap[S, K]{commands: make(map[K][]Command[S])}
}

// Add appends commands to the list for key. Nil commands are skipped.
func (m *CommandMap[S, K]) Add(key K, cmds ...Command[S]) {
	for _, cmd := range cmds {
		if cmd != nil {
			m.commands[key] = append(m.commands[key], cmd)
		}
	}
}

// AddAll appends cmds to the list for key. A nil slice clears the list.
func (m *CommandMap[S, K]) AddAll(key K, cmds []Command[S]) {
	if cmds == nil {
		delete(m.commands, key)
		return
	}
	m.Add(key, cmds...)
}

// Get returns a copy of the commands registered for key.
func (m *CommandMap[S, K]) Get(key K) []Command[S] {
	list := m.commands[key]
	if len(list) == 0 {
		return nil
	}
	out := make([]Command[S], len(list))
	copy(out, list)
	return out
}

// Run executes the commands for key in registration order.
func (m *CommandMap[S, K]) Run(source S, key K) {
	for _, cmd := range m.Get(key) {
		cmd(source)
	}
}
