package navigation

// Option is one selectable choice on a screen.
type Option struct {
	Label  string
	Action string
}

// Screen is the engine's sole output: display text plus an ordered
// keyboard of labeled choices. More carries continuation chunks when
// the text had to be split under the transport limit; only the first
// chunk carries the keyboard.
type Screen struct {
	Text     string
	Keyboard [][]Option
	More     []string
}

func opt(label, action string) Option {
	return Option{Label: label, Action: action}
}

func row(options ...Option) []Option {
	return options
}
