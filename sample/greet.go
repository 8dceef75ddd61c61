package sample

const (
	greetingPrefix = "Hello, "
	greetingSuffix = "!"
)

// Greet returns the greeting for name, "Hello, <name>!".
//
// Any string is accepted, the empty one included.
func Greet(name string) string {
	return greetingPrefix + name + greetingSuffix
}
