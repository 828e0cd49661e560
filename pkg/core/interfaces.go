package core

// Logger receives progress and summary lines from the renderer
type Logger interface {
	Printf(format string, args ...interface{})
}
