package processor

type Breakpoint struct {
	Name  string
	Width int
}

// Options fixes what the pipeline produces. Quality and Effort are
// recorded in the derivative metadata; the encoder is built with them.
type Options struct {
	// Field prefixes every generated file name.
	Field       string
	Quality     int
	Effort      int
	Breakpoints []Breakpoint
}

func DefaultOptions() Options {
	return Options{
		Field:   "product",
		Quality: 75,
		Effort:  4,
		Breakpoints: []Breakpoint{
			{Name: "small", Width: 200},
			{Name: "medium", Width: 400},
			{Name: "large", Width: 800},
		},
	}
}
