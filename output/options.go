package output

import "io"

type Options struct {
	PrintRequestHeader  bool
	PrintRequestBody    bool
	PrintResponseHeader bool
	PrintResponseBody   bool

	EnableFormat bool
	EnableColor  bool

	Download   bool
	OutputFile string
	Overwrite  bool
}

// NewPrinter returns a pretty printer when formatting is enabled and a plain
// one otherwise.
func NewPrinter(writer io.Writer, options *Options) Printer {
	if options.EnableFormat {
		return NewPrettyPrinter(PrettyPrinterConfig{
			Writer:      writer,
			EnableColor: options.EnableColor,
		})
	}
	return NewPlainPrinter(writer)
}
