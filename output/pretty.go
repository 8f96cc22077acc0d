package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"code.cloudfoundry.org/bytefmt"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type PrettyPrinter struct {
	writer        io.Writer
	plain         Printer
	aurora        aurora.Aurora
	headerPalette *HeaderPalette
	jsonPalette   *JSONPalette
	indentWidth   int
}

type PrettyPrinterConfig struct {
	Writer      io.Writer
	EnableColor bool
}

type HeaderPalette struct {
	Proto          aurora.Color
	Method         aurora.Color
	URL            aurora.Color
	StatusOK       aurora.Color
	StatusRedirect aurora.Color
	StatusError    aurora.Color
	FieldName      aurora.Color
	FieldValue     aurora.Color
	FieldSeparator aurora.Color
}

var defaultHeaderPalette = HeaderPalette{
	Proto:          aurora.BlueFg,
	Method:         aurora.GreenFg | aurora.BoldFm,
	URL:            aurora.CyanFg | aurora.UnderlineFm,
	StatusOK:       aurora.GreenFg | aurora.BoldFm,
	StatusRedirect: aurora.BrownFg | aurora.BoldFm,
	StatusError:    aurora.RedFg | aurora.BoldFm,
	FieldName:      aurora.GrayFg,
	FieldValue:     aurora.CyanFg,
	FieldSeparator: aurora.GrayFg,
}

type JSONPalette struct {
	Name    aurora.Color
	String  aurora.Color
	Number  aurora.Color
	Boolean aurora.Color
	Null    aurora.Color
	Symbol  aurora.Color
}

var defaultJSONPalette = JSONPalette{
	Name:    aurora.BlueFg,
	String:  aurora.BrownFg,
	Number:  aurora.CyanFg,
	Boolean: aurora.MagentaFg,
	Null:    aurora.RedFg,
	Symbol:  aurora.GrayFg,
}

func NewPrettyPrinter(config PrettyPrinterConfig) Printer {
	return &PrettyPrinter{
		writer:        config.Writer,
		plain:         NewPlainPrinter(config.Writer),
		aurora:        aurora.NewAurora(config.EnableColor),
		headerPalette: &defaultHeaderPalette,
		jsonPalette:   &defaultJSONPalette,
		indentWidth:   4,
	}
}

func (p *PrettyPrinter) PrintStatusLine(proto string, status string, statusCode int) error {
	statusColor := p.headerPalette.StatusOK
	switch {
	case statusCode >= 400:
		statusColor = p.headerPalette.StatusError
	case statusCode >= 300:
		statusColor = p.headerPalette.StatusRedirect
	}
	fmt.Fprintf(p.writer, "%s %s\n",
		p.aurora.Colorize(proto, p.headerPalette.Proto),
		p.aurora.Colorize(status, statusColor))
	return nil
}

func (p *PrettyPrinter) PrintRequestLine(req *http.Request) error {
	fmt.Fprintf(p.writer, "%s %s %s\n",
		p.aurora.Colorize(req.Method, p.headerPalette.Method),
		p.aurora.Colorize(req.URL.String(), p.headerPalette.URL),
		p.aurora.Colorize(req.Proto, p.headerPalette.Proto))
	return nil
}

func (p *PrettyPrinter) PrintHeader(header http.Header) error {
	names := maps.Keys(header)
	slices.Sort(names)

	for _, name := range names {
		for _, value := range header[name] {
			fmt.Fprintf(p.writer, "%s%s %s\n",
				p.aurora.Colorize(name, p.headerPalette.FieldName),
				p.aurora.Colorize(":", p.headerPalette.FieldSeparator),
				p.aurora.Colorize(value, p.headerPalette.FieldValue))
		}
	}

	fmt.Fprintln(p.writer)
	return nil
}

func isJSON(contentType string) bool {
	contentType = strings.TrimSpace(contentType)

	semicolon := strings.Index(contentType, ";")
	if semicolon != -1 {
		contentType = contentType[:semicolon]
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))

	return contentType == "application/json" || strings.HasSuffix(contentType, "+json")
}

func isBinary(body []byte) bool {
	return !utf8.Valid(body) || bytes.IndexByte(body, 0) != -1
}

func (p *PrettyPrinter) PrintBody(body io.Reader, contentType string) error {
	content, err := io.ReadAll(body)
	if err != nil {
		return errors.Wrap(err, "reading body")
	}

	if isBinary(content) {
		fmt.Fprintf(p.writer, "+-----------------------------------------+\n")
		fmt.Fprintf(p.writer, "| NOTE: binary data not shown in terminal |\n")
		fmt.Fprintf(p.writer, "+-----------------------------------------+\n")
		fmt.Fprintf(p.writer, "(%s)\n", bytefmt.ByteSize(uint64(len(content))))
		return nil
	}

	// Fallback to PlainPrinter when the body is not a well-formed JSON
	if !isJSON(contentType) || !json.Valid(content) {
		return p.plain.PrintBody(bytes.NewReader(content), contentType)
	}

	decoder := json.NewDecoder(bytes.NewReader(content))
	decoder.UseNumber()
	if err := p.printJSON(decoder, 0); err != nil {
		return errors.Wrap(err, "printing JSON")
	}
	fmt.Fprintln(p.writer)
	return nil
}

// printJSON prints the next JSON value of decoder, keeping the order of object
// keys as they appear in the body.
func (p *PrettyPrinter) printJSON(decoder *json.Decoder, depth int) error {
	token, err := decoder.Token()
	if err != nil {
		return err
	}

	switch v := token.(type) {
	case json.Delim:
		switch v {
		case '{':
			return p.printObject(decoder, depth)
		case '[':
			return p.printArray(decoder, depth)
		default:
			return errors.Errorf("unexpected delimiter: %s", v)
		}
	case string:
		fmt.Fprint(p.writer, p.aurora.Colorize(quoteJSONString(v), p.jsonPalette.String))
	case json.Number:
		fmt.Fprint(p.writer, p.aurora.Colorize(v.String(), p.jsonPalette.Number))
	case bool:
		fmt.Fprint(p.writer, p.aurora.Colorize(fmt.Sprint(v), p.jsonPalette.Boolean))
	case nil:
		fmt.Fprint(p.writer, p.aurora.Colorize("null", p.jsonPalette.Null))
	default:
		return errors.Errorf("unexpected token: %v", token)
	}
	return nil
}

func (p *PrettyPrinter) printObject(decoder *json.Decoder, depth int) error {
	if !decoder.More() {
		if _, err := decoder.Token(); err != nil {
			return err
		}
		fmt.Fprint(p.writer, p.aurora.Colorize("{}", p.jsonPalette.Symbol))
		return nil
	}

	fmt.Fprintf(p.writer, "%s\n", p.aurora.Colorize("{", p.jsonPalette.Symbol))
	first := true
	for decoder.More() {
		if !first {
			fmt.Fprintf(p.writer, "%s\n", p.aurora.Colorize(",", p.jsonPalette.Symbol))
		}
		first = false

		token, err := decoder.Token()
		if err != nil {
			return err
		}
		name, ok := token.(string)
		if !ok {
			return errors.Errorf("unexpected object key: %v", token)
		}
		fmt.Fprintf(p.writer, "%s%s%s ",
			p.indent(depth+1),
			p.aurora.Colorize(quoteJSONString(name), p.jsonPalette.Name),
			p.aurora.Colorize(":", p.jsonPalette.Symbol))
		if err := p.printJSON(decoder, depth+1); err != nil {
			return err
		}
	}
	if _, err := decoder.Token(); err != nil {
		return err
	}
	fmt.Fprintf(p.writer, "\n%s%s", p.indent(depth), p.aurora.Colorize("}", p.jsonPalette.Symbol))
	return nil
}

func (p *PrettyPrinter) printArray(decoder *json.Decoder, depth int) error {
	if !decoder.More() {
		if _, err := decoder.Token(); err != nil {
			return err
		}
		fmt.Fprint(p.writer, p.aurora.Colorize("[]", p.jsonPalette.Symbol))
		return nil
	}

	fmt.Fprintf(p.writer, "%s\n", p.aurora.Colorize("[", p.jsonPalette.Symbol))
	first := true
	for decoder.More() {
		if !first {
			fmt.Fprintf(p.writer, "%s\n", p.aurora.Colorize(",", p.jsonPalette.Symbol))
		}
		first = false

		fmt.Fprint(p.writer, p.indent(depth+1))
		if err := p.printJSON(decoder, depth+1); err != nil {
			return err
		}
	}
	if _, err := decoder.Token(); err != nil {
		return err
	}
	fmt.Fprintf(p.writer, "\n%s%s", p.indent(depth), p.aurora.Colorize("]", p.jsonPalette.Symbol))
	return nil
}

func (p *PrettyPrinter) indent(depth int) string {
	return strings.Repeat(" ", p.indentWidth*depth)
}

func quoteJSONString(s string) string {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(s); err != nil {
		// encoding a string never fails
		panic(err)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
