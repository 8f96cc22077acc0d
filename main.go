package reqfile

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/HexmosTech/reqfile/exchange"
	"github.com/HexmosTech/reqfile/flags"
	"github.com/HexmosTech/reqfile/input"
	"github.com/HexmosTech/reqfile/output"
	"github.com/HexmosTech/reqfile/placeholder"
	"github.com/HexmosTech/reqfile/schema"
	"github.com/HexmosTech/reqfile/version"
	"github.com/pkg/errors"
)

type Options struct {
	// Args defaults to os.Args
	Args []string
	// Stdout and Stderr default to os.Stdout and os.Stderr
	Stdout io.Writer
	Stderr io.Writer
	// Transport is used to send requests if not nil
	Transport http.RoundTripper
}

func Main(options *Options) error {
	args := options.Args
	if args == nil {
		args = os.Args
	}
	stdout := options.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := options.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	// Parse flags
	positional, usage, optionSet, err := flags.Parse(args)
	if err != nil {
		if usage != nil {
			usage.PrintUsage(stderr)
		}
		return err
	}
	if optionSet.PrintVersion {
		fmt.Fprintf(stdout, "reqfile %s\n", version.Current())
		return nil
	}
	if optionSet.PrintLicenses {
		version.PrintLicenses(stdout)
		return nil
	}

	// Parse positional arguments
	parsedArgs, err := input.ParseArgs(positional)
	if _, ok := errors.Cause(err).(*input.UsageError); ok {
		usage.PrintUsage(stderr)
		return err
	}
	if err != nil {
		return err
	}

	// Load the request file and fill its placeholders
	req, err := loadRequest(parsedArgs, optionSet.VarFile)
	if err != nil {
		return err
	}

	exchangeOptions := &optionSet.ExchangeOptions
	exchangeOptions.Transport = options.Transport
	outputOptions := &optionSet.OutputOptions
	if optionSet.DryRun {
		outputOptions.PrintRequestHeader = true
		outputOptions.PrintRequestBody = true
	}

	r, err := exchange.BuildHTTPRequest(req, exchangeOptions)
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(stdout)
	defer writer.Flush()
	printer := output.NewPrinter(writer, outputOptions)

	// Print request
	if err := printRequest(r, writer, printer, outputOptions); err != nil {
		return err
	}
	if optionSet.DryRun {
		return nil
	}

	// Send request and receive response
	resp, err := exchange.SendRequest(r, exchangeOptions)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if outputOptions.Download {
		if err := printer.PrintStatusLine(resp.Proto, resp.Status, resp.StatusCode); err != nil {
			return err
		}
		if err := printer.PrintHeader(resp.Header); err != nil {
			return err
		}
		writer.Flush()
		fileWriter := output.NewFileWriter(r.URL, outputOptions, stderr)
		return fileWriter.Download(resp)
	}

	// Print response
	if outputOptions.PrintResponseHeader {
		if err := printer.PrintStatusLine(resp.Proto, resp.Status, resp.StatusCode); err != nil {
			return err
		}
		if err := printer.PrintHeader(resp.Header); err != nil {
			return err
		}
		writer.Flush()
	}
	if outputOptions.PrintResponseBody {
		if err := printer.PrintBody(resp.Body, resp.Header.Get("Content-Type")); err != nil {
			return err
		}
	}

	return nil
}

// loadRequest parses the request file and renders it with the document's own
// variables, the value file and the command-line items, later ones winning.
func loadRequest(args *input.Args, varFile string) (*input.Request, error) {
	content, err := os.ReadFile(args.File)
	if err != nil {
		return nil, errors.Wrapf(err, "reading request file '%s'", args.File)
	}
	s, err := schema.ParseBytes(content)
	if err != nil {
		return nil, errors.Wrapf(err, "loading '%s'", args.File)
	}
	req := s.Request()

	values := input.ValuesFromMap(req.Variables)
	if varFile != "" {
		fileValues, err := input.LoadValueFile(varFile)
		if err != nil {
			return nil, err
		}
		values = values.Merge(fileValues)
	}
	values = values.Merge(args.Values)

	renderer, err := placeholder.NewRenderer(placeholder.Discover(req), values)
	if err != nil {
		return nil, err
	}
	return renderer.Render(req)
}

func printRequest(r *http.Request, w io.Writer, printer output.Printer, options *output.Options) error {
	if options.PrintRequestHeader {
		if err := printer.PrintRequestLine(r); err != nil {
			return err
		}
		header := r.Header.Clone()
		if header.Get("Host") == "" {
			header.Set("Host", r.URL.Host)
		}
		if err := printer.PrintHeader(header); err != nil {
			return err
		}
	}
	if options.PrintRequestBody && r.GetBody != nil {
		body, err := r.GetBody()
		if err != nil {
			return errors.Wrap(err, "reading request body")
		}
		defer body.Close()
		if err := printer.PrintBody(body, r.Header.Get("Content-Type")); err != nil {
			return err
		}
		if options.PrintResponseHeader || options.PrintResponseBody {
			fmt.Fprint(w, "\n\n")
		}
	}
	return nil
}
