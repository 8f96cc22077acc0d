package flags

import (
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/HexmosTech/reqfile/exchange"
	"github.com/HexmosTech/reqfile/output"
	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt"
	"github.com/pkg/errors"
)

var reNumber = regexp.MustCompile(`^[0-9.]+$`)

type Usage interface {
	PrintUsage(w io.Writer)
}

type OptionSet struct {
	ExchangeOptions exchange.Options
	OutputOptions   output.Options

	VarFile       string
	DryRun        bool
	PrintVersion  bool
	PrintLicenses bool
}

type terminalInfo struct {
	stdinIsTerminal  bool
	stdoutIsTerminal bool
}

// Parse parses command-line flags and returns the remaining positional
// arguments.
func Parse(args []string) ([]string, Usage, *OptionSet, error) {
	return parse(args, terminalInfo{
		stdinIsTerminal:  isatty.IsTerminal(os.Stdin.Fd()),
		stdoutIsTerminal: isatty.IsTerminal(os.Stdout.Fd()),
	})
}

func parse(args []string, terminalInfo terminalInfo) ([]string, Usage, *OptionSet, error) {
	outputOptions := output.Options{}
	exchangeOptions := exchange.Options{}
	optionSet := &OptionSet{}
	printFlag := "\000" // "\000" is a special value that indicates user did not specified --print
	prettyFlag := "\000"
	timeout := "30s"
	verifyFlag := "yes"
	var authFlag string

	flagSet := getopt.New()
	flagSet.SetParameters("FILE [NAME=VALUE [NAME=VALUE ...]]")
	flagSet.StringVarLong(&printFlag, "print", 'p', "specifies what the output should contain (HBhb)")
	flagSet.StringVarLong(&prettyFlag, "pretty", 0, "controls output processing (all, colors, format, none)")
	flagSet.StringVarLong(&timeout, "timeout", 0, "Timeout seconds that you allow the whole operation to take")
	flagSet.BoolVarLong(&exchangeOptions.FollowRedirects, "follow", 'F', "follow 30x Location redirects")
	flagSet.StringVarLong(&verifyFlag, "verify", 0, "verify the server's TLS certificate (yes, no)")
	flagSet.BoolVarLong(&exchangeOptions.ForceHTTP1, "http1", 0, "disable HTTP/2 and force HTTP/1.1")
	flagSet.StringVarLong(&authFlag, "auth", 'a', "colon-separated username and password for basic authentication")
	flagSet.StringVarLong(&optionSet.VarFile, "var-file", 'V', "YAML file holding placeholder values")
	flagSet.BoolVarLong(&optionSet.DryRun, "dry-run", 0, "print the rendered request without sending it")
	flagSet.BoolVarLong(&outputOptions.Download, "download", 'd', "download the response body to a file")
	flagSet.StringVarLong(&outputOptions.OutputFile, "output", 'o', "save the response body to FILE")
	flagSet.BoolVarLong(&outputOptions.Overwrite, "overwrite", 0, "overwrite an existing file with --download")
	flagSet.BoolVarLong(&optionSet.PrintVersion, "version", 0, "print version and exit")
	flagSet.BoolVarLong(&optionSet.PrintLicenses, "licenses", 0, "print licenses of dependencies and exit")
	if err := flagSet.Getopt(args, nil); err != nil {
		return nil, flagSet, nil, errors.Wrap(err, "parsing flags")
	}

	// Parse --print
	if err := parsePrintFlag(printFlag, terminalInfo.stdoutIsTerminal, &outputOptions); err != nil {
		return nil, flagSet, nil, err
	}

	// Parse --pretty
	if err := parsePrettyFlag(prettyFlag, terminalInfo.stdoutIsTerminal, &outputOptions); err != nil {
		return nil, flagSet, nil, err
	}

	// Parse --timeout
	d, err := parseDurationOrSeconds(timeout)
	if err != nil {
		return nil, flagSet, nil, err
	}
	exchangeOptions.Timeout = d

	// Parse --verify
	switch strings.ToLower(verifyFlag) {
	case "yes", "true":
		exchangeOptions.SkipVerify = false
	case "no", "false":
		exchangeOptions.SkipVerify = true
	default:
		return nil, flagSet, nil, errors.Errorf("Value of --verify must be yes or no: %s", verifyFlag)
	}

	// Parse --auth
	if authFlag != "" {
		if err := parseAuth(authFlag, &exchangeOptions.Auth); err != nil {
			return nil, flagSet, nil, err
		}
	}

	optionSet.ExchangeOptions = exchangeOptions
	optionSet.OutputOptions = outputOptions
	return flagSet.Args(), flagSet, optionSet, nil
}

func parsePrintFlag(printFlag string, stdoutIsTerminal bool, outputOptions *output.Options) error {
	if printFlag == "\000" {
		// --print is not specified
		if stdoutIsTerminal {
			outputOptions.PrintResponseHeader = true
			outputOptions.PrintResponseBody = true
		} else {
			outputOptions.PrintResponseBody = true
		}
		return nil
	}
	for _, c := range printFlag {
		switch c {
		case 'H':
			outputOptions.PrintRequestHeader = true
		case 'B':
			outputOptions.PrintRequestBody = true
		case 'h':
			outputOptions.PrintResponseHeader = true
		case 'b':
			outputOptions.PrintResponseBody = true
		default:
			return errors.Errorf("Invalid char in --print value (must be consist of HBhb): %c", c)
		}
	}
	return nil
}

func parsePrettyFlag(prettyFlag string, stdoutIsTerminal bool, outputOptions *output.Options) error {
	switch prettyFlag {
	case "\000":
		// --pretty is not specified
		outputOptions.EnableFormat = stdoutIsTerminal
		outputOptions.EnableColor = stdoutIsTerminal
	case "all":
		outputOptions.EnableFormat = true
		outputOptions.EnableColor = true
	case "colors":
		outputOptions.EnableFormat = false
		outputOptions.EnableColor = true
	case "format":
		outputOptions.EnableFormat = true
		outputOptions.EnableColor = false
	case "none":
		outputOptions.EnableFormat = false
		outputOptions.EnableColor = false
	default:
		return errors.Errorf("Value of --pretty must be one of all, colors, format or none: %s", prettyFlag)
	}
	return nil
}

func parseDurationOrSeconds(timeout string) (time.Duration, error) {
	if reNumber.MatchString(timeout) {
		timeout += "s"
	}
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return time.Duration(0), errors.Errorf("Value of --timeout must be a number or duration string: %v", timeout)
	}
	return d, nil
}

func parseAuth(authFlag string, authOptions *exchange.AuthOptions) error {
	authOptions.Enabled = true
	userName, password, ok := strings.Cut(authFlag, ":")
	authOptions.UserName = userName
	if ok {
		authOptions.Password = password
		return nil
	}
	password, err := askPassword()
	if err != nil {
		return err
	}
	authOptions.Password = password
	return nil
}
