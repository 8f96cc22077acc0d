package version

import (
	"fmt"
	"io"
)

type License struct {
	ModuleName  string
	LicenseName string
	Link        string
}

var Licenses = []License{
	{
		ModuleName:  "reqfile",
		LicenseName: "MIT License",
		Link:        "https://github.com/HexmosTech/reqfile/blob/main/LICENSE",
	},
	{
		ModuleName:  "Go",
		LicenseName: "BSD License",
		Link:        "https://golang.org/LICENSE",
	},
	{
		ModuleName:  "aurora",
		LicenseName: "WTFPL",
		Link:        "https://github.com/logrusorgru/aurora/blob/master/LICENSE",
	},
	{
		ModuleName:  "go-isatty",
		LicenseName: "MIT License",
		Link:        "https://github.com/mattn/go-isatty/blob/master/LICENSE",
	},
	{
		ModuleName:  "getopt",
		LicenseName: "BSD License",
		Link:        "https://github.com/pborman/getopt/blob/master/LICENSE",
	},
	{
		ModuleName:  "errors",
		LicenseName: "BSD License",
		Link:        "https://github.com/pkg/errors/blob/master/LICENSE",
	},
	{
		ModuleName:  "bytefmt",
		LicenseName: "Apache License",
		Link:        "https://github.com/cloudfoundry/bytefmt/blob/master/LICENSE",
	},
	{
		ModuleName:  "toml",
		LicenseName: "MIT License",
		Link:        "https://github.com/BurntSushi/toml/blob/master/COPYING",
	},
	{
		ModuleName:  "yaml.v3",
		LicenseName: "MIT and Apache License",
		Link:        "https://github.com/go-yaml/yaml/blob/v3/LICENSE",
	},
	{
		ModuleName:  "androiddnsfix",
		LicenseName: "MIT License",
		Link:        "https://github.com/mtibben/androiddnsfix/blob/master/LICENSE",
	},
	{
		ModuleName:  "golang.org/x/crypto",
		LicenseName: "BSD License",
		Link:        "https://cs.opensource.google/go/x/crypto/+/master:LICENSE",
	},
	{
		ModuleName:  "golang.org/x/net",
		LicenseName: "BSD License",
		Link:        "https://cs.opensource.google/go/x/net/+/master:LICENSE",
	},
	{
		ModuleName:  "golang.org/x/exp",
		LicenseName: "BSD License",
		Link:        "https://cs.opensource.google/go/x/exp/+/master:LICENSE",
	},
}

func PrintLicenses(w io.Writer) {
	for _, license := range Licenses {
		fmt.Fprintf(w, "%s:\n  %s\n  %s\n\n",
			license.ModuleName,
			license.LicenseName,
			license.Link,
		)
	}
}
