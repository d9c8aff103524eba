package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/andreazorzetto/yh/highlight"
	"github.com/hokaccha/go-prettyjson"
	"gopkg.in/yaml.v3"

	"github.com/looplj/jsonfixer/conf"
)

func handleConfigCommand() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: jsonfixer config <preview|validate|get>")
		os.Exit(1)
	}

	switch os.Args[2] {
	case "preview":
		configPreview()
	case "validate":
		configValidate()
	case "get":
		configGet()
	default:
		fmt.Println("Usage: jsonfixer config <preview|validate|get>")
		os.Exit(1)
	}
}

func configPreview() {
	format := "yml"

	for i := 3; i < len(os.Args); i++ {
		if (os.Args[i] == "--format" || os.Args[i] == "-f") && i+1 < len(os.Args) {
			format = os.Args[i+1]
		}
	}

	config, err := conf.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	output, err := renderConfig(config, format)
	if err != nil {
		fmt.Printf("Failed to preview config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(output)
}

func renderConfig(config conf.Config, format string) (string, error) {
	switch format {
	case "json":
		b, err := prettyjson.Marshal(config)
		if err != nil {
			return "", err
		}

		return string(b), nil
	case "yml", "yaml":
		b, err := yaml.Marshal(config)
		if err != nil {
			return "", err
		}

		return highlight.Highlight(bytes.NewBuffer(b))
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func configValidate() {
	config, err := conf.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	problems := conf.Validate(config)
	if len(problems) == 0 {
		fmt.Println("Configuration is valid!")
		return
	}

	fmt.Println("Configuration validation failed:")

	for _, problem := range problems {
		fmt.Printf("  - %s\n", problem)
	}

	os.Exit(1)
}

func configGet() {
	if len(os.Args) < 4 {
		fmt.Println("Usage: jsonfixer config get <key>")
		fmt.Println("")
		fmt.Println("Example keys:")
		fmt.Println("  server.port             Server port number")
		fmt.Println("  server.repair_path      Path of the repair endpoint")
		fmt.Println("  repair.quote_strategy   Interior quote strategy")
		fmt.Println("  cache.mode              Outcome cache mode")
		os.Exit(1)
	}

	value, err := conf.Get(os.Args[3])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	fmt.Println(value)
}
