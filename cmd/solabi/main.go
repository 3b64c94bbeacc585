package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"solgo/compiler-go/pkg/abi"
	"solgo/compiler-go/pkg/analysis"
	"solgo/compiler-go/pkg/driver"
)

func main() {
	contractName := flag.String("contract", "", "contract to export (defaults to the only one)")
	selectorsOnly := flag.Bool("selectors", false, "print the selector table instead of the ABI")
	outputPath := flag.String("o", "", "write output to a file instead of stdout")
	flag.Parse()

	fixturePath := flag.Arg(0)
	if fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: solabi [options] <contracts.yaml>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := run(fixturePath, *contractName, *selectorsOnly, *outputPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(fixturePath, contractName string, selectorsOnly bool, outputPath string) error {
	absPath, err := filepath.Abs(fixturePath)
	if err != nil {
		return err
	}

	fixture, err := loadFixture(absPath)
	if err != nil {
		return err
	}

	session := driver.NewSession()
	if _, err := buildUnit(session, fixture); err != nil {
		return err
	}

	for _, diag := range session.Diagnostics() {
		fmt.Fprintln(os.Stderr, analysis.Describe(diag))
	}
	if session.HasErrors() {
		return fmt.Errorf("solabi: analysis failed for %s", fixture.Source)
	}

	var output []byte
	if selectorsOnly {
		entries, err := session.Selectors(contractName)
		if err != nil {
			return err
		}
		output = []byte(abi.FormatSelectors(entries))
	} else {
		entries, err := session.ABI(contractName)
		if err != nil {
			return err
		}
		data, err := abi.MarshalJSON(entries)
		if err != nil {
			return err
		}
		output = append(data, '\n')
	}

	if outputPath == "" {
		_, err = os.Stdout.Write(output)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, output, 0o644)
}
