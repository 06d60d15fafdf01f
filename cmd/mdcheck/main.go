// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Command mdcheck parses a Markdown document and either reports parse
// errors or renders the document to HTML.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	markdown "github.com/wscpublish/markdown"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("mdcheck: ")
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	fset := flag.NewFlagSet("mdcheck", flag.ExitOnError)
	check := fset.Bool("check", false, "exit 0/1 without printing HTML")
	frontmatter := fset.String("frontmatter", "strip", "frontmatter handling: strip or keep")
	if err := fset.Parse(args); err != nil {
		return err
	}
	if *frontmatter != "strip" && *frontmatter != "keep" {
		return fmt.Errorf("mdcheck: invalid -frontmatter value %q (want strip or keep)", *frontmatter)
	}

	source, err := readSource(fset.Args())
	if err != nil {
		return fmt.Errorf("mdcheck: %w", err)
	}

	if *frontmatter == "strip" {
		source, _ = markdown.StripFrontmatter(source)
	}

	nodes, err := markdown.Parse(string(source))
	if err != nil {
		return fmt.Errorf("mdcheck: %w", err)
	}

	if *check {
		return nil
	}

	if err := markdown.RenderHTML(os.Stdout, nodes); err != nil {
		return fmt.Errorf("mdcheck: %w", err)
	}
	return nil
}

func readSource(positional []string) ([]byte, error) {
	switch len(positional) {
	case 0:
		return io.ReadAll(os.Stdin)
	case 1:
		return os.ReadFile(positional[0])
	default:
		return nil, fmt.Errorf("usage: mdcheck [-check] [-frontmatter=strip|keep] [file]")
	}
}
