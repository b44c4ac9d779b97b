// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"gopkg.widl.org/bindgen.go/internal/ast"
	"gopkg.widl.org/bindgen.go/internal/compiler"
	"gopkg.widl.org/bindgen.go/internal/fs"
	"gopkg.widl.org/bindgen.go/internal/gen"
	"gopkg.widl.org/bindgen.go/internal/target"
)

type opts struct {
	Roots      []string
	Only       []string
	DumpTokens bool
	DumpTree   bool
	ImageOut   string
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	op := &opts{}
	flags := pflag.NewFlagSet("widlc", pflag.PanicOnError)
	flags.StringSliceVar(&op.Roots, "root", []string{"."}, "Root search paths for IDL files.")
	flags.StringSliceVar(&op.Only, "only", nil, "Generate only the named interfaces.")
	flags.BoolVar(&op.DumpTokens, "dump-tokens", false, "Output the token stream as it is processed")
	flags.BoolVar(&op.DumpTree, "dump-tree", false, "Output the parse tree after linking")
	flags.StringVar(&op.ImageOut, "image-out", "", "Writes the linked definition image to FILE")
	_ = flags.Parse(os.Args[1:])
	args := flags.Args()
	if len(args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: widlc [flags] <config-file> <output-prefix> <idl-file>...")
		os.Exit(1)
	}
	configPath := args[0]
	outputPrefix := args[1]
	targets := args[2:]

	f, err := compiler.NewDefaultFS(os.LookupEnv)
	if err != nil {
		panic(err)
	}

	mf := make(fs.FileSystemMulti, 0, len(op.Roots)+1)
	for _, root := range op.Roots {
		absRoot, errAbs := filepath.Abs(root)
		if errAbs != nil {
			panic(errAbs.Error())
		}
		rf, err := fs.NewFileSystemLocal(absRoot)
		if err != nil {
			panic(err.Error())
		}
		mf = append(mf, rf)
	}
	mf = append(mf, f)

	c, err := compiler.New(
		compiler.OptionWithLookupEnv(os.LookupEnv),
		compiler.OptionWithFS(mf),
	)
	if err != nil {
		panic(err)
	}

	out, err := c.Compile(ctx, &compiler.CompileRequest{
		Files:      targets,
		DumpTokens: op.DumpTokens,
		DumpTree:   op.DumpTree,
	})
	if err != nil {
		var me compiler.MultiException
		if errors.As(err, &me) {
			for _, err := range me {
				fmt.Fprintln(os.Stderr, err.Error())
			}
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if op.ImageOut != "" {
		content := ast.EncodeImage(out.Image)
		if err = os.WriteFile(op.ImageOut, content, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	}

	cfgFiles, err := mf.Open(ctx, target.Normalize(configPath))
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	cfg, err := gen.LoadConfig(ctx, cfgFiles[0], out.Image)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	generator := gen.NewGenerator(cfg, gen.OptionWithOutput(os.Stdout))
	if _, err := generator.Generate(ctx, out.Image, outputPrefix, op.Only); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
