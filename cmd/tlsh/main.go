package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/tlsh-go/tlsh/tlsh"
)

type cli struct {
	Files       []string `arg:"" optional:"" name:"file" help:"Files to hash. Omit to hash stdin."`
	FileFlags   []string `short:"f" name:"files" help:"File to hash; may be repeated, and is hashed before any positional files."`
	Compare     []string `short:"c" help:"Compare two existing digests instead of hashing files: -c digest1,digest2"`
	Debug       bool     `short:"d" help:"Print the resolved code-distance backend before hashing"`
	IncludeLen  bool     `short:"l" default:"true" negatable:"" help:"Include quantized length and checksum in diff scores"`
}

func main() {
	var params cli
	kong.Parse(&params)
	if err := run(&params); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(params *cli) error {
	if params.Debug {
		fmt.Fprintf(os.Stderr, "backend: %s\n", tlsh.DiffMode())
	}

	if len(params.Compare) == 2 {
		return compare(params.Compare[0], params.Compare[1], params.IncludeLen)
	}

	paths := append(append([]string(nil), params.FileFlags...), params.Files...)
	if len(paths) == 0 {
		return hashReader("-", os.Stdin)
	}

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		err = hashReader(path, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func hashReader(name string, r io.Reader) error {
	b := tlsh.NewBuilder()
	buf := make([]byte, 64*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.Update(buf[:n])
		}
		if err != nil {
			break
		}
	}
	b.Finalize()
	hash, err := b.GetHash()
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	fmt.Printf("%s\t%s\n", hash.DigestVersioned(), name)
	return nil
}

func compare(left, right string, includeLen bool) error {
	a, err := tlsh.ParseDigest(left)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", left, err)
	}
	b, err := tlsh.ParseDigest(right)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", right, err)
	}
	fmt.Println(tlsh.Diff(a, b, includeLen))
	return nil
}
