package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"beankit/xmlnode"
)

func xmlCmd(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("xml", stderr)

	var file, path, node string
	fs.StringVar(&file, "file", "", "XML document to read")
	fs.StringVar(&path, "path", "", "slash-separated element names between the root and the node")
	fs.StringVar(&node, "node", "", "name of the node whose text is printed")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if file == "" || node == "" {
		fs.Usage()
		return errUsage
	}

	doc, err := xmlnode.ReadFile(file)
	if err != nil {
		return err
	}

	var parents []string
	for part := range strings.SplitSeq(path, "/") {
		if part != "" {
			parents = append(parents, part)
		}
	}

	value, err := xmlnode.Value(doc, parents, node)
	if err != nil {
		if errors.Is(err, xmlnode.ErrNodeNotFound) {
			return fmt.Errorf("%s: %w", file, err)
		}

		return err
	}

	fmt.Fprintln(stdout, value)

	return nil
}
