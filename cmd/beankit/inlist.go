package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"beankit/sqlin"
)

func inlistCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := newFlagSet("inlist", stderr)

	var keepBlank bool
	fs.BoolVar(&keepBlank, "blank", false, "keep blank lines as empty values")

	if err := fs.Parse(args); err != nil {
		return err
	}

	var values []string

	sc := bufio.NewScanner(stdin)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" && !keepBlank {
			continue
		}

		values = append(values, line)
	}

	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading values: %w", err)
	}

	fmt.Fprintln(stdout, sqlin.Join(values))

	return nil
}
