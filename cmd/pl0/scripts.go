package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/gosuda/pl0"
)

func loadSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(string(b)) == "" {
		return "", fmt.Errorf("%s is empty", path)
	}
	return string(b), nil
}

type checkResult struct {
	file string
	err  error
}

// checkFiles parses every file concurrently and reports each result in
// argument order. It returns the number of files that failed.
func checkFiles(files []string, w io.Writer) int {
	results := make([]checkResult, len(files))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		g.Go(func() error {
			results[i] = checkResult{file: file, err: checkFile(file)}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(w, "%s: %v\n", r.file, r.err)
			continue
		}
		fmt.Fprintf(w, "%s: ok\n", r.file)
	}
	return failed
}

func checkFile(path string) error {
	src, err := loadSource(path)
	if err != nil {
		return err
	}
	_, err = pl0.Parse(src)
	return err
}
