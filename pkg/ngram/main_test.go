package ngram

import (
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// fixedSource always returns r, whatever the requested range.
func fixedSource(r int) Source {
	return SourceFunc(func(int) int { return r })
}

// panicSource fails the test if a draw is ever requested.
func panicSource(t testing.TB) Source {
	return SourceFunc(func(n int) int {
		t.Fatalf("unexpected draw from source with n=%d", n)
		return 0
	})
}

// trainTestModel trains a model on a whitespace-split corpus.
func trainTestModel(t testing.TB, corpus string, n int) *Model {
	m, err := Train(strings.Fields(corpus), n)
	if err != nil {
		t.Fatalf("setup: Train() failed: %v", err)
	}
	return m
}

var (
	benchmarkCorpus []string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() []string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				sb.Reset()
				sb.WriteString("this is a fallback corpus for benchmarking . it is not very long but will prevent a crash . ")
				break
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = strings.Fields(sb.String())
	})
	return benchmarkCorpus
}
