package ngram

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestGenerateEmptyModel(t *testing.T) {
	m, err := Train(nil, 2)
	if err != nil {
		t.Fatalf("Train() failed: %v", err)
	}

	got, err := m.Generate([]string{"i", "confess"}, WithSource(panicSource(t)))
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if got != "i confess ." {
		t.Errorf("Generate() = %q, want %q", got, "i confess .")
	}
}

func TestGenerateSeedImmutable(t *testing.T) {
	m := trainTestModel(t, "i confess that i am tired . i confess nothing !", 2)
	seed := []string{"i", "confess"}
	original := []string{"i", "confess"}

	big := make([]string, 2, 64)
	copy(big, seed)

	for _, s := range [][]string{seed, big} {
		if _, err := m.Generate(s, WithSource(NewSource(7))); err != nil {
			t.Fatalf("Generate() failed: %v", err)
		}
		for i := range original {
			if s[i] != original[i] {
				t.Errorf("seed changed: got %q, want %q", s, original)
			}
		}
		if spare := s[:cap(s)]; len(spare) > 2 && spare[2] != "" {
			t.Errorf("generate wrote into the seed's spare capacity: %q", spare[2])
		}
	}
}

func TestGenerateFrom(t *testing.T) {
	m := trainTestModel(t, "one fish two fish . red fish blue fish !", 2)

	testCases := []struct {
		name     string
		seed     string
		source   Source
		expected string
	}{
		{
			name:     "Single path to terminal",
			seed:     "one fish",
			source:   fixedSource(0),
			expected: "one fish two fish .",
		},
		{
			name:     "Other branch",
			seed:     "red fish",
			source:   fixedSource(0),
			expected: "red fish blue fish !",
		},
		{
			name:     "Continuation is terminal",
			seed:     "two fish",
			source:   fixedSource(0),
			expected: "two fish .",
		},
		{
			name:     "Unseen context ends immediately",
			seed:     "green fish",
			source:   fixedSource(0),
			expected: "green fish .",
		},
		{
			name:     "Seed longer than order uses last words",
			seed:     "green eggs one fish",
			source:   fixedSource(0),
			expected: "green eggs one fish two fish .",
		},
		{
			name:     "Seed already terminal",
			seed:     "stop .",
			source:   fixedSource(0),
			expected: "stop .",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := m.Generate(strings.Split(tc.seed, " "), WithSource(tc.source))
			if err != nil {
				t.Fatalf("Generate() failed: %v", err)
			}
			if got != tc.expected {
				t.Errorf("Generate() = %q, want %q", got, tc.expected)
			}
		})
	}
}

func TestGenerateSeedTooShort(t *testing.T) {
	m := trainTestModel(t, "a b c d .", 3)
	_, err := m.Generate([]string{"a", "b"})
	if !errors.Is(err, ErrSeedTooShort) {
		t.Errorf("Generate() error = %v, want ErrSeedTooShort", err)
	}
	if err := ValidateSeed([]string{"a", "b", "c"}, 3); err != nil {
		t.Errorf("ValidateSeed() error = %v, want nil", err)
	}
}

func TestGenerateTerminates(t *testing.T) {
	corpus := createBenchmarkCorpus()
	for _, order := range []int{1, 2, 3} {
		m, err := Train(corpus, order)
		if err != nil {
			t.Fatalf("Train() failed: %v", err)
		}
		seed := corpus[:order]
		src := NewSource(uint64(order))
		for i := 0; i < 50; i++ {
			words, err := m.GenerateWords(seed, WithSource(src))
			if err != nil {
				t.Fatalf("GenerateWords() failed: %v", err)
			}
			if last := words[len(words)-1]; !IsTerminal(last) {
				t.Fatalf("generation ended on non-terminal word %q", last)
			}
		}
	}
}

func TestGenerateMaxWords(t *testing.T) {
	// No terminal word anywhere: "a b" -> a, "b a" -> b loops forever.
	m := trainTestModel(t, "a b a b a b", 2)

	got, err := m.Generate([]string{"a", "b"}, WithMaxWords(4))
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if got != "a b a b a b ." {
		t.Errorf("Generate() = %q, want %q", got, "a b a b a b .")
	}

	words, err := m.GenerateWords([]string{"a", "b"})
	if err != nil {
		t.Fatalf("GenerateWords() failed: %v", err)
	}
	if len(words) != 2+DefaultMaxWords+1 {
		t.Errorf("default bound produced %d words, want %d", len(words), 2+DefaultMaxWords+1)
	}
}

func TestGenerateDeterministicWithSeededSource(t *testing.T) {
	m := trainTestModel(t, createBenchmarkCorpusSample(), 1)
	seed := []string{"the"}

	first, err := m.Generate(seed, WithSource(NewSource(99)))
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	second, err := m.Generate(seed, WithSource(NewSource(99)))
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if first != second {
		t.Errorf("same seed produced different output:\n%q\n%q", first, second)
	}
}

func TestGenerateConcurrent(t *testing.T) {
	m := trainTestModel(t, createBenchmarkCorpusSample(), 2)
	seed := []string{"the", "cat"}

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				words, err := m.GenerateWords(seed, WithSource(NewSource(uint64(i*100+j))))
				if err != nil {
					errs <- err
					return
				}
				if !IsTerminal(words[len(words)-1]) {
					errs <- errors.New("non-terminal ending")
					return
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

// createBenchmarkCorpusSample is a short corpus with branching contexts.
func createBenchmarkCorpusSample() string {
	return "the cat sat on the mat . the cat ran to the door ! the dog sat on the cat ? " +
		"the dog ran . the cat sat . on the mat the dog slept ."
}

func BenchmarkGenerate(b *testing.B) {
	corpus := createBenchmarkCorpus()
	m, err := Train(corpus, 2)
	if err != nil {
		b.Fatalf("Train() setup for benchmark failed: %v", err)
	}
	seed := corpus[:2]
	src := NewSource(3)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, err := m.Generate(seed, WithSource(src), WithMaxWords(50))
		b.SetBytes(int64(len(s)))
		if err != nil {
			b.Fatalf("Generate() failed: %v", err)
		}
	}
}
