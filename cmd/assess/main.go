// Command assess scores a comma separated answer list offline:
//
//	go run ./cmd/assess -answers 4,4,-,4,4,4
//
// A "-" or empty slot marks an unanswered question.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/peterbourgon/ff/v3"

	"nurture-backend/internal/assessments"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("assess", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		answers  = fs.String("answers", "", "comma separated option indexes, one per question")
		bankFile = fs.String("bank", "", "question bank YAML file (defaults to the embedded bank)")
	)
	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix("ASSESS")); err != nil {
		return 2
	}

	bank, err := loadBank(*bankFile)
	if err != nil {
		fmt.Fprintf(stderr, "load bank: %v\n", err)
		return 1
	}
	parsed, err := parseAnswers(*answers)
	if err != nil {
		fmt.Fprintf(stderr, "parse answers: %v\n", err)
		return 2
	}
	result, err := assessments.Score(bank, parsed)
	if err != nil {
		fmt.Fprintf(stderr, "score: %v\n", err)
		if missing := assessments.Unanswered(bank, parsed); len(missing) > 0 {
			fmt.Fprintf(stderr, "unanswered questions: %v\n", missing)
		}
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(stderr, "encode: %v\n", err)
		return 1
	}
	return 0
}

func loadBank(path string) (assessments.Bank, error) {
	if strings.TrimSpace(path) == "" {
		return assessments.DefaultBank()
	}
	return assessments.LoadBank(path)
}

func parseAnswers(raw string) ([]*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]*int, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || p == "-" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("answer %d: %q is not a number", i+1, p)
		}
		out[i] = &v
	}
	return out, nil
}
