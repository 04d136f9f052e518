package simplicity

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/bryanwahyu/chain-compliance/internal/domain/contract"
)

const (
	defaultBin     = "simplicityhl"
	defaultTimeout = 5 * time.Second
)

// Runner invokes the external SimplicityHL compiler. The compiler is treated
// as untrusted and best-effort: every failure mode, including an absent
// binary, comes back as a structured CompilationResult.
type Runner struct {
	Bin     string
	Timeout time.Duration
}

func NewRunner(bin string, timeout time.Duration) *Runner {
	if bin == "" {
		bin = defaultBin
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Runner{Bin: bin, Timeout: timeout}
}

// compilerOutput is the JSON shape the compiler prints on stdout.
type compilerOutput struct {
	Status   string          `json:"status"`
	Message  string          `json:"message"`
	Bytecode string          `json:"bytecode"`
	AST      json.RawMessage `json:"ast"`
}

// Compile writes the source (and optional witness) to temp files, runs the
// compiler under a deadline, and removes the temp files on every exit path.
func (r *Runner) Compile(ctx context.Context, source string, witness []byte) contract.CompilationResult {
	if _, err := exec.LookPath(r.Bin); err != nil {
		return contract.CompilationResult{
			Status:  "error",
			Message: fmt.Sprintf("%s not available", r.Bin),
		}
	}

	simfPath, err := writeTemp("contract-*.simf", []byte(source))
	if err != nil {
		return exceptionResult(fmt.Sprintf("Compilation exception: %v", err))
	}
	defer os.Remove(simfPath)

	args := []string{"--debug", simfPath}
	if len(witness) > 0 {
		witPath, werr := writeTemp("witness-*.wit", witness)
		if werr != nil {
			return exceptionResult(fmt.Sprintf("Compilation exception: %v", werr))
		}
		defer os.Remove(witPath)
		args = append(args, witPath)
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, r.Bin, args...).CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return exceptionResult(fmt.Sprintf("Compilation exception: %s timed out after %s", r.Bin, r.Timeout))
	}
	if err != nil {
		// A non-zero exit with parseable JSON is still a structured answer.
		if _, ok := err.(*exec.ExitError); !ok {
			return exceptionResult(fmt.Sprintf("Compilation exception: %v", err))
		}
	}

	var parsed compilerOutput
	if jerr := json.Unmarshal(bytesTrim(out), &parsed); jerr != nil {
		return exceptionResult(fmt.Sprintf("Compilation exception: unreadable compiler output: %v", jerr))
	}

	res := contract.CompilationResult{
		Status:  parsed.Status,
		Message: parsed.Message,
	}

	if parsed.Status == "success" {
		res.Compiled = true
		if parsed.Bytecode != "" {
			res.Bytecode = parsed.Bytecode
			res.BytecodeSize = len(parsed.Bytecode) / 2
		}
		res.HasAST = len(parsed.AST) > 0 && string(parsed.AST) != "null"
		return res
	}

	res.ErrorType = ClassifyError(parsed.Message)
	return res
}

// ClassifyError buckets a compiler error message by its content.
func ClassifyError(message string) string {
	switch {
	case strings.Contains(message, "Grammar error"):
		return "Grammar error"
	case strings.Contains(message, "Type error"):
		return "Type error"
	default:
		return "Compilation error"
	}
}

func exceptionResult(message string) contract.CompilationResult {
	return contract.CompilationResult{
		Status:    "error",
		Message:   message,
		ErrorType: "Exception",
	}
}

func writeTemp(pattern string, data []byte) (string, error) {
	f, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func bytesTrim(b []byte) []byte {
	return []byte(strings.TrimSpace(string(b)))
}
