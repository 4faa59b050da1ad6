// Package filereader reads and writes Turing machine descriptors from/to
// .tm files structured as follows:
// 1. Comment lines, beginning with '#', ignored anywhere in the file;
// 2. A "tapes N" header line giving the tape count;
// 3. An optional "alphabet a b c" header line listing the input alphabet
// (space-separated Letters; when omitted, the input alphabet is empty and
// is not derived from the transitions);
// 4. One transition per remaining non-blank line, tab-delimited:
// <state>\t<read letters, comma-joined>\t<next state>\t<write letters,
// comma-joined>\t<directions, comma-joined tokens '<' '>' '.'>
//
// This trades a single-tape, matrix-shaped layout for one self-contained
// line per transition, the natural shape once a line must carry more than
// one letter and more than one direction across an arbitrary (1 or 2) tape
// count.
package filereader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/asphodex/tm2to1"
)

var (
	// ErrParseTransition is returned when a transition line cannot be
	// parsed correctly.
	ErrParseTransition = errors.New("parse transition")

	// ErrNoTransitions is returned when the program file contains no valid
	// transitions.
	ErrNoTransitions = errors.New("no transitions")

	// ErrMissingTapeCount is returned when no "tapes N" header line was found.
	ErrMissingTapeCount = errors.New("missing tapes header")
)

const transitionFieldCount = 5

// ReadFileCtx reads a .tm descriptor from the given filepath.
func ReadFileCtx(ctx context.Context, filePath string) (*turing.TuringMachine, error) {
	path := filepath.Clean(filePath)

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("file %q does not exist: %w", path, err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read file %q: %w", path, err)
	}

	defer func() {
		_ = file.Close()
	}()

	return ReadCtx(ctx, file)
}

// ReadCtx reads a .tm descriptor from the given io.Reader.
func ReadCtx(ctx context.Context, r io.Reader) (*turing.TuringMachine, error) {
	scanner := bufio.NewScanner(r)

	var (
		numTapes      int
		haveTapes     bool
		inputAlphabet map[turing.Letter]struct{}
		transitions   = make(map[turing.TransitionKey]turing.Transition)
	)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil, ctx.Err() //nolint:wrapcheck
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)

		switch {
		case fields[0] == "tapes" && len(fields) == 2:
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("%w: tapes header %q: %v", ErrParseTransition, line, err)
			}
			numTapes = n
			haveTapes = true
			continue

		case fields[0] == "alphabet":
			inputAlphabet = make(map[turing.Letter]struct{}, len(fields)-1)
			for _, l := range fields[1:] {
				inputAlphabet[turing.Letter(l)] = struct{}{}
			}
			continue
		}

		if !haveTapes {
			return nil, ErrMissingTapeCount
		}

		key, val, err := ParseTransitionLine(line, numTapes)
		if err != nil {
			return nil, err
		}

		transitions[key] = val
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read program: %w", err)
	}

	if !haveTapes {
		return nil, ErrMissingTapeCount
	}

	if len(transitions) == 0 {
		return nil, ErrNoTransitions
	}

	return turing.NewTuringMachine(numTapes, inputAlphabet, transitions)
}

// ParseTransitionLine parses one tab-delimited transition line into its
// TransitionKey/Transition halves.
func ParseTransitionLine(line string, numTapes int) (turing.TransitionKey, turing.Transition, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != transitionFieldCount {
		return turing.TransitionKey{}, turing.Transition{}, fmt.Errorf("%w: expected %d tab-delimited fields, got %d in %q", ErrParseTransition, transitionFieldCount, len(fields), line)
	}

	readLetters, err := splitLetters(fields[1], numTapes)
	if err != nil {
		return turing.TransitionKey{}, turing.Transition{}, fmt.Errorf("%w: %v", ErrParseTransition, err)
	}

	writeLetters, err := splitLetters(fields[3], numTapes)
	if err != nil {
		return turing.TransitionKey{}, turing.Transition{}, fmt.Errorf("%w: %v", ErrParseTransition, err)
	}

	dirTokens := strings.Split(fields[4], ",")
	if len(dirTokens) != numTapes {
		return turing.TransitionKey{}, turing.Transition{}, fmt.Errorf("%w: expected %d directions, got %q", ErrParseTransition, numTapes, fields[4])
	}

	var directions [2]turing.Direction
	for i, tok := range dirTokens {
		d, ok := turing.ParseDirectionToken(tok)
		if !ok {
			return turing.TransitionKey{}, turing.Transition{}, fmt.Errorf("%w: unknown direction token %q", ErrParseTransition, tok)
		}
		directions[i] = d
	}

	key := turing.TransitionKey{State: turing.State(fields[0]), Letters: readLetters}
	val := turing.Transition{NextState: turing.State(fields[2]), Letters: writeLetters, Directions: directions}

	return key, val, nil
}

func splitLetters(field string, numTapes int) ([2]turing.Letter, error) {
	var out [2]turing.Letter

	parts := strings.Split(field, ",")
	if len(parts) != numTapes {
		return out, fmt.Errorf("expected %d comma-joined letters, got %q", numTapes, field)
	}

	for i, p := range parts {
		if p == "" {
			return out, fmt.Errorf("empty letter in %q", field)
		}
		out[i] = turing.Letter(p)
	}

	return out, nil
}

// WriteFileCtx writes tm's descriptor to the given filepath, truncating any
// existing file.
func WriteFileCtx(ctx context.Context, filePath string, tm *turing.TuringMachine) error {
	file, err := os.Create(filepath.Clean(filePath))
	if err != nil {
		return fmt.Errorf("create file %q: %w", filePath, err)
	}
	defer func() {
		_ = file.Close()
	}()

	return WriteCtx(ctx, file, tm)
}

// WriteCtx serializes tm to w in the .tm format ReadCtx accepts.
func WriteCtx(ctx context.Context, w io.Writer, tm *turing.TuringMachine) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "tapes %d\n", tm.NumTapes); err != nil {
		return fmt.Errorf("write tapes header: %w", err)
	}

	if len(tm.InputAlphabet) > 0 {
		letters := make([]string, 0, len(tm.InputAlphabet))
		for l := range tm.InputAlphabet {
			letters = append(letters, string(l))
		}
		if _, err := fmt.Fprintf(bw, "alphabet %s\n", strings.Join(letters, " ")); err != nil {
			return fmt.Errorf("write alphabet header: %w", err)
		}
	}

	for key, val := range tm.Transitions {
		if ctx.Err() != nil {
			return ctx.Err() //nolint:wrapcheck
		}

		if _, err := fmt.Fprintln(bw, formatTransitionLine(tm.NumTapes, key, val)); err != nil {
			return fmt.Errorf("write transition: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	return nil
}

// Format renders tm's descriptor as a string, for the CLI's stdout echo.
func Format(tm *turing.TuringMachine) (string, error) {
	var sb strings.Builder
	if err := WriteCtx(context.Background(), &sb, tm); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func formatTransitionLine(numTapes int, key turing.TransitionKey, val turing.Transition) string {
	readLetters := make([]string, numTapes)
	writeLetters := make([]string, numTapes)
	dirs := make([]string, numTapes)

	for i := 0; i < numTapes; i++ {
		readLetters[i] = string(key.Letters[i])
		writeLetters[i] = string(val.Letters[i])
		dirs[i] = val.Directions[i].Token()
	}

	return strings.Join([]string{
		string(key.State),
		strings.Join(readLetters, ","),
		string(val.NextState),
		strings.Join(writeLetters, ","),
		strings.Join(dirs, ","),
	}, "\t")
}
