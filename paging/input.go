package paging

import (
	"bufio"
	"io"
	"strconv"
)

// ReferenceSentinel terminates a reference string in the text input format
const ReferenceSentinel = -1

// Input is a parsed simulation request
type Input struct {
	FrameSize  int
	Policy     string
	References []PageID
}

// ParseInput reads the whitespace separated text format:
//
//	<frames> <policy> <page> <page> ... -1
//
// The reference string ends at the sentinel or at end of input. The policy
// name is passed through unchecked so that Run can report it as unknown.
func ParseInput(r io.Reader, config *Config) (*Input, error) {
	if config == nil {
		config = DefaultConfig()
	}

	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, NewSimError(ErrCodeInvalidConfig, "ParseInput", "failed to read input", err)
		}
		return nil, ErrInvalidConfig("ParseInput", "missing frame count")
	}

	frameSize, err := strconv.Atoi(scanner.Text())
	if err != nil {
		return nil, NewSimError(ErrCodeInvalidConfig, "ParseInput", "frame count is not a number", err)
	}
	if frameSize < 1 || frameSize > config.MaxFrames {
		return nil, ErrInvalidConfig("ParseInput", "frame count %d out of range [1, %d]", frameSize, config.MaxFrames)
	}

	input := &Input{
		FrameSize: frameSize,
		Policy:    config.DefaultPolicy,
	}

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, NewSimError(ErrCodeInvalidConfig, "ParseInput", "failed to read input", err)
		}
		return input, nil
	}
	input.Policy = scanner.Text()

	refs, err := scanReferences(scanner, config.MaxReferences)
	if err != nil {
		return nil, err
	}
	input.References = refs

	return input, nil
}

// ParseReferences reads a sentinel or EOF terminated list of page numbers
func ParseReferences(r io.Reader, maxReferences int) ([]PageID, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	return scanReferences(scanner, maxReferences)
}

func scanReferences(scanner *bufio.Scanner, maxReferences int) ([]PageID, error) {
	refs := make([]PageID, 0)

	for scanner.Scan() {
		n, err := strconv.ParseInt(scanner.Text(), 10, 64)
		if err != nil {
			return nil, NewSimError(ErrCodeInvalidConfig, "ParseReferences",
				"reference "+strconv.Itoa(len(refs))+" is not a number", err)
		}
		if n == ReferenceSentinel {
			return refs, nil
		}
		if n < 0 || n > int64(^PageID(0)) {
			return nil, ErrInvalidConfig("ParseReferences", "reference %d has invalid page number %d", len(refs), n)
		}
		if len(refs) >= maxReferences {
			return nil, ErrInvalidConfig("ParseReferences", "reference string exceeds %d entries", maxReferences)
		}
		refs = append(refs, PageID(n))
	}

	if err := scanner.Err(); err != nil {
		return nil, NewSimError(ErrCodeInvalidConfig, "ParseReferences", "failed to read input", err)
	}

	return refs, nil
}
